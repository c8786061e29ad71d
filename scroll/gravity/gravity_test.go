// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gravity

import (
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"FlowyScrolls/scroll"
	"FlowyScrolls/scroll/scrolltest"
	"FlowyScrolls/world"
)

const testConfig = `
gravitation:
  cooldown: 20
  cast-time: 2
  max-target-distance: 100
  max-range: 50
  move-tolerance: 1.0
`

type fixture struct {
	w      *scrolltest.World
	sched  *world.Scheduler
	svc    *scroll.Service
	g      *Scroll
	caster *scrolltest.Player
}

func setup(t *testing.T) *fixture {
	t.Helper()
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, testConfig)
	caster := w.AddPlayer("caster", mgl64.Vec3{0.5, 65, 0.5}, 0, 0)
	caster.Item = scrolltest.NewItem(scroll.Gravitation, 3)
	return &fixture{w: w, sched: sched, svc: svc, g: New(svc), caster: caster}
}

func lastMessage(p *scrolltest.Player) string {
	if len(p.Messages) == 0 {
		return ""
	}
	return p.Messages[len(p.Messages)-1]
}

// Мішень за 60 блоків при max-range 50: відмова, без задач і без кулдауну
func TestSelfPullTooFar(t *testing.T) {
	f := setup(t)
	for y := 65; y <= 70; y++ {
		f.w.Blocks[scroll.BlockPos{0, y, 60}] = scroll.Stone
	}
	f.caster.LookAt(mgl64.Vec3{0.5, 66.62, 60})

	if c := f.g.Cast(f.caster, f.caster.Item, Self); c != nil {
		t.Fatal("self pull beyond max range started")
	}
	if msg := lastMessage(f.caster); !strings.Contains(msg, "занадто далеко") {
		t.Errorf("unexpected message %q", msg)
	}
	if n := f.sched.Pending(); n != 0 {
		t.Errorf("%d tasks scheduled", n)
	}
	if rem := f.svc.Cooldowns.Remaining(f.caster.ID, scroll.Gravitation, f.g.Settings.Cooldown); rem != 0 {
		t.Errorf("cooldown consumed: %v", rem)
	}
	if f.caster.Item.N != 3 {
		t.Error("scroll consumed on rejection")
	}
	if f.svc.Casts.Len() != 0 {
		t.Error("cast registered")
	}
}

// Гравець зрушив на 1.5 блоки під час двосекундного касту: нікого не притягнуто
func TestEnemyPullCancelledByMovement(t *testing.T) {
	f := setup(t)
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 6.5})
	z1 := f.w.AddEntity(mgl64.Vec3{3.5, 65, 6.5})
	z2 := f.w.AddEntity(mgl64.Vec3{0.5, 65, 9.5})
	p1, p2 := z1.Pos, z2.Pos

	c := f.g.Cast(f.caster, f.caster.Item, Enemies)
	if c == nil {
		t.Fatalf("cast rejected: %v", f.caster.Messages)
	}
	f.sched.Run(10)
	if c.Tick != 10 || c.Frames == 0 {
		t.Fatalf("after 10 ticks: tick %d, frames %d", c.Tick, c.Frames)
	}

	f.caster.Pos = f.caster.Pos.Add(mgl64.Vec3{1.5, 0, 0})
	f.sched.Advance()
	if c.Phase != Cancelled {
		t.Fatalf("phase %v, want cancelled", c.Phase)
	}
	if !strings.Contains(lastMessage(f.caster), "зрушили") {
		t.Errorf("unexpected message %q", lastMessage(f.caster))
	}

	ticks, frames, particles := c.Tick, c.Frames, len(f.w.Particles)
	f.sched.Run(60)
	if c.Tick != ticks || c.Frames != frames || len(f.w.Particles) != particles {
		t.Error("cast kept ticking after cancellation")
	}
	if f.sched.Pending() != 0 {
		t.Errorf("%d tasks left", f.sched.Pending())
	}
	if z1.Pos != p1 || z2.Pos != p2 || len(c.Pulled) != 0 {
		t.Error("enemies were pulled by a cancelled cast")
	}
	if rem := f.svc.Cooldowns.Remaining(f.caster.ID, scroll.Gravitation, f.g.Settings.Cooldown); rem != 0 {
		t.Errorf("cooldown not refunded: %v", rem)
	}
	if f.svc.Casts.Active(f.caster.ID, scroll.Gravitation) {
		t.Error("cancelled cast is still active")
	}
}

func TestEnemyPull(t *testing.T) {
	f := setup(t)
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 6.5})
	near := f.w.AddEntity(mgl64.Vec3{5.5, 65, 6.5})
	side := f.w.AddEntity(mgl64.Vec3{-2.5, 65, 8.5})
	far := f.w.AddEntity(mgl64.Vec3{30.5, 65, 6.5})
	farPos := far.Pos
	friend := f.w.AddPlayer("friend", mgl64.Vec3{2.5, 65, 6.5}, 0, 0)
	friendPos := friend.Pos

	c := f.g.Cast(f.caster, f.caster.Item, Enemies)
	if c == nil {
		t.Fatalf("cast rejected: %v", f.caster.Messages)
	}
	if f.caster.Item.N != 2 {
		t.Errorf("scroll not consumed: %d", f.caster.Item.N)
	}
	f.sched.Run(f.g.Settings.CastTicks)
	if c.Phase != Pulling {
		t.Fatalf("phase %v after cast time", c.Phase)
	}
	if len(c.Pulled) != 2 {
		t.Fatalf("pulled %d entities, want 2", len(c.Pulled))
	}
	f.sched.Run(f.g.Settings.PullTicks)
	if c.Phase != Finished {
		t.Fatalf("phase %v after pull", c.Phase)
	}
	dest := c.Target.Destination()
	for _, e := range []*scrolltest.Entity{near, side} {
		if !scrolltest.Near(e.Pos, dest, 1e-9) {
			t.Errorf("entity %d ended at %v, want %v", e.ID, e.Pos, dest)
		}
	}
	if far.Pos != farPos || friend.Pos != friendPos {
		t.Error("pull affected an entity it should not")
	}
	if !strings.Contains(lastMessage(f.caster), "2") {
		t.Errorf("message %q does not mention the count", lastMessage(f.caster))
	}
	if f.svc.Casts.Len() != 0 || f.sched.Pending() != 0 {
		t.Error("finished cast left state behind")
	}
}

func TestSelfPull(t *testing.T) {
	f := setup(t)
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 20.5})
	c := f.g.Cast(f.caster, f.caster.Item, Self)
	if c == nil {
		t.Fatalf("cast rejected: %v", f.caster.Messages)
	}
	// під час касту на себе рухатись можна
	f.caster.Pos = f.caster.Pos.Add(mgl64.Vec3{2, 0, 0})
	f.sched.Run(f.g.Settings.CastTicks + f.g.Settings.PullTicks)
	if c.Phase != Finished {
		t.Fatalf("phase %v", c.Phase)
	}
	if !scrolltest.Near(f.caster.Pos, c.Target.Destination(), 1e-9) {
		t.Errorf("caster at %v, want %v", f.caster.Pos, c.Target.Destination())
	}
	if f.caster.Teleports == 0 {
		t.Error("no final teleport")
	}
	before := len(f.w.Particles)
	f.sched.Run(f.g.Settings.VortexTicks + 2)
	if len(f.w.Particles) == before {
		t.Error("no vortex particles")
	}
	if f.svc.Casts.Len() != 0 || f.sched.Pending() != 0 {
		t.Error("vortex did not finish")
	}
}

func TestMutualExclusion(t *testing.T) {
	f := setup(t)
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 6.5})
	c := f.g.Cast(f.caster, f.caster.Item, Enemies)
	if c == nil {
		t.Fatal("first cast rejected")
	}
	f.sched.Run(5)
	if f.g.Cast(f.caster, f.caster.Item, Enemies) != nil || f.g.Cast(f.caster, f.caster.Item, Self) != nil {
		t.Fatal("second cast started while the first is active")
	}
	if !strings.Contains(lastMessage(f.caster), "вже читаєте") {
		t.Errorf("unexpected message %q", lastMessage(f.caster))
	}
	f.sched.Advance()
	if c.Tick != 6 {
		t.Errorf("active cast tick %d, want 6", c.Tick)
	}
	if f.caster.Item.N != 2 {
		t.Errorf("rejected casts consumed scrolls: %d left", f.caster.Item.N)
	}
}

func TestCooldown(t *testing.T) {
	f := setup(t)
	now := time.Unix(1000, 0)
	f.svc.Cooldowns = scroll.NewCooldowns(func() time.Time { return now })
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 6.5})

	if f.g.Cast(f.caster, f.caster.Item, Enemies) == nil {
		t.Fatal("first cast rejected")
	}
	f.sched.Run(f.g.Settings.CastTicks + f.g.Settings.PullTicks + 1)

	now = now.Add(5 * time.Second)
	if f.g.Cast(f.caster, f.caster.Item, Enemies) != nil {
		t.Fatal("cast during cooldown succeeded")
	}
	if msg := lastMessage(f.caster); !strings.Contains(msg, "15.0") {
		t.Errorf("remaining time missing from %q", msg)
	}

	now = now.Add(15*time.Second + time.Millisecond)
	if f.g.Cast(f.caster, f.caster.Item, Enemies) == nil {
		t.Fatalf("cast after cooldown rejected: %q", lastMessage(f.caster))
	}
}

func TestCasterLogout(t *testing.T) {
	f := setup(t)
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 6.5})
	c := f.g.Cast(f.caster, f.caster.Item, Enemies)
	f.sched.Run(3)
	f.caster.IsOnline = false
	f.sched.Advance()
	if c.Phase != Cancelled || f.sched.Pending() != 0 {
		t.Errorf("cast survived logout: %v", c.Phase)
	}
}

func TestClose(t *testing.T) {
	f := setup(t)
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 6.5})
	c := f.g.Cast(f.caster, f.caster.Item, Enemies)
	f.sched.Run(3)
	f.g.Close()
	if c.Phase != Cancelled || f.sched.Pending() != 0 || f.svc.Casts.Len() != 0 {
		t.Error("Close left the cast running")
	}
}

func TestNoTarget(t *testing.T) {
	f := setup(t)
	f.caster.Pitch = -90
	if f.g.Cast(f.caster, f.caster.Item, Enemies) != nil {
		t.Fatal("cast at the sky started")
	}
	if !strings.Contains(lastMessage(f.caster), "Немає цілі") {
		t.Errorf("unexpected message %q", lastMessage(f.caster))
	}
}

func TestInteractClicks(t *testing.T) {
	f := setup(t)
	f.caster.LookAt(mgl64.Vec3{0.5, 65, 6.5})
	f.g.Interact(f.caster, f.caster.Item, scroll.LeftClick)
	f.sched.Advance()
	// ліва кнопка - каст на себе, його не скасовує рух
	f.caster.Pos = f.caster.Pos.Add(mgl64.Vec3{3, 0, 0})
	f.sched.Advance()
	if !f.svc.Casts.Active(f.caster.ID, scroll.Gravitation) {
		t.Error("left click cast was cancelled by movement")
	}
}
