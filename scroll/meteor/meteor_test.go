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

package meteor

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
	"FlowyScrolls/scroll/scrolltest"
)

const fixedSize = `
meteor:
  size-min: 5
  size-max: 5
`

// Метеорит розміром 5 в ціль за 100 блоків: один удар, і жодного привида після нього
func TestMeteorStrikeEndToEnd(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, fixedSize)
	m := New(svc)

	caster := w.AddPlayer("caster", mgl64.Vec3{0.5, 65, 0.5}, 0, 0)
	watcher := w.AddPlayer("watcher", mgl64.Vec3{10.5, 65, 50.5}, 0, 0)
	caster.LookAt(mgl64.Vec3{0.5, 65, 100.5})
	caster.Item = scrolltest.NewItem(scroll.Meteor, 2)

	f := m.Cast(caster, caster.Item)
	if f == nil {
		t.Fatalf("cast rejected: %v", caster.Messages)
	}
	if f.P.Size != 5 {
		t.Errorf("size = %d, want 5", f.P.Size)
	}
	if caster.Item.N != 1 {
		t.Errorf("scroll was not consumed: %d left", caster.Item.N)
	}

	ticks := 0
	for !f.Finished() {
		sched.Advance()
		ticks++
		if ticks > DefaultMaxTicks {
			t.Fatal("flight outlived the tick ceiling")
		}
		if f.Finished() {
			// той самий тік, в якому стався удар
			for _, pl := range []*scrolltest.Player{caster, watcher} {
				if len(pl.Fake) != 0 || f.Tracker.Outstanding(pl.ID) != 0 {
					t.Errorf("%s still sees %d phantom blocks at impact", pl.Name(), len(pl.Fake))
				}
			}
		}
	}
	if f.Impacts != 1 {
		t.Fatalf("impact fired %d times", f.Impacts)
	}
	if f.P.Ticks >= DefaultMaxTicks {
		t.Error("meteor was stopped by the ceiling instead of the ground")
	}
	if d := scroll.HorizontalDistance(f.P.Pos, mgl64.Vec3{0.5, 65, 100.5}); d > 12 {
		t.Errorf("landed %.1f blocks from the target", d)
	}

	c := TotalDepth(5) + 5 + m.Settings.CleanupDelay
	sched.Run(c)
	if f.Impacts != 1 {
		t.Errorf("impact fired again: %d", f.Impacts)
	}
	if fl, cr := m.Active(); fl != 0 || cr != 0 {
		t.Errorf("still active: %d flights, %d craters", fl, cr)
	}
	if sched.Pending() != 0 {
		t.Errorf("%d tasks left in the scheduler", sched.Pending())
	}
	if w.SetCalls == 0 {
		t.Error("no crater was dug")
	}
}

func TestMeteorCooldown(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	m := New(scrolltest.Service(t, w, sched, fixedSize))
	p := w.AddPlayer("p", mgl64.Vec3{0.5, 65, 0.5}, 0, 40)
	p.Item = scrolltest.NewItem(scroll.Meteor, 5)

	if m.Cast(p, p.Item) == nil {
		t.Fatalf("first cast rejected: %v", p.Messages)
	}
	if m.Cast(p, p.Item) != nil {
		t.Fatal("second cast ignored the cooldown")
	}
	last := p.Messages[len(p.Messages)-1]
	if !strings.Contains(last, "Зачекайте") {
		t.Errorf("unexpected denial %q", last)
	}
	if p.Item.N != 4 {
		t.Errorf("denied cast consumed a scroll: %d left", p.Item.N)
	}
	if len(p.Heard) == 0 {
		t.Error("no deny sound")
	}
}

func TestMeteorNoTarget(t *testing.T) {
	w := scrolltest.NewWorld(64)
	m := New(scrolltest.Service(t, w, scrolltest.NewScheduler(), ""))
	p := w.AddPlayer("p", mgl64.Vec3{0.5, 65, 0.5}, 0, -80) // дивиться в небо
	p.Item = scrolltest.NewItem(scroll.Meteor, 1)

	if m.Cast(p, p.Item) != nil {
		t.Fatal("cast into the sky succeeded")
	}
	if fl, _ := m.Active(); fl != 0 {
		t.Error("flight started without a target")
	}
	if rem := m.svc.Cooldowns.Remaining(p.ID, scroll.Meteor, m.Settings.Cooldown); rem != 0 {
		t.Errorf("cooldown started: %v", rem)
	}
}

func TestMeteorLeftClickIgnored(t *testing.T) {
	w := scrolltest.NewWorld(64)
	m := New(scrolltest.Service(t, w, scrolltest.NewScheduler(), ""))
	p := w.AddPlayer("p", mgl64.Vec3{0.5, 65, 0.5}, 0, 40)
	p.Item = scrolltest.NewItem(scroll.Meteor, 1)
	m.Interact(p, p.Item, scroll.LeftClick)
	if fl, _ := m.Active(); fl != 0 || p.Item.N != 1 {
		t.Error("left click launched a meteor")
	}
}

// panicWorld ламається посеред польоту
type panicWorld struct {
	*scrolltest.World
	calls, after int
}

func (w *panicWorld) HighestBlockY(x, z int) int {
	w.calls++
	if w.calls > w.after {
		panic("chunk vanished")
	}
	return w.World.HighestBlockY(x, z)
}

func TestFlightFaultCancels(t *testing.T) {
	base := scrolltest.NewWorld(10)
	pl := base.AddPlayer("p", mgl64.Vec3{0, 11, 0}, 0, 0)
	w := &panicWorld{World: base, after: 3}
	sched := scrolltest.NewScheduler()
	cfg, err := scroll.ParseConfig(zap.NewNop(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := New(scroll.NewService(zap.NewNop(), cfg, w, sched, nil))

	f := m.Launch(mgl64.Vec3{0.5, 200, 0.5}, mgl64.Vec3{0.5, 0, 0.5}, 6, uuid.New())
	sched.Run(3)
	if len(pl.Fake) == 0 {
		t.Fatal("meteor was never shown")
	}
	sched.Run(5)
	if !f.Finished() {
		t.Fatal("faulty flight is still running")
	}
	if f.Impacts != 0 {
		t.Error("fault triggered an impact")
	}
	if len(pl.Fake) != 0 {
		t.Errorf("%d phantom blocks leaked after the fault", len(pl.Fake))
	}
	if base.SetCalls != 0 {
		t.Error("world changed after the fault")
	}
	if fl, cr := m.Active(); fl != 0 || cr != 0 {
		t.Errorf("still active: %d flights, %d craters", fl, cr)
	}
}

func TestMeteorCloseRevokes(t *testing.T) {
	w := scrolltest.NewWorld(10)
	pl := w.AddPlayer("p", mgl64.Vec3{0, 11, 0}, 0, 0)
	sched := scrolltest.NewScheduler()
	m := New(scrolltest.Service(t, w, sched, ""))
	f := m.Launch(mgl64.Vec3{0.5, 200, 0.5}, mgl64.Vec3{0.5, 0, 0.5}, 6, uuid.New())
	sched.Run(2)
	m.Close()
	if !f.Finished() || len(pl.Fake) != 0 {
		t.Error("Close left the meteor visible")
	}
	sched.Run(5)
	if f.Impacts != 0 || w.SetCalls != 0 {
		t.Error("closed meteor still landed")
	}
}
