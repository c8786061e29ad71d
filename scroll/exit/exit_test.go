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

package exit

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"FlowyScrolls/scroll"
	"FlowyScrolls/scroll/scrolltest"
)

func lastMessage(p *scrolltest.Player) string {
	if len(p.Messages) == 0 {
		return ""
	}
	return p.Messages[len(p.Messages)-1]
}

func TestBindAndReturn(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, "exit:\n  cast-time: 1\n")
	e := New(svc)
	p := w.AddPlayer("p", mgl64.Vec3{10.5, 65, -3.5}, 90, 10)
	p.Item = scrolltest.NewItem(scroll.Exit, 2)

	e.Interact(p, p.Item, scroll.LeftClick)
	if !strings.Contains(lastMessage(p), "10 65 -4") {
		t.Errorf("bind message %q", lastMessage(p))
	}
	loc, err := scroll.LoadLocation(p.Item)
	if err != nil {
		t.Fatal(err)
	}
	if loc.X != 10.5 || loc.Z != -3.5 || loc.Yaw != 90 || loc.World != w.Name() {
		t.Errorf("stored %+v", loc)
	}

	p.Pos = mgl64.Vec3{200, 65, 200}
	c := e.Cast(p, p.Item)
	if c == nil {
		t.Fatalf("cast rejected: %v", p.Messages)
	}
	sched.Run(e.Settings.CastTicks - 1)
	if c.Done {
		t.Fatal("teleported too early")
	}
	sched.Advance()
	if !c.Done || p.Pos != (mgl64.Vec3{10.5, 65, -3.5}) {
		t.Fatalf("player at %v after the cast", p.Pos)
	}
	if p.Item.N != 1 {
		t.Errorf("%d scrolls left, want 1", p.Item.N)
	}
	if svc.Casts.Len() != 0 || sched.Pending() != 0 {
		t.Error("cast left state behind")
	}
	// точка лишається в сувої для наступного разу
	if _, err := scroll.LoadLocation(p.Item); err != nil {
		t.Errorf("location lost: %v", err)
	}
}

func TestUnbound(t *testing.T) {
	w := scrolltest.NewWorld(64)
	e := New(scrolltest.Service(t, w, scrolltest.NewScheduler(), ""))
	p := w.AddPlayer("p", mgl64.Vec3{0, 65, 0}, 0, 0)
	p.Item = scrolltest.NewItem(scroll.Exit, 1)
	if e.Cast(p, p.Item) != nil {
		t.Fatal("unbound scroll teleported")
	}
	if !strings.Contains(lastMessage(p), "не прив'язаний") {
		t.Errorf("unexpected message %q", lastMessage(p))
	}
	if p.Item.N != 1 {
		t.Error("scroll consumed")
	}
}

func TestInvalidAndOtherWorld(t *testing.T) {
	w := scrolltest.NewWorld(64)
	e := New(scrolltest.Service(t, w, scrolltest.NewScheduler(), ""))
	p := w.AddPlayer("p", mgl64.Vec3{0, 65, 0}, 0, 0)

	p.Item = scrolltest.NewItem(scroll.Exit, 1)
	p.Item.SetTag(scroll.TagLocation, []byte{0x0a, 0xff})
	if e.Cast(p, p.Item) != nil || !strings.Contains(lastMessage(p), "пошкоджений") {
		t.Errorf("broken record: %q", lastMessage(p))
	}

	p.Item = scrolltest.NewItem(scroll.Exit, 1)
	if err := scroll.SaveLocation(p.Item, scroll.Location{World: "minecraft:the_nether", X: 1}); err != nil {
		t.Fatal(err)
	}
	if e.Cast(p, p.Item) != nil || !strings.Contains(lastMessage(p), "іншому світі") {
		t.Errorf("other world: %q", lastMessage(p))
	}
}

func TestMovingCancels(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, "")
	e := New(svc)
	p := w.AddPlayer("p", mgl64.Vec3{0.5, 65, 0.5}, 0, 0)
	p.Item = scrolltest.NewItem(scroll.Exit, 1)
	e.Bind(p, p.Item)
	p.Pos = mgl64.Vec3{50, 65, 50}

	c := e.Cast(p, p.Item)
	sched.Run(5)
	p.Pos = p.Pos.Add(mgl64.Vec3{0, 0, 1})
	sched.Run(e.Settings.CastTicks)
	if c.Done || p.Teleports != 0 {
		t.Fatal("moving player was teleported")
	}
	if !strings.Contains(lastMessage(p), "зрушили") {
		t.Errorf("unexpected message %q", lastMessage(p))
	}
	if svc.Cooldowns.Remaining(p.ID, scroll.Exit, e.Settings.Cooldown) != 0 {
		t.Error("cooldown not refunded")
	}
	if svc.Casts.Len() != 0 || sched.Pending() != 0 {
		t.Error("cancelled cast left state behind")
	}
}

func TestSecondCastRejected(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	e := New(scrolltest.Service(t, w, sched, ""))
	p := w.AddPlayer("p", mgl64.Vec3{0.5, 65, 0.5}, 0, 0)
	p.Item = scrolltest.NewItem(scroll.Exit, 3)
	e.Bind(p, p.Item)

	c := e.Cast(p, p.Item)
	sched.Run(3)
	if e.Cast(p, p.Item) != nil {
		t.Fatal("second cast accepted")
	}
	sched.Advance()
	if c.Tick != 4 {
		t.Errorf("first cast tick %d, want 4", c.Tick)
	}
	e.Close()
	if sched.Pending() != 0 {
		t.Error("Close left the channel running")
	}
}
