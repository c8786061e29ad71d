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

package scroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestCooldowns(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	cd := NewCooldowns(c.now)
	a, b := uuid.New(), uuid.New()

	if cd.Remaining(a, Meteor, time.Minute) != 0 {
		t.Fatal("fresh player is on cooldown")
	}
	cd.Start(a, Meteor)
	c.t = c.t.Add(20 * time.Second)
	if left := cd.Remaining(a, Meteor, time.Minute); left != 40*time.Second {
		t.Errorf("remaining %v, want 40s", left)
	}
	// кулдауни незалежні для гравців і типів
	if cd.Remaining(b, Meteor, time.Minute) != 0 || cd.Remaining(a, Exit, time.Minute) != 0 {
		t.Error("cooldown leaked to another key")
	}
	c.t = c.t.Add(40 * time.Second)
	if cd.Remaining(a, Meteor, time.Minute) != 0 {
		t.Error("cooldown did not expire")
	}
	if len(cd.last) != 0 {
		t.Error("expired entry kept")
	}

	cd.Start(a, Exit)
	cd.Reset(a, Exit)
	if cd.Remaining(a, Exit, time.Hour) != 0 {
		t.Error("reset did not clear the cooldown")
	}
}

type fakeCast struct{ cancelled int }

func (f *fakeCast) Cancel() { f.cancelled++ }

func TestCasts(t *testing.T) {
	c := NewCasts()
	a, b := uuid.New(), uuid.New()
	first, second := &fakeCast{}, &fakeCast{}

	if !c.Begin(a, Gravitation, first) {
		t.Fatal("first cast rejected")
	}
	if c.Begin(a, Gravitation, second) {
		t.Fatal("second cast of the same type accepted")
	}
	if !c.Begin(a, Exit, second) || !c.Begin(b, Gravitation, second) {
		t.Fatal("independent casts rejected")
	}
	if c.Len() != 3 {
		t.Errorf("len %d", c.Len())
	}

	// End від чужого касту нічого не знімає
	c.End(a, Gravitation, second)
	if !c.Active(a, Gravitation) {
		t.Error("stale End removed a live cast")
	}

	c.CancelAll(Gravitation)
	if first.cancelled != 1 || second.cancelled != 1 {
		t.Errorf("cancel counts %d %d", first.cancelled, second.cancelled)
	}
	if c.Active(a, Gravitation) || c.Active(b, Gravitation) || !c.Active(a, Exit) {
		t.Error("CancelAll touched the wrong casts")
	}
}
