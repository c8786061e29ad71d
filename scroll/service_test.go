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

package scroll_test

import (
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"FlowyScrolls/scroll"
	"FlowyScrolls/scroll/scrolltest"
)

func TestColorize(t *testing.T) {
	tests := map[string]string{
		"plain":         "plain",
		"&cred &rreset": "§cred §rreset",
		"a & b":         "a & b",
		"&zno":          "&zno",
		"trailing&":     "trailing&",
		"&5Сувої":       "§5Сувої",
	}
	for in, want := range tests {
		if got := scroll.Colorize(in); got != want {
			t.Errorf("Colorize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServiceText(t *testing.T) {
	svc := scrolltest.Service(t, scrolltest.NewWorld(64), scrolltest.NewScheduler(), `
messages:
  prefix: "[S] "
  too-far: "&c{distance} > {max}"
`)
	if got := svc.Text("too-far", "distance", "70.5", "max", "50"); got != "[S] §c70.5 > 50" {
		t.Errorf("text %q", got)
	}
	// невідомий ключ показуємо як є, щоб помилку в конфігу було видно
	if got := svc.Text("no-such-message"); got != "[S] no-such-message" {
		t.Errorf("text %q", got)
	}
}

func TestServiceChecks(t *testing.T) {
	w := scrolltest.NewWorld(64)
	svc := scrolltest.Service(t, w, scrolltest.NewScheduler(), "")
	now := time.Unix(0, 0)
	svc.Cooldowns = scroll.NewCooldowns(func() time.Time { return now })
	svc.Regions = &scroll.ZoneRegions{Zones: []scroll.Zone{{Min: scroll.BlockPos{0, 0, 0}, Max: scroll.BlockPos{9, 255, 9}}}}
	p := w.AddPlayer("p", mgl64.Vec3{0.5, 65, 0.5}, 0, 0)

	svc.Cooldowns.Start(p.ID, scroll.Meteor)
	now = now.Add(4500 * time.Millisecond)
	if svc.CheckCooldown(p, scroll.Meteor, 10*time.Second) {
		t.Fatal("cooldown ignored")
	}
	if !strings.Contains(p.Messages[0], "5.5") || len(p.Heard) != 1 {
		t.Errorf("cooldown message %q, %d sounds", p.Messages[0], len(p.Heard))
	}

	if svc.CheckRegion(p, scroll.Exit, scroll.BlockPos{5, 64, 5}) {
		t.Error("protected zone allowed")
	}
	if !svc.CheckRegion(p, scroll.Exit, scroll.BlockPos{50, 64, 5}) {
		t.Error("free land denied")
	}
}

func TestServiceEffects(t *testing.T) {
	w := scrolltest.NewWorld(64)
	svc := scrolltest.Service(t, w, scrolltest.NewScheduler(), "")
	svc.Particle(scroll.Particle{Name: "minecraft:flame", Count: 0}, mgl64.Vec3{})
	svc.Sound(scroll.Sound{Name: "minecraft:entity.generic.explode"}, mgl64.Vec3{})
	if len(w.Particles) != 0 || len(w.Sounds) != 0 {
		t.Error("muted effects reached the world")
	}
	svc.Particle(scroll.Particle{Name: "minecraft:flame", Count: 3}, mgl64.Vec3{})
	svc.Sound(scroll.Sound{Name: "minecraft:entity.generic.explode", Volume: 1}, mgl64.Vec3{})
	if len(w.Particles) != 1 || len(w.Sounds) != 1 {
		t.Error("effects lost")
	}

	it := scrolltest.NewItem(scroll.Meteor, 1)
	svc.Consume(it)
	svc.Consume(it)
	svc.Consume(nil)
	if it.N != 0 {
		t.Errorf("count %d", it.N)
	}
}

func TestServiceProtect(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg, err := scroll.ParseConfig(zap.NewNop(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	svc := scroll.NewService(zap.New(core), cfg, scrolltest.NewWorld(64), scrolltest.NewScheduler(), nil)

	cleaned := 0
	svc.Protect("ok", func() {}, func() { cleaned++ })
	svc.Protect("boom", func() { panic("boom") }, func() { cleaned++ })
	if cleaned != 1 {
		t.Errorf("cleanup ran %d times", cleaned)
	}
	if logs.FilterMessage("Scroll task failed, cancelling").Len() != 1 {
		t.Error("panic not logged")
	}
}
