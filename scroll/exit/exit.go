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

// Package exit - сувій виходу.
// Лівий клік записує поточну точку прямо в предмет, правий - повертає туди,
// якщо гравець простоїть на місці весь час касту.
package exit

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
)

type Settings struct {
	Cooldown      time.Duration
	CastTicks     int
	MoveTolerance float64

	Channel, Arrive          scroll.Particle
	BindSound, TeleportSound scroll.Sound
}

func LoadSettings(s scroll.Section) Settings {
	st := Settings{
		Cooldown:      s.Duration("cooldown", time.Minute),
		CastTicks:     s.Ticks("cast-time", 60),
		MoveTolerance: s.Float("move-tolerance", 0.5),

		Channel: s.Particle("channel", scroll.Particle{Name: "minecraft:portal", Count: 20, Spread: 0.5, Speed: 0.3}),
		Arrive:  s.Particle("arrive", scroll.Particle{Name: "minecraft:reverse_portal", Count: 40, Spread: 0.6, Speed: 0.1}),

		BindSound:     s.Sound("bind-sound", scroll.Sound{Name: "minecraft:block.enchantment_table.use", Volume: 1, Pitch: 1.2}),
		TeleportSound: s.Sound("teleport-sound", scroll.Sound{Name: "minecraft:entity.enderman.teleport", Volume: 1, Pitch: 1}),
	}
	if st.CastTicks < 1 {
		st.CastTicks = 1
	}
	return st
}

type Scroll struct {
	svc      *scroll.Service
	log      *zap.Logger
	Settings Settings
}

func New(svc *scroll.Service) *Scroll {
	return &Scroll{
		svc:      svc,
		log:      svc.Log.Named("exit"),
		Settings: LoadSettings(svc.Config.Sub("exit")),
	}
}

func (s *Scroll) Type() scroll.Type { return scroll.Exit }

func (s *Scroll) Interact(p scroll.Player, it scroll.Item, click scroll.Click) {
	if click == scroll.LeftClick {
		s.Bind(p, it)
		return
	}
	s.Cast(p, it)
}

// Bind записує поточне місце гравця в сувій
func (s *Scroll) Bind(p scroll.Player, it scroll.Item) bool {
	pos := p.Position()
	if !s.svc.CheckRegion(p, scroll.Exit, scroll.BlockPosFromVec3(pos)) {
		return false
	}
	yaw, pitch := p.Rotation()
	loc := scroll.Location{
		World: s.svc.World.Name(),
		X:     pos[0],
		Y:     pos[1],
		Z:     pos[2],
		Yaw:   float32(yaw),
		Pitch: float32(pitch),
	}
	if err := scroll.SaveLocation(it, loc); err != nil {
		s.log.Warn("Failed to bind exit scroll", zap.String("player", p.Name()), zap.Error(err))
		s.svc.Deny(p, "exit-invalid")
		return false
	}
	b := scroll.BlockPosFromVec3(pos)
	s.svc.Send(p, "exit-bound",
		"x", strconv.Itoa(b.X()),
		"y", strconv.Itoa(b.Y()),
		"z", strconv.Itoa(b.Z()),
	)
	p.PlaySound(s.Settings.BindSound)
	return true
}

// Cast починає повернення до збереженої точки
func (s *Scroll) Cast(p scroll.Player, it scroll.Item) *Channel {
	id := p.UUID()
	if s.svc.Casts.Active(id, scroll.Exit) {
		s.svc.Deny(p, "already-casting")
		return nil
	}
	loc, err := scroll.LoadLocation(it)
	switch {
	case errors.Is(err, scroll.ErrNoLocation):
		s.svc.Deny(p, "exit-unbound")
		return nil
	case err != nil:
		s.log.Debug("Broken exit scroll", zap.String("player", p.Name()), zap.Error(err))
		s.svc.Deny(p, "exit-invalid")
		return nil
	case loc.World != s.svc.World.Name():
		s.svc.Deny(p, "exit-other-world")
		return nil
	}
	if !s.svc.CheckCooldown(p, scroll.Exit, s.Settings.Cooldown) {
		return nil
	}
	dest := mgl64.Vec3{loc.X, loc.Y, loc.Z}
	if !s.svc.CheckRegion(p, scroll.Exit, scroll.BlockPosFromVec3(dest)) {
		return nil
	}

	c := &Channel{svc: s.svc, st: s.Settings, Caster: p, Dest: dest, origin: p.Position()}
	c.onEnd = func() { s.svc.Casts.End(id, scroll.Exit, c) }
	s.svc.Casts.Begin(id, scroll.Exit, c)
	s.svc.Cooldowns.Start(id, scroll.Exit)
	s.svc.Consume(it)
	s.svc.Send(p, "cast-start")
	c.task = s.svc.Scheduler.RunTimer(1, 1, func(scroll.Task) {
		s.svc.Protect("exit.channel", c.Step, c.Cancel)
	})
	return c
}

func (s *Scroll) Close() {
	s.svc.Casts.CancelAll(scroll.Exit)
}

// Channel - гравець стоїть і чекає телепорту
type Channel struct {
	svc    *scroll.Service
	st     Settings
	Caster scroll.Player
	Dest   mgl64.Vec3
	Tick   int
	Done   bool // телепорт відбувся

	origin mgl64.Vec3
	task   scroll.Task
	onEnd  func()
	over   bool
}

// Step - один тік очікування
func (c *Channel) Step() {
	if c.over {
		return
	}
	if !c.Caster.Online() || !c.Caster.Valid() {
		c.Cancel()
		return
	}
	if c.Caster.Position().Sub(c.origin).Len() > c.st.MoveTolerance {
		c.Cancel()
		c.svc.Cooldowns.Reset(c.Caster.UUID(), scroll.Exit)
		c.svc.Deny(c.Caster, "cast-moved")
		return
	}
	c.Tick++
	if c.Tick%4 == 1 {
		c.svc.Particle(c.st.Channel, c.Caster.Position().Add(mgl64.Vec3{0, 1, 0}))
	}
	if c.Tick < c.st.CastTicks {
		return
	}
	c.Caster.Teleport(c.Dest)
	c.Done = true
	c.svc.Particle(c.st.Arrive, c.Dest.Add(mgl64.Vec3{0, 1, 0}))
	c.svc.Sound(c.st.TeleportSound, c.Dest)
	c.svc.Send(c.Caster, "exit-teleport")
	c.Cancel()
}

// Cancel зупиняє очікування
func (c *Channel) Cancel() {
	if c.over {
		return
	}
	c.over = true
	if c.task != nil {
		c.task.Cancel()
	}
	if c.onEnd != nil {
		c.onEnd()
	}
}
