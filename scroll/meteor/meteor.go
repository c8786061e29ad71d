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

// Package meteor реалізує сувій метеорита:
// гравець дивиться на землю, клікає правою кнопкою, і з неба падає камінь.
package meteor

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
)

// Scroll - сувій метеорита
type Scroll struct {
	svc      *scroll.Service
	log      *zap.Logger
	Settings Settings

	rand    *rand.Rand
	flights map[*Flight]struct{}
	craters map[*Crater]struct{}
}

func New(svc *scroll.Service) *Scroll {
	return &Scroll{
		svc:      svc,
		log:      svc.Log.Named("meteor"),
		Settings: LoadSettings(svc.Config.Sub("meteor")),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		flights:  make(map[*Flight]struct{}),
		craters:  make(map[*Crater]struct{}),
	}
}

func (s *Scroll) Type() scroll.Type { return scroll.Meteor }

// Interact - метеорит кличеться тільки правою кнопкою
func (s *Scroll) Interact(p scroll.Player, it scroll.Item, click scroll.Click) {
	if click != scroll.RightClick {
		return
	}
	s.Cast(p, it)
}

// Cast перевіряє кулдаун, ціль і регіон, а тоді запускає метеорит
func (s *Scroll) Cast(p scroll.Player, it scroll.Item) *Flight {
	st := &s.Settings
	if !s.svc.CheckCooldown(p, scroll.Meteor, st.Cooldown) {
		return nil
	}
	eye := p.EyePosition()
	look := scroll.Look(p)
	hit, ok := scroll.TraceWorld(s.svc.World, eye, eye.Add(look.Mul(st.MaxTargetDistance)), scroll.Material.Solid)
	if !ok {
		s.svc.Deny(p, "no-target")
		return nil
	}
	if !s.svc.CheckRegion(p, scroll.Meteor, hit.Pos) {
		return nil
	}

	size := st.SizeMin + s.rand.Intn(st.SizeMax-st.SizeMin+1)
	// Метеорит з'являється високо над ціллю, трохи ближче до гравця,
	// тож гравець бачить як він летить від нього до цілі
	horizontal := mgl64.Vec3{look[0], 0, look[2]}
	if horizontal.Len() < 1e-6 {
		horizontal = mgl64.Vec3{0, 0, 1}
	}
	start := hit.Point.Add(mgl64.Vec3{0, st.SpawnHeight, 0}).Sub(horizontal.Normalize().Mul(st.SpawnDistance))

	f := s.Launch(start, hit.Point, size, uuid.New())
	s.svc.Cooldowns.Start(p.UUID(), scroll.Meteor)
	s.svc.Consume(it)
	s.svc.Send(p, "meteor-cast", "size", strconv.Itoa(f.P.Size))
	s.svc.Sound(st.CastSound, eye)
	s.log.Debug("Meteor launched",
		zap.String("player", p.Name()),
		zap.Stringer("seed", f.P.Seed),
		zap.Int("size", f.P.Size),
		zap.String("shape", f.P.Shape.Archetype.String()),
	)
	return f
}

// Launch запускає метеорит без жодних перевірок
func (s *Scroll) Launch(start, target mgl64.Vec3, size int, seed uuid.UUID) *Flight {
	p := NewProjectile(start, target, size, seed, s.Settings.Palette)
	var f *Flight
	f = NewFlight(s.svc, s.Settings, p, s.track, func() { delete(s.flights, f) })
	s.flights[f] = struct{}{}
	f.Start()
	return f
}

func (s *Scroll) track(c *Crater) {
	s.craters[c] = struct{}{}
	c.OnDone(func() { delete(s.craters, c) })
}

// Active повертає кількість метеоритів у польоті і кратерів, що ще копаються
func (s *Scroll) Active() (flights, craters int) {
	return len(s.flights), len(s.craters)
}

// Close скасовує всі польоти і розкопки, прибираючи фантомні блоки
func (s *Scroll) Close() {
	for f := range s.flights {
		f.Cancel()
	}
	for c := range s.craters {
		c.Cancel()
	}
}
