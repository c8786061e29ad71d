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

// Package gravity - сувій гравітації.
// Права кнопка притягує мобів до мішені, ліва - самого гравця.
package gravity

import (
	"fmt"

	"go.uber.org/zap"

	"FlowyScrolls/scroll"
)

type Scroll struct {
	svc      *scroll.Service
	log      *zap.Logger
	Settings Settings
}

func New(svc *scroll.Service) *Scroll {
	return &Scroll{
		svc:      svc,
		log:      svc.Log.Named("gravity"),
		Settings: LoadSettings(svc.Config.Sub("gravitation")),
	}
}

func (s *Scroll) Type() scroll.Type { return scroll.Gravitation }

func (s *Scroll) Interact(p scroll.Player, it scroll.Item, click scroll.Click) {
	mode := Enemies
	if click == scroll.LeftClick {
		mode = Self
	}
	s.Cast(p, it, mode)
}

// Cast перевіряє всі умови і починає каст. Повертає nil якщо гравцю відмовлено
func (s *Scroll) Cast(p scroll.Player, it scroll.Item, mode Mode) *Cast {
	st := &s.Settings
	id := p.UUID()
	if s.svc.Casts.Active(id, scroll.Gravitation) {
		s.svc.Deny(p, "already-casting")
		return nil
	}
	if !s.svc.CheckCooldown(p, scroll.Gravitation, st.Cooldown) {
		return nil
	}
	target, ok := Resolve(s.svc.World, p, st.MaxTargetDistance)
	if !ok {
		s.svc.Deny(p, "no-target")
		return nil
	}
	if mode == Self {
		if d := p.Position().Sub(target.Destination()).Len(); d > st.MaxRange {
			s.svc.Deny(p, "too-far",
				"distance", fmt.Sprintf("%.1f", d),
				"max", fmt.Sprintf("%.0f", st.MaxRange),
			)
			return nil
		}
	}
	if !s.svc.CheckRegion(p, scroll.Gravitation, target.Block) {
		return nil
	}

	c := newCast(s.svc, s.Settings, s.log, p, mode, target)
	c.onEnd = func() { s.svc.Casts.End(id, scroll.Gravitation, c) }
	s.svc.Casts.Begin(id, scroll.Gravitation, c)
	s.svc.Cooldowns.Start(id, scroll.Gravitation)
	s.svc.Consume(it)
	s.svc.Send(p, "cast-start")
	s.log.Debug("Gravitation cast started",
		zap.String("player", p.Name()),
		zap.Stringer("mode", mode),
		zap.Stringer("face", target.Face),
	)
	c.start()
	return c
}

// Close скасовує всі касти гравітації
func (s *Scroll) Close() {
	s.svc.Casts.CancelAll(scroll.Gravitation)
}
