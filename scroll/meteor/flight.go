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
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
)

const trailSoundPeriod = 5 // тіків між звуками шлейфу

// Flight - задача, яка кожен тік рухає метеорит і малює його гравцям
type Flight struct {
	svc     *scroll.Service
	st      Settings
	P       *Projectile
	Tracker *PhantomTracker
	Impacts int // скільки разів спрацював удар, завжди 0 або 1

	task     scroll.Task
	finished bool
	onImpact func(*Crater)
	done     func()
}

// NewFlight готує політ. onImpact отримує кратер до його запуску,
// done викликається один раз коли політ закінчився будь-яким способом
func NewFlight(svc *scroll.Service, st Settings, p *Projectile, onImpact func(*Crater), done func()) *Flight {
	p.MaxTicks = st.MaxTicks
	return &Flight{
		svc:      svc,
		st:       st,
		P:        p,
		Tracker:  NewPhantomTracker(svc.World, st.ViewDistance),
		onImpact: onImpact,
		done:     done,
	}
}

// Start ставить політ у планувальник
func (f *Flight) Start() {
	f.task = f.svc.Scheduler.RunTimer(1, 1, func(scroll.Task) {
		f.svc.Protect("meteor.flight", f.tick, f.abort)
	})
}

func (f *Flight) tick() {
	if f.finished {
		return
	}
	switch f.P.Advance(f.svc.World) {
	case Skipped:
		return
	case Impact:
		f.impact()
		return
	}
	f.svc.Particle(f.st.Trail, f.P.Pos)
	f.svc.Particle(f.st.Smoke, f.P.Pos)
	if f.P.Ticks%trailSoundPeriod == 1 {
		f.svc.Sound(f.st.TrailSound, f.P.Pos)
	}
	f.Tracker.Render(f.P.Pos, f.P.Blocks())
}

// impact зупиняє політ, в тому ж тіку прибирає фантомні блоки і запускає кратер
func (f *Flight) impact() {
	if f.finished {
		return
	}
	f.stop()
	f.Impacts++
	f.svc.Log.Debug("Meteor landed",
		zap.Stringer("seed", f.P.Seed),
		zap.Int("ticks", f.P.Ticks),
	)
	c := NewCrater(f.svc, f.st, f.P, nil)
	if f.onImpact != nil {
		f.onImpact(c)
	}
	c.Start()
}

// Cancel зупиняє політ без удару
func (f *Flight) Cancel() { f.abort() }

func (f *Flight) abort() {
	if f.finished {
		return
	}
	f.P.Impacted = true
	f.stop()
}

func (f *Flight) stop() {
	f.finished = true
	if f.task != nil {
		f.task.Cancel()
	}
	f.Tracker.Clear()
	if f.done != nil {
		done := f.done
		f.done = nil
		done()
	}
}

// Finished повертає true коли політ більше не тікає
func (f *Flight) Finished() bool { return f.finished }
