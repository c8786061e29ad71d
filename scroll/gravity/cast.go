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

// Йоу, чат! Каст гравітації - це маленька машина станів:
//
//	Charging -> Pulling -> Finished
//	    \           \
//	     +-----------+--> Cancelled
//
// Поки йде Charging, кожен тік росте прогрес і малюється мішень.
// Потім притягуємо істот (або самого гравця) і, для себе, показуємо вихор.
// Кожен перехід в Cancelled прибирає всі підзадачі одним шляхом.

package gravity

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
)

// Mode - кого притягуємо
type Mode int

const (
	Enemies Mode = iota // мобів навколо мішені
	Self                // самого гравця
)

func (m Mode) String() string {
	if m == Self {
		return "self"
	}
	return "enemies"
}

// Phase - стан касту
type Phase int

const (
	Charging Phase = iota
	Pulling
	Finished
	Cancelled
)

var phaseNames = [...]string{"charging", "pulling", "finished", "cancelled"}

func (p Phase) String() string { return phaseNames[p] }

const (
	gridPeriod   = 2  // мішень малюється раз на два тіки
	chargePeriod = 20 // звук заряду раз на секунду
)

// Cast - один каст гравітації
type Cast struct {
	svc    *scroll.Service
	st     Settings
	log    *zap.Logger
	Caster scroll.Player
	Mode   Mode
	Target TargetInfo

	origin mgl64.Vec3 // де стояв гравець на початку
	Phase  Phase
	Tick   int // тіків заряду
	Pulled []scroll.Living
	Frames int // скільки разів намальована мішень

	pullTick   int
	vortexTick int
	snapped    map[int32]bool

	main, grid, pull, vortex scroll.Task
	onEnd                    func()
}

func newCast(svc *scroll.Service, st Settings, log *zap.Logger, p scroll.Player, mode Mode, target TargetInfo) *Cast {
	return &Cast{
		svc:     svc,
		st:      st,
		log:     log,
		Caster:  p,
		Mode:    mode,
		Target:  target,
		origin:  p.Position(),
		snapped: make(map[int32]bool),
	}
}

// Progress - від 0 до 1 за час заряду
func (c *Cast) Progress() float64 {
	return math.Min(1, float64(c.Tick)/float64(c.st.CastTicks))
}

// start запускає основну задачу і підзадачу мішені
func (c *Cast) start() {
	c.main = c.svc.Scheduler.RunTimer(1, 1, func(scroll.Task) {
		c.svc.Protect("gravity.cast", c.Step, c.Cancel)
	})
	c.grid = c.svc.Scheduler.RunTimer(1, gridPeriod, func(scroll.Task) {
		c.svc.Protect("gravity.grid", c.Render, c.Cancel)
	})
}

// Step - один тік заряду. Можна викликати вручну в тестах
func (c *Cast) Step() {
	if c.Phase != Charging {
		return
	}
	if !c.Caster.Online() || !c.Caster.Valid() {
		c.Cancel()
		return
	}
	if c.Mode == Enemies && c.Caster.Position().Sub(c.origin).Len() > c.st.MoveTolerance {
		c.moved()
		return
	}
	c.Tick++
	if c.Tick%chargePeriod == 1 {
		c.svc.Sound(c.st.ChargeSound, c.Target.Center())
	}
	if c.Tick >= c.st.CastTicks {
		c.release()
	}
}

// Render малює мішень для поточного прогресу
func (c *Cast) Render() {
	if c.Phase != Charging {
		return
	}
	c.Frames++
	for _, pt := range Frame(c.Target, c.st.Grid, c.Progress()) {
		switch pt.Part {
		case RingPart:
			c.svc.Particle(c.st.Ring, pt.Pos)
		case LinePart:
			c.svc.Particle(c.st.Line, pt.Pos)
		case CorePart:
			c.svc.Particle(c.st.Core, pt.Pos)
		case CrossPart:
			c.svc.Particle(c.st.Cross, pt.Pos)
		}
	}
}

// moved - гравець зрушив з місця: каст розвіюється, кулдаун повертається
func (c *Cast) moved() {
	c.Cancel()
	c.svc.Cooldowns.Reset(c.Caster.UUID(), scroll.Gravitation)
	c.svc.Deny(c.Caster, "cast-moved")
}

// release - заряд закінчився, починаємо тягнути
func (c *Cast) release() {
	c.stopCharge()
	c.Phase = Pulling
	dest := c.Target.Destination()
	c.svc.Sound(c.st.ReleaseSound, dest)

	if c.Mode == Self {
		c.Pulled = []scroll.Living{c.Caster}
		c.svc.Send(c.Caster, "pull-self")
	} else {
		for _, e := range c.svc.World.LivingEntities(dest, c.st.PullRadius) {
			if e.IsPlayer() || !e.Valid() {
				continue
			}
			c.Pulled = append(c.Pulled, e)
		}
		c.svc.Send(c.Caster, "pull-enemies", "count", strconv.Itoa(len(c.Pulled)))
	}
	c.log.Debug("Gravitation released",
		zap.String("player", c.Caster.Name()),
		zap.Stringer("mode", c.Mode),
		zap.Int("pulled", len(c.Pulled)),
	)
	c.pull = c.svc.Scheduler.RunTimer(1, 1, func(scroll.Task) {
		c.svc.Protect("gravity.pull", c.pullStep, c.Cancel)
	})
}

// pullStep тягне всіх на один тік ближче до мішені
func (c *Cast) pullStep() {
	if c.Phase != Pulling {
		return
	}
	c.pullTick++
	dest := c.Target.Destination()
	left := 0
	for _, e := range c.Pulled {
		id := e.EntityID()
		if c.snapped[id] || !e.Valid() {
			continue
		}
		diff := dest.Sub(e.Position())
		d := diff.Len()
		if d <= c.st.SnapDistance {
			e.SetVelocity(mgl64.Vec3{})
			e.Teleport(dest)
			c.snapped[id] = true
			continue
		}
		e.SetVelocity(diff.Mul(math.Min(c.st.PullStrength, d) / d))
		left++
	}
	if left == 0 || c.pullTick >= c.st.PullTicks {
		c.finish()
	}
}

// finish - тягнути вже нікого. Гравця в кінці ставимо точно в мішень і крутимо вихор
func (c *Cast) finish() {
	if c.pull != nil {
		c.pull.Cancel()
	}
	c.Phase = Finished
	if c.Mode == Self && c.Caster.Valid() {
		c.Caster.Teleport(c.Target.Destination())
		c.vortex = c.svc.Scheduler.RunTimer(1, 1, func(scroll.Task) {
			c.svc.Protect("gravity.vortex", c.vortexStep, c.Cancel)
		})
		return
	}
	c.end()
}

// vortexStep - спіраль частинок навколо точки прибуття
func (c *Cast) vortexStep() {
	c.vortexTick++
	if c.vortexTick > c.st.VortexTicks {
		c.vortex.Cancel()
		c.end()
		return
	}
	dest := c.Target.Destination()
	angle := float64(c.vortexTick) * 0.6
	height := float64(c.vortexTick) / float64(c.st.VortexTicks) * 2
	for k := 0; k < 3; k++ {
		a := angle + float64(k)*2*math.Pi/3
		r := 1.2 * (1 - height/2.5)
		s, co := math.Sincos(a)
		c.svc.Particle(c.st.Vortex, dest.Add(mgl64.Vec3{r * co, height, r * s}))
	}
}

// Cancel зупиняє все, що ще працює. Можна викликати будь-коли і скільки завгодно разів
func (c *Cast) Cancel() {
	if c.Phase == Cancelled {
		return
	}
	c.stopCharge()
	for _, t := range []scroll.Task{c.pull, c.vortex} {
		if t != nil {
			t.Cancel()
		}
	}
	if c.Phase != Finished {
		c.Phase = Cancelled
	}
	c.end()
}

func (c *Cast) stopCharge() {
	if c.main != nil {
		c.main.Cancel()
	}
	if c.grid != nil {
		c.grid.Cancel()
	}
}

func (c *Cast) end() {
	if c.onEnd != nil {
		end := c.onEnd
		c.onEnd = nil
		end()
	}
}
