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

// Йоу, чат! Бабах! Метеорит влучив, і тепер копаємо кратер.
//
// Порядок такий:
//  1. звук і спалах частинок
//  2. ударна хвиля відкидає і ранить усіх поруч
//  3. випалюємо траву і квіти навколо
//  4. свердлимо кратер шар за шаром, по одному шару за тік,
//     кожен шар - коло, перпендикулярне до напрямку польоту
//  5. коли дійшли до дна - обкладаємо все кіркою і кладемо залишок метеорита
//  6. через 3 секунди гасимо зайвий вогонь і латаємо ямки на краях
//
// Бедрок і подібні блоки ми не чіпаємо ніколи.

package meteor

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
)

const (
	angleStep = 0.35 // на скільки радіан повертається площина кожного шару
	layerStep = 0.5  // на скільки блоків углиб зсувається кожен шар
)

// Crater - стан розкопок після одного удару
type Crater struct {
	svc *scroll.Service
	st  Settings
	r   *rand.Rand

	Center     mgl64.Vec3
	Dir        mgl64.Vec3
	Size       int
	Depth      int // скільки шарів вже висвердлено
	TotalDepth int
	Angle      float64
	Complete   bool

	right, up mgl64.Vec3
	maxRadius float64

	drill, cleanup scroll.Task
	done           func()
}

// TotalDepth повертає кількість шарів кратера для розміру метеорита
func TotalDepth(size int) int { return size*2 + 8 }

// NewCrater готує розкопки. done викликається один раз, коли все завершилось
func NewCrater(svc *scroll.Service, st Settings, p *Projectile, done func()) *Crater {
	right, up := scroll.Basis(p.Dir)
	return &Crater{
		svc:        svc,
		st:         st,
		r:          rand.New(rand.NewSource(seedValue(p.Seed) + 1)),
		Center:     p.Pos,
		Dir:        p.Dir,
		Size:       p.Size,
		TotalDepth: TotalDepth(p.Size),
		right:      right,
		up:         up,
		maxRadius:  float64(p.Size)*0.9 + 2,
		done:       done,
	}
}

// Start запускає всю послідовність удару
func (c *Crater) Start() {
	c.svc.Log.Debug("Meteor impact",
		zap.Int("size", c.Size),
		zap.Float64("x", c.Center[0]),
		zap.Float64("y", c.Center[1]),
		zap.Float64("z", c.Center[2]),
	)
	c.svc.Sound(c.st.ImpactSound, c.Center)
	c.svc.Particle(c.st.Impact, c.Center)
	c.svc.Particle(c.st.ImpactLava, c.Center)

	c.shockwave()
	c.clearVegetation()

	c.drill = c.svc.Scheduler.RunTimer(1, 1, func(scroll.Task) {
		c.svc.Protect("meteor.drill", c.step, c.Cancel)
	})
}

// shockwave відкидає всіх живих від центру.
// Чим ближче до центру, тим сильніше штовхає і боляче б'є
func (c *Crater) shockwave() {
	radius := float64(c.Size) * 2.5
	for _, e := range c.svc.World.LivingEntities(c.Center, radius) {
		if !e.Valid() {
			continue
		}
		diff := e.Position().Sub(c.Center)
		d := diff.Len()
		if d > radius {
			continue
		}
		dir := mgl64.Vec3{0, 1, 0}
		if d > 1e-6 {
			dir = diff.Mul(1 / d)
		}
		falloff := 1 - d/radius
		strength := falloff*(float64(c.Size)/3.5) + 1.5
		e.SetVelocity(dir.Mul(strength).Add(mgl64.Vec3{0, c.st.KnockbackUp, 0}))
		e.Damage(math.Max(1, c.st.Damage*falloff))
	}
}

// clearVegetation прибирає рослини і крихкі блоки в кулі радіусом size*3
func (c *Crater) clearVegetation() {
	radius := float64(c.Size) * 3
	c.sphere(c.Center, radius, func(pos scroll.BlockPos, m scroll.Material) {
		if m.Vegetation() || m.Fragile() {
			c.svc.World.SetBlock(pos, scroll.Air)
		}
	})
}

// sphere обходить усі завантажені блоки в кулі
func (c *Crater) sphere(center mgl64.Vec3, radius float64, fn func(scroll.BlockPos, scroll.Material)) {
	w := c.svc.World
	n := int(math.Ceil(radius))
	mid := scroll.BlockPosFromVec3(center)
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			for z := -n; z <= n; z++ {
				if float64(x*x+y*y+z*z) > radius*radius {
					continue
				}
				pos := mid.Add(scroll.BlockPos{x, y, z})
				if !w.Loaded(pos) {
					continue
				}
				fn(pos, w.Block(pos))
			}
		}
	}
}

// step - один тік свердління
func (c *Crater) step() {
	if c.Complete {
		return
	}
	if c.Depth >= c.TotalDepth {
		c.finish()
		return
	}
	c.layer(c.Depth)
	c.Depth++
	c.Angle += angleStep
}

// LayerRadius повертає радіус шару на глибині depth
func (c *Crater) LayerRadius(depth int) float64 {
	ratio := float64(depth) / float64(c.TotalDepth)
	return math.Max(1, c.maxRadius*(1-ratio*0.7))
}

// layer висвердлює одне коло. Площина кола перпендикулярна до польоту
// і трохи повернута відносно попереднього шару, щоб стінки не були гладкими
func (c *Crater) layer(depth int) {
	w := c.svc.World
	radius := c.LayerRadius(depth)
	centre := c.Center.Add(c.Dir.Mul(float64(depth) * layerStep))
	sin, cos := math.Sincos(c.Angle)
	right := c.right.Mul(cos).Add(c.up.Mul(sin))
	up := c.up.Mul(cos).Sub(c.right.Mul(sin))

	done := make(map[scroll.BlockPos]struct{})
	for u := -radius; u <= radius; u += 0.5 {
		for v := -radius; v <= radius; v += 0.5 {
			dist := math.Hypot(u, v)
			if dist > radius {
				continue
			}
			pos := scroll.BlockPosFromVec3(centre.Add(right.Mul(u)).Add(up.Mul(v)))
			if _, ok := done[pos]; ok {
				continue
			}
			done[pos] = struct{}{}
			if !w.Loaded(pos) {
				continue
			}
			m := w.Block(pos)
			if m.IsAir() || m.Indestructible() {
				continue
			}
			if dist > radius-1 && c.r.Float64() < c.st.ScorchChance {
				w.SetBlock(pos, c.pick(c.st.Scorched))
				continue
			}
			w.SetBlock(pos, scroll.Air)
		}
	}
	if depth%3 == 0 {
		c.svc.Particle(c.st.Drill, centre)
	}
}

// Rest повертає точку, де зупинився залишок метеорита
func (c *Crater) Rest() mgl64.Vec3 {
	return c.Center.Add(c.Dir.Mul(float64(c.TotalDepth) * layerStep))
}

// finish обкладає дно кіркою і кладе ядро метеорита. Виконується рівно один раз
func (c *Crater) finish() {
	if c.Complete {
		return
	}
	c.Complete = true
	if c.drill != nil {
		c.drill.Cancel()
	}
	w := c.svc.World
	rest := c.Rest()
	// Еліпсоїд витягнутий вздовж польоту: переводимо кожен блок у локальні координати
	inv := scroll.Rotation(scroll.YawPitch(c.Dir)).Transpose()
	a := float64(c.Size) * 0.9
	b := float64(c.Size) * 1.3
	n := int(math.Ceil(b)) + 1
	mid := scroll.BlockPosFromVec3(rest)
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			for z := -n; z <= n; z++ {
				pos := mid.Add(scroll.BlockPos{x, y, z})
				if !w.Loaded(pos) {
					continue
				}
				l := inv.Mul3x1(pos.Vec3Centre().Sub(rest))
				d := math.Sqrt(l[0]*l[0]/(a*a) + l[1]*l[1]/(a*a) + l[2]*l[2]/(b*b))
				m := w.Block(pos)
				if m.Indestructible() {
					continue
				}
				switch {
				case d <= 0.3:
					w.SetBlock(pos, c.pick(c.st.Palette))
				case d >= 0.75 && d <= 1 && m.Solid():
					w.SetBlock(pos, c.pick(c.st.Crust))
					above := pos.Side(scroll.FaceUp)
					if w.Block(above).IsAir() && c.r.Float64() < c.st.FireChance {
						w.SetBlock(above, "minecraft:fire")
					}
				}
			}
		}
	}
	c.svc.Particle(c.st.ImpactLava, rest)
	c.cleanup = c.svc.Scheduler.RunLater(c.st.CleanupDelay, func(scroll.Task) {
		c.svc.Protect("meteor.cleanup", c.cleanupPass, c.end)
	})
}

// cleanupPass гасить вогонь, який горить не на магмі,
// і латає ямки на краях кратера
func (c *Crater) cleanupPass() {
	defer c.end()
	w := c.svc.World
	reach := int(math.Ceil(c.maxRadius)) + 2
	mid := scroll.BlockPosFromVec3(c.Center)
	bottom := scroll.BlockPosFromVec3(c.Rest()).Y() - c.Size
	top := mid.Y() + c.Size
	for x := -reach; x <= reach; x++ {
		for z := -reach; z <= reach; z++ {
			ring := math.Hypot(float64(x), float64(z))
			for y := bottom; y <= top; y++ {
				pos := scroll.BlockPos{mid.X() + x, y, mid.Z() + z}
				if !w.Loaded(pos) {
					continue
				}
				m := w.Block(pos)
				switch {
				case m.IsFire():
					if w.Block(pos.Side(scroll.FaceDown)) != "minecraft:magma_block" {
						w.SetBlock(pos, scroll.Air)
					}
				case m.IsAir() && ring >= c.maxRadius-1 && c.pocket(pos):
					if c.r.Float64() < c.st.ScorchChance {
						w.SetBlock(pos, c.pick(c.st.Scorched))
					}
				}
			}
		}
	}
}

// pocket - ямка: повітря, під яким земля, а з трьох чи чотирьох боків стінки
func (c *Crater) pocket(pos scroll.BlockPos) bool {
	w := c.svc.World
	if !w.Block(pos.Side(scroll.FaceDown)).Solid() {
		return false
	}
	walls := 0
	for _, f := range [...]scroll.Face{scroll.FaceNorth, scroll.FaceSouth, scroll.FaceWest, scroll.FaceEast} {
		if w.Block(pos.Side(f)).Solid() {
			walls++
		}
	}
	return walls >= 3
}

// OnDone задає що викликати коли розкопки закінчились або їх скасували
func (c *Crater) OnDone(fn func()) { c.done = fn }

// Cancel зупиняє розкопки там, де вони є
func (c *Crater) Cancel() {
	if c.drill != nil {
		c.drill.Cancel()
	}
	if c.cleanup != nil {
		c.cleanup.Cancel()
	}
	c.Complete = true
	c.end()
}

func (c *Crater) end() {
	if c.done != nil {
		done := c.done
		c.done = nil
		done()
	}
}

func (c *Crater) pick(list []scroll.Material) scroll.Material {
	if len(list) == 0 {
		return defaultPalette[0]
	}
	return list[c.r.Intn(len(list))]
}
