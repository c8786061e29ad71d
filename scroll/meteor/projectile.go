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

// Йоу, чат! Як летить метеорит?
// Напрямок і швидкість вибираються один раз при запуску і більше не змінюються.
// Кожен тік ми зсуваємо центр на direction*speed і перевіряємо,
// чи не врізались у землю між старою і новою позицією.

package meteor

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"FlowyScrolls/scroll"
)

const (
	DefaultMaxTicks = 800   // запобіжник: після стількох тіків метеорит падає де є
	MinSpeed        = 2.0   // блоків за тік
	MaxSpeed        = 3.5   // блоків за тік
	MaxDirY         = -0.55 // метеорит завжди летить вниз хоча б настільки круто
)

// Direction повертає одиничний вектор від start до target,
// але з Y-компонентою не більше MaxDirY.
// Якщо start і target збігаються, метеорит падає прямовисно
func Direction(start, target mgl64.Vec3) mgl64.Vec3 {
	d := target.Sub(start)
	if d.Len() < 1e-9 {
		return mgl64.Vec3{0, -1, 0}
	}
	d = d.Normalize()
	if d[1] <= MaxDirY {
		return d
	}
	h := math.Hypot(d[0], d[2])
	d[1] = MaxDirY
	if h < 1e-9 {
		// ціль прямо над стартом, горизонтального напрямку немає
		return mgl64.Vec3{0, -1, 0}
	}
	k := math.Sqrt(1-MaxDirY*MaxDirY) / h
	d[0] *= k
	d[2] *= k
	return d
}

// Outcome - що сталося за один тік польоту
type Outcome int

const (
	Moving  Outcome = iota // летимо далі
	Skipped                // світ тут не завантажений, тік пропущено
	Impact                 // влучили
)

// Projectile - стан одного метеорита в польоті
type Projectile struct {
	Seed     uuid.UUID
	Pos      mgl64.Vec3
	Dir      mgl64.Vec3
	Speed    float64
	Size     int
	Shape    Shape
	Ticks    int
	MaxTicks int
	Impacted bool

	offsets []scroll.BlockPos // воксели, вже повернуті у світові координати
	mats    []scroll.Material
}

// NewProjectile створює метеорит у точці start, який летить до target.
// Форма генерується один раз тут і більше не змінюється
func NewProjectile(start, target mgl64.Vec3, size int, seed uuid.UUID, palette []scroll.Material) *Projectile {
	size = ClampSize(size)
	// свій потік для швидкості: +0 бере вибір сімейства, +1 кратер
	r := rand.New(rand.NewSource(seedValue(seed) + 2))
	p := &Projectile{
		Seed:     seed,
		Pos:      start,
		Dir:      Direction(start, target),
		Speed:    MinSpeed + r.Float64()*(MaxSpeed-MinSpeed),
		Size:     size,
		Shape:    Generate(size, seed, palette),
		MaxTicks: DefaultMaxTicks,
	}

	// Повертаємо форму так, щоб її локальна вісь +Z дивилась вздовж польоту.
	// Після округлення кілька вокселів можуть злитися в один блок, це нормально
	rot := scroll.Rotation(scroll.YawPitch(p.Dir))
	seen := make(map[scroll.BlockPos]struct{}, len(p.Shape.Voxels))
	for _, v := range p.Shape.Voxels {
		w := rot.Mul3x1(v.Offset)
		off := scroll.BlockPos{int(math.Round(w[0])), int(math.Round(w[1])), int(math.Round(w[2]))}
		if _, dup := seen[off]; dup {
			continue
		}
		seen[off] = struct{}{}
		p.offsets = append(p.offsets, off)
		p.mats = append(p.mats, v.Material)
	}
	return p
}

// Blocks повертає абсолютні позиції всіх вокселів для поточної позиції
func (p *Projectile) Blocks() map[scroll.BlockPos]scroll.Material {
	centre := scroll.BlockPosFromVec3(p.Pos)
	out := make(map[scroll.BlockPos]scroll.Material, len(p.offsets))
	for i, off := range p.offsets {
		out[centre.Add(off)] = p.mats[i]
	}
	return out
}

// Advance робить один тік польоту.
// Лічильник тіків росте навіть коли тік пропущено, інакше метеорит
// над незавантаженим світом висів би вічно
func (p *Projectile) Advance(w scroll.World) Outcome {
	if p.Impacted {
		return Impact
	}
	p.Ticks++
	if p.Ticks >= p.MaxTicks {
		p.Impacted = true
		return Impact
	}

	next := p.Pos.Add(p.Dir.Mul(p.Speed))
	if !w.Loaded(scroll.BlockPosFromVec3(next)) {
		return Skipped
	}

	// Рослини і вода метеориту не заважають, зупиняє тільки тверда земля
	if hit, ok := scroll.TraceWorld(w, p.Pos, next, scroll.Material.Solid); ok {
		p.Pos = hit.Point
		p.Impacted = true
		return Impact
	}
	p.Pos = next

	pos := scroll.BlockPosFromVec3(next)
	if pos.Y() <= w.HighestBlockY(pos.X(), pos.Z()) {
		p.Impacted = true
		return Impact
	}
	return Moving
}
