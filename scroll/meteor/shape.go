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

// Йоу, чат! Сьогодні ліпимо метеорити!
// Кожен метеорит - це хмара вокселів (кубиків) навколо центру.
// Форма залежить від сіда: той самий UUID завжди дає той самий камінь,
// тому всі гравці бачать однаковий метеорит на кожному тіку.
// Є п'ять сімейств форм, і чим більший метеорит, тим химерніша форма.
//
// Локальна система координат: +Z - напрямок польоту, хвіст тягнеться в -Z.

package meteor

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"FlowyScrolls/scroll"
)

const (
	MinSize = 3
	MaxSize = 10
)

// ClampSize обрізає розмір до [MinSize, MaxSize]
func ClampSize(size int) int {
	switch {
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// Archetype - сімейство форм
type Archetype int

const (
	Spherical Archetype = iota // кругляк
	Arrow                      // витягнутий наконечник
	Irregular                  // грудка з кількох шматків
	Tailed                     // голова з хвостом
	Complex                    // куля з відростками
)

var archetypeNames = [...]string{"spherical", "arrow", "irregular", "tailed", "complex"}

func (a Archetype) String() string {
	if a < 0 || int(a) >= len(archetypeNames) {
		return "unknown"
	}
	return archetypeNames[a]
}

// Voxel - один кубик форми
type Voxel struct {
	Offset   mgl64.Vec3 // зміщення від центру в локальних координатах
	Material scroll.Material
}

// Shape - згенерована форма метеорита
type Shape struct {
	Archetype Archetype
	Size      int
	Voxels    []Voxel
}

var defaultPalette = []scroll.Material{"minecraft:magma_block"}

// seedValue складає дві половини UUID в одне число для генератора
func seedValue(seed uuid.UUID) int64 {
	return int64(binary.BigEndian.Uint64(seed[:8]) ^ binary.BigEndian.Uint64(seed[8:]))
}

// Ваги сімейств форм для кожного розміру: {Spherical, Arrow, Irregular, Tailed, Complex}
var tierWeights = [...][5]int{
	{50, 25, 25, 0, 0},   // дрібні, до 4
	{25, 20, 25, 20, 10}, // середні, 5-7
	{10, 15, 25, 25, 25}, // великі, 8+
}

func tier(size int) int {
	switch {
	case size <= 4:
		return 0
	case size <= 7:
		return 1
	}
	return 2
}

// PickArchetype вибирає сімейство форми за розміром і сідом
func PickArchetype(size int, seed uuid.UUID) Archetype {
	r := rand.New(rand.NewSource(seedValue(seed)))
	weights := tierWeights[tier(ClampSize(size))]
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := r.Intn(total)
	for i, w := range weights {
		if roll < w {
			return Archetype(i)
		}
		roll -= w
	}
	return Spherical
}

// Generate будує форму: вибирає сімейство і ліпить воксели.
// Чиста функція: однакові аргументи дають однаковий результат
func Generate(size int, seed uuid.UUID, palette []scroll.Material) Shape {
	return GenerateArchetype(size, seed, PickArchetype(size, seed), palette)
}

// GenerateArchetype будує форму заданого сімейства
func GenerateArchetype(size int, seed uuid.UUID, a Archetype, palette []scroll.Material) Shape {
	size = ClampSize(size)
	if len(palette) == 0 {
		palette = defaultPalette
	}
	// окремий потік випадкових чисел для кожного сімейства
	r := rand.New(rand.NewSource(seedValue(seed) ^ int64(a+1)*0x9E3779B9))
	g := grid{r: r, cells: make(map[[3]int]struct{})}
	radius := float64(size) / 2

	switch a {
	case Arrow:
		g.arrow(radius)
	case Irregular:
		g.irregular(radius)
	case Tailed:
		g.tailed(radius)
	case Complex:
		g.complex(radius)
	default:
		g.sphere(mgl64.Vec3{}, mgl64.Vec3{radius, radius, radius}, 0.85, 0.15, true)
	}
	// Центр є завжди, тому форма ніколи не порожня
	g.cells[[3]int{}] = struct{}{}

	return Shape{Archetype: a, Size: size, Voxels: g.voxels(palette)}
}

// grid - множина зайнятих клітинок
type grid struct {
	r     *rand.Rand
	cells map[[3]int]struct{}
}

func (g *grid) add(x, y, z int) { g.cells[[3]int{x, y, z}] = struct{}{} }

// sphere додає еліпсоїд з центром c і півосями rad.
// Межа трохи шумить, а кожен воксель потрапляє у форму з імовірністю keep
func (g *grid) sphere(c, rad mgl64.Vec3, keep, noise float64, jitter bool) {
	if jitter {
		for i := range rad {
			rad[i] *= 0.85 + g.r.Float64()*0.3
		}
	}
	lo := [3]int{}
	hi := [3]int{}
	for i := 0; i < 3; i++ {
		lo[i] = int(math.Floor(c[i] - rad[i] - 1))
		hi[i] = int(math.Ceil(c[i] + rad[i] + 1))
	}
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				dx := (float64(x) - c[0]) / rad[0]
				dy := (float64(y) - c[1]) / rad[1]
				dz := (float64(z) - c[2]) / rad[2]
				d := dx*dx + dy*dy + dz*dz
				n := (g.r.Float64()*2 - 1) * noise
				if d <= 1+n && g.r.Float64() < keep {
					g.add(x, y, z)
				}
			}
		}
	}
}

// arrow - витягнутий по Z еліпсоїд, що звужується назад
func (g *grid) arrow(radius float64) {
	rx, rz := radius*0.7, radius*1.8
	length := int(math.Ceil(rz)) + 1
	width := int(math.Ceil(rx)) + 1
	for z := -length; z <= length; z++ {
		var scale float64
		if z < 0 {
			// задня частина звужується сильніше
			scale = 1 - float64(-z)/rz*0.6
		} else {
			t := float64(z) / rz
			scale = 1 - t*t*0.3
		}
		if scale < 0.25 {
			scale = 0.25
		}
		for x := -width; x <= width; x++ {
			for y := -width; y <= width; y++ {
				dx := float64(x) / (rx * scale)
				dy := float64(y) / (rx * scale)
				dz := float64(z) / rz
				n := (g.r.Float64()*2 - 1) * 0.15
				if dx*dx+dy*dy+dz*dz <= 1+n && g.r.Float64() < 0.9 {
					g.add(x, y, z)
				}
			}
		}
	}
}

// irregular - об'єднання 2-4 зміщених шматків з сильнішим шумом
func (g *grid) irregular(radius float64) {
	chunks := 2 + g.r.Intn(3)
	for i := 0; i < chunks; i++ {
		c := mgl64.Vec3{
			(g.r.Float64()*2 - 1) * radius * 0.6,
			(g.r.Float64()*2 - 1) * radius * 0.6,
			(g.r.Float64()*2 - 1) * radius * 0.6,
		}
		r := radius * (0.5 + g.r.Float64()*0.3)
		g.sphere(c, mgl64.Vec3{r, r, r}, 0.75, 0.35, true)
	}
}

// tailed - куля-голова і хвіст довжиною 3 радіуси, що тоншає і рідшає
func (g *grid) tailed(radius float64) {
	g.sphere(mgl64.Vec3{}, mgl64.Vec3{radius, radius, radius}, 0.85, 0.15, false)
	length := radius * 3
	steps := int(math.Ceil(length))
	for t := 1; t <= steps; t++ {
		ratio := float64(t) / length
		r := radius * (1 - ratio) * 0.8
		if r < 0.5 {
			r = 0.5
		}
		keep := 1 - ratio*0.7
		z := -int(math.Round(radius*0.5)) - t
		g.disc(mgl64.Vec3{0, 0, float64(z)}, r, keep)
	}
}

// complex - куля з 2-4 циліндричними відростками, що тоншають до кінця
func (g *grid) complex(radius float64) {
	base := radius * 0.9
	g.sphere(mgl64.Vec3{}, mgl64.Vec3{base, base, base}, 0.85, 0.15, false)
	arms := 2 + g.r.Intn(3)
	for i := 0; i < arms; i++ {
		dir := mgl64.Vec3{g.r.NormFloat64(), g.r.NormFloat64(), g.r.NormFloat64()}
		if dir.Len() < 1e-6 {
			dir = mgl64.Vec3{0, 1, 0}
		}
		dir = dir.Normalize()
		length := radius * (0.8 + g.r.Float64()*0.7)
		start := base * 0.6
		for s := 0.0; s <= length; s += 0.5 {
			r := radius * 0.45 * (1 - s/length)
			if r < 0.5 {
				r = 0.5
			}
			c := dir.Mul(start + s)
			g.ball(c, r)
		}
	}
}

// disc додає коло радіуса r в площині XY на висоті c.Z()
func (g *grid) disc(c mgl64.Vec3, r, keep float64) {
	n := int(math.Ceil(r))
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			if float64(x*x+y*y) <= r*r && g.r.Float64() < keep {
				g.add(x+int(c[0]), y+int(c[1]), int(c[2]))
			}
		}
	}
}

// ball додає суцільну маленьку кулю навколо точки c
func (g *grid) ball(c mgl64.Vec3, r float64) {
	n := int(math.Ceil(r))
	cx, cy, cz := int(math.Round(c[0])), int(math.Round(c[1])), int(math.Round(c[2]))
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			for z := -n; z <= n; z++ {
				if float64(x*x+y*y+z*z) <= r*r {
					g.add(cx+x, cy+y, cz+z)
				}
			}
		}
	}
}

// voxels сортує клітинки і роздає їм матеріали.
// Сортуємо, бо порядок обходу мапи в Go випадковий, а нам потрібна повторюваність
func (g *grid) voxels(palette []scroll.Material) []Voxel {
	cells := maps.Keys(g.cells)
	slices.SortFunc(cells, func(a, b [3]int) bool {
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	out := make([]Voxel, len(cells))
	for i, c := range cells {
		out[i] = Voxel{
			Offset:   mgl64.Vec3{float64(c[0]), float64(c[1]), float64(c[2])},
			Material: palette[g.r.Intn(len(palette))],
		}
	}
	return out
}
