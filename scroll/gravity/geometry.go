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

// Йоу, чат! Малюємо гравітаційну воронку частинками.
// Вся мішень лежить у площині грані, на яку дивиться гравець:
// нормаль грані дає нам площину, а Basis - дві осі в ній.
// Параметр progress росте від 0 до 1 за час касту: кільця стискаються,
// лінії закручуються, а чорна діра в центрі густішає.

package gravity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"FlowyScrolls/scroll"
)

// Part - з якої частини мішені точка, від цього залежить вид частинки
type Part int

const (
	RingPart Part = iota
	LinePart
	CorePart
	CrossPart
)

// Point - одна частинка мішені
type Point struct {
	Part Part
	Pos  mgl64.Vec3
}

// surfaceLift - на скільки мішень висить над гранню, щоб частинки не ховались у блоці
const surfaceLift = 0.05

// Frame повертає всі точки мішені для заданого прогресу
func Frame(t TargetInfo, g Grid, progress float64) []Point {
	progress = mgl64.Clamp(progress, 0, 1)
	centre := t.Center().Add(t.Normal.Mul(surfaceLift))
	right, up := scroll.Basis(t.Normal)
	at := func(r, angle float64) mgl64.Vec3 {
		s, c := math.Sincos(angle)
		return centre.Add(right.Mul(r * c)).Add(up.Mul(r * s))
	}

	var pts []Point
	spin := progress * math.Pi * 2
	shrink := 1 - 0.5*progress

	// концентричні кільця, зовнішнє найбільше
	for i := 0; i < g.Rings; i++ {
		r := RingRadius(g, i, progress)
		n := max(8, int(r*8))
		for k := 0; k < n; k++ {
			pts = append(pts, Point{RingPart, at(r, spin+2*math.Pi*float64(k)/float64(n))})
		}
	}

	// радіальні лінії закручуються спіраллю до центру
	outer := g.Radius * shrink
	for j := 0; j < g.Lines; j++ {
		base := 2 * math.Pi * float64(j) / float64(g.Lines)
		for r := outer; r > 0.5; r -= 0.5 {
			twist := (1 - r/outer) * progress * math.Pi / 2
			pts = append(pts, Point{LinePart, at(r, base-spin/2+twist)})
		}
	}

	// край чорної діри: маленьке густе кільце
	core := 0.6 * shrink
	n := 12 + int(progress*12)
	for k := 0; k < n; k++ {
		pts = append(pts, Point{CorePart, at(core, -spin+2*math.Pi*float64(k)/float64(n))})
	}

	// хрест росте разом з прогресом
	arm := g.Radius * progress
	for d := 0.5; d <= arm; d += 0.5 {
		for _, a := range [...]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
			pts = append(pts, Point{CrossPart, at(d, a+spin/4)})
		}
	}
	return pts
}

// RingRadius - радіус i-го кільця (0 - зовнішнє)
func RingRadius(g Grid, i int, progress float64) float64 {
	step := 1 - float64(i)/float64(g.Rings)
	return g.Radius * step * (1 - 0.5*mgl64.Clamp(progress, 0, 1))
}
