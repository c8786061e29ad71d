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


package bvh

import "github.com/go-gl/mathgl/mgl64"

// Box - паралелепіпед, вирівняний по осях
type Box struct {
	Min, Max mgl64.Vec3
}

// Cube - куб з центром center і половиною ребра half
func Cube(center mgl64.Vec3, half float64) Box {
	d := mgl64.Vec3{half, half, half}
	return Box{Min: center.Sub(d), Max: center.Add(d)}
}

// Contains - точка строго всередині, межа не рахується
func (b Box) Contains(p mgl64.Vec3) bool {
	return b.Min[0] < p[0] && p[0] < b.Max[0] &&
		b.Min[1] < p[1] && p[1] < b.Max[1] &&
		b.Min[2] < p[2] && p[2] < b.Max[2]
}

func (b Box) Intersects(o Box) bool {
	return b.Min[0] < o.Max[0] && o.Min[0] < b.Max[0] &&
		b.Min[1] < o.Max[1] && o.Min[1] < b.Max[1] &&
		b.Min[2] < o.Max[2] && o.Min[2] < b.Max[2]
}

func (b Box) Union(o Box) Box {
	return Box{
		Min: mgl64.Vec3{min(b.Min[0], o.Min[0]), min(b.Min[1], o.Min[1]), min(b.Min[2], o.Min[2])},
		Max: mgl64.Vec3{max(b.Max[0], o.Max[0]), max(b.Max[1], o.Max[1]), max(b.Max[2], o.Max[2])},
	}
}

// Area - площа поверхні, ціна вузла при вставці
func (b Box) Area() float64 {
	d := b.Max.Sub(b.Min)
	return 2 * (d[0]*d[1] + d[1]*d[2] + d[2]*d[0])
}
