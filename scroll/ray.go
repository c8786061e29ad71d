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

// Йоу, чат! Як знайти блок, на який дивиться гравець?
// Пускаємо промінь і крокуємо по сітці блоків алгоритмом Amanatides-Woo:
// на кожному кроці переходимо в той сусідній блок, межу якого промінь перетне першим.
// Так ми не пропускаємо жодного блоку і не перевіряємо зайвих.

package scroll

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RayHit - результат трасування променя
type RayHit struct {
	Pos   BlockPos   // блок, в який влучили
	Face  Face       // грань, через яку промінь увійшов у блок
	Point mgl64.Vec3 // точка входу
}

// Trace проходить відрізок from -> to і повертає перший блок, для якого stop повертає true
func Trace(from, to mgl64.Vec3, stop func(BlockPos) bool) (RayHit, bool) {
	pos := BlockPosFromVec3(from)
	if stop(pos) {
		return RayHit{Pos: pos, Face: FaceUp, Point: from}, true
	}

	dir := to.Sub(from)
	length := dir.Len()
	if length < 1e-9 {
		return RayHit{}, false
	}
	dir = dir.Mul(1 / length)

	var (
		step   [3]int
		tMax   [3]float64 // відстань вздовж променя до наступної межі по кожній осі
		tDelta [3]float64 // відстань між сусідніми межами по кожній осі
	)
	for i := 0; i < 3; i++ {
		switch {
		case dir[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / dir[i]
			tMax[i] = (float64(pos[i]+1) - from[i]) / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / dir[i]
			tMax[i] = (from[i] - float64(pos[i])) / -dir[i]
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > length {
			return RayHit{}, false
		}
		pos[axis] += step[axis]
		tMax[axis] += tDelta[axis]
		if stop(pos) {
			return RayHit{
				Pos:   pos,
				Face:  entryFace(axis, step[axis]),
				Point: from.Add(dir.Mul(t)),
			}, true
		}
	}
}

// entryFace - якщо рухаємось в +X, то входимо в блок через західну грань і т.д.
func entryFace(axis, step int) Face {
	switch axis {
	case 0:
		if step > 0 {
			return FaceWest
		}
		return FaceEast
	case 1:
		if step > 0 {
			return FaceDown
		}
		return FaceUp
	default:
		if step > 0 {
			return FaceNorth
		}
		return FaceSouth
	}
}
