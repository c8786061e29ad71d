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


// Йоу, чат! Кожен гравець тягне за собою коло чанків радіусом у свою дальність прогрузки.
// Нові чанки вантажимо від центру до краю, щоб під ногами світ з'являвся першим.

package world

import (
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
)

// maxLoadRadius - більше клієнт 1.19.4 не просить
const maxLoadRadius = 32

// loaderSource - той, навколо кого тримаємо чанки
type loaderSource interface {
	chunkPosition() [2]int32
	chunkRadius() int32
}

// loader пам'ятає, які чанки вже надіслані одному гравцю
type loader struct {
	source  loaderSource
	loaded  map[[2]int32]struct{}
	limiter *rate.Limiter // обмежує, скільки чанків гравець отримує за секунду
}

func newLoader(source loaderSource, limiter *rate.Limiter) *loader {
	return &loader{
		source:  source,
		loaded:  make(map[[2]int32]struct{}),
		limiter: limiter,
	}
}

func (l *loader) radius() int32 {
	return min(max(l.source.chunkRadius(), 0), maxLoadRadius)
}

// pending - чанки в радіусі, яких гравець ще не має, від ближніх до дальніх
func (l *loader) pending() [][2]int32 {
	center := l.source.chunkPosition()
	var list [][2]int32
	for _, off := range spiral[:spiralEnd[l.radius()]] {
		pos := [2]int32{center[0] + off[0], center[1] + off[1]}
		if _, ok := l.loaded[pos]; !ok {
			list = append(list, pos)
		}
	}
	return list
}

// stale - надіслані чанки, які вже за межею радіусу
func (l *loader) stale() [][2]int32 {
	center, r := l.source.chunkPosition(), l.radius()
	var list [][2]int32
	for pos := range l.loaded {
		if dist2(pos[0]-center[0], pos[1]-center[1]) > r*r {
			list = append(list, pos)
		}
	}
	return list
}

func dist2(dx, dz int32) int32 { return dx*dx + dz*dz }

var (
	// spiral - зсуви чанків у колі maxLoadRadius, відсортовані за відстанню
	spiral [][2]int32
	// spiralEnd[r] - скільки перших зсувів spiral лежать у колі радіуса r
	spiralEnd [maxLoadRadius + 1]int
)

func init() {
	const r = maxLoadRadius
	for x := int32(-r); x <= r; x++ {
		for z := int32(-r); z <= r; z++ {
			if dist2(x, z) <= r*r {
				spiral = append(spiral, [2]int32{x, z})
			}
		}
	}
	slices.SortStableFunc(spiral, func(a, b [2]int32) bool {
		return dist2(a[0], a[1]) < dist2(b[0], b[1])
	})
	i := 0
	for radius := int32(0); radius <= r; radius++ {
		for i < len(spiral) && dist2(spiral[i][0], spiral[i][1]) <= radius*radius {
			i++
		}
		spiralEnd[radius] = i
	}
}
