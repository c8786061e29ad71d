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

// Доступ до блоків завантажених чанків.
// Координати світові, висота від -64 до 319.

package world

import (
	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/level/block"
)

const (
	minY     = -64 // нижня межа світу
	sections = 24  // секцій по 16 блоків у колонці
	maxY     = minY + sections*16 - 1
)

var airState = block.ToStateID[block.Air{}]

func chunkPosOf(x, z int) [2]int32 {
	return [2]int32{int32(x >> 4), int32(z >> 4)}
}

// sectionIndex повертає індекс блоку всередині секції 16x16x16
func sectionIndex(x, y, z int) int {
	return (y&15)<<8 | (z&15)<<4 | x&15
}

// Loaded повідомляє, чи завантажений чанк з колонкою (x, z)
func (w *World) Loaded(x, z int) bool {
	_, ok := w.chunks[chunkPosOf(x, z)]
	return ok
}

// BlockState повертає стан блоку. Все, що вище чи нижче світу, - повітря.
// ok == false якщо чанк не завантажений
func (w *World) BlockState(x, y, z int) (s block.StateID, ok bool) {
	lc, ok := w.chunks[chunkPosOf(x, z)]
	if !ok {
		return 0, false
	}
	if y < minY || y > maxY {
		return airState, true
	}
	return lc.Sections[(y-minY)>>4].GetBlock(sectionIndex(x, y, z)), true
}

// SetBlockState змінює блок і розсилає зміну всім, хто бачить чанк
func (w *World) SetBlockState(x, y, z int, s block.StateID) bool {
	if y < minY || y > maxY {
		return false
	}
	pos := chunkPosOf(x, z)
	lc, ok := w.chunks[pos]
	if !ok {
		return false
	}
	lc.Lock()
	defer lc.Unlock()
	sec := &lc.Sections[(y-minY)>>4]
	i := sectionIndex(x, y, z)
	if sec.GetBlock(i) == s {
		return true
	}
	sec.SetBlock(i, s)
	for _, v := range lc.viewers {
		v.ViewBlockUpdate([3]int{x, y, z}, s)
	}
	return true
}

// HighestBlock повертає Y найвищого блоку колонки, для якого solid повертає true.
// Якщо такого немає, повертає minY-1
func (w *World) HighestBlock(x, z int, solid func(block.StateID) bool) int {
	lc, ok := w.chunks[chunkPosOf(x, z)]
	if !ok {
		return minY - 1
	}
	for s := len(lc.Sections) - 1; s >= 0; s-- {
		sec := &lc.Sections[s]
		if sec.BlockCount == 0 {
			continue
		}
		for y := 15; y >= 0; y-- {
			if solid(sec.GetBlock(sectionIndex(x, y, z))) {
				return minY + s*16 + y
			}
		}
	}
	return minY - 1
}

// setChunk кладе готовий чанк у світ, минаючи провайдер
func (w *World) setChunk(pos [2]int32, c *level.Chunk) {
	w.chunks[pos] = &LoadedChunk{Chunk: c}
}
