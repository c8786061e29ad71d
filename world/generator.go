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

package world

import (
	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/level/block"
)

// Generator створює чанк, якого ще немає на диску
type Generator interface {
	Generate(pos [2]int32) *level.Chunk
}

// FlatY - висота поверхні плоского світу, гравці стоять на FlatY+1
const FlatY = 63

// FlatGenerator - пласка рівнина з травою.
// Бедрок на -64, далі камінь, три шари землі і дерен на FlatY
type FlatGenerator struct{}

func (FlatGenerator) Generate(pos [2]int32) *level.Chunk {
	var (
		bedrock = block.ToStateID[block.Bedrock{}]
		stone   = block.ToStateID[block.Stone{}]
		dirt    = block.ToStateID[block.Dirt{}]
		grass   = block.ToStateID[block.GrassBlock{}]
		plant   = block.ToStateID[block.Grass{}]
	)
	c := level.EmptyChunk(sections)
	set := func(x, y, z int, s block.StateID) {
		c.Sections[(y-minY)>>4].SetBlock(sectionIndex(x, y, z), s)
	}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			set(x, minY, z, bedrock)
			for y := minY + 1; y < FlatY-3; y++ {
				set(x, y, z, stone)
			}
			for y := FlatY - 3; y < FlatY; y++ {
				set(x, y, z, dirt)
			}
			set(x, FlatY, z, grass)
			// трава росте приблизно на кожній двадцятій колонці
			if columnHash(pos[0]*16+int32(x), pos[1]*16+int32(z))%20 == 0 {
				set(x, FlatY+1, z, plant)
			}
		}
	}
	c.Status = level.StatusFull
	return c
}

// columnHash - детермінований хеш колонки, щоб світ був однаковим після перезапуску
func columnHash(x, z int32) uint32 {
	h := uint32(x)*0x9E3779B1 ^ uint32(z)*0x85EBCA77
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	return h
}
