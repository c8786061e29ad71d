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

// Йоу, чат! Сьогодні ми розберемо базові типи магічних сувоїв!
// Сувій - це предмет, який при використанні запускає якийсь ефект у світі:
// метеорит, гравітаційну воронку або телепорт додому.
// Тут живуть найпростіші цеглинки: позиції блоків, грані, матеріали і кліки.

package scroll

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Type - тип сувою, записується в постійний тег предмета
type Type string

const (
	Meteor      Type = "meteor"      // метеоритний удар
	Gravitation Type = "gravitation" // гравітаційне притягування
	Exit        Type = "exit"        // повернення у збережену точку
)

// Click - яка кнопка миші була натиснута з сувоєм в руці
type Click int

const (
	LeftClick  Click = iota // ліва кнопка (удар, замах)
	RightClick              // права кнопка (використання предмета)
)

func (c Click) String() string {
	if c == LeftClick {
		return "left"
	}
	return "right"
}

// BlockPos - цілочисельні координати блоку (x, y, z)
type BlockPos [3]int

// BlockPosFromVec3 повертає блок, в якому знаходиться точка.
// Використовуємо Floor, бо для від'ємних координат простий int() округлює не туди
func BlockPosFromVec3(v mgl64.Vec3) BlockPos {
	return BlockPos{int(math.Floor(v[0])), int(math.Floor(v[1])), int(math.Floor(v[2]))}
}

func (p BlockPos) X() int { return p[0] }
func (p BlockPos) Y() int { return p[1] }
func (p BlockPos) Z() int { return p[2] }

// Add додає зміщення до позиції
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Side повертає сусідній блок з боку грані f
func (p BlockPos) Side(f Face) BlockPos { return p.Add(f.Offset()) }

// Vec3 повертає нижній кут блоку
func (p BlockPos) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Vec3Centre повертає центр блоку
func (p BlockPos) Vec3Centre() mgl64.Vec3 {
	return p.Vec3().Add(mgl64.Vec3{0.5, 0.5, 0.5})
}

// Face - грань блоку. Порядок такий самий як у протоколі майнкрафту
type Face int

const (
	FaceDown Face = iota
	FaceUp
	FaceNorth
	FaceSouth
	FaceWest
	FaceEast
)

var faceOffsets = [...]BlockPos{
	FaceDown:  {0, -1, 0},
	FaceUp:    {0, 1, 0},
	FaceNorth: {0, 0, -1},
	FaceSouth: {0, 0, 1},
	FaceWest:  {-1, 0, 0},
	FaceEast:  {1, 0, 0},
}

var faceNames = [...]string{"down", "up", "north", "south", "west", "east"}

// Offset повертає одиничне зміщення у напрямку грані
func (f Face) Offset() BlockPos { return faceOffsets[f] }

// Normal повертає зовнішню нормаль грані
func (f Face) Normal() mgl64.Vec3 {
	o := faceOffsets[f]
	return mgl64.Vec3{float64(o[0]), float64(o[1]), float64(o[2])}
}

// Opposite повертає протилежну грань
func (f Face) Opposite() Face { return f ^ 1 }

func (f Face) String() string { return faceNames[f] }
