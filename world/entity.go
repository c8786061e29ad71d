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

// Йоу, чат! Сутність - все, що рухається у світі: гравці і моби.
// Позиція тут авторитетна, а pos0/rot0 - те, що тік ще має розіслати глядачам.

package world

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

var entityCounter atomic.Int32

// NewEntityID видає ID, унікальний на весь процес
func NewEntityID() int32 {
	return entityCounter.Add(1)
}

type Entity struct {
	EntityID int32
	Position
	Rotation
	OnGround
	pos0 Position // позиція, яку отримають глядачі в кінці тіку
	rot0 Rotation
}

// Position - x, y, z у блоках
type Position [3]float64

// Rotation - yaw і pitch у градусах
type Rotation [2]float32

type OnGround bool

// angles переводить градуси в 1/256 оберту, як їх чекає протокол
func (r Rotation) angles() [2]int8 {
	return [2]int8{int8(int32(r[0] * 256 / 360)), int8(int32(r[1] * 256 / 360))}
}

func (p Position) Vec3() mgl64.Vec3 { return mgl64.Vec3(p) }

func (p Position) Distance(o Position) float64 {
	return p.Vec3().Sub(o.Vec3()).Len()
}

// IsValid - жодна координата не NaN і не нескінченність
func (p *Position) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// movement вибирає пакет, яким глядачі дізнаються про перехід з Position у pos0.
// nil - сутність не рухалась
func (e *Entity) movement() func(EntityViewer) {
	id, ground := e.EntityID, bool(e.OnGround)
	moved, turned := e.Position != e.pos0, e.Rotation != e.rot0
	rot := e.rot0.angles()
	// відносний рух кодується в short по 1/4096 блока, тому далі 8 блоків тільки телепортом
	if e.Position.Distance(e.pos0) > 8 {
		pos := [3]float64(e.pos0)
		return func(v EntityViewer) { v.ViewTeleportEntity(id, pos, rot, ground) }
	}
	var d [3]int16
	for i := range d {
		d[i] = int16((e.pos0[i] - e.Position[i]) * 4096)
	}
	switch {
	case moved && turned:
		return func(v EntityViewer) {
			v.ViewMoveEntityPosAndRot(id, d, rot, ground)
			v.ViewRotateHead(id, rot[0])
		}
	case moved:
		return func(v EntityViewer) { v.ViewMoveEntityPos(id, d, ground) }
	case turned:
		return func(v EntityViewer) {
			v.ViewMoveEntityRot(id, rot, ground)
			v.ViewRotateHead(id, rot[0])
		}
	}
	return nil
}
