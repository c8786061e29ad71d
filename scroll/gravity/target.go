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

package gravity

import (
	"github.com/go-gl/mathgl/mgl64"

	"FlowyScrolls/scroll"
)

// TargetInfo - блок, на який дивиться гравець, і грань, на якій малюємо мішень.
// Рахується один раз при старті касту
type TargetInfo struct {
	Block  scroll.BlockPos
	Face   scroll.Face
	Normal mgl64.Vec3
	Point  mgl64.Vec3 // точка, де промінь торкнувся грані
}

// Resolve пускає промінь з очей гравця
func Resolve(w scroll.World, p scroll.Player, maxDistance float64) (TargetInfo, bool) {
	eye := p.EyePosition()
	hit, ok := scroll.TraceWorld(w, eye, eye.Add(scroll.Look(p).Mul(maxDistance)), scroll.Material.Solid)
	if !ok {
		return TargetInfo{}, false
	}
	return TargetInfo{
		Block:  hit.Pos,
		Face:   hit.Face,
		Normal: hit.Face.Normal(),
		Point:  hit.Point,
	}, true
}

// Center - центр грані
func (t TargetInfo) Center() mgl64.Vec3 {
	return t.Block.Vec3Centre().Add(t.Normal.Mul(0.5))
}

// Destination - куди притягуємо істот: трохи перед гранню, щоб не застрягли в блоці
func (t TargetInfo) Destination() mgl64.Vec3 {
	return t.Center().Add(t.Normal.Mul(0.1))
}
