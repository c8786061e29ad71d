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

package scroll

// Particle - параметри спалаху частинок
type Particle struct {
	Name   string  // наприклад "minecraft:flame"
	Count  int     // скільки частинок
	Spread float64 // розкид по кожній осі
	Speed  float64 // швидкість частинок
}

// With повертає копію з іншою кількістю частинок
func (p Particle) With(count int) Particle {
	p.Count = count
	return p
}

// Sound - звук з гучністю і висотою
type Sound struct {
	Name   string // наприклад "minecraft:entity.generic.explode"
	Volume float32
	Pitch  float32
}
