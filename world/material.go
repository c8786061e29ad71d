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
	"reflect"

	"github.com/Tnze/go-mc/level/block"

	"FlowyScrolls/scroll"
)

// stateByName - стандартний стан для кожного ідентифікатора блоку.
// Стандартним вважаємо стан з нульовими властивостями, а якщо такого немає - перший
var stateByName = func() map[string]block.StateID {
	m := make(map[string]block.StateID)
	for i, b := range block.StateList {
		name := b.ID()
		if _, ok := m[name]; ok {
			continue
		}
		zero := reflect.Zero(reflect.TypeOf(b)).Interface().(block.Block)
		if s, ok := block.ToStateID[zero]; ok {
			m[name] = s
		} else {
			m[name] = block.StateID(i)
		}
	}
	return m
}()

// StateOf повертає стан блоку для матеріалу
func StateOf(m scroll.Material) (block.StateID, bool) {
	s, ok := stateByName[string(m)]
	return s, ok
}

// MaterialOf повертає матеріал стану. Невідомі стани вважаємо повітрям
func MaterialOf(s block.StateID) scroll.Material {
	if int(s) < 0 || int(s) >= len(block.StateList) {
		return scroll.Air
	}
	return scroll.Material(block.StateList[s].ID())
}

// Solid - чи можна стояти на блоці
func Solid(s block.StateID) bool { return MaterialOf(s).Solid() }
