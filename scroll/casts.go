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

import "github.com/google/uuid"

// Cancelable - будь-який активний каст
type Cancelable interface {
	Cancel()
}

// Casts - таблиця активних кастів. Гравець може мати не більше одного
// активного касту кожного типу
type Casts struct {
	active map[playerScroll]Cancelable
}

func NewCasts() *Casts {
	return &Casts{active: make(map[playerScroll]Cancelable)}
}

// Active перевіряє чи гравець вже щось кастує
func (c *Casts) Active(player uuid.UUID, t Type) bool {
	_, ok := c.active[playerScroll{player, t}]
	return ok
}

// Begin реєструє каст. Повертає false якщо вже є активний
func (c *Casts) Begin(player uuid.UUID, t Type, cast Cancelable) bool {
	key := playerScroll{player, t}
	if _, ok := c.active[key]; ok {
		return false
	}
	c.active[key] = cast
	return true
}

// End знімає каст з таблиці, але тільки якщо там записаний саме він
func (c *Casts) End(player uuid.UUID, t Type, cast Cancelable) {
	key := playerScroll{player, t}
	if c.active[key] == cast {
		delete(c.active, key)
	}
}

// CancelAll скасовує всі касти цього типу, наприклад при вимкненні сервера
func (c *Casts) CancelAll(t Type) {
	var list []Cancelable
	for k, v := range c.active {
		if k.typ == t {
			list = append(list, v)
			delete(c.active, k)
		}
	}
	for _, v := range list {
		v.Cancel()
	}
}

// Len - кількість активних кастів
func (c *Casts) Len() int { return len(c.active) }
