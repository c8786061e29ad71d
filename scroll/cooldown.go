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

import (
	"time"

	"github.com/google/uuid"
)

type playerScroll struct {
	player uuid.UUID
	typ    Type
}

// Cooldowns пам'ятає коли гравець востаннє використав кожен тип сувою.
// Доступ тільки з потоку тіків, тому без м'ютекса
type Cooldowns struct {
	now  func() time.Time
	last map[playerScroll]time.Time
}

// NewCooldowns створює таблицю. now можна підмінити в тестах
func NewCooldowns(now func() time.Time) *Cooldowns {
	if now == nil {
		now = time.Now
	}
	return &Cooldowns{now: now, last: make(map[playerScroll]time.Time)}
}

// Remaining повертає скільки ще чекати. Нуль означає що можна кастувати
func (c *Cooldowns) Remaining(player uuid.UUID, t Type, cooldown time.Duration) time.Duration {
	last, ok := c.last[playerScroll{player, t}]
	if !ok {
		return 0
	}
	left := cooldown - c.now().Sub(last)
	if left <= 0 {
		delete(c.last, playerScroll{player, t})
		return 0
	}
	return left
}

// Start запускає відлік з поточного моменту
func (c *Cooldowns) Start(player uuid.UUID, t Type) {
	c.last[playerScroll{player, t}] = c.now()
}

// Reset повертає кулдаун, наприклад коли каст скасовано
func (c *Cooldowns) Reset(player uuid.UUID, t Type) {
	delete(c.last, playerScroll{player, t})
}
