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

// Йоу, чат! Інвентар тут мінімальний: тільки хотбар з дев'яти слотів.
// Сувої змінюють предмети в руці (списують кількість, пишуть теги),
// а тік раз на оновлення надсилає клієнту тільки ті слоти, що змінились.

package world

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// HotbarSlots - кількість слотів хотбару
const HotbarSlots = 9

// hotbarWindowSlot - номер першого слоту хотбару у вікні інвентаря гравця
const hotbarWindowSlot = 36

// ItemStack - стак предметів з постійними тегами
type ItemStack struct {
	Item    int32 // мережевий ID предмета
	Amount  int
	Name    string // назва, яку бачить гравець
	Tags    map[string][]byte
	version int // росте з кожною зміною, по ньому синхронізація помічає зміни
}

// NewItemStack створює стак
func NewItemStack(item int32, amount int, name string) *ItemStack {
	return &ItemStack{Item: item, Amount: amount, Name: name}
}

func (s *ItemStack) Count() int { return s.Amount }

func (s *ItemStack) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	s.Amount = n
	s.version++
}

func (s *ItemStack) Tag(key string) ([]byte, bool) {
	data, ok := s.Tags[key]
	return data, ok
}

func (s *ItemStack) SetTag(key string, data []byte) {
	if s.Tags == nil {
		s.Tags = make(map[string][]byte)
	}
	s.Tags[key] = append([]byte(nil), data...)
	s.version++
}

// TagKeys повертає ключі тегів по порядку
func (s *ItemStack) TagKeys() []string {
	keys := maps.Keys(s.Tags)
	slices.Sort(keys)
	return keys
}

type sentSlot struct {
	stack   *ItemStack
	version int
}

// Inventory - хотбар гравця
type Inventory struct {
	Hotbar [HotbarSlots]*ItemStack
	Held   int // вибраний слот хотбару
	sent   [HotbarSlots]sentSlot
}

// HeldItem повертає предмет в руці або nil
func (inv *Inventory) HeldItem() *ItemStack {
	if inv.Held < 0 || inv.Held >= HotbarSlots {
		return nil
	}
	if s := inv.Hotbar[inv.Held]; s != nil && s.Amount > 0 {
		return s
	}
	return nil
}

// Give кладе стак в руку, якщо вона порожня, інакше в перший вільний слот
func (inv *Inventory) Give(s *ItemStack) bool {
	if inv.HeldItem() == nil && inv.Held >= 0 && inv.Held < HotbarSlots {
		inv.Hotbar[inv.Held] = s
		return true
	}
	for i, slot := range inv.Hotbar {
		if slot == nil || slot.Amount <= 0 {
			inv.Hotbar[i] = s
			return true
		}
	}
	return false
}

// changed повертає слоти, які клієнт ще не бачив у поточному вигляді.
// Порожні стаки прибираються
func (inv *Inventory) changed() []int {
	var slots []int
	for i, s := range inv.Hotbar {
		if s != nil && s.Amount <= 0 {
			inv.Hotbar[i], s = nil, nil
		}
		sent := &inv.sent[i]
		if s == sent.stack && (s == nil || s.version == sent.version) {
			continue
		}
		sent.stack = s
		if s != nil {
			sent.version = s.version
		}
		slots = append(slots, i)
	}
	return slots
}

// subtickSyncInventories надсилає гравцям змінені слоти хотбару
func (w *World) subtickSyncInventories() {
	for c, p := range w.players {
		for _, i := range p.Inventory.changed() {
			c.SendContainerSlot(int16(hotbarWindowSlot+i), p.Inventory.Hotbar[i])
		}
	}
}
