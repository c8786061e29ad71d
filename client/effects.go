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


// Йоу, чат! Пакети, якими живуть сувої: блоки, частинки, звуки, здоров'я, хотбар.

package client

import (
	"math/rand"

	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/data/packetid"
	"github.com/Tnze/go-mc/level/block"
	pk "github.com/Tnze/go-mc/net/packet"
)

// soundCategoryPlayer - категорія звуків гравця в налаштуваннях гучності
const soundCategoryPlayer = 7

// SendBlockUpdate показує клієнту блок. Світ на сервері від цього не змінюється,
// тому так само малюються фантомні блоки метеорита
func (c *Client) SendBlockUpdate(pos [3]int, state block.StateID) {
	c.SendPacket(
		packetid.ClientboundBlockUpdate,
		pk.Position{X: pos[0], Y: pos[1], Z: pos[2]},
		pk.VarInt(state),
	)
}

// SendBlockChangedAck підтверджує клієнту, що сервер обробив його дію з блоком
func (c *Client) SendBlockChangedAck(sequence int32) {
	c.SendPacket(packetid.ClientboundBlockChangedAck, pk.VarInt(sequence))
}

// SendParticle показує частинки. Розкид однаковий по всіх осях
func (c *Client) SendParticle(id int32, pos [3]float64, spread, speed float32, count int32) {
	c.SendPacket(
		packetid.ClientboundLevelParticles,
		pk.VarInt(id),
		pk.Boolean(false), // далекий показ
		position(pos),
		pk.Float(spread),
		pk.Float(spread),
		pk.Float(spread),
		pk.Float(speed),
		pk.Int(count),
	)
}

// SendSound грає звук за ідентифікатором, без реєстру звуків
func (c *Client) SendSound(name string, pos [3]float64, volume, pitch float32) {
	c.SendPacket(
		packetid.ClientboundSound,
		pk.VarInt(0), // 0 - звук задано ідентифікатором
		pk.Identifier(name),
		pk.Boolean(false), // без фіксованого радіусу
		pk.VarInt(soundCategoryPlayer),
		pk.Int(int32(pos[0]*8)),
		pk.Int(int32(pos[1]*8)),
		pk.Int(int32(pos[2]*8)),
		pk.Float(volume),
		pk.Float(pitch),
		pk.Long(rand.Int63()),
	)
}

func (c *Client) SendHealth(health float32, food int32, saturation float32) {
	c.SendPacket(packetid.ClientboundSetHealth, pk.Float(health), pk.VarInt(food), pk.Float(saturation))
}

// SendContainerSlot оновлює слот інвентаря гравця. nil - порожній слот
func (c *Client) SendContainerSlot(slot int16, stack *world.ItemStack) {
	c.SendPacket(
		packetid.ClientboundContainerSetSlot,
		pk.Byte(0),   // вікно інвентаря гравця
		pk.VarInt(0), // номер стану
		pk.Short(slot),
		Slot{stack},
	)
}

func (c *Client) ViewBlockUpdate(pos [3]int, state block.StateID) { c.SendBlockUpdate(pos, state) }
