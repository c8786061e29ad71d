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


// Йоу, чат! Тут пакети, якими клієнт розповідає про себе: де стоїть, куди дивиться,
// які в нього налаштування. Ми тільки записуємо це в Inputs, а тік світу
// сам вирішить, що з цим робити.

package client

import (
	"FlowyScrolls/world"
	pk "github.com/Tnze/go-mc/net/packet"
)

// update змінює Inputs під замком, який тік бере через TryLock
func (c *Client) update(fn func(in *world.Inputs)) {
	c.Inputs.Lock()
	defer c.Inputs.Unlock()
	fn(c.Inputs)
}

func clientInformation(p pk.Packet, c *Client) error {
	var info world.ClientInfo
	if err := p.Scan(&info); err != nil {
		return err
	}
	c.update(func(in *world.Inputs) { in.ClientInfo = info })
	return nil
}

func clientAcceptTeleportation(p pk.Packet, c *Client) error {
	var id pk.VarInt
	if err := p.Scan(&id); err != nil {
		return err
	}
	c.update(func(in *world.Inputs) { in.TeleportID = int32(id) })
	return nil
}

// moveFields - поля пакетів руху, кожен пакет читає свою частину
type moveFields struct {
	x, y, z    pk.Double
	yaw, pitch pk.Float
	onGround   pk.Boolean
}

func (m *moveFields) position() world.Position {
	return world.Position{float64(m.x), float64(m.y), float64(m.z)}
}

func (m *moveFields) rotation() world.Rotation {
	return world.Rotation{float32(m.yaw), float32(m.pitch)}
}

func clientMovePlayerPos(p pk.Packet, c *Client) error {
	var m moveFields
	if err := p.Scan(&m.x, &m.y, &m.z, &m.onGround); err != nil {
		return err
	}
	c.update(func(in *world.Inputs) {
		in.Position = m.position()
		in.OnGround = world.OnGround(m.onGround)
	})
	return nil
}

func clientMovePlayerPosRot(p pk.Packet, c *Client) error {
	var m moveFields
	if err := p.Scan(&m.x, &m.y, &m.z, &m.yaw, &m.pitch, &m.onGround); err != nil {
		return err
	}
	c.update(func(in *world.Inputs) {
		in.Position = m.position()
		in.Rotation = m.rotation()
		in.OnGround = world.OnGround(m.onGround)
	})
	return nil
}

func clientMovePlayerRot(p pk.Packet, c *Client) error {
	var m moveFields
	if err := p.Scan(&m.yaw, &m.pitch, &m.onGround); err != nil {
		return err
	}
	c.update(func(in *world.Inputs) {
		in.Rotation = m.rotation()
		in.OnGround = world.OnGround(m.onGround)
	})
	return nil
}

func clientMovePlayerStatusOnly(p pk.Packet, c *Client) error {
	var m moveFields
	if err := p.Scan(&m.onGround); err != nil {
		return err
	}
	c.update(func(in *world.Inputs) { in.OnGround = world.OnGround(m.onGround) })
	return nil
}

// клієнт шле рух транспорту навіть без транспорту, мовчки ігноруємо
func clientMoveVehicle(pk.Packet, *Client) error { return nil }
