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


// Йоу, чат! Пакети сутностей. Малий рух іде дельтою в 1/4096 блока,
// великий - телепортом з абсолютними координатами.

package client

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"FlowyScrolls/world"
	"FlowyScrolls/world/entity"
	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
)

// position - три Double підряд
func position(pos [3]float64) pk.Tuple {
	return pk.Tuple{pk.Double(pos[0]), pk.Double(pos[1]), pk.Double(pos[2])}
}

func delta(d [3]int16) pk.Tuple {
	return pk.Tuple{pk.Short(d[0]), pk.Short(d[1]), pk.Short(d[2])}
}

// angle переводить градуси в 1/256 оберту
func angle(deg float32) pk.Angle {
	return pk.Angle(int8(int32(deg * 256 / 360)))
}

// velocityShort кодує швидкість в 1/8000 блока за тік. Клієнт приймає не більше 3.9
func velocityShort(v float64) pk.Short {
	return pk.Short(mgl64.Clamp(v, -3.9, 3.9) * 8000)
}

func velocity(v [3]float64) pk.Tuple {
	return pk.Tuple{velocityShort(v[0]), velocityShort(v[1]), velocityShort(v[2])}
}

func (c *Client) SendAddPlayer(p *world.Player) {
	c.SendPacket(
		packetid.ClientboundAddPlayer,
		pk.VarInt(p.EntityID),
		pk.UUID(p.UUID),
		position(p.Position),
		angle(p.Rotation[0]),
		angle(p.Rotation[1]),
	)
}

// SendAddMob - моби йдуть загальним пакетом AddEntity, на відміну від гравців
func (c *Client) SendAddMob(m *world.Mob) {
	c.SendPacket(
		packetid.ClientboundAddEntity,
		pk.VarInt(m.EntityID),
		pk.UUID(m.UUID),
		pk.VarInt(m.Kind.TypeID()),
		position(m.Position),
		angle(m.Rotation[1]),
		angle(m.Rotation[0]),
		angle(m.Rotation[0]), // голова
		pk.VarInt(0),
		velocity(m.Velocity),
	)
}

func (c *Client) SendRemoveEntities(ids []int32) {
	list := make([]pk.VarInt, len(ids))
	for i, id := range ids {
		list[i] = pk.VarInt(id)
	}
	c.SendPacket(packetid.ClientboundRemoveEntities, pk.Array(list))
}

func (c *Client) SendMoveEntitiesPos(eid int32, d [3]int16, onGround bool) {
	c.SendPacket(packetid.ClientboundMoveEntityPos, pk.VarInt(eid), delta(d), pk.Boolean(onGround))
}

func (c *Client) SendMoveEntitiesPosAndRot(eid int32, d [3]int16, rot [2]int8, onGround bool) {
	c.SendPacket(
		packetid.ClientboundMoveEntityPosRot,
		pk.VarInt(eid),
		delta(d),
		pk.Angle(rot[0]),
		pk.Angle(rot[1]),
		pk.Boolean(onGround),
	)
}

func (c *Client) SendMoveEntitiesRot(eid int32, rot [2]int8, onGround bool) {
	c.SendPacket(packetid.ClientboundMoveEntityRot, pk.VarInt(eid), pk.Angle(rot[0]), pk.Angle(rot[1]), pk.Boolean(onGround))
}

// SendRotateHead - голова крутиться окремо від тіла
func (c *Client) SendRotateHead(eid int32, yaw int8) {
	c.SendPacket(packetid.ClientboundRotateHead, pk.VarInt(eid), pk.Angle(yaw))
}

func (c *Client) SendTeleportEntity(eid int32, pos [3]float64, rot [2]int8, onGround bool) {
	c.SendPacket(
		packetid.ClientboundTeleportEntity,
		pk.VarInt(eid),
		position(pos),
		pk.Angle(rot[0]),
		pk.Angle(rot[1]),
		pk.Boolean(onGround),
	)
}

// SendEntityMotion штовхає сутність. Для власного ID гравця клієнт рухає самого гравця
func (c *Client) SendEntityMotion(id int32, v [3]float64) {
	c.SendPacket(packetid.ClientboundSetEntityMotion, pk.VarInt(id), velocity(v))
}

func (c *Client) SendEntityData(id int32, data entity.MetadataSet) {
	c.SendPacket(packetid.ClientboundSetEntityData, pk.VarInt(id), data)
}

var teleportCounter atomic.Int32

// SendPlayerPosition переносить самого гравця. Поки клієнт не підтвердить
// повернений ID, його рухи не приймаються
func (c *Client) SendPlayerPosition(pos [3]float64, rot [2]float32) (teleportID int32) {
	teleportID = teleportCounter.Add(1)
	c.SendPacket(
		packetid.ClientboundPlayerPosition,
		position(pos),
		pk.Float(rot[0]),
		pk.Float(rot[1]),
		pk.Byte(0), // всі координати абсолютні
		pk.VarInt(teleportID),
	)
	return
}

func (c *Client) SendSetDefaultSpawnPosition(xyz [3]int32, angle float32) {
	c.SendPacket(
		packetid.ClientboundSetDefaultSpawnPosition,
		pk.Position{X: int(xyz[0]), Y: int(xyz[1]), Z: int(xyz[2])},
		pk.Float(angle),
	)
}

func (c *Client) ViewAddPlayer(p *world.Player)  { c.SendAddPlayer(p) }
func (c *Client) ViewAddMob(m *world.Mob)        { c.SendAddMob(m) }
func (c *Client) ViewRemoveEntities(ids []int32) { c.SendRemoveEntities(ids) }
func (c *Client) ViewEntityData(id int32, data entity.MetadataSet) {
	c.SendEntityData(id, data)
}

func (c *Client) ViewMoveEntityPos(id int32, d [3]int16, onGround bool) {
	c.SendMoveEntitiesPos(id, d, onGround)
}

func (c *Client) ViewMoveEntityPosAndRot(id int32, d [3]int16, rot [2]int8, onGround bool) {
	c.SendMoveEntitiesPosAndRot(id, d, rot, onGround)
}

func (c *Client) ViewMoveEntityRot(id int32, rot [2]int8, onGround bool) {
	c.SendMoveEntitiesRot(id, rot, onGround)
}

func (c *Client) ViewRotateHead(id int32, yaw int8) { c.SendRotateHead(id, yaw) }

func (c *Client) ViewTeleportEntity(id int32, pos [3]float64, rot [2]int8, onGround bool) {
	c.SendTeleportEntity(id, pos, rot, onGround)
}
