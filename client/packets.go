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

package client

import (
	"bytes"
	"encoding/binary"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/chat/sign"
	"github.com/Tnze/go-mc/data/packetid"
	"github.com/Tnze/go-mc/level"
	pk "github.com/Tnze/go-mc/net/packet"
)

func (c *Client) SendPacket(id packetid.ClientboundPacketID, fields ...pk.FieldEncoder) {
	var buffer bytes.Buffer
	for _, f := range fields {
		if _, err := f.WriteTo(&buffer); err != nil {
			c.log.Panic("Marshal packet error", zap.Stringer("packet", id), zap.Error(err))
		}
	}
	c.queue.Push(pk.Packet{ID: int32(id), Data: buffer.Bytes()})
}

func (c *Client) SendKeepAlive(id int64) {
	c.SendPacket(packetid.ClientboundKeepAlive, pk.Long(id))
}

// SendDisconnect - останній пакет, після нього з'єднання закривається
func (c *Client) SendDisconnect(reason chat.Message) {
	c.log.Debug("Disconnect player", zap.String("reason", reason.ClearString()))
	c.SendPacket(packetid.ClientboundDisconnect, reason)
}

func (c *Client) SendLogin(w *world.World, p *world.Player) {
	hashedSeed := w.HashedSeed()
	c.SendPacket(
		packetid.ClientboundLogin,
		pk.Int(p.EntityID),
		pk.Boolean(false), // хардкор
		pk.Byte(p.Gamemode),
		pk.Byte(-1),
		pk.Array([]pk.Identifier{
			pk.Identifier(w.Name()),
		}),
		pk.NBT(world.NetworkCodec),
		pk.Identifier("minecraft:overworld"),
		pk.Identifier(w.Name()),
		pk.Long(binary.BigEndian.Uint64(hashedSeed[:8])),
		pk.VarInt(0), // клієнт ігнорує
		pk.VarInt(p.ViewDistance),
		pk.VarInt(p.ViewDistance), // дальність симуляції
		pk.Boolean(false),         // скорочений F3
		pk.Boolean(false),         // екран смерті, гравець відроджується одразу
		pk.Boolean(false),         // debug-світ
		pk.Boolean(true),          // плоский світ: горизонт на рівні FlatY
		pk.Boolean(false),         // місце смерті
	)
}

func (c *Client) SendServerData(motd *chat.Message, favIcon string, enforceSecureProfile bool) {
	c.SendPacket(
		packetid.ClientboundServerData,
		motd,
		pk.Option[pk.String, *pk.String]{
			Has: favIcon != "",
			Val: pk.String(favIcon),
		},
		pk.Boolean(enforceSecureProfile),
	)
}

// Дії для [Client.SendPlayerInfoUpdate], порядок як у протоколі
const (
	PlayerInfoAddPlayer = iota
	PlayerInfoInitializeChat
	PlayerInfoUpdateGameMode
	PlayerInfoUpdateListed
	PlayerInfoUpdateLatency
	PlayerInfoUpdateDisplayName
	PlayerInfoEnumGuard
)

func NewPlayerInfoAction(actions ...int) pk.FixedBitSet {
	enumSet := pk.NewFixedBitSet(PlayerInfoEnumGuard)
	for _, action := range actions {
		enumSet.Set(action, true)
	}
	return enumSet
}

// SendPlayerInfoUpdate пише для кожного гравця тільки поля вибраних дій
func (c *Client) SendPlayerInfoUpdate(actions pk.FixedBitSet, players []*world.Player) {
	if actions.Get(PlayerInfoInitializeChat) || actions.Get(PlayerInfoUpdateDisplayName) {
		c.log.Panic("Unsupported player info action")
	}
	fields := []pk.FieldEncoder{actions, pk.VarInt(len(players))}
	for _, p := range players {
		fields = append(fields, pk.UUID(p.UUID))
		if actions.Get(PlayerInfoAddPlayer) {
			fields = append(fields, pk.String(p.Name), pk.Array(p.Properties))
		}
		if actions.Get(PlayerInfoUpdateGameMode) {
			fields = append(fields, pk.VarInt(p.Gamemode))
		}
		if actions.Get(PlayerInfoUpdateListed) {
			fields = append(fields, pk.Boolean(true))
		}
		if actions.Get(PlayerInfoUpdateLatency) {
			p.Inputs.Lock()
			ms := p.Inputs.Latency.Milliseconds()
			p.Inputs.Unlock()
			fields = append(fields, pk.VarInt(ms))
		}
	}
	c.SendPacket(packetid.ClientboundPlayerInfoUpdate, fields...)
}

func (c *Client) SendPlayerInfoRemove(players []*world.Player) {
	ids := make([]pk.UUID, len(players))
	for i, p := range players {
		ids[i] = pk.UUID(p.UUID)
	}
	c.SendPacket(packetid.ClientboundPlayerInfoRemove, pk.Array(ids))
}

func (c *Client) SendLevelChunkWithLight(pos level.ChunkPos, chunk *level.Chunk) {
	c.SendPacket(packetid.ClientboundLevelChunkWithLight, pos, chunk)
}

func (c *Client) SendForgetLevelChunk(pos level.ChunkPos) {
	c.SendPacket(packetid.ClientboundForgetLevelChunk, pos)
}

// SendSystemChat - overlay показує текст над хотбаром замість чату
func (c *Client) SendSystemChat(msg chat.Message, overlay bool) {
	c.SendPacket(packetid.ClientboundSystemChat, msg, pk.Boolean(overlay))
}

func (c *Client) SendPlayerChat(
	sender uuid.UUID,
	index int32,
	signature pk.Option[sign.Signature, *sign.Signature],
	body *sign.PackedMessageBody,
	unsignedContent *chat.Message,
	filter *sign.FilterMask,
	chatType *chat.Type,
) {
	c.SendPacket(
		packetid.ClientboundPlayerChat,
		pk.UUID(sender),
		pk.VarInt(index),
		signature,
		body,
		pk.OptionEncoder[*chat.Message]{
			Has: unsignedContent != nil,
			Val: unsignedContent,
		},
		filter,
		chatType,
	)
}

func (c *Client) SendSetChunkCacheCenter(chunkPos [2]int32) {
	c.SendPacket(
		packetid.ClientboundSetChunkCacheCenter,
		pk.VarInt(chunkPos[0]),
		pk.VarInt(chunkPos[1]),
	)
}

func (c *Client) ViewChunkLoad(pos level.ChunkPos, chunk *level.Chunk) {
	c.SendLevelChunkWithLight(pos, chunk)
}
func (c *Client) ViewChunkUnload(pos level.ChunkPos) { c.SendForgetLevelChunk(pos) }
