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

// Йоу, чат! Ці обробники ловлять кліки гравця.
// Пакети приходять у горутині клієнта, а світ змінюється тільки в потоці тіків,
// тому вся робота передається туди через Submit.

package game

import (
	"time"

	"FlowyScrolls/client"
	"FlowyScrolls/scroll"
	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
)

const mainHand = 0

func (g *Game) addScrollHandlers(c *client.Client) {
	c.AddHandler(packetid.ServerboundUseItem, g.handleUseItem)
	c.AddHandler(packetid.ServerboundUseItemOn, g.handleUseItemOn)
	c.AddHandler(packetid.ServerboundSwing, g.handleSwing)
	c.AddHandler(packetid.ServerboundSetCarriedItem, g.handleSetCarriedItem)
	c.AddHandler(packetid.ServerboundChatCommand, g.handleChatCommand)
}

// handleUseItem - правий клік предметом. Клієнт шле його і після кліку по блоку,
// тому сувій запускається тільки звідси
func (g *Game) handleUseItem(p pk.Packet, c *client.Client) error {
	var hand, sequence pk.VarInt
	if err := p.Scan(&hand, &sequence); err != nil {
		return err
	}
	player := c.GetPlayer()
	g.overworld.Submit(func() {
		if hand == mainHand {
			g.scrolls.interact(player, scroll.RightClick)
		}
		c.SendBlockChangedAck(int32(sequence))
	})
	return nil
}

// handleUseItemOn - правий клік по блоку. Тільки підтверджуємо, щоб клієнт не чекав
func (g *Game) handleUseItemOn(p pk.Packet, c *client.Client) error {
	var (
		hand, face, sequence pk.VarInt
		pos                  pk.Position
		cx, cy, cz           pk.Float
		inside               pk.Boolean
	)
	if err := p.Scan(&hand, &pos, &face, &cx, &cy, &cz, &inside, &sequence); err != nil {
		return err
	}
	c.SendBlockChangedAck(int32(sequence))
	return nil
}

// handleSwing - замах рукою, тобто лівий клік
func (g *Game) handleSwing(p pk.Packet, c *client.Client) error {
	var hand pk.VarInt
	if err := p.Scan(&hand); err != nil {
		return err
	}
	if hand != mainHand {
		return nil
	}
	player := c.GetPlayer()
	g.overworld.Submit(func() {
		g.scrolls.interact(player, scroll.LeftClick)
	})
	return nil
}

// handleSetCarriedItem - гравець вибрав інший слот хотбару
func (g *Game) handleSetCarriedItem(p pk.Packet, c *client.Client) error {
	var slot pk.Short
	if err := p.Scan(&slot); err != nil {
		return err
	}
	if slot < 0 || slot >= world.HotbarSlots {
		return nil
	}
	player := c.GetPlayer()
	g.overworld.Submit(func() {
		player.Inventory.Held = int(slot)
	})
	return nil
}

// handleChatCommand читає текст команди і час, підписи аргументів нам не потрібні
func (g *Game) handleChatCommand(p pk.Packet, c *client.Client) error {
	var (
		line      pk.String
		timestamp pk.Long
	)
	if err := p.Scan(&line, &timestamp); err != nil {
		return err
	}
	player := c.GetPlayer()
	if !player.SetLastChatTimestamp(time.UnixMilli(int64(timestamp))) {
		c.SendDisconnect(chat.TranslateMsg("multiplayer.disconnect.out_of_order_chat"))
		return nil
	}
	g.overworld.Submit(func() {
		g.scrolls.command(player, string(line))
	})
	return nil
}
