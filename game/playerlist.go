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

// Йоу, чат! Список гравців у табі. Тут же keepalive:
// відповідь на нього дає пінг, який ми одразу показуємо всім.

package game

import (
	"time"

	"FlowyScrolls/client"
	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/Tnze/go-mc/server"
)

type playerList struct {
	keepAlive *server.KeepAlive
	pingList  *server.PlayerList
}

var (
	joinActions = client.NewPlayerInfoAction(
		client.PlayerInfoAddPlayer,
		client.PlayerInfoUpdateGameMode,
		client.PlayerInfoUpdateListed,
	)
	latencyActions = client.NewPlayerInfoAction(client.PlayerInfoUpdateLatency)
)

// each викликає fn для кожного клієнта в табі
func (pl *playerList) each(fn func(c *client.Client)) {
	pl.pingList.Range(func(c server.PlayerListClient, _ server.PlayerSample) {
		fn(c.(*client.Client))
	})
}

// addPlayer показує новачка всім, а новачку - всіх разом із ним самим
func (pl *playerList) addPlayer(c *client.Client, p *world.Player) {
	pl.pingList.ClientJoin(c, server.PlayerSample{Name: p.Name, ID: p.UUID})
	pl.keepAlive.ClientJoin(c)
	c.AddHandler(packetid.ServerboundKeepAlive, keepAliveHandler(pl.keepAlive))

	everyone := make([]*world.Player, 0, pl.pingList.Len())
	pl.each(func(other *client.Client) {
		if other != c {
			other.SendPlayerInfoUpdate(joinActions, []*world.Player{p})
		}
		everyone = append(everyone, other.GetPlayer())
	})
	c.SendPlayerInfoUpdate(joinActions, everyone)
}

func (pl *playerList) updateLatency(c *client.Client, latency time.Duration) {
	p := c.GetPlayer()
	p.Inputs.Lock()
	p.Inputs.Latency = latency
	p.Inputs.Unlock()
	pl.each(func(other *client.Client) {
		other.SendPlayerInfoUpdate(latencyActions, []*world.Player{p})
	})
}

func (pl *playerList) removePlayer(c *client.Client) {
	pl.pingList.ClientLeft(c)
	pl.keepAlive.ClientLeft(c)
	p := c.GetPlayer()
	pl.each(func(other *client.Client) {
		other.SendPlayerInfoRemove([]*world.Player{p})
	})
}

func keepAliveHandler(k *server.KeepAlive) client.PacketHandler {
	return func(p pk.Packet, c *client.Client) error {
		var id pk.Long
		if err := p.Scan(&id); err != nil {
			return err
		}
		k.ClientTick(c)
		return nil
	}
}
