// Йоу, чат! Клієнт - це одне з'єднання з гравцем.
// Вихідні пакети стоять у черзі, вхідні розбирають обробники.

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
	"go.uber.org/zap"

	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/data/packetid"
	"github.com/Tnze/go-mc/net"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/Tnze/go-mc/net/queue"
	"github.com/Tnze/go-mc/server"
)

// sendQueueSize - скільки пакетів може чекати відправки, поки мережа не встигає
const sendQueueSize = 256

// Client - з'єднання одного гравця. Читає пакети в своїй горутині
// і роздає їх обробникам, а світ пише йому через чергу
type Client struct {
	log      *zap.Logger                                     // логер з ім'ям гравця
	conn     *net.Conn                                       // TCP з'єднання після логіну
	player   *world.Player                                   // гравець у світі
	queue    server.PacketQueue                              // пакети, які чекають відправки
	handlers [packetid.ServerboundPacketIDGuard]PacketHandler // обробник на кожен ID пакета
	*world.Inputs                                            // куди обробники пишуть рухи і налаштування
}

// PacketHandler обробляє один вхідний пакет. Помилка закриває з'єднання
type PacketHandler func(p pk.Packet, c *Client) error

// New готує клієнта, але нічого не читає до Start
func New(log *zap.Logger, conn *net.Conn, player *world.Player) *Client {
	return &Client{
		log:    log,
		conn:   conn,
		player: player,
		queue:  queue.NewChannelQueue[pk.Packet](sendQueueSize),
		// масив копіюється, тому AddHandler не зачепить інших клієнтів
		handlers: defaultHandlers,
		Inputs:   &player.Inputs,
	}
}

// Start блокується, поки з'єднання живе
func (c *Client) Start() {
	sent := make(chan struct{})
	go func() {
		defer close(sent)
		c.sendLoop()
	}()
	c.receiveLoop()
	// відправник теж має зупинитись, інакше він вічно чекатиме на черзі
	c.queue.Close()
	<-sent
}

// sendLoop забирає пакети з черги і пише їх у мережу
func (c *Client) sendLoop() {
	for {
		p, ok := c.queue.Pull() // блокується, поки черга порожня
		if !ok {
			return // чергу закрили
		}
		if err := c.conn.WritePacket(p); err != nil {
			c.log.Debug("Send packet fail", zap.Error(err))
			c.conn.Close()
			return
		}
		// Після Disconnect клієнт нас уже не слухає
		if packetid.ClientboundPacketID(p.ID) == packetid.ClientboundDisconnect {
			c.conn.Close()
			return
		}
	}
}

// receiveLoop читає пакети, поки з'єднання не впаде або обробник не поверне помилку
func (c *Client) receiveLoop() {
	var packet pk.Packet // один буфер на всі пакети
	for {
		if err := c.conn.ReadPacket(&packet); err != nil {
			c.log.Debug("Receive packet fail", zap.Error(err))
			return
		}
		// Невідомий ID - клієнт зламаний або не тієї версії
		if packet.ID < 0 || packet.ID >= int32(len(c.handlers)) {
			c.log.Debug("Invalid packet id", zap.Int32("id", packet.ID), zap.Int("len", len(packet.Data)))
			return
		}
		handler := c.handlers[packet.ID]
		if handler == nil {
			continue // пакети, які нам не цікаві, просто пропускаємо
		}
		if err := handler(packet, c); err != nil {
			c.log.Error("Handle packet error",
				zap.Stringer("packet", packetid.ServerboundPacketID(packet.ID)),
				zap.Error(err),
			)
			return
		}
	}
}

// AddHandler ставить обробник пакета id тільки для цього клієнта
func (c *Client) AddHandler(id packetid.ServerboundPacketID, handler PacketHandler) {
	c.handlers[id] = handler
}

func (c *Client) GetPlayer() *world.Player { return c.player }

// defaultHandlers - обробники, які є в кожного клієнта.
// Кліки і команди додає game через AddHandler
var defaultHandlers = [packetid.ServerboundPacketIDGuard]PacketHandler{
	packetid.ServerboundAcceptTeleportation:  clientAcceptTeleportation,
	packetid.ServerboundClientInformation:    clientInformation,
	packetid.ServerboundMovePlayerPos:        clientMovePlayerPos,
	packetid.ServerboundMovePlayerPosRot:     clientMovePlayerPosRot,
	packetid.ServerboundMovePlayerRot:        clientMovePlayerRot,
	packetid.ServerboundMovePlayerStatusOnly: clientMovePlayerStatusOnly,
	packetid.ServerboundMoveVehicle:          clientMoveVehicle,
}
