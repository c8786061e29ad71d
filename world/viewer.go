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

// Йоу, чат! Світ нічого не знає про мережу: все, що бачить гравець,
// він отримує через ці інтерфейси, а реалізує їх client.Client.

package world

import (
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/level/block"

	"FlowyScrolls/world/entity"
)

// Client - з'єднання гравця очима світу
type Client interface {
	ChunkViewer                                                           // для роботи з чанками
	EntityViewer                                                          // для роботи з сутностями
	SendDisconnect(reason chat.Message)                                   // відправити повідомлення про відключення
	SendPlayerPosition(pos [3]float64, rot [2]float32) (teleportID int32) // телепортувати гравця
	SendSetChunkCacheCenter(chunkPos [2]int32)                            // встановити центр завантаження чанків
	SendSystemChat(msg chat.Message, overlay bool)                        // системне повідомлення

	// Блок тільки для цього клієнта, світ не змінюється
	SendBlockUpdate(pos [3]int, state block.StateID)
	SendParticle(id int32, pos [3]float64, spread, speed float32, count int32)
	SendSound(name string, pos [3]float64, volume, pitch float32)
	SendEntityMotion(id int32, velocity [3]float64)
	SendHealth(health float32, food int32, saturation float32)
	SendContainerSlot(slot int16, stack *ItemStack)
}

type ChunkViewer interface {
	ViewChunkLoad(pos level.ChunkPos, c *level.Chunk) // завантажити чанк
	ViewChunkUnload(pos level.ChunkPos)               // вивантажити чанк
	ViewBlockUpdate(pos [3]int, state block.StateID)  // блок у чанку змінився
}

// EntityViewer отримує все, що відбувається з сутностями в зоні видимості
type EntityViewer interface {
	ViewAddPlayer(p *Player)                                                      // додати гравця в зону видимості
	ViewAddMob(m *Mob)                                                            // додати моба
	ViewEntityData(id int32, data entity.MetadataSet)                             // змінити метадані
	ViewRemoveEntities(entityIDs []int32)                                         // видалити сутності
	ViewMoveEntityPos(id int32, delta [3]int16, onGround bool)                    // рух сутності
	ViewMoveEntityPosAndRot(id int32, delta [3]int16, rot [2]int8, onGround bool) // рух + поворот
	ViewMoveEntityRot(id int32, rot [2]int8, onGround bool)                       // поворот сутності
	ViewRotateHead(id int32, yaw int8)                                            // поворот голови
	ViewTeleportEntity(id int32, pos [3]float64, rot [2]int8, onGround bool)      // телепортація
}
