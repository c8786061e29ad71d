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

// Йоу, чат! Сьогодні ми розберемо як працює система тіків у нашому сервері!
// Тік - це основна одиниця часу в Minecraft, що триває 50мс (1/20 секунди).
// За цей час сервер виконує роботу від клієнтів, завантажує чанки,
// рухає гравців і мобів, просуває задачі сувоїв і розсилає зміни.

package world

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Tnze/go-mc/chat"
)

// tickLoop запускає головний цикл оновлення світу, 20 разів на секунду
func (w *World) tickLoop() {
	defer close(w.done)
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	var n uint
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.tick(n)
			n++
		}
	}
}

// tick виконує одне оновлення світу
func (w *World) tick(n uint) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()

	w.subtickJobs()
	if n%8 == 0 { // 4 рази на секунду
		w.subtickChunkLoad()
	}
	w.subtickUpdatePlayers()   // спершу приймаємо рухи від клієнтів
	w.subtickMobPhysics()      // гравітація і колізії мобів
	w.sched.Advance()          // задачі сувоїв бачать вже оновлені позиції
	w.subtickUpdateEntities()  // розсилаємо рухи гравців
	w.subtickUpdateMobs()      // і мобів
	w.subtickSyncInventories() // сувої могли щось забрати з інвентаря
}

// subtickJobs виконує роботу, яку передали інші горутини.
// Беремо тільки те, що вже лежить у черзі, щоб тік не затягувався
func (w *World) subtickJobs() {
	for i := len(w.jobs); i > 0; i-- {
		fn := <-w.jobs
		// Паніка в одній задачі не має валити весь тік
		func() {
			defer func() {
				if r := recover(); r != nil {
					w.log.Warn("Submitted job panicked", zap.Any("panic", r))
				}
			}()
			fn()
		}()
	}
}

// subtickChunkLoad відповідає за завантаження та вивантаження чанків
func (w *World) subtickChunkLoad() {
	// Оновлюємо центр завантаження для кожного гравця
	for c, p := range w.players {
		x := int32(math.Floor(p.Position[0])) >> 4
		y := int32(math.Floor(p.Position[1])) >> 4
		z := int32(math.Floor(p.Position[2])) >> 4
		if newChunkPos := [3]int32{x, y, z}; newChunkPos != p.ChunkPos {
			p.ChunkPos = newChunkPos
			c.SendSetChunkCacheCenter([2]int32{x, z})
		}
	}

	// Надсилаємо гравцям нові чанки
LoadChunk:
	for viewer, l := range w.loaders {
		for _, pos := range l.pending() {
			if !l.limiter.Allow() {
				break
			}
			if _, ok := w.chunks[pos]; !ok && !w.loadChunk(pos) {
				break LoadChunk // досягнуто глобальний ліміт
			}
			l.loaded[pos] = struct{}{}
			lc := w.chunks[pos]
			lc.AddViewer(viewer)
			lc.Lock()
			viewer.ViewChunkLoad(pos, lc.Chunk)
			lc.Unlock()
		}
	}

	// Забираємо чанки, що випали з радіусу
	for viewer, l := range w.loaders {
		for _, pos := range l.stale() {
			delete(l.loaded, pos)
			if !w.chunks[pos].RemoveViewer(viewer) {
				w.log.Panic("viewer is not found in the loaded chunk")
			}
			viewer.ViewChunkUnload(pos)
		}
	}

	// Вивантажуємо чанки без спостерігачів. Чанки, де ще працюють сувої, тримаємо
	var unloadQueue [][2]int32
	for pos, chunk := range w.chunks {
		if len(chunk.viewers) == 0 && !w.pinned(pos) {
			unloadQueue = append(unloadQueue, pos)
		}
	}
	for i := range unloadQueue {
		w.unloadChunk(unloadQueue[i])
	}
}

// subtickUpdatePlayers оновлює стан всіх гравців
// Обробляє рух, телепортацію та зону видимості
func (w *World) subtickUpdatePlayers() {
	for c, p := range w.players {
		// Клієнт якраз пише входи, заберемо їх наступного тіку
		if !p.Inputs.TryLock() {
			continue
		}
		inputs := &p.Inputs

		// Оновлюємо радіус видимості
		if p.ViewDistance != int32(inputs.ViewDistance) {
			p.ViewDistance = int32(inputs.ViewDistance)
			w.playerViews.Update(p.view, p.getView())
		}

		// Видаляємо сутності поза зоною видимості
		for id, e := range p.EntitiesInView {
			if !p.view.Box.Contains(e.Position.Vec3()) {
				delete(p.EntitiesInView, id)
				p.view.Value.ViewRemoveEntities([]int32{id})
			}
		}

		// Обробляємо телепортацію або рух
		if p.teleport != nil {
			// Чекаємо, поки клієнт підтвердить саме наш телепорт
			if inputs.TeleportID == p.teleport.ID {
				p.pos0 = p.teleport.Position
				p.rot0 = p.teleport.Rotation
				p.teleport = nil
			}
		} else {
			// за один тік далі 100 блоків не ходять
			if inputs.Position.Distance(p.Position) > 100 {
				teleportID := c.SendPlayerPosition(p.Position, p.Rotation)
				p.teleport = &TeleportRequest{
					ID:       teleportID,
					Position: p.Position,
					Rotation: p.Rotation,
				}
			} else if inputs.Position.IsValid() {
				p.pos0 = inputs.Position
				p.rot0 = inputs.Rotation
				p.OnGround = inputs.OnGround
			} else {
				w.log.Info("Player move invalid",
					zap.Float64("x", inputs.Position[0]),
					zap.Float64("y", inputs.Position[1]),
					zap.Float64("z", inputs.Position[2]),
				)
				c.SendDisconnect(chat.TranslateMsg("multiplayer.disconnect.invalid_player_movement"))
			}
		}
		p.Inputs.Unlock()
	}
}

// subtickUpdateEntities розсилає рухи гравців. Мобів рухає subtickUpdateMobs
func (w *World) subtickUpdateEntities() {
	for _, e := range w.players {
		send := e.Entity.movement()
		moved := e.Position != e.pos0
		e.Position, e.Rotation = e.pos0, e.rot0
		if moved {
			w.playerViews.Update(e.view, e.getView())
		}
		w.playerViews.AtPoint(e.Position, func(n *playerViewNode) bool {
			switch _, seen := n.Value.EntitiesInView[e.EntityID]; {
			case n.Value.Player == e:
				// свої рухи гравець знає сам
			case !seen:
				n.Value.ViewAddPlayer(e)
				n.Value.EntitiesInView[e.EntityID] = &e.Entity
			case send != nil:
				send(n.Value.EntityViewer)
			}
			return true
		})
	}
}
