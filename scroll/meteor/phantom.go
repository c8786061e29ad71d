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

// Йоу, чат! Метеорит у польоті - це ілюзія.
// Справжніх блоків у небі немає: кожному гравцю поруч ми шлемо пакет
// "тут тепер магма", а коли метеорит пролетів - "тут знову те, що було".
// Головне - нічого не забути відкликати, інакше в небі зависнуть привиди.

package meteor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"FlowyScrolls/scroll"
)

// PhantomTracker пам'ятає, які фейкові блоки бачить кожен гравець
type PhantomTracker struct {
	world        scroll.World
	viewDistance float64
	sent         map[uuid.UUID]*phantomView
}

type phantomView struct {
	obs    scroll.Observer
	blocks map[scroll.BlockPos]scroll.Material
}

func NewPhantomTracker(w scroll.World, viewDistance float64) *PhantomTracker {
	return &PhantomTracker{
		world:        w,
		viewDistance: viewDistance,
		sent:         make(map[uuid.UUID]*phantomView),
	}
}

// Render показує blocks усім гравцям у радіусі від center.
// Кожному гравцю шлемо тільки різницю з попереднім тіком
func (t *PhantomTracker) Render(center mgl64.Vec3, blocks map[scroll.BlockPos]scroll.Material) {
	visible := make(map[uuid.UUID]struct{})
	for _, obs := range t.world.Observers() {
		if !obs.Online() || scroll.HorizontalDistance(obs.Position(), center) > t.viewDistance {
			continue
		}
		id := obs.UUID()
		visible[id] = struct{}{}
		v, ok := t.sent[id]
		if !ok {
			v = &phantomView{blocks: make(map[scroll.BlockPos]scroll.Material)}
			t.sent[id] = v
		}
		v.obs = obs

		for pos := range v.blocks {
			if _, keep := blocks[pos]; !keep {
				t.revoke(v, pos)
			}
		}
		for pos, m := range blocks {
			if old, ok := v.blocks[pos]; ok && old == m {
				continue
			}
			obs.SendBlockChange(pos, m)
			v.blocks[pos] = m
		}
	}

	// Хто вийшов з радіусу або з гри - прибираємо все, що він бачив
	for id, v := range t.sent {
		if _, ok := visible[id]; ok {
			continue
		}
		if v.obs.Online() {
			for pos := range v.blocks {
				t.revoke(v, pos)
			}
		}
		delete(t.sent, id)
	}
}

// Clear відкликає взагалі все. Після цього трекер порожній
func (t *PhantomTracker) Clear() {
	for id, v := range t.sent {
		if v.obs.Online() {
			for pos := range v.blocks {
				t.revoke(v, pos)
			}
		}
		delete(t.sent, id)
	}
}

// revoke показує гравцю справжній блок замість фейкового
func (t *PhantomTracker) revoke(v *phantomView, pos scroll.BlockPos) {
	v.obs.SendBlockChange(pos, t.world.Block(pos))
	delete(v.blocks, pos)
}

// Outstanding повертає скільки фейкових блоків зараз бачить гравець
func (t *PhantomTracker) Outstanding(id uuid.UUID) int {
	if v, ok := t.sent[id]; ok {
		return len(v.blocks)
	}
	return 0
}

// Positions повертає копію множини фейкових позицій гравця
func (t *PhantomTracker) Positions(id uuid.UUID) map[scroll.BlockPos]scroll.Material {
	out := make(map[scroll.BlockPos]scroll.Material)
	if v, ok := t.sent[id]; ok {
		for pos, m := range v.blocks {
			out[pos] = m
		}
	}
	return out
}

// Observers повертає кількість гравців, яким щось показано
func (t *PhantomTracker) Observers() int { return len(t.sent) }
