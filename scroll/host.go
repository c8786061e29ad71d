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

// Йоу, чат! Сувої нічого не знають про сервер напряму.
// Все, що їм потрібно від світу, гравців і планувальника, описано тут інтерфейсами.
// Сервер реалізує їх у пакеті game, а тести - у пакеті scrolltest.

package scroll

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/Tnze/go-mc/chat"
)

// Task - запланована задача, яку можна скасувати
type Task interface {
	Cancel()
	Cancelled() bool
}

// Scheduler запускає задачі в головному потоці світу.
// Всі затримки і періоди вимірюються в тіках (1 тік = 50мс)
type Scheduler interface {
	// RunTimer викликає fn кожні period тіків, починаючи через delay тіків
	RunTimer(delay, period int, fn func(Task)) Task
	// RunLater викликає fn один раз через delay тіків
	RunLater(delay int, fn func(Task)) Task
}

// World - те, що сувої можуть робити зі світом
type World interface {
	Name() string
	Loaded(pos BlockPos) bool
	Block(pos BlockPos) Material
	SetBlock(pos BlockPos, m Material)
	// HighestBlockY повертає Y найвищого твердого блоку в колонці
	HighestBlockY(x, z int) int
	// LivingEntities повертає живих істот (разом з гравцями) в радіусі
	LivingEntities(center mgl64.Vec3, radius float64) []Living
	// Observers повертає всіх гравців світу, яким можна показувати фантомні блоки
	Observers() []Observer
	Particle(p Particle, pos mgl64.Vec3)
	Sound(s Sound, pos mgl64.Vec3)
}

// Living - жива істота: моб або гравець
type Living interface {
	EntityID() int32
	Position() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	Teleport(pos mgl64.Vec3)
	Damage(amount float64)
	IsPlayer() bool
	Valid() bool
}

// Observer - гравець, який бачить фейкові блоки
type Observer interface {
	UUID() uuid.UUID
	Position() mgl64.Vec3
	Online() bool
	// SendBlockChange показує клієнту блок m на позиції pos, не змінюючи світ
	SendBlockChange(pos BlockPos, m Material)
}

// Player - гравець з сувоєм у руці
type Player interface {
	Living
	Observer
	Name() string
	EyePosition() mgl64.Vec3
	// Rotation повертає yaw і pitch в градусах
	Rotation() (yaw, pitch float64)
	SendMessage(msg chat.Message)
	// PlaySound грає звук тільки цьому гравцю
	PlaySound(s Sound)
	HeldItem() Item
}

// Item - стак предметів з постійними тегами
type Item interface {
	Count() int
	SetCount(n int)
	Tag(key string) ([]byte, bool)
	SetTag(key string, data []byte)
}

// Vocabulary знає, які частинки і блоки існують на сервері
type Vocabulary interface {
	KnownParticle(name string) bool
	KnownMaterial(m Material) bool
}

// Look повертає одиничний вектор погляду гравця
func Look(p Player) mgl64.Vec3 {
	yaw, pitch := p.Rotation()
	return LookVector(yaw, pitch)
}

// TraceWorld пускає промінь по світу і зупиняється на першому блоці, для якого stop повертає true.
// Незавантажені блоки пропускаються
func TraceWorld(w World, from, to mgl64.Vec3, stop func(Material) bool) (RayHit, bool) {
	return Trace(from, to, func(pos BlockPos) bool {
		return w.Loaded(pos) && stop(w.Block(pos))
	})
}
