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

// Package scrolltest містить світ, гравців і предмети в пам'яті
// для тестування сувоїв без запуску сервера.
// Час просувається вручну через world.Scheduler.Advance.
package scrolltest

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/chat"
)

const Bedrock scroll.Material = "minecraft:bedrock"

// NewScheduler повертає справжній планувальник сервера, який треба крутити руками
func NewScheduler() *world.Scheduler {
	return world.NewScheduler(zap.NewNop())
}

// ParticleEvent - записаний спалах частинок
type ParticleEvent struct {
	scroll.Particle
	Pos mgl64.Vec3
}

// SoundEvent - записаний звук
type SoundEvent struct {
	scroll.Sound
	Pos mgl64.Vec3
}

// World - плаский світ: бедрок на y<=0, камінь до Ground включно, вище повітря.
// Blocks перекриває будь-який блок
type World struct {
	Ground   int
	Blocks   map[scroll.BlockPos]scroll.Material
	Unloaded bool

	Entities  []scroll.Living
	Players   []*Player
	Particles []ParticleEvent
	Sounds    []SoundEvent
	SetCalls  int
}

func NewWorld(ground int) *World {
	return &World{Ground: ground, Blocks: make(map[scroll.BlockPos]scroll.Material)}
}

func (w *World) Name() string { return "minecraft:overworld" }

func (w *World) Loaded(scroll.BlockPos) bool { return !w.Unloaded }

func (w *World) Block(pos scroll.BlockPos) scroll.Material {
	if m, ok := w.Blocks[pos]; ok {
		return m
	}
	switch {
	case pos.Y() <= 0:
		return Bedrock
	case pos.Y() <= w.Ground:
		return scroll.Stone
	}
	return scroll.Air
}

func (w *World) SetBlock(pos scroll.BlockPos, m scroll.Material) {
	w.SetCalls++
	w.Blocks[pos] = m
}

func (w *World) HighestBlockY(x, z int) int {
	top := w.Ground
	for pos, m := range w.Blocks {
		if pos.X() == x && pos.Z() == z && pos.Y() > top && m.Solid() {
			top = pos.Y()
		}
	}
	for y := top; y > 0; y-- {
		if w.Block(scroll.BlockPos{x, y, z}).Solid() {
			return y
		}
	}
	return 0
}

func (w *World) LivingEntities(center mgl64.Vec3, radius float64) (list []scroll.Living) {
	for _, e := range w.Entities {
		if e.Valid() && e.Position().Sub(center).Len() <= radius {
			list = append(list, e)
		}
	}
	for _, p := range w.Players {
		if p.Valid() && p.Position().Sub(center).Len() <= radius {
			list = append(list, p)
		}
	}
	return
}

func (w *World) Observers() []scroll.Observer {
	list := make([]scroll.Observer, 0, len(w.Players))
	for _, p := range w.Players {
		list = append(list, p)
	}
	return list
}

func (w *World) Particle(p scroll.Particle, pos mgl64.Vec3) {
	w.Particles = append(w.Particles, ParticleEvent{p, pos})
}

func (w *World) Sound(s scroll.Sound, pos mgl64.Vec3) {
	w.Sounds = append(w.Sounds, SoundEvent{s, pos})
}

// AddEntity додає моба
func (w *World) AddEntity(pos mgl64.Vec3) *Entity {
	e := &Entity{ID: int32(len(w.Entities) + 1000), Pos: pos, Health: 20}
	w.Entities = append(w.Entities, e)
	return e
}

// AddPlayer додає гравця, який стоїть у pos і дивиться у напрямку yaw/pitch
func (w *World) AddPlayer(name string, pos mgl64.Vec3, yaw, pitch float64) *Player {
	p := &Player{
		Entity:     Entity{ID: int32(len(w.Players) + 1), Pos: pos, Health: 20},
		PlayerName: name,
		ID:         uuid.New(),
		Yaw:        yaw,
		Pitch:      pitch,
		IsOnline:   true,
		Fake:       make(map[scroll.BlockPos]scroll.Material),
		world:      w,
	}
	w.Players = append(w.Players, p)
	return p
}

// Entity - моб. SetVelocity одразу зсуває позицію, як один тік фізики
type Entity struct {
	ID        int32
	Pos       mgl64.Vec3
	Vel       mgl64.Vec3
	Health    float64
	Damaged   float64
	Teleports int
	Dead      bool
}

func (e *Entity) EntityID() int32 { return e.ID }
func (e *Entity) Position() mgl64.Vec3 { return e.Pos }
func (e *Entity) IsPlayer() bool { return false }
func (e *Entity) Valid() bool { return !e.Dead }

func (e *Entity) Teleport(pos mgl64.Vec3) {
	e.Pos = pos
	e.Teleports++
}

func (e *Entity) SetVelocity(v mgl64.Vec3) {
	e.Vel = v
	e.Pos = e.Pos.Add(v)
}

func (e *Entity) Damage(amount float64) {
	e.Damaged += amount
	e.Health -= amount
	if e.Health <= 0 {
		e.Dead = true
	}
}

// Player - гравець. Fake - блоки, які клієнт зараз бачить замість справжніх
type Player struct {
	Entity
	PlayerName string
	ID         uuid.UUID
	Yaw, Pitch float64
	IsOnline   bool
	Item       *Item

	Messages     []string
	Heard        []scroll.Sound
	Fake         map[scroll.BlockPos]scroll.Material
	BlockChanges int

	world *World
}

func (p *Player) IsPlayer() bool { return true }
func (p *Player) Valid() bool { return p.IsOnline && !p.Dead }
func (p *Player) UUID() uuid.UUID { return p.ID }
func (p *Player) Online() bool { return p.IsOnline }
func (p *Player) Name() string { return p.PlayerName }
func (p *Player) Rotation() (float64, float64) { return p.Yaw, p.Pitch }
func (p *Player) PlaySound(s scroll.Sound) { p.Heard = append(p.Heard, s) }

func (p *Player) EyePosition() mgl64.Vec3 {
	return p.Pos.Add(mgl64.Vec3{0, 1.62, 0})
}

func (p *Player) SendMessage(msg chat.Message) {
	p.Messages = append(p.Messages, msg.ClearString())
}

// HeldItem повертає nil-інтерфейс якщо в руці нічого
func (p *Player) HeldItem() scroll.Item {
	if p.Item == nil {
		return nil
	}
	return p.Item
}

// SendBlockChange запам'ятовує фейковий блок. Якщо прийшов справжній блок - фейк знято
func (p *Player) SendBlockChange(pos scroll.BlockPos, m scroll.Material) {
	p.BlockChanges++
	if p.world != nil && p.world.Block(pos) == m {
		delete(p.Fake, pos)
		return
	}
	p.Fake[pos] = m
}

// LookAt повертає гравця обличчям до точки
func (p *Player) LookAt(target mgl64.Vec3) {
	yaw, pitch := scroll.YawPitch(target.Sub(p.EyePosition()))
	p.Yaw, p.Pitch = mgl64.RadToDeg(yaw), mgl64.RadToDeg(pitch)
}

// Item - стак сувоїв
type Item struct {
	N    int
	Tags map[string][]byte
}

func NewItem(t scroll.Type, n int) *Item {
	it := &Item{N: n, Tags: make(map[string][]byte)}
	scroll.MarkItem(it, t)
	return it
}

func (it *Item) Count() int { return it.N }
func (it *Item) SetCount(n int) { it.N = n }

func (it *Item) Tag(key string) ([]byte, bool) {
	v, ok := it.Tags[key]
	return v, ok
}

func (it *Item) SetTag(key string, data []byte) {
	it.Tags[key] = append([]byte(nil), data...)
}

// Service збирає сервіс сувоїв поверх тестового світу і планувальника
func Service(t testing.TB, w *World, s *world.Scheduler, yml string) *scroll.Service {
	t.Helper()
	cfg, err := scroll.ParseConfig(zap.NewNop(), []byte(yml), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return scroll.NewService(zap.NewNop(), cfg, w, s, nil)
}

// Near перевіряє що дві точки ближче ніж eps
func Near(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}
