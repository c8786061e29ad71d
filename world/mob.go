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

// Йоу, чат! Моби в нашому сервері прості: вони не ходять самі,
// але падають, ковзають по землі і реагують на удари та гравітацію сувоїв.
// Фізика рахується кожен тік до планувальника, тому задачі сувоїв бачать свіжі позиції.

package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"FlowyScrolls/scroll"
	"FlowyScrolls/world/entity"
)

// MobKind - вид моба
type MobKind int32

const (
	Zombie MobKind = iota
	Skeleton
	Pig
)

var mobKinds = [...]struct {
	name   string
	typeID int32 // ID типу сутності в протоколі 1.19.4
	health float64
}{
	Zombie:   {"zombie", 118, 20},
	Skeleton: {"skeleton", 86, 20},
	Pig:      {"pig", 72, 10},
}

func (k MobKind) String() string { return mobKinds[k].name }

// TypeID повертає мережевий ID типу сутності
func (k MobKind) TypeID() int32 { return mobKinds[k].typeID }

// MaxHealth - здоров'я щойно створеного моба
func (k MobKind) MaxHealth() float64 { return mobKinds[k].health }

// ParseMobKind шукає вид моба за назвою, з "minecraft:" або без
func ParseMobKind(name string) (MobKind, bool) {
	for k := range mobKinds {
		if n := mobKinds[k].name; name == n || name == "minecraft:"+n {
			return MobKind(k), true
		}
	}
	return 0, false
}

// MobKindNames повертає назви всіх видів
func MobKindNames() []string {
	names := make([]string, len(mobKinds))
	for k := range mobKinds {
		names[k] = mobKinds[k].name
	}
	return names
}

const (
	mobGravity    = 0.08
	mobDrag       = 0.98
	airFriction   = 0.91
	groundFriction = 0.546
	mobHeight     = 1.8
	deathTicks    = 20 // скільки тіків лежить тіло
)

// Mob - жива істота, якою керує сервер.
// Position - справжня позиція, pos0 - остання розіслана гравцям
type Mob struct {
	Entity
	UUID     uuid.UUID
	Kind     MobKind
	Health   float64
	Velocity mgl64.Vec3
	dead     bool
}

// Alive - моб ще не помер
func (m *Mob) Alive() bool { return !m.dead }

// SpawnMob створює моба. Гравці побачать його на найближчому тіку
func (w *World) SpawnMob(kind MobKind, pos Position, yaw float32) *Mob {
	m := &Mob{
		Entity: Entity{
			EntityID: NewEntityID(),
			Position: pos,
			Rotation: Rotation{yaw, 0},
			pos0:     pos,
			rot0:     Rotation{yaw, 0},
		},
		UUID:   uuid.New(),
		Kind:   kind,
		Health: kind.MaxHealth(),
	}
	w.mobs[m.EntityID] = m
	w.log.Debug("Spawn mob", zap.Stringer("kind", kind), zap.Int32("id", m.EntityID))
	return m
}

// Mobs повертає живих мобів в порядку ID
func (w *World) Mobs() []*Mob {
	list := make([]*Mob, 0, len(w.mobs))
	for _, m := range w.mobs {
		if m.Alive() {
			list = append(list, m)
		}
	}
	slices.SortFunc(list, func(a, b *Mob) bool { return a.EntityID < b.EntityID })
	return list
}

// Mob шукає моба за ID
func (w *World) Mob(id int32) (*Mob, bool) {
	m, ok := w.mobs[id]
	return m, ok
}

// SetMobVelocity задає швидкість в блоках за тік
func (w *World) SetMobVelocity(m *Mob, v mgl64.Vec3) {
	m.Velocity = v
	if v[1] > 0 {
		m.OnGround = false
	}
}

// TeleportMob переносить моба і гасить його швидкість
func (w *World) TeleportMob(m *Mob, pos Position) {
	m.Position = pos
	m.Velocity = mgl64.Vec3{}
	m.OnGround = false
}

// DamageMob віднімає здоров'я. Мертвий моб лежить deathTicks тіків і зникає
func (w *World) DamageMob(m *Mob, amount float64) {
	if m.dead || amount <= 0 {
		return
	}
	m.Health -= amount
	if m.Health > 0 {
		return
	}
	m.Health = 0
	m.dead = true
	m.Velocity = mgl64.Vec3{}
	data := entity.Dead()
	for _, p := range w.players {
		if _, ok := p.EntitiesInView[m.EntityID]; ok {
			p.view.Value.ViewEntityData(m.EntityID, data)
		}
	}
	w.sched.RunLater(deathTicks, func(scroll.Task) { w.removeMob(m) })
}

func (w *World) removeMob(m *Mob) {
	delete(w.mobs, m.EntityID)
	for _, p := range w.players {
		if _, ok := p.EntitiesInView[m.EntityID]; ok {
			delete(p.EntitiesInView, m.EntityID)
			p.view.Value.ViewRemoveEntities([]int32{m.EntityID})
		}
	}
}

// pinned - чанк не можна вивантажувати, поки в ньому є моби
func (w *World) pinned(pos [2]int32) bool {
	for _, m := range w.mobs {
		if chunkPosOf(int(math.Floor(m.Position[0])), int(math.Floor(m.Position[2]))) == pos {
			return true
		}
	}
	return false
}

// solidAt - чи стоїть у точці твердий блок. Незавантажене вважаємо твердим
func (w *World) solidAt(v mgl64.Vec3) bool {
	s, ok := w.BlockState(int(math.Floor(v[0])), int(math.Floor(v[1])), int(math.Floor(v[2])))
	return !ok || Solid(s)
}

// blockedAt - чи заважає щось тілу моба з ногами в точці v
func (w *World) blockedAt(v mgl64.Vec3) bool {
	return w.solidAt(v) || w.solidAt(v.Add(mgl64.Vec3{0, mobHeight - 1, 0}))
}

// subtickMobPhysics рухає мобів: гравітація, тертя і зіткнення з блоками
func (w *World) subtickMobPhysics() {
	for _, m := range w.mobs {
		if m.dead {
			continue
		}
		pos := m.Position.Vec3()
		if !w.Loaded(int(math.Floor(pos[0])), int(math.Floor(pos[2]))) {
			continue
		}
		v := m.Velocity
		v[1] -= mobGravity

		// по горизонталі рухаємось окремо по кожній осі, щоб ковзати вздовж стін
		for _, axis := range [...]int{0, 2} {
			next := pos
			next[axis] += v[axis]
			if w.blockedAt(next) {
				v[axis] = 0
			} else {
				pos = next
			}
		}

		next := pos
		next[1] += v[1]
		switch {
		case v[1] < 0 && w.solidAt(next):
			pos[1] = math.Floor(next[1]) + 1
			v[1] = 0
			m.OnGround = true
		case v[1] > 0 && w.solidAt(next.Add(mgl64.Vec3{0, mobHeight, 0})):
			v[1] = 0
		default:
			pos = next
			m.OnGround = false
		}

		friction := airFriction
		if m.OnGround {
			friction = groundFriction
		}
		v = mgl64.Vec3{v[0] * friction, v[1] * mobDrag, v[2] * friction}
		for i := range v {
			if math.Abs(v[i]) < 0.003 {
				v[i] = 0
			}
		}
		m.Velocity = v
		m.Position = Position(pos)

		if pos[1] < minY-64 {
			// впав за межі світу
			m.Health = 0
			m.dead = true
			w.removeMob(m)
		}
	}
}

// subtickUpdateMobs показує мобів новим глядачам і розсилає їхні переміщення
func (w *World) subtickUpdateMobs() {
	for _, m := range w.mobs {
		moved := m.Position != m.pos0
		pos := [3]float64(m.Position)
		rot := m.Rotation.angles()
		w.playerViews.AtPoint(m.Position,
			func(n *playerViewNode) bool {
				if _, ok := n.Value.EntitiesInView[m.EntityID]; !ok {
					if m.Alive() {
						n.Value.ViewAddMob(m)
						n.Value.EntitiesInView[m.EntityID] = &m.Entity
					}
				} else if moved {
					n.Value.ViewTeleportEntity(m.EntityID, pos, rot, bool(m.OnGround))
				}
				return true
			},
		)
		m.pos0 = m.Position
	}
}
