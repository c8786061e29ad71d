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

// Йоу, чат! Тут сервер перекладає себе мовою сувоїв.
// Сувої знають тільки інтерфейси scroll.World і scroll.Player,
// а ми реалізуємо їх поверх world.World. Всі методи викликаються з потоку тіків.

package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/chat"
)

// eyeHeight - висота очей гравця над ногами
const eyeHeight = 1.62

// host - світ з точки зору сувоїв
type host struct {
	log *zap.Logger
	w   *world.World
}

func newHost(log *zap.Logger, w *world.World) *host {
	return &host{log: log, w: w}
}

func (h *host) Name() string { return h.w.Name() }

func (h *host) Loaded(pos scroll.BlockPos) bool { return h.w.Loaded(pos.X(), pos.Z()) }

func (h *host) Block(pos scroll.BlockPos) scroll.Material {
	s, ok := h.w.BlockState(pos.X(), pos.Y(), pos.Z())
	if !ok {
		return scroll.Air
	}
	return world.MaterialOf(s)
}

func (h *host) SetBlock(pos scroll.BlockPos, m scroll.Material) {
	s, ok := world.StateOf(m)
	if !ok {
		h.log.Warn("Unknown block material", zap.String("material", string(m)))
		return
	}
	h.w.SetBlockState(pos.X(), pos.Y(), pos.Z(), s)
}

func (h *host) HighestBlockY(x, z int) int { return h.w.HighestBlock(x, z, world.Solid) }

func (h *host) LivingEntities(center mgl64.Vec3, radius float64) []scroll.Living {
	var list []scroll.Living
	for _, m := range h.w.Mobs() {
		if m.Position.Vec3().Sub(center).Len() <= radius {
			list = append(list, &hostMob{h: h, m: m})
		}
	}
	for _, p := range h.w.Players() {
		if p.Position.Vec3().Sub(center).Len() <= radius {
			list = append(list, h.player(p))
		}
	}
	return list
}

func (h *host) Observers() []scroll.Observer {
	players := h.w.Players()
	list := make([]scroll.Observer, len(players))
	for i, p := range players {
		list[i] = h.player(p)
	}
	return list
}

func (h *host) Particle(p scroll.Particle, pos mgl64.Vec3) {
	id, ok := world.ParticleID(p.Name)
	if !ok || p.Count <= 0 {
		return
	}
	h.w.Particle(id, pos, p.Spread, p.Speed, p.Count)
}

func (h *host) Sound(s scroll.Sound, pos mgl64.Vec3) {
	h.w.Sound(s.Name, pos, s.Volume, s.Pitch)
}

func (h *host) player(p *world.Player) *hostPlayer { return &hostPlayer{h: h, p: p} }

// hostMob - моб для сувоїв
type hostMob struct {
	h *host
	m *world.Mob
}

func (e *hostMob) EntityID() int32          { return e.m.EntityID }
func (e *hostMob) Position() mgl64.Vec3     { return e.m.Position.Vec3() }
func (e *hostMob) SetVelocity(v mgl64.Vec3) { e.h.w.SetMobVelocity(e.m, v) }
func (e *hostMob) Teleport(pos mgl64.Vec3)  { e.h.w.TeleportMob(e.m, world.Position(pos)) }
func (e *hostMob) Damage(amount float64)    { e.h.w.DamageMob(e.m, amount) }
func (e *hostMob) IsPlayer() bool           { return false }
func (e *hostMob) Valid() bool              { return e.m.Alive() }

// hostPlayer - гравець для сувоїв
type hostPlayer struct {
	h *host
	p *world.Player
}

func (p *hostPlayer) EntityID() int32          { return p.p.EntityID }
func (p *hostPlayer) Position() mgl64.Vec3     { return p.p.Position.Vec3() }
func (p *hostPlayer) SetVelocity(v mgl64.Vec3) { p.h.w.SetPlayerVelocity(p.p, v) }
func (p *hostPlayer) Teleport(pos mgl64.Vec3)  { p.h.w.TeleportPlayer(p.p, world.Position(pos)) }
func (p *hostPlayer) Damage(amount float64)    { p.h.w.DamagePlayer(p.p, amount) }
func (p *hostPlayer) IsPlayer() bool           { return true }
func (p *hostPlayer) Valid() bool              { return p.h.w.Online(p.p) }
func (p *hostPlayer) UUID() uuid.UUID          { return p.p.UUID }
func (p *hostPlayer) Online() bool             { return p.h.w.Online(p.p) }
func (p *hostPlayer) Name() string             { return p.p.Name }

func (p *hostPlayer) EyePosition() mgl64.Vec3 {
	return p.Position().Add(mgl64.Vec3{0, eyeHeight, 0})
}

func (p *hostPlayer) Rotation() (yaw, pitch float64) {
	return float64(p.p.Rotation[0]), float64(p.p.Rotation[1])
}

func (p *hostPlayer) SendMessage(msg chat.Message) {
	if c := p.p.Conn(); c != nil {
		c.SendSystemChat(msg, false)
	}
}

func (p *hostPlayer) PlaySound(s scroll.Sound) {
	p.h.w.PlaySound(p.p, s.Name, s.Volume, s.Pitch)
}

func (p *hostPlayer) SendBlockChange(pos scroll.BlockPos, m scroll.Material) {
	c := p.p.Conn()
	if c == nil {
		return
	}
	s, ok := world.StateOf(m)
	if !ok {
		return
	}
	c.SendBlockUpdate([3]int(pos), s)
}

// HeldItem повертає nil-інтерфейс, якщо рука порожня
func (p *hostPlayer) HeldItem() scroll.Item {
	if s := p.p.Inventory.HeldItem(); s != nil {
		return s
	}
	return nil
}

// vocabulary перевіряє імена з конфігу сувоїв по реєстрах сервера
type vocabulary struct{}

func (vocabulary) KnownParticle(name string) bool {
	_, ok := world.ParticleID(name)
	return ok
}

func (vocabulary) KnownMaterial(m scroll.Material) bool {
	_, ok := world.StateOf(m)
	return ok
}
