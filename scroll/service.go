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

// Йоу, чат! Спільний сервіс для всіх сувоїв.
// Кулдауни, активні касти, повідомлення, звуки і частинки
// живуть тут в одному екземплярі, а кожен сувій отримує його при створенні.

package scroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Tnze/go-mc/chat"
)

// Service - спільна інфраструктура сувоїв
type Service struct {
	Log       *zap.Logger
	Config    *Config
	World     World
	Scheduler Scheduler
	Regions   Regions
	Cooldowns *Cooldowns
	Casts     *Casts

	prefix string
	deny   Sound
}

// NewService збирає сервіс. regions == nil означає що захисту територій немає
func NewService(log *zap.Logger, cfg *Config, w World, s Scheduler, regions Regions) *Service {
	if regions == nil {
		regions = AllowAll{}
	}
	return &Service{
		Log:       log,
		Config:    cfg,
		World:     w,
		Scheduler: s,
		Regions:   regions,
		Cooldowns: NewCooldowns(time.Now),
		Casts:     NewCasts(),

		prefix: cfg.Sub("messages").String("prefix", ""),
		deny: cfg.Sub("sounds").Sound("deny", Sound{
			Name:   "minecraft:block.note_block.bass",
			Volume: 1,
			Pitch:  0.5,
		}),
	}
}

// Text бере повідомлення з конфігу і підставляє {ключ} -> значення.
// kv - пари "ключ", "значення"
func (s *Service) Text(key string, kv ...string) string {
	text := s.Config.Sub("messages").String(key, key)
	if len(kv) > 0 {
		pairs := make([]string, 0, len(kv))
		for i := 0; i+1 < len(kv); i += 2 {
			pairs = append(pairs, "{"+kv[i]+"}", kv[i+1])
		}
		text = strings.NewReplacer(pairs...).Replace(text)
	}
	return Colorize(s.prefix + text)
}

// Message - те саме що Text, але готове до відправки в чат
func (s *Service) Message(key string, kv ...string) chat.Message {
	return chat.Text(s.Text(key, kv...))
}

// Send відправляє гравцю повідомлення
func (s *Service) Send(p Player, key string, kv ...string) {
	p.SendMessage(s.Message(key, kv...))
}

// Deny відправляє відмову і грає звук відмови
func (s *Service) Deny(p Player, key string, kv ...string) {
	s.Send(p, key, kv...)
	p.PlaySound(s.deny)
}

// CheckCooldown повертає false і повідомляє гравця, якщо кулдаун ще йде
func (s *Service) CheckCooldown(p Player, t Type, cooldown time.Duration) bool {
	left := s.Cooldowns.Remaining(p.UUID(), t, cooldown)
	if left <= 0 {
		return true
	}
	s.Deny(p, "cooldown", "time", fmt.Sprintf("%.1f", left.Seconds()))
	return false
}

// CheckRegion повертає false і повідомляє гравця, якщо тут сувій заборонений
func (s *Service) CheckRegion(p Player, t Type, pos BlockPos) bool {
	if s.Regions.Allowed(s.World.Name(), pos, t) {
		return true
	}
	s.Deny(p, "region-denied")
	return false
}

// Particle показує частинки всім поруч. Порожні налаштування ігноруються
func (s *Service) Particle(p Particle, pos mgl64.Vec3) {
	if p.Name == "" || p.Count <= 0 {
		return
	}
	s.World.Particle(p, pos)
}

// Sound грає звук у світі
func (s *Service) Sound(snd Sound, pos mgl64.Vec3) {
	if snd.Name == "" || snd.Volume <= 0 {
		return
	}
	s.World.Sound(snd, pos)
}

// Consume забирає один сувій зі стака
func (s *Service) Consume(it Item) {
	if it == nil {
		return
	}
	if n := it.Count(); n > 0 {
		it.SetCount(n - 1)
	}
}

// Protect виконує fn. Якщо всередині паніка - пишемо попередження
// і запускаємо cleanup, щоб прибрати за задачею
func (s *Service) Protect(task string, fn, cleanup func()) {
	defer func() {
		if r := recover(); r != nil {
			s.Log.Warn("Scroll task failed, cancelling",
				zap.String("task", task),
				zap.Any("panic", r),
			)
			if cleanup != nil {
				cleanup()
			}
		}
	}()
	fn()
}

// Colorize замінює &-коди кольорів на §-коди майнкрафту
func Colorize(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] == '&' && i+1 < len(r) && isColorCode(r[i+1]) {
			b.WriteRune('§')
			continue
		}
		b.WriteRune(r[i])
	}
	return b.String()
}

func isColorCode(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'k' && c <= 'o' || c == 'r'
}
