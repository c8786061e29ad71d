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

package meteor

import (
	"time"

	"FlowyScrolls/scroll"
)

// Settings - всі параметри метеорита з секції "meteor"
type Settings struct {
	Cooldown          time.Duration
	MaxTargetDistance float64
	SpawnHeight       float64 // на скільки вище цілі з'являється метеорит
	SpawnDistance     float64 // на скільки позаду гравця по горизонталі
	SizeMin, SizeMax  int
	MaxTicks          int
	ViewDistance      float64 // з якої відстані гравці бачать фантомні блоки
	Damage            float64
	KnockbackUp       float64
	FireChance        float64
	ScorchChance      float64
	CleanupDelay      int // в тіках

	Palette  []scroll.Material // з чого зліплений метеорит
	Crust    []scroll.Material // кірка навколо місця падіння
	Scorched []scroll.Material // обпалені краї кратера

	Trail, Smoke, Impact, ImpactLava, Drill scroll.Particle
	TrailSound, CastSound, ImpactSound      scroll.Sound
}

// LoadSettings читає секцію конфігу
func LoadSettings(s scroll.Section) Settings {
	st := Settings{
		Cooldown:          s.Duration("cooldown", 45*time.Second),
		MaxTargetDistance: s.Float("max-target-distance", 120),
		SpawnHeight:       s.Float("spawn-height", 60),
		SpawnDistance:     s.Float("spawn-distance", 25),
		SizeMin:           ClampSize(s.Int("size-min", 4)),
		SizeMax:           ClampSize(s.Int("size-max", 8)),
		MaxTicks:          s.Int("max-ticks", 800),
		ViewDistance:      s.Float("view-distance", 128),
		Damage:            s.Float("damage", 12),
		KnockbackUp:       s.Float("knockback-up", 0.6),
		FireChance:        s.Float("fire-chance", 0.15),
		ScorchChance:      s.Float("scorch-chance", 0.35),
		CleanupDelay:      s.Int("cleanup-delay", 60),

		Palette:  s.Materials("palette", defaultPalette),
		Crust:    s.Materials("crust", defaultPalette),
		Scorched: s.Materials("scorched", defaultPalette),

		Trail:      s.Particle("trail", scroll.Particle{Name: "minecraft:flame", Count: 12, Spread: 0.8, Speed: 0.05}),
		Smoke:      s.Particle("smoke", scroll.Particle{Name: "minecraft:large_smoke", Count: 6, Spread: 1, Speed: 0.02}),
		Impact:     s.Particle("impact", scroll.Particle{Name: "minecraft:explosion_emitter", Count: 3, Spread: 1.5}),
		ImpactLava: s.Particle("impact-lava", scroll.Particle{Name: "minecraft:lava", Count: 40, Spread: 3, Speed: 0.2}),
		Drill:      s.Particle("drill", scroll.Particle{Name: "minecraft:smoke", Count: 10, Spread: 1.2, Speed: 0.05}),

		TrailSound:  s.Sound("trail-sound", scroll.Sound{Name: "minecraft:entity.blaze.shoot", Volume: 2, Pitch: 0.5}),
		CastSound:   s.Sound("cast-sound", scroll.Sound{Name: "minecraft:entity.wither.spawn", Volume: 1, Pitch: 1.4}),
		ImpactSound: s.Sound("impact-sound", scroll.Sound{Name: "minecraft:entity.generic.explode", Volume: 6, Pitch: 0.6}),
	}
	if st.SizeMax < st.SizeMin {
		st.SizeMin, st.SizeMax = st.SizeMax, st.SizeMin
	}
	if st.MaxTicks <= 0 || st.MaxTicks > DefaultMaxTicks {
		st.MaxTicks = DefaultMaxTicks
	}
	if st.CleanupDelay < 1 {
		st.CleanupDelay = 60
	}
	return st
}
