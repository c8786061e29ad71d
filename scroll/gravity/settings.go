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

package gravity

import (
	"time"

	"FlowyScrolls/scroll"
)

// Grid - розміри гравітаційної мішені
type Grid struct {
	Rings  int     // скільки концентричних кілець
	Radius float64 // радіус зовнішнього кільця
	Lines  int     // скільки радіальних ліній
}

// Settings - параметри з секції "gravitation"
type Settings struct {
	Cooldown          time.Duration
	CastTicks         int
	MaxTargetDistance float64
	MaxRange          float64
	MoveTolerance     float64
	PullRadius        float64
	PullTicks         int
	PullStrength      float64
	SnapDistance      float64
	Grid              Grid
	VortexTicks       int

	Ring, Line, Core, Cross, Vortex scroll.Particle
	ChargeSound, ReleaseSound       scroll.Sound
}

func LoadSettings(s scroll.Section) Settings {
	g := s.Sub("grid")
	st := Settings{
		Cooldown:          s.Duration("cooldown", 20*time.Second),
		CastTicks:         s.Ticks("cast-time", 40),
		MaxTargetDistance: s.Float("max-target-distance", 60),
		MaxRange:          s.Float("max-range", 50),
		MoveTolerance:     s.Float("move-tolerance", 1),
		PullRadius:        s.Float("pull-radius", 8),
		PullTicks:         s.Int("pull-ticks", 40),
		PullStrength:      s.Float("pull-strength", 0.6),
		SnapDistance:      s.Float("snap-distance", 1.5),
		Grid: Grid{
			Rings:  g.Int("rings", 4),
			Radius: g.Float("radius", 4),
			Lines:  g.Int("lines", 8),
		},
		VortexTicks: s.Int("vortex-ticks", 30),

		Ring:   s.Particle("ring", scroll.Particle{Name: "minecraft:portal", Count: 1}),
		Line:   s.Particle("line", scroll.Particle{Name: "minecraft:witch", Count: 1}),
		Core:   s.Particle("core", scroll.Particle{Name: "minecraft:reverse_portal", Count: 2, Spread: 0.05}),
		Cross:  s.Particle("cross", scroll.Particle{Name: "minecraft:end_rod", Count: 1}),
		Vortex: s.Particle("vortex", scroll.Particle{Name: "minecraft:portal", Count: 2, Spread: 0.1, Speed: 0.5}),

		ChargeSound:  s.Sound("charge-sound", scroll.Sound{Name: "minecraft:block.beacon.ambient", Volume: 1, Pitch: 0.6}),
		ReleaseSound: s.Sound("release-sound", scroll.Sound{Name: "minecraft:entity.enderman.teleport", Volume: 2, Pitch: 0.5}),
	}
	if st.CastTicks < 1 {
		st.CastTicks = 1
	}
	if st.PullTicks < 1 {
		st.PullTicks = 1
	}
	if st.Grid.Rings < 1 {
		st.Grid.Rings = 1
	}
	if st.Grid.Lines < 0 {
		st.Grid.Lines = 0
	}
	return st
}
