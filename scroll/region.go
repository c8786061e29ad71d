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

// Йоу, чат! Захист територій.
// Регіони будуються один раз при старті і передаються в сервіс сувоїв явно,
// ніяких глобальних прапорців "чи є плагін захисту".

package scroll

import "go.uber.org/zap"

// Regions вирішує, чи можна використати сувій у цій точці
type Regions interface {
	Allowed(world string, pos BlockPos, t Type) bool
}

// AllowAll дозволяє все
type AllowAll struct{}

func (AllowAll) Allowed(string, BlockPos, Type) bool { return true }

// Zone - прямокутна зона світу, де заборонені деякі сувої
type Zone struct {
	Name     string
	World    string
	Min, Max BlockPos
	Deny     map[Type]struct{} // порожня мапа = заборонено все
}

func (z *Zone) contains(world string, pos BlockPos) bool {
	if z.World != "" && z.World != world {
		return false
	}
	for i := 0; i < 3; i++ {
		if pos[i] < z.Min[i] || pos[i] > z.Max[i] {
			return false
		}
	}
	return true
}

func (z *Zone) denies(t Type) bool {
	if len(z.Deny) == 0 {
		return true
	}
	_, ok := z.Deny[t]
	return ok
}

// ZoneRegions - заборонені світи плюс список зон
type ZoneRegions struct {
	BlockedWorlds map[string]struct{}
	Zones         []Zone
}

func (r *ZoneRegions) Allowed(world string, pos BlockPos, t Type) bool {
	if _, ok := r.BlockedWorlds[world]; ok {
		return false
	}
	for i := range r.Zones {
		if r.Zones[i].contains(world, pos) && r.Zones[i].denies(t) {
			return false
		}
	}
	return true
}

// RegionsFromConfig будує регіони з секції "regions"
func RegionsFromConfig(log *zap.Logger, s Section) Regions {
	if !s.Bool("enabled", true) {
		return AllowAll{}
	}
	r := &ZoneRegions{BlockedWorlds: make(map[string]struct{})}
	for _, w := range s.Strings("blocked-worlds") {
		r.BlockedWorlds[w] = struct{}{}
	}
	for _, name := range s.Keys("zones") {
		zs := s.Sub("zones").Sub(name)
		lo, okLo := readPos(zs.Ints("min"))
		hi, okHi := readPos(zs.Ints("max"))
		if !okLo || !okHi {
			log.Warn("Zone without valid bounds, skipped", zap.String("zone", name))
			continue
		}
		for i := 0; i < 3; i++ {
			if lo[i] > hi[i] {
				lo[i], hi[i] = hi[i], lo[i]
			}
		}
		z := Zone{
			Name:  name,
			World: zs.String("world", ""),
			Min:   lo,
			Max:   hi,
			Deny:  make(map[Type]struct{}),
		}
		for _, t := range zs.Strings("deny") {
			z.Deny[Type(t)] = struct{}{}
		}
		r.Zones = append(r.Zones, z)
	}
	return r
}

// readPos перетворює [x, y, z] на позицію
func readPos(v []int) (BlockPos, bool) {
	if len(v) != 3 {
		return BlockPos{}, false
	}
	return BlockPos{v[0], v[1], v[2]}, true
}
