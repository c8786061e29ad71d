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

package scroll

import "strings"

// Material - ідентифікатор блоку, наприклад "minecraft:magma_block"
type Material string

const (
	Air   Material = "minecraft:air"
	Stone Material = "minecraft:stone"
)

func set(names ...string) map[Material]struct{} {
	m := make(map[Material]struct{}, len(names))
	for _, n := range names {
		m[Material("minecraft:"+n)] = struct{}{}
	}
	return m
}

var (
	airs = set("air", "cave_air", "void_air")

	liquids = set("water", "lava", "bubble_column")

	fires = set("fire", "soul_fire")

	// рослинність метеорит проходить наскрізь і випалює при ударі
	vegetation = set(
		"grass", "tall_grass", "fern", "large_fern", "dead_bush",
		"dandelion", "poppy", "blue_orchid", "allium", "azure_bluet",
		"red_tulip", "orange_tulip", "white_tulip", "pink_tulip",
		"oxeye_daisy", "cornflower", "lily_of_the_valley",
		"sunflower", "lilac", "rose_bush", "peony",
		"oak_leaves", "spruce_leaves", "birch_leaves", "jungle_leaves",
		"acacia_leaves", "dark_oak_leaves", "mangrove_leaves", "azalea_leaves",
		"vine", "sugar_cane", "sweet_berry_bush", "seagrass", "tall_seagrass",
		"brown_mushroom", "red_mushroom", "wheat", "carrots", "potatoes",
	)

	// крихкі блоки, які розлітаються від ударної хвилі
	fragile = set(
		"glass", "glass_pane", "torch", "wall_torch", "snow", "flower_pot",
		"lantern", "cobweb", "ice", "redstone_wire", "ladder",
	)

	// непорушна основа світу, кратер ніколи її не чіпає
	indestructible = set(
		"bedrock", "barrier", "end_portal", "end_portal_frame", "end_gateway",
		"command_block", "chain_command_block", "repeating_command_block",
		"structure_block", "jigsaw", "light",
	)
)

// IsAir повертає true для всіх видів повітря
func (m Material) IsAir() bool {
	_, ok := airs[m]
	return ok || m == ""
}

func (m Material) Liquid() bool {
	_, ok := liquids[m]
	return ok
}

func (m Material) IsFire() bool {
	_, ok := fires[m]
	return ok
}

func (m Material) Vegetation() bool {
	_, ok := vegetation[m]
	return ok
}

func (m Material) Fragile() bool {
	_, ok := fragile[m]
	return ok
}

func (m Material) Indestructible() bool {
	_, ok := indestructible[m]
	return ok
}

// Solid - тверда земля, об яку б'ється метеорит і на якій стоять моби.
// Повітря, рідини, вогонь, рослини і крихкі дрібниці твердими не вважаються
func (m Material) Solid() bool {
	return !m.IsAir() && !m.Liquid() && !m.IsFire() && !m.Vegetation() && !m.Fragile()
}

// Valid перевіряє що рядок схожий на ідентифікатор "namespace:path"
func (m Material) Valid() bool { return ValidIdentifier(string(m)) }

// ValidIdentifier перевіряє формат ідентифікатора майнкрафту.
// Дозволені тільки малі латинські літери, цифри та _ - . /
func ValidIdentifier(id string) bool {
	ns, path, ok := strings.Cut(id, ":")
	if !ok || ns == "" || path == "" {
		return false
	}
	valid := func(s string, slash bool) bool {
		for _, c := range s {
			switch {
			case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-', c == '.':
			case c == '/' && slash:
			default:
				return false
			}
		}
		return true
	}
	return valid(ns, false) && valid(path, true)
}
