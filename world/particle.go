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

// Йоу, чат! Частинки і звуки в майнкрафті надсилаються гравцям, а не "живуть" у світі.
// Тому світ шукає в дереві видимості всіх, хто бачить точку, і шле пакет кожному.

package world

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// particleNames - реєстр частинок протоколу 1.19.4 в порядку ID.
// Порожні рядки - частинки, яким потрібні додаткові дані (блок, колір, предмет), їх не підтримуємо
var particleNames = [...]string{
	"ambient_entity_effect", "angry_villager", "", "", "bubble", "cloud", "crit",
	"damage_indicator", "dragon_breath", "dripping_lava", "falling_lava", "landing_lava",
	"dripping_water", "falling_water", "", "", "effect", "elder_guardian",
	"enchanted_hit", "enchant", "end_rod", "entity_effect", "explosion_emitter",
	"explosion", "sonic_boom", "", "firework", "fishing", "flame", "cherry_leaves",
	"sculk_soul", "", "sculk_charge_pop", "soul_fire_flame", "soul", "flash",
	"happy_villager", "composter", "heart", "instant_effect", "", "", "item_slime",
	"item_snowball", "large_smoke", "lava", "mycelium", "note", "poof", "portal",
	"rain", "smoke", "sneeze", "spit", "squid_ink", "sweep_attack", "totem_of_undying",
	"underwater", "splash", "witch", "bubble_pop", "current_down", "bubble_column_up",
	"nautilus", "dolphin", "campfire_cosy_smoke", "campfire_signal_smoke",
	"dripping_honey", "falling_honey", "landing_honey", "falling_nectar",
	"falling_spore_blossom", "ash", "crimson_spore", "warped_spore", "spore_blossom_air",
	"dripping_obsidian_tear", "falling_obsidian_tear", "landing_obsidian_tear",
	"reverse_portal", "white_ash", "small_flame", "snowflake", "dripping_dripstone_lava",
	"falling_dripstone_lava", "dripping_dripstone_water", "falling_dripstone_water",
	"glow_squid_ink", "glow", "wax_on", "wax_off", "electric_spark", "scrape",
}

var particleIDs = func() map[string]int32 {
	m := make(map[string]int32, len(particleNames))
	for i, n := range particleNames {
		if n != "" {
			m["minecraft:"+n] = int32(i)
		}
	}
	return m
}()

// ParticleID повертає мережевий ID частинки. Ім'я без простору імен вважається "minecraft:"
func ParticleID(name string) (int32, bool) {
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	id, ok := particleIDs[name]
	return id, ok
}

// Particle показує частинки всім гравцям, які бачать точку pos
func (w *World) Particle(id int32, pos mgl64.Vec3, spread, speed float64, count int) {
	w.viewersOf(pos, func(c Client) {
		c.SendParticle(id, [3]float64(pos), float32(spread), float32(speed), int32(count))
	})
}

// Sound грає звук всім гравцям, які бачать точку pos
func (w *World) Sound(name string, pos mgl64.Vec3, volume, pitch float32) {
	w.viewersOf(pos, func(c Client) {
		c.SendSound(name, [3]float64(pos), volume, pitch)
	})
}

// viewersOf викликає fn для кожного гравця, в чию зону видимості потрапляє pos
func (w *World) viewersOf(pos mgl64.Vec3, fn func(c Client)) {
	w.playerViews.AtPoint(pos,
		func(n *playerViewNode) bool {
			if c := n.Value.Player.conn; c != nil {
				fn(c)
			}
			return true
		},
	)
}
