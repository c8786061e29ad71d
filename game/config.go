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

// Йоу, чат! config.toml - налаштування самого сервера.
// Все про сувої живе окремо в scrolls.yml, його читає пакет scroll.

package game

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/time/rate"
)

type Config struct {
	MaxPlayers int `toml:"max-players"`
	// в чанках, 1 чанк = 16 блоків
	ViewDistance    int32  `toml:"view-distance"`
	ListenAddress   string `toml:"listen-address"`
	MessageOfTheDay string `toml:"motd"`
	// менші пакети йдуть без стиснення
	NetworkCompressionThreshold int    `toml:"network-compression-threshold"`
	OnlineMode                  bool   `toml:"online-mode"`
	LevelName                   string `toml:"level-name"`
	EnforceSecureProfile        bool   `toml:"enforce-secure-profile"`

	// Шлях до YAML з налаштуваннями сувоїв. Порожній - "scrolls.yml"
	ScrollsConfig string `toml:"scrolls-config"`
	// Мережевий ID предмета, яким клієнт малює сувої. 0 - стандартний
	ScrollItem int32 `toml:"scroll-item"`

	ChunkLoadingLimiter       Limiter `toml:"chunk-loading-limiter"`
	PlayerChunkLoadingLimiter Limiter `toml:"player-chunk-loading-limiter"`
}

// defaultScrollItem - ID предмета для сувоїв, якщо config.toml його не задає
const defaultScrollItem = 797

// DefaultConfig - значення для ключів, яких немає в config.toml
func DefaultConfig() Config {
	return Config{
		MaxPlayers:                  20,
		ViewDistance:                10,
		ListenAddress:               "0.0.0.0:25565",
		MessageOfTheDay:             "FlowyScrolls",
		NetworkCompressionThreshold: 256,
		OnlineMode:                  true,
		LevelName:                   "world",
		ChunkLoadingLimiter:         Limiter{Every: duration{50 * time.Millisecond}, N: 100},
		PlayerChunkLoadingLimiter:   Limiter{Every: duration{100 * time.Millisecond}, N: 1},
	}
}

// LoadConfig читає config.toml поверх DefaultConfig. Невідомі ключі - помилка,
// бо найчастіше це одруківка
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err ErrUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return Config{}, err
	}
	return c, nil
}

// ErrUnknownConfig - ключі config.toml, яких сервер не знає
type ErrUnknownConfig []string

func (e ErrUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

func (c *Config) scrollsConfig() string {
	if c.ScrollsConfig == "" {
		return "scrolls.yml"
	}
	return c.ScrollsConfig
}

func (c *Config) scrollItem() int32 {
	if c.ScrollItem == 0 {
		return defaultScrollItem
	}
	return c.ScrollItem
}

// Limiter - не більше N подій за Every, з запасом N на сплеск
type Limiter struct {
	Every duration `toml:"every"`
	N     int
}

func (l *Limiter) Limiter() *rate.Limiter {
	if l.Every.Duration <= 0 {
		return rate.NewLimiter(rate.Inf, max(l.N, 1))
	}
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

// duration читається з рядка на кшталт "5s"
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}
