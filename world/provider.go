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

// Йоу, чат! Тут світ читається з диска і пишеться назад.
// Чанки лежать у .mca регіонах, гравці - в NBT з GZIP.
// Кратери метеоритів переживають перезапуск, бо кожен вивантажений чанк записується назад.

package world

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/save"
	"github.com/Tnze/go-mc/save/region"
	"github.com/Tnze/go-mc/yggdrasil/user"
)

// dataVersion - версія даних світу 1.19.4
const dataVersion = 3337

// ChunkProvider читає і пише чанки в папці region
type ChunkProvider struct {
	dir     string
	limiter *rate.Limiter // тільки для читання, запис не обмежуємо
}

func NewProvider(dir string, limiter *rate.Limiter) ChunkProvider {
	return ChunkProvider{dir: dir, limiter: limiter}
}

// ErrReachRateLimit - цей тік уже прочитав свою квоту чанків
var ErrReachRateLimit = errors.New("reach rate limit")

var errChunkNotExist = errors.New("ErrChunkNotExist")

// withRegion відкриває регіон, у якому лежить pos, і закриває його після fn
func (p *ChunkProvider) withRegion(pos [2]int32, fn func(r *region.Region, x, z int) error) (err error) {
	path := filepath.Join(p.dir, fmt.Sprintf("r.%d.%d.mca", pos[0]>>5, pos[1]>>5))
	r, err := region.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		r, err = region.Create(path)
	}
	if err != nil {
		return fmt.Errorf("open region fail: %w", err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close region fail: %w", cerr))
		}
	}()
	x, z := region.In(int(pos[0]), int(pos[1]))
	return fn(r, x, z)
}

// GetChunk читає чанк. Якщо його ще немає - errChunkNotExist, і світ його згенерує
func (p *ChunkProvider) GetChunk(pos [2]int32) (c *level.Chunk, err error) {
	if !p.limiter.Allow() {
		return nil, ErrReachRateLimit
	}
	err = p.withRegion(pos, func(r *region.Region, x, z int) error {
		if !r.ExistSector(x, z) {
			return errChunkNotExist
		}
		data, err := r.ReadSector(x, z)
		if err != nil {
			return fmt.Errorf("read sector fail: %w", err)
		}
		var chunk save.Chunk
		if err := chunk.Load(data); err != nil {
			return fmt.Errorf("parse chunk data fail: %w", err)
		}
		if c, err = level.ChunkFromSave(&chunk); err != nil {
			return fmt.Errorf("load chunk data fail: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PutChunk зберігає чанк у файл регіону
func (p *ChunkProvider) PutChunk(pos [2]int32, c *level.Chunk) error {
	// ChunkToSave пише карти висот у готову мапу, nil тут панікує
	data := save.Chunk{Heightmaps: make(map[string][]uint64)}
	if err := level.ChunkToSave(c, &data); err != nil {
		return fmt.Errorf("convert chunk fail: %w", err)
	}
	data.XPos, data.ZPos = pos[0], pos[1]
	data.DataVersion = dataVersion

	raw, err := data.Data(1) // 1 - gzip
	if err != nil {
		return fmt.Errorf("marshal chunk fail: %w", err)
	}
	return p.withRegion(pos, func(r *region.Region, x, z int) error {
		if err := r.WriteSector(x, z, raw); err != nil {
			return fmt.Errorf("write sector fail: %w", err)
		}
		return nil
	})
}

// PlayerProvider - файли playerdata/<uuid>.dat
type PlayerProvider struct {
	dir string
}

func NewPlayerProvider(dir string) PlayerProvider {
	return PlayerProvider{dir: dir}
}

func (p *PlayerProvider) path(id uuid.UUID) string {
	return filepath.Join(p.dir, id.String()+".dat")
}

// GetPlayer читає збереженого гравця. Для новачка повертає os.ErrNotExist
func (p *PlayerProvider) GetPlayer(name string, id uuid.UUID, pubKey *user.PublicKey, properties []user.Property) (player *Player, err error) {
	f, err := os.Open(p.path(id))
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open gzip reader fail: %w", err)
	}
	data, err := save.ReadPlayerData(r)
	if err != nil {
		return nil, fmt.Errorf("read player data fail: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("close gzip reader fail: %w", err)
	}

	player = NewPlayer(name, id, data.Pos, data.Rotation, data.PlayerGameType)
	player.PubKey = pubKey
	player.Properties = properties
	if data.Health > 0 {
		player.Health = float64(data.Health)
	}
	return player, nil
}

// PutPlayer зберігає позицію, здоров'я і режим гри. Хотбар не зберігається,
// сувої видаються командою заново
func (p *PlayerProvider) PutPlayer(player *Player) (err error) {
	var data save.PlayerData
	data.DataVersion = dataVersion
	data.Pos = player.Position
	data.Rotation = player.Rotation
	data.PlayerGameType = player.Gamemode
	data.Health = float32(player.Health)

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return err
	}
	// пишемо в тимчасовий файл, щоб обрив не зіпсував старий запис
	tmp := p.path(player.UUID) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	w := gzip.NewWriter(f)
	err = nbt.NewEncoder(w).Encode(data, "")
	err = multierr.Combine(err, w.Close(), f.Close())
	if err != nil {
		return fmt.Errorf("write player data fail: %w", multierr.Append(err, os.Remove(tmp)))
	}
	return os.Rename(tmp, p.path(player.UUID))
}
