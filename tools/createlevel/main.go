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


// createlevel готує папку світу для першого запуску:
// level.dat зі спавном над плоским ландшафтом, прогенеровані чанки навколо спавну
// і scrolls.yml зі стандартними налаштуваннями сувоїв.
package main

import (
	"compress/gzip"
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"FlowyScrolls/scroll"
	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/save"
)

var (
	levelDir    = flag.String("level", "world", "Level directory")
	radius      = flag.Int("radius", 4, "Chunks to pregenerate around spawn")
	scrollsPath = flag.String("scrolls", "scrolls.yml", "Scrolls config to create if missing")
)

func main() {
	flag.Parse()
	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	if err := writeLevel(*levelDir); err != nil {
		logger.Fatal("Write level.dat fail", zap.Error(err))
	}
	n, err := pregenerate(*levelDir, int32(*radius))
	if err != nil {
		logger.Fatal("Pregenerate fail", zap.Error(err))
	}
	logger.Info("Level created", zap.String("dir", *levelDir), zap.Int("chunks", n))

	created, err := writeScrolls(*scrollsPath)
	if err != nil {
		logger.Fatal("Write scrolls config fail", zap.Error(err))
	}
	if created {
		logger.Info("Scrolls config created", zap.String("path", *scrollsPath))
	}
}

func writeLevel(dir string) error {
	level := save.Level{
		Data: save.LevelData{
			LevelName:  filepath.Base(dir),
			GameType:   2,
			LastPlayed: time.Now().UnixMilli(),
			// спавн стоїть на траві плоского світу
			SpawnX:         0,
			SpawnY:         world.FlatY + 1,
			SpawnZ:         0,
			Difficulty:     2,
			GameRules:      map[string]string{"doDaylightCycle": "false"},
			DataVersion:    3337,
			Initialized:    true,
			StorageVersion: 19133,
		},
	}
	level.Data.Version.ID = 3337
	level.Data.Version.Name = "1.19.4"
	level.Data.Version.Series = "main"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "level.dat"))
	if err != nil {
		return err
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if err := nbt.NewEncoder(gw).Encode(level, ""); err != nil {
		return err
	}
	return gw.Close()
}

// pregenerate записує плоскі чанки в квадраті radius навколо (0, 0)
func pregenerate(dir string, radius int32) (int, error) {
	regionDir := filepath.Join(dir, "region")
	if err := os.MkdirAll(regionDir, 0o755); err != nil {
		return 0, err
	}
	provider := world.NewProvider(regionDir, rate.NewLimiter(rate.Inf, 1))
	var gen world.FlatGenerator
	n := 0
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			pos := [2]int32{x, z}
			if err := provider.PutChunk(pos, gen.Generate(pos)); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// writeScrolls не чіпає конфіг, який адмін уже правив
func writeScrolls(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	return true, os.WriteFile(path, scroll.DefaultConfig(), 0o644)
}
