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

package game

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FlowyScrolls/client"
	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/data/packetid"
	"github.com/Tnze/go-mc/net"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/Tnze/go-mc/save"
	"github.com/Tnze/go-mc/server"
	"github.com/Tnze/go-mc/yggdrasil/user"
)

// gamemodeAdventure - гравці не ламають блоки руками, світ змінюють тільки сувої
const gamemodeAdventure = 2

type Game struct {
	log *zap.Logger

	config     Config
	serverInfo *server.PingInfo

	playerProvider world.PlayerProvider
	overworld      *world.World
	scrolls        *scrolls

	globalChat globalChat
	*playerList
	stopKeepAlive context.CancelFunc
}

func NewGame(log *zap.Logger, config Config, pingList *server.PlayerList, serverInfo *server.PingInfo) (*Game, error) {
	// providers
	overworld, err := createWorld(log, filepath.Join(".", config.LevelName), &config)
	if err != nil {
		return nil, fmt.Errorf("cannot load overworld: %w", err)
	}
	playerProvider := world.NewPlayerProvider(filepath.Join(".", config.LevelName, "playerdata"))

	sc, err := newScrolls(log.Named("scroll"), overworld, config.scrollsConfig(), config.scrollItem())
	if err != nil {
		overworld.Close()
		return nil, err
	}

	// keepalive
	keepAlive := server.NewKeepAlive()
	pl := playerList{pingList: pingList, keepAlive: keepAlive}
	keepAlive.AddPlayerDelayUpdateHandler(func(c server.KeepAliveClient, latency time.Duration) {
		pl.updateLatency(c.(*client.Client), latency)
	})
	ctx, cancel := context.WithCancel(context.Background())
	go keepAlive.Run(ctx)

	return &Game{
		log: log.Named("game"),

		config:     config,
		serverInfo: serverInfo,

		playerProvider: playerProvider,
		overworld:      overworld,
		scrolls:        sc,

		globalChat: globalChat{
			log:           log.Named("chat"),
			players:       &pl,
			chatTypeCodec: &world.NetworkCodec.ChatType,
		},
		playerList:    &pl,
		stopKeepAlive: cancel,
	}, nil
}

// Close зупиняє сувої, потім світ, і зберігає чанки
func (g *Game) Close() {
	g.overworld.Do(g.scrolls.Close)
	g.overworld.Close()
	g.stopKeepAlive()
	g.log.Info("Game closed")
}

// Йоу, чат! Зараз розберемо як створюється світ в майнкрафті!
// createWorld завантажує level.dat і створює overworld
func createWorld(logger *zap.Logger, path string, config *Config) (*world.World, error) {
	// level.dat зжатий через gzip, всередині NBT зі спавном, сідом, часом
	f, err := os.Open(filepath.Join(path, "level.dat"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open level.dat: %w", err)
	}
	lv, err := save.ReadLevel(r)
	if err != nil {
		return nil, fmt.Errorf("read level.dat: %w", err)
	}

	overworld := world.New(
		logger.Named("overworld"),
		// ChunkLoadingLimiter обмежує скільки чанків можна загрузити одночасно
		world.NewProvider(filepath.Join(path, "region"), config.ChunkLoadingLimiter.Limiter()),
		world.Config{
			ViewDistance:  config.ViewDistance,
			SpawnAngle:    lv.Data.SpawnAngle,
			SpawnPosition: [3]int32{lv.Data.SpawnX, lv.Data.SpawnY, lv.Data.SpawnZ},
		},
	)
	return overworld, nil
}

// newPlayer - гравець, який заходить вперше, з'являється на спавні
func (g *Game) newPlayer(name string, id uuid.UUID) *world.Player {
	spawn, angle := g.overworld.SpawnPositionAndAngle()
	pos := world.Position{float64(spawn[0]) + 0.5, float64(spawn[1]), float64(spawn[2]) + 0.5}
	return world.NewPlayer(name, id, pos, world.Rotation{angle, 0}, gamemodeAdventure)
}

// savePlayer пише гравця на диск. Знімок робиться в потоці тіків, бо там його змінюють
func (g *Game) savePlayer(logger *zap.Logger, p *world.Player) {
	var snapshot world.Player
	g.overworld.Do(func() {
		snapshot.UUID = p.UUID
		snapshot.Entity = p.Entity
		snapshot.Gamemode = p.Gamemode
		snapshot.Health = p.Health
	})
	if snapshot.UUID == uuid.Nil {
		snapshot.UUID, snapshot.Entity, snapshot.Gamemode, snapshot.Health = p.UUID, p.Entity, p.Gamemode, p.Health
	}
	if err := g.playerProvider.PutPlayer(&snapshot); err != nil {
		logger.Error("Save player data error", zap.Error(err))
	}
}

// Йоу, чат! А тепер розберемо як гравець заходить на сервер!
// AcceptPlayer викликається в окремій горутині коли новий гравець логіниться
func (g *Game) AcceptPlayer(name string, id uuid.UUID, profilePubKey *user.PublicKey, properties []user.Property, protocol int32, conn *net.Conn) {
	logger := g.log.With(
		zap.String("name", name),
		zap.String("uuid", id.String()),
		zap.Int32("protocol", protocol),
	)

	// Пробуємо завантажити дані гравця з файлу, якщо його немає - створюємо нового
	p, err := g.playerProvider.GetPlayer(name, id, profilePubKey, properties)
	if errors.Is(err, os.ErrNotExist) {
		p = g.newPlayer(name, id)
		p.PubKey = profilePubKey
		p.Properties = properties
	} else if err != nil {
		logger.Error("Read player data error", zap.Error(err))
		return
	}

	c := client.New(logger, conn, p)

	logger.Info("Player join", zap.Int32("eid", p.EntityID))
	defer logger.Info("Player left")

	c.SendLogin(g.overworld, p)
	c.SendServerData(g.serverInfo.Description(), g.serverInfo.FavIcon(), g.config.EnforceSecureProfile)

	// Повідомлення про вхід/вихід жовтим, як в оригінальному майні
	joinMsg := chat.TranslateMsg("multiplayer.player.joined", chat.Text(p.Name)).SetColor(chat.Yellow)
	leftMsg := chat.TranslateMsg("multiplayer.player.left", chat.Text(p.Name)).SetColor(chat.Yellow)
	g.globalChat.broadcastSystemChat(joinMsg, false)
	defer g.globalChat.broadcastSystemChat(leftMsg, false)
	c.AddHandler(packetid.ServerboundChat, g.globalChat.Handle)
	g.addScrollHandlers(c)

	g.playerList.addPlayer(c, p)
	defer g.playerList.removePlayer(c)

	c.SendPlayerPosition(p.Position, p.Rotation)
	// Додаємо гравця в світ (це почне відправку чанків)
	g.overworld.AddPlayer(c, p, g.config.PlayerChunkLoadingLimiter.Limiter())
	defer g.savePlayer(logger, p)
	defer g.overworld.RemovePlayer(c, p)
	c.SendPacket(packetid.ClientboundUpdateTags, pk.Array(defaultTags))
	c.SendSetDefaultSpawnPosition(g.overworld.SpawnPositionAndAngle())
	c.SendHealth(float32(p.Health), 20, 5)

	// Головний цикл обробки пакетів
	c.Start()
}
