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

// Йоу, чат! Тут сувої підключаються до сервера.
// scrolls збирає конфіг, регіони, сервіс і реєстр, а далі обробляє кліки
// і команди гравців. Всі методи працюють у потоці тіків світу.

package game

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"FlowyScrolls/scroll"
	"FlowyScrolls/scroll/exit"
	"FlowyScrolls/scroll/gravity"
	"FlowyScrolls/scroll/meteor"
	"FlowyScrolls/world"
)

type scrolls struct {
	log      *zap.Logger
	world    *world.World
	host     *host
	service  *scroll.Service
	registry *scroll.Registry
	itemID   int32
}

func newScrolls(log *zap.Logger, w *world.World, configPath string, itemID int32) (*scrolls, error) {
	cfg, err := scroll.LoadConfig(log, configPath, vocabulary{})
	if err != nil {
		return nil, fmt.Errorf("load scrolls config: %w", err)
	}
	h := newHost(log.Named("host"), w)
	regions := scroll.RegionsFromConfig(log, cfg.Sub("regions"))
	svc := scroll.NewService(log, cfg, h, w.Scheduler(), regions)

	reg := scroll.NewRegistry(log)
	reg.Register(meteor.New(svc))
	reg.Register(gravity.New(svc))
	reg.Register(exit.New(svc))

	s := &scrolls{
		log:      log,
		world:    w,
		host:     h,
		service:  svc,
		registry: reg,
		itemID:   itemID,
	}
	log.Info("Scrolls loaded", zap.String("config", configPath), zap.String("types", s.typeNames()))
	return s, nil
}

// interact передає клік гравця реєстру сувоїв
func (s *scrolls) interact(p *world.Player, click scroll.Click) bool {
	if !s.world.Online(p) {
		return false
	}
	return s.registry.Interact(s.host.player(p), click)
}

// newItem створює стак сувоїв типу t
func (s *scrolls) newItem(t scroll.Type, amount int) *world.ItemStack {
	name := s.service.Config.Sub("items").String(string(t), string(t))
	it := world.NewItemStack(s.itemID, amount, scroll.Colorize(name))
	scroll.MarkItem(it, t)
	return it
}

// typeNames повертає зареєстровані типи через кому
func (s *scrolls) typeNames() string {
	types := s.registry.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Close скасовує всі польоти і касти
func (s *scrolls) Close() {
	s.registry.Close()
	s.log.Info("Scrolls closed")
}
