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

// Йоу, чат! Сьогодні ми розберемо як влаштований світ у нашому сервері!
// Це центральний файл, який керує всім світом: чанками, гравцями,
// мобами і задачами сувоїв. Все, що змінює світ, виконується в потоці тіків:
// пакети від клієнтів передають роботу сюди через Submit.

package world

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"FlowyScrolls/world/internal/bvh"
	"github.com/Tnze/go-mc/level"
)

// TickInterval - тривалість одного тіку майнкрафту
const TickInterval = 50 * time.Millisecond

// World - головна структура, що представляє ігровий світ
type World struct {
	log           *zap.Logger   // логер світу
	config        Config        // налаштування з level.dat
	chunkProvider ChunkProvider // читає і пише файли регіонів
	generator     Generator     // створює чанки, яких ще немає на диску

	chunks   map[[2]int32]*LoadedChunk // завантажені чанки
	loaders  map[ChunkViewer]*loader   // завантажувачі чанків для гравців
	tickLock sync.Mutex                // тримається весь тік, щоб AddPlayer не влазив посередині

	// playerViews - BVH дерево зон видимості гравців.
	// По ньому шукаємо, кому надсилати рухи сутностей, частинки і звуки
	playerViews playerViewTree
	players     map[Client]*Player // гравці за їхнім з'єднанням
	mobs        map[int32]*Mob     // моби за ID сутності

	sched *Scheduler    // задачі сувоїв, просуваються раз на тік
	jobs  chan func()   // робота з інших горутин
	stop  chan struct{} // закривається в Close
	done  chan struct{} // закривається, коли цикл тіків вийшов
}

// Config - налаштування світу
type Config struct {
	ViewDistance  int32    // радіус прогрузки в чанках
	SpawnAngle    float32  // кут повороту при спавні
	SpawnPosition [3]int32 // координати точки спавну
}

// playerView - те, що лежить у листку BVH: кому слати і чию зону видимості це описує
type playerView struct {
	EntityViewer
	*Player
}

type (
	playerViewNode = bvh.Node[playerView]
	playerViewTree = bvh.Tree[playerView]
)

// New створює світ і запускає цикл тіків
func New(logger *zap.Logger, provider ChunkProvider, config Config) *World {
	w := newWorld(logger, provider, config)
	go w.tickLoop()
	return w
}

// newWorld збирає світ без циклу тіків. Тести крутять тіки самі
func newWorld(logger *zap.Logger, provider ChunkProvider, config Config) *World {
	return &World{
		log:           logger,
		config:        config,
		chunkProvider: provider,
		generator:     FlatGenerator{},
		chunks:        make(map[[2]int32]*LoadedChunk),
		loaders:       make(map[ChunkViewer]*loader),
		players:       make(map[Client]*Player),
		mobs:          make(map[int32]*Mob),
		sched:         NewScheduler(logger.Named("scheduler")),
		jobs:          make(chan func(), 256), // пакети гравців рідко дають більше за тік
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Name повертає ідентифікатор світу
func (w *World) Name() string {
	return "minecraft:overworld"
}

// Scheduler повертає планувальник, який просувається кожен тік
func (w *World) Scheduler() *Scheduler { return w.sched }

// SpawnPositionAndAngle повертає координати та кут спавну
func (w *World) SpawnPositionAndAngle() ([3]int32, float32) {
	return w.config.SpawnPosition, w.config.SpawnAngle
}

// HashedSeed повертає хеш сіда світу.
// Світ плаский і сід нічого не змінює, клієнту він потрібен тільки для біомного шуму
func (w *World) HashedSeed() [8]byte {
	return [8]byte{}
}

// Submit ставить fn в чергу потоку тіків. Не блокує, якщо черга не переповнена
func (w *World) Submit(fn func()) {
	select {
	case w.jobs <- fn:
	case <-w.done:
	}
}

// Do виконує fn в потоці тіків і чекає завершення
func (w *World) Do(fn func()) {
	finished := make(chan struct{})
	w.Submit(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
	case <-w.done:
	}
}

// Close зупиняє цикл тіків і зберігає всі чанки
func (w *World) Close() {
	// Другий виклик Close нічого не робить
	select {
	case <-w.stop:
		return
	default:
		close(w.stop)
	}
	<-w.done // чекаємо, поки поточний тік доробить
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	w.sched.CancelAll()
	// Зберігаємо все, що є, і збираємо помилки в одну
	var errs error
	for pos, c := range w.chunks {
		if err := w.chunkProvider.PutChunk(pos, c.Chunk); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("chunk %d,%d: %w", pos[0], pos[1], err))
		}
	}
	if errs != nil {
		w.log.Error("Store chunk data error", zap.Int("failed", len(multierr.Errors(errs))), zap.Error(errs))
	}
	w.log.Info("World saved", zap.Int("chunks", len(w.chunks)))
}

// AddPlayer додає гравця до світу.
// Створює для нього завантажувач чанків та додає в BVH дерево
func (w *World) AddPlayer(c Client, p *Player, limiter *rate.Limiter) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	w.loaders[c] = newLoader(p, limiter) // чанки почнуть приходити з наступного тіку
	w.players[c] = p
	p.conn = c
	// Зона видимості - куб навколо гравця зі стороною у два радіуси прогрузки
	p.view = w.playerViews.Insert(p.getView(), playerView{c, p})
}

// RemovePlayer видаляє гравця зі світу
func (w *World) RemovePlayer(c Client, p *Player) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	w.log.Debug("Remove Player",
		zap.Int("loader count", len(w.loaders[c].loaded)),
		zap.Int("world count", len(w.chunks)),
	)
	// Гравець більше не дивиться на свої чанки, вивантажаться вони на наступному тіку
	for pos := range w.loaders[c].loaded {
		if !w.chunks[pos].RemoveViewer(c) {
			w.log.Panic("viewer is not found in the loaded chunk")
		}
	}
	delete(w.loaders, c)
	delete(w.players, c)
	w.playerViews.Remove(p.view)
	// Всі, хто бачив гравця, мають прибрати його модельку
	w.playerViews.AtPoint(p.Position,
		func(n *playerViewNode) bool {
			n.Value.ViewRemoveEntities([]int32{p.EntityID})
			delete(n.Value.EntitiesInView, p.EntityID)
			return true
		},
	)
}

// Online повертає true поки гравець у світі
func (w *World) Online(p *Player) bool {
	if p.conn == nil {
		return false
	}
	_, ok := w.players[p.conn]
	return ok
}

// loadChunk завантажує чанк з диска або генерує новий
func (w *World) loadChunk(pos [2]int32) bool {
	logger := w.log.With(zap.Int32("x", pos[0]), zap.Int32("z", pos[1]))

	c, err := w.chunkProvider.GetChunk(pos)
	switch {
	case errors.Is(err, ErrReachRateLimit):
		return false // спробуємо на наступному тіку
	case errors.Is(err, errChunkNotExist):
		// На диску чанка немає, тож генеруємо рівнину
		c = w.generator.Generate(pos)
		logger.Debug("Generate chunk", zap.Int("sections", len(c.Sections)))
	case err != nil:
		logger.Error("GetChunk error", zap.Error(err))
		return false
	}
	w.chunks[pos] = &LoadedChunk{Chunk: c}
	return true
}

// unloadChunk вивантажує чанк та зберігає його
func (w *World) unloadChunk(pos [2]int32) {
	logger := w.log.With(zap.Int32("x", pos[0]), zap.Int32("z", pos[1]))
	logger.Debug("Unloading chunk")
	c, ok := w.chunks[pos]
	if !ok {
		logger.Panic("Unloading an non-exist chunk")
	}
	for _, viewer := range c.viewers {
		viewer.ViewChunkUnload(pos)
	}
	// Кратери і все, що наробили сувої, лишаються на диску
	if err := w.chunkProvider.PutChunk(pos, c.Chunk); err != nil {
		logger.Error("Store chunk data error", zap.Error(err))
	}
	delete(w.chunks, pos)
}

// LoadedChunk - завантажений чанк разом з тими, хто його бачить
type LoadedChunk struct {
	// захищає viewers і блоки, поки чанк пишеться в пакет
	sync.Mutex
	viewers []ChunkViewer // кому розсилати зміни блоків
	*level.Chunk
}

// AddViewer додає нового спостерігача до чанку.
// Панікує якщо спостерігач вже існує: дубль означає помилку в завантажувачі
func (lc *LoadedChunk) AddViewer(v ChunkViewer) {
	lc.Lock()
	defer lc.Unlock()
	for _, v2 := range lc.viewers {
		if v2 == v {
			panic("append an exist viewer")
		}
	}
	lc.viewers = append(lc.viewers, v)
}

// RemoveViewer видаляє спостерігача з чанку ("swap and pop")
func (lc *LoadedChunk) RemoveViewer(v ChunkViewer) bool {
	lc.Lock()
	defer lc.Unlock()
	for i, v2 := range lc.viewers {
		if v2 == v {
			// Порядок нам не важливий, тож ставимо останнього на місце видаленого
			last := len(lc.viewers) - 1
			lc.viewers[i] = lc.viewers[last]
			lc.viewers = lc.viewers[:last]
			return true
		}
	}
	return false
}
