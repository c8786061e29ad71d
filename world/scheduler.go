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

// Йоу, чат! Сьогодні розберемо планувальник задач!
// Всі анімації сувоїв працюють як задачі, які світ викликає раз на N тіків.
// Задачі виконуються в тому ж потоці що і тік світу, тому їм не потрібні
// м'ютекси: поки задача працює, ніхто інший світ не змінює.
// Якщо задача панікує - ми її скасовуємо, а сервер працює далі.

package world

import (
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
)

// Scheduler - таблиця задач, яку просуває тік світу
type Scheduler struct {
	log   *zap.Logger
	tick  int64   // номер поточного тіку
	tasks []*task // задачі в порядку створення
}

// task - одна запланована задача
type task struct {
	next      int64             // тік, на якому задача спрацює наступного разу
	period    int               // 0 - одноразова задача
	fn        func(scroll.Task) // тіло задачі
	cancelled bool
}

func (t *task) Cancel() { t.cancelled = true }
func (t *task) Cancelled() bool { return t.cancelled }

// NewScheduler створює порожній планувальник
func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// RunTimer запускає fn кожні period тіків.
// Затримка менше одного тіку означає "на наступному тіку"
func (s *Scheduler) RunTimer(delay, period int, fn func(scroll.Task)) scroll.Task {
	if period < 1 {
		period = 1
	}
	return s.add(delay, period, fn)
}

// RunLater запускає fn один раз через delay тіків
func (s *Scheduler) RunLater(delay int, fn func(scroll.Task)) scroll.Task {
	return s.add(delay, 0, fn)
}

func (s *Scheduler) add(delay, period int, fn func(scroll.Task)) *task {
	if delay < 1 {
		delay = 1
	}
	t := &task{next: s.tick + int64(delay), period: period, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance просуває час на один тік і виконує всі задачі, яким пора.
// Задачі, створені під час цього тіку, вперше спрацюють не раніше наступного
func (s *Scheduler) Advance() {
	s.tick++
	due := s.tasks[:len(s.tasks):len(s.tasks)] // знімок, бо задачі можуть додавати нові
	for _, t := range due {
		if t.cancelled || t.next > s.tick {
			continue
		}
		s.run(t)
		if t.period > 0 {
			t.next += int64(t.period)
		} else {
			t.cancelled = true
		}
	}
	// Прибираємо скасовані задачі, зберігаючи порядок
	alive := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			alive = append(alive, t)
		}
	}
	for i := len(alive); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = alive
}

// run виконує задачу і ловить паніку, щоб одна зламана анімація
// не поклала весь цикл тіків
func (s *Scheduler) run(t *task) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("Scheduled task panicked, cancelled", zap.Any("panic", r))
			t.cancelled = true
		}
	}()
	t.fn(t)
}

// Run просуває n тіків підряд
func (s *Scheduler) Run(n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

// Tick повертає номер поточного тіку
func (s *Scheduler) Tick() int64 { return s.tick }

// Pending повертає кількість живих задач
func (s *Scheduler) Pending() (n int) {
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return
}

// CancelAll скасовує все, що лишилось
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}
