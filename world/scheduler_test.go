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

package world

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"FlowyScrolls/scroll"
)

func TestSchedulerTimer(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	var ticks []int64
	s.RunTimer(2, 3, func(scroll.Task) { ticks = append(ticks, s.Tick()) })
	s.Run(10)
	if want := []int64{2, 5, 8}; !reflect.DeepEqual(ticks, want) {
		t.Errorf("fired at %v, want %v", ticks, want)
	}
}

func TestSchedulerLater(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	n := 0
	s.RunLater(0, func(scroll.Task) { n++ })
	if s.Pending() != 1 {
		t.Fatal("task not queued")
	}
	s.Run(5)
	if n != 1 || s.Pending() != 0 {
		t.Errorf("ran %d times, %d pending", n, s.Pending())
	}
}

func TestSchedulerSelfCancel(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	n := 0
	s.RunTimer(1, 1, func(task scroll.Task) {
		n++
		if n == 3 {
			task.Cancel()
		}
	})
	s.Run(10)
	if n != 3 || s.Pending() != 0 {
		t.Errorf("ran %d times, %d pending", n, s.Pending())
	}
}

func TestSchedulerNestedTask(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	var order []string
	s.RunLater(1, func(scroll.Task) {
		order = append(order, "outer")
		// нова задача не спрацює в цьому ж тіку
		s.RunLater(0, func(scroll.Task) { order = append(order, "inner") })
	})
	s.Advance()
	if !reflect.DeepEqual(order, []string{"outer"}) {
		t.Fatalf("first tick ran %v", order)
	}
	s.Advance()
	if !reflect.DeepEqual(order, []string{"outer", "inner"}) {
		t.Errorf("second tick ran %v", order)
	}
}

func TestSchedulerCancelOther(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	ran := false
	var victim scroll.Task
	s.RunLater(1, func(scroll.Task) { victim.Cancel() })
	victim = s.RunLater(1, func(scroll.Task) { ran = true })
	s.Run(3)
	if ran {
		t.Error("task cancelled earlier in the same tick still ran")
	}
}

func TestSchedulerPanic(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewScheduler(zap.New(core))
	n, healthy := 0, 0
	s.RunTimer(1, 1, func(scroll.Task) {
		n++
		panic("boom")
	})
	s.RunTimer(1, 1, func(scroll.Task) { healthy++ })
	s.Run(5)
	if n != 1 || healthy != 5 {
		t.Errorf("panicking task ran %d times, healthy %d", n, healthy)
	}
	if logs.Len() != 1 {
		t.Errorf("%d warnings", logs.Len())
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	first := s.RunTimer(1, 1, func(scroll.Task) {})
	s.RunLater(10, func(scroll.Task) {})
	s.CancelAll()
	if s.Pending() != 0 || !first.Cancelled() {
		t.Error("tasks survived CancelAll")
	}
}
