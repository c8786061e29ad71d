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

package scroll_test

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
	"FlowyScrolls/scroll/scrolltest"
)

type recorder struct {
	typ    scroll.Type
	clicks []scroll.Click
	closed *[]scroll.Type
	panics bool
}

func (r *recorder) Type() scroll.Type { return r.typ }
func (r *recorder) Close()            { *r.closed = append(*r.closed, r.typ) }

func (r *recorder) Interact(_ scroll.Player, _ scroll.Item, c scroll.Click) {
	if r.panics {
		panic("broken effect")
	}
	r.clicks = append(r.clicks, c)
}

func TestRegistry(t *testing.T) {
	var closed []scroll.Type
	meteor := &recorder{typ: scroll.Meteor, closed: &closed}
	exit := &recorder{typ: scroll.Exit, closed: &closed}
	reg := scroll.NewRegistry(zap.NewNop())
	reg.Register(meteor)
	reg.Register(exit)
	reg.Register(meteor)

	if got := reg.Types(); !reflect.DeepEqual(got, []scroll.Type{scroll.Meteor, scroll.Exit}) {
		t.Errorf("types %v", got)
	}
	if e, ok := reg.Lookup(scroll.Exit); !ok || e != exit {
		t.Error("lookup failed")
	}

	w := scrolltest.NewWorld(64)
	p := w.AddPlayer("p", mgl64.Vec3{}, 0, 0)
	if reg.Interact(p, scroll.RightClick) {
		t.Error("empty hand handled")
	}
	p.Item = scrolltest.NewItem(scroll.Gravitation, 1)
	if reg.Interact(p, scroll.RightClick) {
		t.Error("unregistered type handled")
	}
	p.Item = scrolltest.NewItem(scroll.Exit, 1)
	if !reg.Interact(p, scroll.LeftClick) || !reflect.DeepEqual(exit.clicks, []scroll.Click{scroll.LeftClick}) {
		t.Errorf("exit clicks %v", exit.clicks)
	}

	// паніка в ефекті не валить обробник пакетів
	exit.panics = true
	if !reg.Interact(p, scroll.RightClick) {
		t.Error("panicking effect reported as unhandled")
	}

	reg.Close()
	if !reflect.DeepEqual(closed, []scroll.Type{scroll.Exit, scroll.Meteor}) {
		t.Errorf("close order %v", closed)
	}
}
