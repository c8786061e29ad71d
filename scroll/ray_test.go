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

package scroll

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTraceFaces(t *testing.T) {
	target := BlockPos{5, 5, 5}
	stop := func(p BlockPos) bool { return p == target }
	centre := target.Vec3Centre()
	for f := FaceDown; f <= FaceEast; f++ {
		from := centre.Add(f.Normal().Mul(4))
		hit, ok := Trace(from, centre, stop)
		if !ok {
			t.Fatalf("%v: no hit", f)
		}
		if hit.Pos != target || hit.Face != f {
			t.Errorf("%v: hit %v through %v", f, hit.Pos, hit.Face)
		}
		want := centre.Add(f.Normal().Mul(0.5))
		if hit.Point.Sub(want).Len() > 1e-9 {
			t.Errorf("%v: point %v, want %v", f, hit.Point, want)
		}
	}
}

func TestTraceDiagonal(t *testing.T) {
	var visited []BlockPos
	_, ok := Trace(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{3.7, 2.2, 0.5}, func(p BlockPos) bool {
		visited = append(visited, p)
		return false
	})
	if ok {
		t.Fatal("hit in empty space")
	}
	// кожен наступний блок - сусід попереднього через грань
	for i := 1; i < len(visited); i++ {
		d := 0
		for k := 0; k < 3; k++ {
			d += int(math.Abs(float64(visited[i][k] - visited[i-1][k])))
		}
		if d != 1 {
			t.Fatalf("step %d jumps from %v to %v", i, visited[i-1], visited[i])
		}
	}
	if last := visited[len(visited)-1]; last != (BlockPos{3, 2, 0}) {
		t.Errorf("ended in %v", last)
	}
}

func TestTraceStartInside(t *testing.T) {
	hit, ok := Trace(mgl64.Vec3{1.5, 1.5, 1.5}, mgl64.Vec3{9, 9, 9}, func(BlockPos) bool { return true })
	if !ok || hit.Pos != (BlockPos{1, 1, 1}) {
		t.Errorf("hit %v %v", hit, ok)
	}
	if _, ok := Trace(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, func(BlockPos) bool { return false }); ok {
		t.Error("zero length ray hit something")
	}
}
