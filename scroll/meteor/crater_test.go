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

package meteor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"FlowyScrolls/scroll"
	"FlowyScrolls/scroll/scrolltest"
	"FlowyScrolls/world"
)

// landed повертає метеорит, який щойно влучив у землю
func landed(t *testing.T, w scroll.World, size int) *Projectile {
	t.Helper()
	p := NewProjectile(mgl64.Vec3{0.5, 120, 0.5}, mgl64.Vec3{3.5, 0, 1.5}, size, uuid.New(), nil)
	for !p.Impacted {
		p.Advance(w)
	}
	return p
}

func TestCraterNeverTouchesBedrock(t *testing.T) {
	w := scrolltest.NewWorld(6) // бедрок зовсім близько до поверхні
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, "")
	st := LoadSettings(svc.Config.Sub("meteor"))

	finished := false
	c := NewCrater(svc, st, landed(t, w, MaxSize), nil)
	c.OnDone(func() { finished = true })
	c.Start()

	for i := 0; i < c.TotalDepth*2+st.CleanupDelay && !finished; i++ {
		sched.Advance()
		if c.Depth > c.TotalDepth {
			t.Fatalf("drilled %d layers, limit is %d", c.Depth, c.TotalDepth)
		}
	}
	if !finished {
		t.Fatal("crater never finished")
	}
	if !c.Complete || c.Depth != c.TotalDepth {
		t.Errorf("depth %d of %d, complete=%v", c.Depth, c.TotalDepth, c.Complete)
	}
	for pos := range w.Blocks {
		if pos.Y() <= 0 {
			t.Fatalf("bedrock at %v was replaced with %q", pos, w.Blocks[pos])
		}
	}
}

func TestCraterDigsHole(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, "meteor:\n  scorch-chance: 0\n  fire-chance: 0\n")
	st := LoadSettings(svc.Config.Sub("meteor"))

	p := landed(t, w, 6)
	c := NewCrater(svc, st, p, nil)
	c.Start()
	sched.Run(c.TotalDepth + 2)
	if !c.Complete {
		t.Fatal("drilling did not complete")
	}

	mouth := scroll.BlockPosFromVec3(p.Pos)
	if m := w.Block(mouth.Side(scroll.FaceDown)); !m.IsAir() {
		t.Errorf("crater mouth is filled with %q", m)
	}
	core := w.Block(scroll.BlockPosFromVec3(c.Rest()))
	if core != "minecraft:magma_block" && core != "minecraft:blackstone" &&
		core != "minecraft:basalt" && core != "minecraft:obsidian" {
		t.Errorf("no meteor core at the bottom, found %q", core)
	}
}

func TestCraterLayerRadius(t *testing.T) {
	w := scrolltest.NewWorld(64)
	svc := scrolltest.Service(t, w, scrolltest.NewScheduler(), "")
	c := NewCrater(svc, LoadSettings(svc.Config.Sub("meteor")), landed(t, w, 4), nil)
	prev := c.LayerRadius(0)
	if math.Abs(prev-5.6) > 1e-9 {
		t.Errorf("top radius %.2f", prev)
	}
	for d := 1; d <= c.TotalDepth; d++ {
		r := c.LayerRadius(d)
		if r > prev || r < 1 {
			t.Fatalf("radius %.2f at depth %d after %.2f", r, d, prev)
		}
		prev = r
	}
}

func TestShockwave(t *testing.T) {
	w := scrolltest.NewWorld(64)
	svc := scrolltest.Service(t, w, scrolltest.NewScheduler(), "")
	st := LoadSettings(svc.Config.Sub("meteor"))
	p := landed(t, w, 4)

	near := w.AddEntity(p.Pos.Add(mgl64.Vec3{1, 0.5, 0}))
	edge := w.AddEntity(p.Pos.Add(mgl64.Vec3{9, 0.5, 0}))
	far := w.AddEntity(p.Pos.Add(mgl64.Vec3{30, 0.5, 0}))
	start := near.Pos

	NewCrater(svc, st, p, nil).shockwave()

	if near.Damaged <= edge.Damaged {
		t.Errorf("close entity took %.2f, edge took %.2f", near.Damaged, edge.Damaged)
	}
	if edge.Damaged < 1 {
		t.Errorf("edge damage %.2f is below the floor", edge.Damaged)
	}
	if far.Damaged != 0 || far.Vel != (mgl64.Vec3{}) {
		t.Error("entity outside the radius was hit")
	}
	if near.Vel[0] <= 0 || near.Vel[1] < st.KnockbackUp {
		t.Errorf("knockback %v does not point away and up", near.Vel)
	}
	if near.Pos == start {
		t.Error("entity did not move")
	}
}

func TestVegetationCleared(t *testing.T) {
	w := scrolltest.NewWorld(64)
	svc := scrolltest.Service(t, w, scrolltest.NewScheduler(), "")
	p := landed(t, w, 4)
	flower := scroll.BlockPosFromVec3(p.Pos).Add(scroll.BlockPos{5, 1, 0})
	torch := scroll.BlockPosFromVec3(p.Pos).Add(scroll.BlockPos{0, 1, 6})
	farGrass := scroll.BlockPosFromVec3(p.Pos).Add(scroll.BlockPos{40, 1, 0})
	w.Blocks[flower] = "minecraft:poppy"
	w.Blocks[torch] = "minecraft:torch"
	w.Blocks[farGrass] = "minecraft:grass"

	NewCrater(svc, LoadSettings(svc.Config.Sub("meteor")), p, nil).clearVegetation()

	if !w.Block(flower).IsAir() || !w.Block(torch).IsAir() {
		t.Error("vegetation near the impact survived")
	}
	if w.Block(farGrass) != "minecraft:grass" {
		t.Error("far vegetation was cleared")
	}
}

// drilled запускає кратер і чекає, поки дно обкладеться кіркою
func drilled(t *testing.T, w *scrolltest.World, sched *world.Scheduler, svc *scroll.Service) *Crater {
	t.Helper()
	c := NewCrater(svc, LoadSettings(svc.Config.Sub("meteor")), landed(t, w, 6), nil)
	c.Start()
	for i := 0; !c.Complete; i++ {
		if i > c.TotalDepth+1 {
			t.Fatal("drilling did not complete")
		}
		sched.Advance()
	}
	return c
}

func TestCraterCrustShell(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, `
meteor:
  fire-chance: 1
  scorch-chance: 0
  palette: [minecraft:obsidian]
  crust: [minecraft:deepslate]
`)
	c := drilled(t, w, sched, svc)

	if core := w.Block(scroll.BlockPosFromVec3(c.Rest())); core != "minecraft:obsidian" {
		t.Errorf("core is %q", core)
	}
	inv := scroll.Rotation(scroll.YawPitch(c.Dir)).Transpose()
	a, b := float64(c.Size)*0.9, float64(c.Size)*1.3
	crust, fires := 0, 0
	for pos, m := range w.Blocks {
		switch m {
		case "minecraft:deepslate":
			crust++
			l := inv.Mul3x1(pos.Vec3Centre().Sub(c.Rest()))
			d := math.Sqrt(l[0]*l[0]/(a*a) + l[1]*l[1]/(a*a) + l[2]*l[2]/(b*b))
			if d < 0.75 || d > 1 {
				t.Fatalf("crust at %v is %.2f of the way out", pos, d)
			}
		case "minecraft:fire":
			fires++
			if w.Block(pos.Side(scroll.FaceDown)) != "minecraft:deepslate" {
				t.Errorf("fire at %v does not burn on the crust", pos)
			}
		}
	}
	if crust == 0 || fires == 0 {
		t.Errorf("%d crust blocks, %d fires", crust, fires)
	}
}

func TestCraterCleanup(t *testing.T) {
	w := scrolltest.NewWorld(64)
	sched := scrolltest.NewScheduler()
	svc := scrolltest.Service(t, w, sched, `
meteor:
  fire-chance: 1
  scorch-chance: 1
  crust: [minecraft:deepslate]
  scorched: [minecraft:basalt]
`)
	c := drilled(t, w, sched, svc)
	mid := scroll.BlockPosFromVec3(c.Center)

	// ямка на краю: земля знизу і стінки з чотирьох боків
	pocket := mid.Add(scroll.BlockPos{9, 0, 0})
	w.Blocks[pocket] = scroll.Air
	w.Blocks[pocket.Side(scroll.FaceDown)] = scroll.Stone
	for _, f := range [...]scroll.Face{scroll.FaceNorth, scroll.FaceSouth, scroll.FaceWest, scroll.FaceEast} {
		w.Blocks[pocket.Side(f)] = scroll.Stone
	}
	stray := mid.Add(scroll.BlockPos{-9, 0, 0})
	w.Blocks[stray.Side(scroll.FaceDown)] = scroll.Stone
	w.Blocks[stray] = "minecraft:fire"
	onMagma := mid.Add(scroll.BlockPos{0, 0, 9})
	w.Blocks[onMagma.Side(scroll.FaceDown)] = "minecraft:magma_block"
	w.Blocks[onMagma] = "minecraft:fire"

	finished := false
	c.OnDone(func() { finished = true })
	sched.Run(c.st.CleanupDelay + 1)
	if !finished {
		t.Fatal("cleanup did not run")
	}
	for pos, m := range w.Blocks {
		if m.IsFire() && pos != onMagma {
			t.Errorf("fire left burning at %v on %q", pos, w.Block(pos.Side(scroll.FaceDown)))
		}
	}
	if !w.Block(onMagma).IsFire() {
		t.Error("fire on magma was put out")
	}
	if m := w.Block(pocket); m != "minecraft:basalt" {
		t.Errorf("rim pocket holds %q", m)
	}
}
