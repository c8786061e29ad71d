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
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/level/block"

	"FlowyScrolls/world/entity"
)

// fakeClient записує все, що світ йому надіслав
type fakeClient struct {
	chunks    int
	blocks    map[[3]int]block.StateID
	particles []int32
	sounds    []string
	chat      []string
	slots     map[int16]*ItemStack
	added     []int32
	removed   []int32
	teleports []int32
	data      map[int32]entity.MetadataSet
	motion    [][3]float64
	health    []float32
	positions int32
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		blocks: make(map[[3]int]block.StateID),
		slots:  make(map[int16]*ItemStack),
		data:   make(map[int32]entity.MetadataSet),
	}
}

func (c *fakeClient) ViewChunkLoad(level.ChunkPos, *level.Chunk) { c.chunks++ }
func (c *fakeClient) ViewChunkUnload(level.ChunkPos)             { c.chunks-- }
func (c *fakeClient) ViewBlockUpdate(pos [3]int, s block.StateID) {
	c.blocks[pos] = s
}
func (c *fakeClient) ViewAddPlayer(p *Player)               { c.added = append(c.added, p.EntityID) }
func (c *fakeClient) ViewAddMob(m *Mob)                     { c.added = append(c.added, m.EntityID) }
func (c *fakeClient) ViewRemoveEntities(ids []int32)        { c.removed = append(c.removed, ids...) }
func (c *fakeClient) ViewEntityData(id int32, d entity.MetadataSet) { c.data[id] = d }
func (c *fakeClient) ViewMoveEntityPos(int32, [3]int16, bool)                {}
func (c *fakeClient) ViewMoveEntityPosAndRot(int32, [3]int16, [2]int8, bool) {}
func (c *fakeClient) ViewMoveEntityRot(int32, [2]int8, bool)                 {}
func (c *fakeClient) ViewRotateHead(int32, int8)                             {}
func (c *fakeClient) ViewTeleportEntity(id int32, _ [3]float64, _ [2]int8, _ bool) {
	c.teleports = append(c.teleports, id)
}
func (c *fakeClient) SendDisconnect(chat.Message) {}
func (c *fakeClient) SendPlayerPosition([3]float64, [2]float32) int32 {
	c.positions++
	return c.positions
}
func (c *fakeClient) SendSetChunkCacheCenter([2]int32) {}
func (c *fakeClient) SendSystemChat(msg chat.Message, _ bool) {
	c.chat = append(c.chat, msg.ClearString())
}
func (c *fakeClient) SendBlockUpdate(pos [3]int, s block.StateID) { c.blocks[pos] = s }
func (c *fakeClient) SendParticle(id int32, _ [3]float64, _, _ float32, _ int32) {
	c.particles = append(c.particles, id)
}
func (c *fakeClient) SendSound(name string, _ [3]float64, _, _ float32) {
	c.sounds = append(c.sounds, name)
}
func (c *fakeClient) SendEntityMotion(_ int32, v [3]float64) { c.motion = append(c.motion, v) }
func (c *fakeClient) SendHealth(h float32, _ int32, _ float32) {
	c.health = append(c.health, h)
}
func (c *fakeClient) SendContainerSlot(slot int16, s *ItemStack) { c.slots[slot] = s }

// testWorld - світ без циклу тіків з одним згенерованим чанком навколо нуля
func testWorld(t *testing.T) *World {
	t.Helper()
	w := newWorld(zap.NewNop(), NewProvider(t.TempDir(), rate.NewLimiter(rate.Inf, 1)), Config{
		ViewDistance:  2,
		SpawnPosition: [3]int32{0, FlatY + 1, 0},
	})
	for x := int32(-1); x <= 0; x++ {
		for z := int32(-1); z <= 0; z++ {
			w.setChunk([2]int32{x, z}, FlatGenerator{}.Generate([2]int32{x, z}))
		}
	}
	return w
}

func addTestPlayer(w *World, pos Position) (*Player, *fakeClient) {
	c := newFakeClient()
	p := NewPlayer("steve", uuid.New(), pos, Rotation{}, 0)
	p.ViewDistance = 2
	w.AddPlayer(c, p, rate.NewLimiter(rate.Inf, 1))
	return p, c
}

func TestFlatGenerator(t *testing.T) {
	w := testWorld(t)
	cases := []struct {
		y    int
		want string
	}{
		{minY, "minecraft:bedrock"},
		{0, "minecraft:stone"},
		{FlatY - 1, "minecraft:dirt"},
		{FlatY, "minecraft:grass_block"},
		{FlatY + 2, "minecraft:air"},
		{maxY + 10, "minecraft:air"},
	}
	for _, c := range cases {
		s, ok := w.BlockState(-3, c.y, 5)
		if !ok {
			t.Fatalf("y=%d: chunk not loaded", c.y)
		}
		if got := string(MaterialOf(s)); got != c.want {
			t.Errorf("y=%d: %s, want %s", c.y, got, c.want)
		}
	}
	if _, ok := w.BlockState(100, 64, 100); ok {
		t.Error("unloaded chunk reported a block")
	}
	if h := w.HighestBlock(-3, 5, Solid); h != FlatY {
		t.Errorf("highest solid block %d, want %d", h, FlatY)
	}
	if h := w.HighestBlock(100, 100, Solid); h != minY-1 {
		t.Errorf("unloaded column height %d", h)
	}
}

func TestSetBlockStateNotifiesViewers(t *testing.T) {
	w := testWorld(t)
	c := newFakeClient()
	w.chunks[[2]int32{0, 0}].AddViewer(c)

	obsidian, ok := StateOf("minecraft:obsidian")
	if !ok {
		t.Fatal("obsidian is unknown")
	}
	if !w.SetBlockState(3, 70, 4, obsidian) {
		t.Fatal("set failed")
	}
	if s, _ := w.BlockState(3, 70, 4); s != obsidian {
		t.Error("block not stored")
	}
	if c.blocks[[3]int{3, 70, 4}] != obsidian {
		t.Error("viewer not notified")
	}
	// інший чанк цей глядач не бачить
	w.SetBlockState(-3, 70, 4, obsidian)
	if _, ok := c.blocks[[3]int{-3, 70, 4}]; ok {
		t.Error("viewer got a block from a chunk it does not watch")
	}
	if w.SetBlockState(3, maxY+1, 4, obsidian) || w.SetBlockState(500, 70, 0, obsidian) {
		t.Error("set outside the loaded world succeeded")
	}
}

func TestMaterials(t *testing.T) {
	s, ok := StateOf("minecraft:grass_block")
	if !ok || MaterialOf(s) != "minecraft:grass_block" {
		t.Fatal("grass_block round trip failed")
	}
	// стандартний стан трави - без снігу
	if s != block.ToStateID[block.GrassBlock{}] {
		t.Error("grass_block is not in its default state")
	}
	if _, ok := StateOf("minecraft:not_a_block"); ok {
		t.Error("made up block accepted")
	}
	if MaterialOf(-1) != "minecraft:air" {
		t.Error("invalid state is not air")
	}
	if Solid(airState) || !Solid(block.ToStateID[block.Stone{}]) {
		t.Error("solidity is wrong")
	}
}

func TestParticleIDs(t *testing.T) {
	for name, want := range map[string]int32{
		"minecraft:flame":          28,
		"large_smoke":              44,
		"minecraft:portal":         49,
		"minecraft:reverse_portal": 79,
		"minecraft:end_rod":        20,
	} {
		if id, ok := ParticleID(name); !ok || id != want {
			t.Errorf("%s: %d, want %d", name, id, want)
		}
	}
	if _, ok := ParticleID("minecraft:dust"); ok {
		t.Error("dust needs extra data and must be rejected")
	}
}

func TestEffectsReachViewers(t *testing.T) {
	w := testWorld(t)
	_, near := addTestPlayer(w, Position{0, 64, 0})
	_, far := addTestPlayer(w, Position{1000, 64, 1000})

	w.Particle(28, Position{5, 65, 5}.Vec3(), 0.5, 0, 4)
	w.Sound("minecraft:entity.generic.explode", Position{5, 65, 5}.Vec3(), 1, 1)
	if len(near.particles) != 1 || len(near.sounds) != 1 {
		t.Errorf("near player got %d particles, %d sounds", len(near.particles), len(near.sounds))
	}
	if len(far.particles)+len(far.sounds) != 0 {
		t.Error("far player got effects")
	}
	w.Broadcast(chat.Text("hello"))
	if len(far.chat) != 1 || far.chat[0] != "hello" {
		t.Errorf("broadcast %v", far.chat)
	}
}

func TestPlayerActions(t *testing.T) {
	w := testWorld(t)
	p, c := addTestPlayer(w, Position{0.5, 64, 0.5})
	if !w.Online(p) {
		t.Fatal("player is not online")
	}

	w.TeleportPlayer(p, Position{10, 64, 10})
	if c.positions != 1 || p.pos0 != (Position{10, 64, 10}) {
		t.Error("teleport not sent")
	}

	w.DamagePlayer(p, 5)
	if p.Health != 15 || c.health[len(c.health)-1] != 15 {
		t.Errorf("health %v", p.Health)
	}
	w.DamagePlayer(p, 50)
	if p.Health != MaxHealth {
		t.Errorf("dead player kept %v health", p.Health)
	}
	if p.pos0 != (Position{0.5, FlatY + 1, 0.5}) {
		t.Errorf("dead player respawned at %v", p.pos0)
	}

	p.Gamemode = 1
	w.DamagePlayer(p, 5)
	if p.Health != MaxHealth {
		t.Error("creative player took damage")
	}

	w.RemovePlayer(c, p)
	if w.Online(p) {
		t.Error("removed player is online")
	}
}

func TestMobFallsAndLands(t *testing.T) {
	w := testWorld(t)
	m := w.SpawnMob(Zombie, Position{2.5, 70, 2.5}, 0)
	for i := 0; i < 60; i++ {
		w.subtickMobPhysics()
	}
	if !m.OnGround || m.Position[1] != FlatY+1 {
		t.Errorf("mob at %v, on ground %v", m.Position, m.OnGround)
	}
	if !w.pinned([2]int32{0, 0}) || w.pinned([2]int32{-1, 0}) {
		t.Error("only the mob's chunk must be pinned")
	}
}

func TestMobPushedIntoWall(t *testing.T) {
	w := testWorld(t)
	stone := block.ToStateID[block.Stone{}]
	for y := FlatY + 1; y <= FlatY+3; y++ {
		w.SetBlockState(5, y, 2, stone)
	}
	m := w.SpawnMob(Pig, Position{2.5, FlatY + 1, 2.5}, 0)
	m.OnGround = true
	w.SetMobVelocity(m, [3]float64{3, 0, 0})
	for i := 0; i < 20; i++ {
		w.subtickMobPhysics()
	}
	if m.Position[0] >= 5 {
		t.Errorf("mob went through the wall: %v", m.Position)
	}
	if m.Velocity[0] != 0 {
		t.Errorf("mob still sliding %v", m.Velocity)
	}
}

func TestMobDeath(t *testing.T) {
	w := testWorld(t)
	_, c := addTestPlayer(w, Position{0, 64, 0})
	m := w.SpawnMob(Skeleton, Position{3, 64, 3}, 0)
	w.subtickUpdateMobs()
	if len(c.added) != 1 || c.added[0] != m.EntityID {
		t.Fatalf("mob not shown: %v", c.added)
	}

	w.DamageMob(m, 5)
	if m.Health != 15 || !m.Alive() {
		t.Fatal("mob died too early")
	}
	w.DamageMob(m, 100)
	if m.Alive() || len(w.Mobs()) != 0 {
		t.Fatal("mob survived")
	}
	if d := c.data[m.EntityID]; len(d) != 2 {
		t.Errorf("death metadata %v", d)
	}
	for i := 0; i < deathTicks; i++ {
		w.sched.Advance()
	}
	if _, ok := w.Mob(m.EntityID); ok {
		t.Error("body not removed")
	}
	if len(c.removed) != 1 || c.removed[0] != m.EntityID {
		t.Errorf("removed %v", c.removed)
	}
}

func TestMobKinds(t *testing.T) {
	if k, ok := ParseMobKind("minecraft:pig"); !ok || k != Pig {
		t.Error("pig not found")
	}
	if _, ok := ParseMobKind("creeper"); ok {
		t.Error("creeper is not supported")
	}
	if Zombie.String() != "zombie" || len(MobKindNames()) != 3 {
		t.Error("bad kind names")
	}
}

func TestInventorySync(t *testing.T) {
	w := testWorld(t)
	p, c := addTestPlayer(w, Position{0, 64, 0})

	s := NewItemStack(1, 3, "scroll")
	if !p.Inventory.Give(s) || p.Inventory.HeldItem() != s {
		t.Fatal("stack not in hand")
	}
	w.subtickSyncInventories()
	if c.slots[36] != s {
		t.Fatal("held slot not sent")
	}
	delete(c.slots, 36)
	w.subtickSyncInventories()
	if len(c.slots) != 0 {
		t.Error("unchanged slot sent again")
	}

	s.SetTag("k", []byte("v"))
	w.subtickSyncInventories()
	if c.slots[36] != s {
		t.Error("tag change not sent")
	}

	s.SetCount(0)
	w.subtickSyncInventories()
	if got, ok := c.slots[36]; !ok || got != nil {
		t.Error("empty stack not cleared")
	}
	if p.Inventory.HeldItem() != nil {
		t.Error("empty stack still in hand")
	}

	for i := 0; i < HotbarSlots; i++ {
		p.Inventory.Give(NewItemStack(1, 1, "x"))
	}
	if p.Inventory.Give(NewItemStack(1, 1, "x")) {
		t.Error("full hotbar accepted a stack")
	}
}

func TestSubmitRunsOnTick(t *testing.T) {
	w := testWorld(t)
	ran := false
	w.Submit(func() { ran = true })
	if ran {
		t.Fatal("job ran outside the tick")
	}
	w.tick(1)
	if !ran {
		t.Error("job did not run")
	}
	w.Submit(func() { panic("boom") })
	w.tick(2) // паніка не повинна вбити тік
}

func TestChunkSavedOnUnload(t *testing.T) {
	w := testWorld(t)
	obsidian, _ := StateOf("minecraft:obsidian")
	w.SetBlockState(1, 80, 1, obsidian)
	w.unloadChunk([2]int32{0, 0})
	if w.Loaded(1, 1) {
		t.Fatal("chunk still loaded")
	}
	if !w.loadChunk([2]int32{0, 0}) {
		t.Fatal("chunk not reloaded")
	}
	if s, _ := w.BlockState(1, 80, 1); s != obsidian {
		t.Error("change lost after saving")
	}
}
