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

// Йоу, чат! Сьогодні ми розберемо як влаштований гравець у нашому сервері!
// Тут і дані гравця (позиція, здоров'я, хотбар), і дії світу над ним:
// телепорт, поштовх, шкода. Всі дії викликаються тільки з потоку тіків.

package world

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/Tnze/go-mc/chat"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/Tnze/go-mc/yggdrasil/user"

	"FlowyScrolls/world/internal/bvh"
)

// ReadFrom читає інформацію про клієнт з мережевого потоку
// Використовує пакетний формат Minecraft для десеріалізації даних
func (i *ClientInfo) ReadFrom(r io.Reader) (n int64, err error) {
	return pk.Tuple{
		(*pk.String)(&i.Locale),                   // мова клієнта
		(*pk.Byte)(&i.ViewDistance),               // дальність прогрузки
		(*pk.VarInt)(&i.ChatMode),                 // налаштування чату
		(*pk.Boolean)(&i.ChatColors),              // кольоровий чат
		(*pk.UnsignedByte)(&i.DisplayedSkinParts), // видимі частини скіну
		(*pk.VarInt)(&i.MainHand),                 // основна рука
		(*pk.Boolean)(&i.EnableTextFiltering),     // фільтрація чату
		(*pk.Boolean)(&i.AllowServerListings),     // показ у списку серверів
	}.ReadFrom(r)
}

// Player - основна структура, що представляє гравця
// Містить всю інформацію про стан гравця у грі
type Player struct {
	Entity                     // наслідуємо базові поля сутності
	Name       string          // нікнейм гравця
	UUID       uuid.UUID       // унікальний ідентифікатор
	PubKey     *user.PublicKey // публічний ключ для верифікації
	Properties []user.Property // додаткові властивості (скін, плащ)

	lastChatTimestamp time.Time // час останнього повідомлення чи команди

	ChunkPos     [3]int32 // позиція в координатах чанків
	ViewDistance int32    // радіус прогрузки в чанках

	Gamemode       int32             // режим гри (0-виживання, 1-креатив...)
	Health         float64           // здоров'я, максимум MaxHealth
	Inventory      Inventory         // хотбар
	EntitiesInView map[int32]*Entity // сутності в зоні видимості
	view           *playerViewNode   // вузол для оптимізації видимості
	teleport       *TeleportRequest  // запит на телепортацію
	conn           Client            // з'єднання, поки гравець у світі

	Inputs Inputs // поточний стан вводу від клієнта
}

// MaxHealth - повне здоров'я гравця
const MaxHealth = 20

// NewPlayer створює гравця на позиції pos
func NewPlayer(name string, id uuid.UUID, pos Position, rot Rotation, gamemode int32) *Player {
	return &Player{
		Entity: Entity{
			EntityID: NewEntityID(),
			Position: pos,
			Rotation: rot,
			pos0:     pos,
			rot0:     rot,
		},
		Name:           name,
		UUID:           id,
		ChunkPos:       chunkPos3(pos),
		Gamemode:       gamemode,
		Health:         MaxHealth,
		EntitiesInView: make(map[int32]*Entity),
		ViewDistance:   defaultViewDistance,
		Inputs: Inputs{
			ClientInfo: ClientInfo{ViewDistance: defaultViewDistance},
			Position:   pos,
			Rotation:   rot,
		},
	}
}

// defaultViewDistance діє, поки клієнт не надіслав свої налаштування
const defaultViewDistance = 10

func chunkPos3(pos Position) [3]int32 {
	return [3]int32{
		int32(math.Floor(pos[0])) >> 4,
		int32(math.Floor(pos[1])) >> 4,
		int32(math.Floor(pos[2])) >> 4,
	}
}

// Conn повертає з'єднання гравця або nil, якщо він вийшов
func (p *Player) Conn() Client { return p.conn }

// Survival - гравець може отримувати шкоду
func (p *Player) Survival() bool { return p.Gamemode == 0 || p.Gamemode == 2 }

// chunkPosition повертає 2D координати чанка гравця
// Використовується для завантаження чанків навколо
func (p *Player) chunkPosition() [2]int32 { return [2]int32{p.ChunkPos[0], p.ChunkPos[2]} }

// chunkRadius повертає радіус прогрузки в чанках
// Визначає скільки чанків навколо гравця буде завантажено
func (p *Player) chunkRadius() int32 { return p.ViewDistance }

// getView розраховує куб видимості гравця
// Використовується для визначення які сутності видно гравцю
func (p *Player) getView() bvh.Box {
	return bvh.Cube(p.Position.Vec3(), float64(p.ViewDistance)*16)
}

// TeleportRequest - запит на телепортацію гравця
// Використовується для синхронізації позиції з клієнтом
type TeleportRequest struct {
	ID       int32 // унікальний ID телепортації
	Position       // нова позиція
	Rotation       // новий кут повороту
}

// Inputs - структура для зберігання стану вводу від клієнта
// Захищена мютексом для безпечного доступу з різних горутин
type Inputs struct {
	sync.Mutex               // захист від гонки даних
	ClientInfo               // налаштування клієнта
	Position                 // поточна позиція
	Rotation                 // поточний поворот
	OnGround                 // чи на землі
	Latency    time.Duration // затримка
	TeleportID int32         // ID останньої телепортації
}

// ClientInfo - налаштування та можливості клієнта
// Отримуються при підключенні гравця
type ClientInfo struct {
	Locale              string // мова клієнта
	ViewDistance        int8   // радіус прогрузки
	ChatMode            int32  // режим чату
	ChatColors          bool   // підтримка кольорів
	DisplayedSkinParts  byte   // видимі частини скіну
	MainHand            int32  // основна рука (0-ліва, 1-права)
	EnableTextFiltering bool   // фільтрація чату
	AllowServerListings bool   // дозвіл показу в списку
}

// Players повертає гравців світу в порядку ID
func (w *World) Players() []*Player {
	list := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b *Player) bool { return a.EntityID < b.EntityID })
	return list
}

// Broadcast надсилає системне повідомлення всім гравцям
func (w *World) Broadcast(msg chat.Message) {
	for c := range w.players {
		c.SendSystemChat(msg, false)
	}
}

// TeleportPlayer переносить гравця. Іншим гравцям переміщення розішле тік
func (w *World) TeleportPlayer(p *Player, pos Position) {
	if p.conn == nil {
		return
	}
	id := p.conn.SendPlayerPosition(pos, p.Rotation)
	p.teleport = &TeleportRequest{ID: id, Position: pos, Rotation: p.Rotation}
	p.pos0 = pos
}

// SetPlayerVelocity штовхає гравця. Швидкість в блоках за тік
func (w *World) SetPlayerVelocity(p *Player, v mgl64.Vec3) {
	if p.conn != nil {
		p.conn.SendEntityMotion(p.EntityID, [3]float64(v))
	}
}

// DamagePlayer віднімає здоров'я. Якщо гравець помер - повертаємо його на спавн з повним здоров'ям
func (w *World) DamagePlayer(p *Player, amount float64) {
	if p.conn == nil || !p.Survival() || amount <= 0 {
		return
	}
	p.Health -= amount
	if p.Health <= 0 {
		w.log.Info("Player died", zap.String("name", p.Name))
		p.Health = MaxHealth
		spawn, _ := w.SpawnPositionAndAngle()
		w.TeleportPlayer(p, Position{float64(spawn[0]) + 0.5, float64(spawn[1]), float64(spawn[2]) + 0.5})
	}
	p.conn.SendHealth(float32(p.Health), 20, 5)
}

// PlaySound грає звук тільки гравцю p
func (w *World) PlaySound(p *Player, name string, volume, pitch float32) {
	if p.conn != nil {
		p.conn.SendSound(name, [3]float64(p.Position), volume, pitch)
	}
}

// SetLastChatTimestamp приймає час нового повідомлення чи команди.
// Час підписаного чату не йде назад, інакше клієнт шахраює
func (p *Player) SetLastChatTimestamp(t time.Time) bool {
	if !p.lastChatTimestamp.Before(t) {
		return false
	}
	p.lastChatTimestamp = t
	return true
}
