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

// Йоу, чат! Як предмет пам'ятає, що він сувій?
// У кожного предмета є постійні теги. В тег "scroll-type" пишемо тип сувою,
// а сувій виходу ще й зберігає точку телепортації у тезі "exit-location".
// Точку кодуємо в NBT - той самий формат, в якому майнкрафт зберігає все інше.

package scroll

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Tnze/go-mc/nbt"
)

const (
	TagType     = "scroll-type"
	TagLocation = "exit-location"
)

// ItemType повертає тип сувою, якщо предмет взагалі сувій
func ItemType(it Item) (Type, bool) {
	if it == nil || it.Count() <= 0 {
		return "", false
	}
	data, ok := it.Tag(TagType)
	if !ok || len(data) == 0 {
		return "", false
	}
	return Type(data), true
}

// MarkItem робить предмет сувоєм типу t
func MarkItem(it Item, t Type) {
	it.SetTag(TagType, []byte(t))
}

// LocationVersion - поточна версія формату точки
const LocationVersion int32 = 1

var (
	ErrNoLocation     = errors.New("scroll has no bound location")
	ErrUnknownVersion = errors.New("unknown location version")
)

// Location - збережена точка виходу
type Location struct {
	Version int32   `nbt:"Version"`
	World   string  `nbt:"World"`
	X       float64 `nbt:"X"`
	Y       float64 `nbt:"Y"`
	Z       float64 `nbt:"Z"`
	Yaw     float32 `nbt:"Yaw"`
	Pitch   float32 `nbt:"Pitch"`
}

// EncodeLocation кодує точку в NBT
func EncodeLocation(l Location) ([]byte, error) {
	l.Version = LocationVersion
	var buf bytes.Buffer
	if err := nbt.NewEncoder(&buf).Encode(l, ""); err != nil {
		return nil, fmt.Errorf("encode location: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeLocation розбирає NBT і перевіряє версію
func DecodeLocation(data []byte) (Location, error) {
	var l Location
	if len(data) == 0 {
		return l, ErrNoLocation
	}
	if _, err := nbt.NewDecoder(bytes.NewReader(data)).Decode(&l); err != nil {
		return Location{}, fmt.Errorf("decode location: %w", err)
	}
	if l.Version != LocationVersion {
		return Location{}, fmt.Errorf("%w: %d", ErrUnknownVersion, l.Version)
	}
	if l.World == "" {
		return Location{}, errors.New("decode location: empty world")
	}
	return l, nil
}

// SaveLocation записує точку в тег предмета
func SaveLocation(it Item, l Location) error {
	data, err := EncodeLocation(l)
	if err != nil {
		return err
	}
	it.SetTag(TagLocation, data)
	return nil
}

// LoadLocation читає точку з тегу предмета
func LoadLocation(it Item) (Location, error) {
	data, ok := it.Tag(TagLocation)
	if !ok {
		return Location{}, ErrNoLocation
	}
	return DecodeLocation(data)
}
