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


// Йоу, чат! Реєстри, які клієнт 1.19.4 отримує в пакеті входу:
// тип виміру, біоми, типи чату і шкоди. Без повного списку типів шкоди
// клієнт падає ще до того, як побачить світ.

package world

import (
	_ "embed"

	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/registry"
)

//go:embed registry_codec_1.19.4.nbt
var networkCodecData []byte

// NetworkCodec - розібраний реєстр. Висота виміру збігається з minY і sections
var NetworkCodec registry.NetworkCodec

func init() {
	if err := nbt.Unmarshal(networkCodecData, &NetworkCodec); err != nil {
		panic("decode registry codec: " + err.Error())
	}
}
