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


package game

import (
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	pk "github.com/Tnze/go-mc/net/packet"
)

// Tag - набір тегів одного реєстру, як їх чекає пакет Update Tags
type Tag[T ~int32 | ~int] struct {
	Name   string
	Values map[string][]T
}

func (t Tag[T]) WriteTo(w io.Writer) (n int64, err error) {
	names := maps.Keys(t.Values)
	slices.Sort(names)

	n, err = pk.Tuple{pk.Identifier(t.Name), pk.VarInt(len(names))}.WriteTo(w)
	for _, name := range names {
		if err != nil {
			return
		}
		ids := t.Values[name]
		row := pk.Tuple{pk.Identifier(name), pk.VarInt(len(ids))}
		for _, id := range ids {
			row = append(row, pk.VarInt(id))
		}
		var m int64
		m, err = row.WriteTo(w)
		n += m
	}
	return
}

// defaultTags - без тегу рідин клієнт не вміє плавати
var defaultTags = []pk.FieldEncoder{
	Tag[int32]{
		Name: "minecraft:fluid",
		Values: map[string][]int32{
			"minecraft:water": {1, 2},
			"minecraft:lava":  {3, 4},
		},
	},
}
