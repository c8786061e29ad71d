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

package client

import (
	"encoding/json"
	"io"

	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/chat"
	pk "github.com/Tnze/go-mc/net/packet"
)

// Slot кодує стак предметів для протоколу 1.19.4.
// Теги сувою лежать у NBT під ключем "FlowyScrolls", назва - в display.Name
type Slot struct {
	*world.ItemStack
}

func (s Slot) WriteTo(w io.Writer) (int64, error) {
	if s.ItemStack == nil || s.Amount <= 0 {
		return pk.Boolean(false).WriteTo(w)
	}
	tag, err := s.nbt()
	if err != nil {
		return 0, err
	}
	return pk.Tuple{
		pk.Boolean(true),
		pk.VarInt(s.Item),
		pk.Byte(min(s.Amount, 64)),
		pk.NBT(tag),
	}.WriteTo(w)
}

func (s Slot) nbt() (map[string]any, error) {
	tag := make(map[string]any)
	if s.Name != "" {
		name, err := json.Marshal(chat.Text(s.Name))
		if err != nil {
			return nil, err
		}
		tag["display"] = map[string]any{"Name": string(name)}
	}
	if len(s.Tags) > 0 {
		custom := make(map[string]any, len(s.Tags))
		for _, k := range s.TagKeys() {
			custom[k] = s.Tags[k]
		}
		tag["FlowyScrolls"] = custom
		// чари без тексту дають предмету сяйво
		tag["Enchantments"] = []map[string]any{{"id": "minecraft:unbreaking", "lvl": int16(1)}}
		tag["HideFlags"] = int32(1)
	}
	return tag, nil
}
