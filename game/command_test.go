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
	"testing"

	"FlowyScrolls/scroll"
)

func TestParseCommand(t *testing.T) {
	for _, c := range []struct {
		line string
		want command
	}{
		{"/scroll list", command{kind: cmdList, name: "scroll"}},
		{"scroll give meteor", command{kind: cmdGive, name: "scroll", scroll: scroll.Meteor, amount: 1}},
		{"/scroll give exit 16", command{kind: cmdGive, name: "scroll", scroll: scroll.Exit, amount: 16}},
		{"/scroll give exit 0", command{kind: cmdUsage, name: "scroll", scroll: scroll.Exit, amount: 1}},
		{"/scroll give exit lots", command{kind: cmdUsage, name: "scroll", scroll: scroll.Exit, amount: 1}},
		{"/scroll give exit 65", command{kind: cmdUsage, name: "scroll", scroll: scroll.Exit, amount: 1}},
		{"/scroll", command{kind: cmdUsage, name: "scroll"}},
		{"/summon pig", command{kind: cmdSummon, name: "summon", mob: "pig"}},
		{"/summon", command{kind: cmdUsage, name: "summon"}},
		{"/gamemode creative", command{kind: cmdUnknown, name: "gamemode"}},
		{"   ", command{kind: cmdUnknown}},
	} {
		if got := parseCommand(c.line); got != c.want {
			t.Errorf("%q: got %+v, want %+v", c.line, got, c.want)
		}
	}
}
