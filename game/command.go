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

// Йоу, чат! Команди сувоїв:
//   /scroll give <тип> [кількість] - покласти сувої в хотбар
//   /scroll list                   - які сувої є на сервері
//   /summon <zombie|skeleton|pig>  - викликати моба, щоб було кого притягувати

package game

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"FlowyScrolls/scroll"
	"FlowyScrolls/world"
	"github.com/Tnze/go-mc/chat"
)

type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdUsage
	cmdGive
	cmdList
	cmdSummon
)

// maxGive - найбільший стак, який можна видати за раз
const maxGive = 64

type command struct {
	kind   commandKind
	name   string // назва команди без "/"
	scroll scroll.Type
	amount int
	mob    string
}

// parseCommand розбирає рядок команди. Тип сувою і моба тут не перевіряються
func parseCommand(line string) command {
	args := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(args) == 0 {
		return command{kind: cmdUnknown}
	}
	cmd := command{kind: cmdUsage, name: args[0]}
	switch {
	case args[0] == "scroll" && len(args) == 2 && args[1] == "list":
		cmd.kind = cmdList
	case args[0] == "scroll" && (len(args) == 3 || len(args) == 4) && args[1] == "give":
		cmd.scroll, cmd.amount = scroll.Type(args[2]), 1
		if len(args) == 4 {
			n, err := strconv.Atoi(args[3])
			if err != nil || n < 1 || n > maxGive {
				return cmd
			}
			cmd.amount = n
		}
		cmd.kind = cmdGive
	case args[0] == "summon" && len(args) == 2:
		cmd.kind, cmd.mob = cmdSummon, args[1]
	case args[0] != "scroll" && args[0] != "summon":
		cmd.kind = cmdUnknown
	}
	return cmd
}

// command виконує команду гравця
func (s *scrolls) command(p *world.Player, line string) {
	if !s.world.Online(p) {
		return
	}
	hp := s.host.player(p)
	cmd := parseCommand(line)
	s.log.Debug("Player command", zap.String("player", p.Name), zap.String("line", line))

	switch cmd.kind {
	case cmdUnknown:
		hp.SendMessage(chat.TranslateMsg("command.unknown.command").SetColor(chat.Red))
	case cmdUsage:
		s.service.Deny(hp, "usage", "command", cmd.name)
	case cmdList:
		s.service.Send(hp, "list", "types", s.typeNames())
	case cmdGive:
		if _, ok := s.registry.Lookup(cmd.scroll); !ok {
			s.service.Deny(hp, "unknown-type", "type", string(cmd.scroll))
			return
		}
		if !p.Inventory.Give(s.newItem(cmd.scroll, cmd.amount)) {
			s.service.Deny(hp, "inventory-full")
			return
		}
		s.service.Send(hp, "given", "amount", strconv.Itoa(cmd.amount), "type", string(cmd.scroll))
	case cmdSummon:
		kind, ok := world.ParseMobKind(cmd.mob)
		if !ok {
			s.service.Deny(hp, "unknown-mob", "mob", cmd.mob, "mobs", strings.Join(world.MobKindNames(), ", "))
			return
		}
		pos := summonPosition(p)
		top := float64(s.world.HighestBlock(int(math.Floor(pos[0])), int(math.Floor(pos[2])), world.Solid))
		if math.Abs(top-pos[1]) <= 16 {
			pos[1] = top + 1
		}
		m := s.world.SpawnMob(kind, world.Position(pos), p.Rotation[0]+180)
		s.service.Send(hp, "summoned", "mob", kind.String(), "id", strconv.Itoa(int(m.EntityID)))
	}
}

// summonPosition - точка за три блоки перед гравцем
func summonPosition(p *world.Player) mgl64.Vec3 {
	yaw := mgl64.DegToRad(float64(p.Rotation[0]))
	dir := mgl64.Vec3{-math.Sin(yaw), 0, math.Cos(yaw)}
	return p.Position.Vec3().Add(dir.Mul(3))
}
