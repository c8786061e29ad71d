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


// Package entity кодує метадані сутностей. Нам вистачає двох полів:
// поза Dying разом з нульовим здоров'ям запускає в клієнта анімацію смерті.
package entity

import (
	"io"

	pk "github.com/Tnze/go-mc/net/packet"
)

// Value - значення поля разом з його типом у протоколі 1.19.4
type Value interface {
	pk.FieldEncoder
	TypeID() int32
}

type Field struct {
	Index byte
	Value Value
}

// MetadataSet закінчується байтом 0xFF
type MetadataSet []Field

func (m MetadataSet) WriteTo(w io.Writer) (n int64, err error) {
	for _, f := range m {
		var k int64
		k, err = pk.Tuple{
			pk.UnsignedByte(f.Index),
			pk.VarInt(f.Value.TypeID()),
			f.Value,
		}.WriteTo(w)
		n += k
		if err != nil {
			return
		}
	}
	k, err := pk.UnsignedByte(0xFF).WriteTo(w)
	return n + k, err
}

type (
	Float float32
	Pose  int32
)

func (Float) TypeID() int32 { return 3 }
func (Pose) TypeID() int32  { return 20 }

func (f Float) WriteTo(w io.Writer) (int64, error) { return pk.Float(f).WriteTo(w) }
func (p Pose) WriteTo(w io.Writer) (int64, error)  { return pk.VarInt(p).WriteTo(w) }

// Індекси, спільні для всіх живих істот
const (
	IndexPose   byte = 6
	IndexHealth byte = 9
)

const (
	Standing Pose = iota
	FallFlying
	Sleeping
	Swimming
	SpinAttack
	Crouching
	LongJumping
	Dying
)

// Dead - набір, який кладе моба на бік
func Dead() MetadataSet {
	return MetadataSet{
		{Index: IndexPose, Value: Dying},
		{Index: IndexHealth, Value: Float(0)},
	}
}
