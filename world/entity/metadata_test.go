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


package entity

import (
	"bytes"
	"testing"
)

func TestDeadMetadata(t *testing.T) {
	var buf bytes.Buffer
	n, err := Dead().WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		6, 20, 7, // поза: VarInt Dying
		9, 3, 0, 0, 0, 0, // здоров'я: Float 0
		0xFF,
	}
	if !bytes.Equal(buf.Bytes(), want) || n != int64(len(want)) {
		t.Errorf("got % x (%d bytes), want % x", buf.Bytes(), n, want)
	}
}

func TestEmptyMetadata(t *testing.T) {
	var buf bytes.Buffer
	if _, err := MetadataSet(nil).WriteTo(&buf); err != nil || buf.Len() != 1 || buf.Bytes()[0] != 0xFF {
		t.Errorf("empty set encoded as % x", buf.Bytes())
	}
}
