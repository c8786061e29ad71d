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
	"errors"
	"testing"

	"golang.org/x/time/rate"
)

func TestPutChunkRoundTrip(t *testing.T) {
	p := NewProvider(t.TempDir(), rate.NewLimiter(rate.Inf, 1))
	pos := [2]int32{3, -40} // інший регіон, ніж r.0.0
	orig := FlatGenerator{}.Generate(pos)
	if err := p.PutChunk(pos, orig); err != nil {
		t.Fatal(err)
	}
	got, err := p.GetChunk(pos)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Sections) != len(orig.Sections) {
		t.Fatalf("%d sections, want %d", len(got.Sections), len(orig.Sections))
	}
	for i := range orig.Sections {
		for j := 0; j < 16*16*16; j += 97 {
			if a, b := got.Sections[i].GetBlock(j), orig.Sections[i].GetBlock(j); a != b {
				t.Fatalf("section %d block %d: %v, want %v", i, j, a, b)
			}
		}
	}
}

func TestGetMissingChunk(t *testing.T) {
	p := NewProvider(t.TempDir(), rate.NewLimiter(rate.Inf, 1))
	if _, err := p.GetChunk([2]int32{0, 0}); !errors.Is(err, errChunkNotExist) {
		t.Errorf("got %v, want errChunkNotExist", err)
	}
}
