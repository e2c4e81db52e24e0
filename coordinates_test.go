/*  D3pixelcanvas - On-chain pixel canvas program and local ledger tooling
    Copyright (C) 2019  David Vogel

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

package main

import (
	"image"
	"math"
	"testing"
)

func Test_divisionPolicy_coordsToChunk(t *testing.T) {
	tests := []struct {
		policy divisionPolicy
		x, y   int32
		want   chunkPoint
	}{
		{divisionFloor, 0, 0, chunkPoint{0, 0, 0, 0}},
		{divisionFloor, 5, 5, chunkPoint{0, 0, 5, 5}},
		{divisionFloor, 31, 32, chunkPoint{0, 1, 31, 0}},
		{divisionFloor, 100, 70, chunkPoint{3, 2, 4, 6}},
		{divisionFloor, -1, -1, chunkPoint{-1, -1, 31, 31}},
		{divisionFloor, -32, -33, chunkPoint{-1, -2, 0, 31}},
		{divisionFloor, math.MinInt32, math.MaxInt32, chunkPoint{-67108864, 67108863, 0, 31}},
		{divisionTruncate, 0, 0, chunkPoint{0, 0, 0, 0}},
		{divisionTruncate, 100, 70, chunkPoint{3, 2, 4, 6}},
		{divisionTruncate, -1, -1, chunkPoint{0, 0, -1, -1}},
		{divisionTruncate, -32, -33, chunkPoint{-1, -1, 0, -1}},
		{divisionTruncate, -64, 5, chunkPoint{-2, 0, 0, 5}},
	}

	for _, test := range tests {
		if got := test.policy.coordsToChunk(test.x, test.y); got != test.want {
			t.Errorf("%v.coordsToChunk(%v, %v) = %v, want %v", test.policy, test.x, test.y, got, test.want)
		}
	}
}

func Test_chunkPoint_roundTrip(t *testing.T) {
	values := []int32{math.MinInt32, math.MinInt32 + 1, -1000, -65, -64, -33, -32, -31, -1, 0, 1, 31, 32, 33, 1000, math.MaxInt32 - 1, math.MaxInt32}

	for _, policy := range []divisionPolicy{divisionFloor, divisionTruncate} {
		for _, x := range values {
			for _, y := range values {
				point := policy.coordsToChunk(x, y)
				if gotX, gotY := point.coords(); gotX != x || gotY != y {
					t.Errorf("%v: coordsToChunk(%v, %v).coords() = (%v, %v)", policy, x, y, gotX, gotY)
				}
				if policy == divisionFloor && (!boundsCheckOffset(point.OffsetX) || !boundsCheckOffset(point.OffsetY)) {
					t.Errorf("%v: coordsToChunk(%v, %v) has offset outside of the chunk: %v", policy, x, y, point)
				}
			}
		}
	}
}

// Both policies agree on every coordinate the truncating policy accepts.
func Test_divisionPolicy_compatible(t *testing.T) {
	for x := int32(-200); x <= 200; x++ {
		trunc := divisionTruncate.coordsToChunk(x, x)
		if !boundsCheckOffset(trunc.OffsetX) {
			continue
		}
		if floor := divisionFloor.coordsToChunk(x, x); floor != trunc {
			t.Errorf("coordsToChunk(%v, %v): floor %v, truncate %v", x, x, floor, trunc)
		}
	}
}

func Test_parseDivisionPolicy(t *testing.T) {
	tests := []struct {
		s       string
		want    divisionPolicy
		wantErr bool
	}{
		{"", divisionFloor, false},
		{"floor", divisionFloor, false},
		{"truncate", divisionTruncate, false},
		{"round", 0, true},
	}

	for _, test := range tests {
		got, err := parseDivisionPolicy(test.s)
		if (err != nil) != test.wantErr {
			t.Errorf("parseDivisionPolicy(%q) error = %v, wantErr %v", test.s, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("parseDivisionPolicy(%q) = %v, want %v", test.s, got, test.want)
		}
	}
}

func Test_pixelSize_getOuterChunkRect(t *testing.T) {
	tests := []struct {
		rect image.Rectangle
		want image.Rectangle
	}{
		{image.Rect(0, 0, 32, 32), image.Rect(0, 0, 1, 1)},
		{image.Rect(0, 0, 33, 1), image.Rect(0, 0, 2, 1)},
		{image.Rect(-1, -1, 1, 1), image.Rect(-1, -1, 1, 1)},
		{image.Rect(10, 10, -40, -70), image.Rect(-2, -3, 1, 1)},
	}

	for _, test := range tests {
		if got := canvasChunkSize.getOuterChunkRect(test.rect); got.Rectangle != test.want {
			t.Errorf("getOuterChunkRect(%v) = %v, want %v", test.rect, got.Rectangle, test.want)
		}
	}

	if got, want := (chunkCoordinate{-1, 2}).getPixelRectangle(canvasChunkSize), image.Rect(-32, 64, 0, 96); got != want {
		t.Errorf("getPixelRectangle() = %v, want %v", got, want)
	}
}
