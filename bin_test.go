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
	"bytes"
	"math"
	"testing"
)

func Test_decodeI32(t *testing.T) {
	tests := []struct {
		in   []byte
		want int32
	}{
		{[]byte{0x00, 0x00, 0x00, 0x00}, 0},
		{[]byte{0x00, 0x00, 0x00, 0x05}, 5},
		{[]byte{0x00, 0x00, 0x01, 0x00}, 256},
		{[]byte{0xff, 0xff, 0xff, 0xff}, -1},
		{[]byte{0x80, 0x00, 0x00, 0x00}, math.MinInt32},
		{[]byte{0x7f, 0xff, 0xff, 0xff}, math.MaxInt32},
	}

	for _, test := range tests {
		if got := decodeI32(test.in); got != test.want {
			t.Errorf("decodeI32(%v) = %v, want %v", test.in, got, test.want)
		}
		if got := beI32(test.want); !bytes.Equal(got, test.in) {
			t.Errorf("beI32(%v) = %v, want %v", test.want, got, test.in)
		}
	}
}
