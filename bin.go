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

import "encoding/binary"

// Big-endian helpers for instruction payloads and derivation seeds.

func decodeU32(in []byte) uint32 {
	return binary.BigEndian.Uint32(in)
}

func decodeI32(in []byte) int32 {
	return int32(decodeU32(in))
}

func encodeU32(out []byte, x uint32) {
	binary.BigEndian.PutUint32(out, x)
}

func encodeI32(out []byte, x int32) {
	encodeU32(out, uint32(x))
}

// Returns the 4 byte big-endian representation of x.
func beI32(x int32) []byte {
	out := make([]byte, 4)
	encodeI32(out, x)
	return out
}
