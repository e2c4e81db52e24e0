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
	"github.com/gagliardetto/solana-go"
)

// Seed tag of chunk accounts. Existing chunk accounts were derived with the terminating zero byte included.
var chunkSeedTag = []byte("Chunk\x00")

// Returns the ordered seed list of a chunk account. y precedes x.
func chunkSeeds(chunkX, chunkY int32) [][]byte {
	return [][]byte{
		chunkSeedTag,
		beI32(chunkY),
		beI32(chunkX),
	}
}

// deriveChunkAddress returns the account address of a chunk, and the bump seed that was used to push it off the curve.
func deriveChunkAddress(programID solana.PublicKey, chunkX, chunkY int32) (solana.PublicKey, uint8, error) {
	address, bump, err := solana.FindProgramAddress(chunkSeeds(chunkX, chunkY), programID)
	if err != nil {
		return solana.PublicKey{}, 0, abortf("Can't derive address of chunk (%d, %d): %v", chunkX, chunkY, err)
	}

	return address, bump, nil
}
