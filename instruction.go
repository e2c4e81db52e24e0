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
	"image/color"

	"github.com/gagliardetto/solana-go"
)

// Creates a set pixel instruction for the given global pixel coordinate.
// The chunk account is derived the same way the program does it, so the policy needs to match the deployed program.
func newSetPixelInstruction(programID solana.PublicKey, division divisionPolicy, x, y int32, col color.RGBA) (instruction, error) {
	point := division.coordsToChunk(x, y)
	chunkAddress, _, err := deriveChunkAddress(programID, point.ChunkX, point.ChunkY)
	if err != nil {
		return instruction{}, err
	}

	args := setPixelArgs{X: x, Y: y, R: col.R, G: col.G, B: col.B}

	data := make([]byte, 0, 1+setPixelDataSize)
	data = append(data, insSetPixel)
	data = append(data, args.encode()...)

	return instruction{
		Program: programID,
		Data:    data,
		Accounts: []accountMeta{
			{
				PublicKey:  chunkAddress,
				IsWritable: true,
			},
			{
				PublicKey: sysvarInstructions,
			},
		},
	}, nil
}
