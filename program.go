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
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const (
	insSetPixel = 1

	setPixelDataSize = 4 + 4 + 3 // x, y, r, g, b

	resultSuccess uint64 = 1 // Returned by every successful instruction
)

// Every failure of the program wraps this error. The runtime discards all changes of an aborted call.
var errAborted = errors.New("Program aborted")

func abortf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", errAborted, fmt.Sprintf(format, a...))
}

// Address of the instructions introspection sysvar: Sysvar1nstructions1111111111111111111111111
var sysvarInstructions = solana.PublicKey{
	0x06, 0xa7, 0xd5, 0x17, 0x18, 0x7b, 0xd1, 0x66,
	0x35, 0xda, 0xd4, 0x04, 0x55, 0xfd, 0xc2, 0xc0,
	0xc1, 0x24, 0xc6, 0x8f, 0x21, 0x56, 0x75, 0xa5,
	0xdb, 0xba, 0xcb, 0x5f, 0x08, 0x00, 0x00, 0x00,
}

// The canvas program. It holds no state, only the options that change its behavior.
type canvasProgram struct {
	Division          divisionPolicy
	SingleInstruction bool // Reject transactions that bundle other instructions
}

type setPixelArgs struct {
	X, Y    int32
	R, G, B uint8
}

func decodeSetPixelArgs(data []byte) (setPixelArgs, error) {
	if len(data) != setPixelDataSize {
		return setPixelArgs{}, abortf("Set pixel data has %d bytes, expected %d", len(data), setPixelDataSize)
	}

	return setPixelArgs{
		X: decodeI32(data[0:]),
		Y: decodeI32(data[4:]),
		R: data[8],
		G: data[9],
		B: data[10],
	}, nil
}

func (args setPixelArgs) encode() []byte {
	data := make([]byte, setPixelDataSize)
	encodeI32(data[0:], args.X)
	encodeI32(data[4:], args.Y)
	data[8], data[9], data[10] = args.R, args.G, args.B
	return data
}

// Executes a single instruction.
// The first byte of data selects the instruction, the rest is handed to the instruction handler.
func (prog canvasProgram) entrypoint(programID solana.PublicKey, accounts []*accountInfo, data []byte) (uint64, error) {
	if len(data) < 1 {
		return 0, abortf("Missing instruction discriminant")
	}

	switch data[0] {
	case insSetPixel:
		if len(accounts) != 2 {
			return 0, abortf("Set pixel needs 2 accounts, got %d", len(accounts))
		}
		return prog.instructionSetPixel(programID, accounts[0], accounts[1], data[1:])
	}

	return 0, abortf("Unknown instruction %d", data[0])
}

func (prog canvasProgram) instructionSetPixel(programID solana.PublicKey, chunk, insns *accountInfo, data []byte) (uint64, error) {
	// Pre-flight checks on chunk account
	if !chunk.Owner.Equals(programID) {
		return 0, abortf("Chunk account %v is owned by %v", chunk.Key, chunk.Owner)
	}
	if !chunk.IsWritable {
		return 0, abortf("Chunk account %v is not writable", chunk.Key)
	}
	if len(chunk.Data) != chunkDataSize {
		return 0, abortf("Chunk account %v has %d bytes, expected %d", chunk.Key, len(chunk.Data), chunkDataSize)
	}

	// Pre-flight checks on instruction account
	if !insns.Key.Equals(sysvarInstructions) {
		return 0, abortf("Account %v is not the instructions sysvar", insns.Key)
	}
	if prog.SingleInstruction {
		count, err := instructionsSysvarCount(insns.Data)
		if err != nil {
			return 0, abortf("Can't read instructions sysvar: %v", err)
		}
		if count != 1 {
			return 0, abortf("Transaction contains %d instructions, expected 1", count)
		}
	}

	args, err := decodeSetPixelArgs(data)
	if err != nil {
		return 0, err
	}

	point := prog.Division.coordsToChunk(args.X, args.Y)

	// Check chunk program address
	chunkAddress, _, err := deriveChunkAddress(programID, point.ChunkX, point.ChunkY)
	if err != nil {
		return 0, err
	}
	if !chunk.Key.Equals(chunkAddress) {
		return 0, abortf("Chunk account %v doesn't match chunk (%d, %d) at %v", chunk.Key, point.ChunkX, point.ChunkY, chunkAddress)
	}

	if err := setPixel(chunk.Data, point.OffsetX, point.OffsetY, args.R, args.G, args.B); err != nil {
		return 0, err
	}

	return resultSuccess, nil
}

// Returns the number of instructions of the current transaction, stored in the first two bytes of the instructions sysvar.
func instructionsSysvarCount(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("Sysvar data has %d bytes", len(data))
	}

	return int(binary.LittleEndian.Uint16(data)), nil
}
