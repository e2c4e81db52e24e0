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
	"encoding/binary"
	"image/color"
	"testing"
)

var colorRed = color.RGBA{255, 0, 0, 255}

func Test_newSetPixelInstruction(t *testing.T) {
	ins, err := newSetPixelInstruction(testProgramID, divisionFloor, -2, 300, color.RGBA{1, 2, 3, 255})
	if err != nil {
		t.Fatalf("newSetPixelInstruction() failed: %v", err)
	}

	wantData := []byte{
		1,                      // Set pixel
		0xff, 0xff, 0xff, 0xfe, // x
		0x00, 0x00, 0x01, 0x2c, // y
		1, 2, 3,
	}
	if !bytes.Equal(ins.Data, wantData) {
		t.Errorf("Data = %v, want %v", ins.Data, wantData)
	}

	chunkAddress, _, _ := deriveChunkAddress(testProgramID, -1, 9)
	if len(ins.Accounts) != 2 {
		t.Fatalf("Instruction has %v accounts, want 2", len(ins.Accounts))
	}
	if !ins.Accounts[0].PublicKey.Equals(chunkAddress) || !ins.Accounts[0].IsWritable || ins.Accounts[0].IsSigner {
		t.Errorf("Accounts[0] = %+v, want writable chunk %v", ins.Accounts[0], chunkAddress)
	}
	if !ins.Accounts[1].PublicKey.Equals(sysvarInstructions) || ins.Accounts[1].IsWritable {
		t.Errorf("Accounts[1] = %+v, want read-only instructions sysvar", ins.Accounts[1])
	}
	if !ins.Program.Equals(testProgramID) {
		t.Errorf("Program = %v, want %v", ins.Program, testProgramID)
	}
}

func Test_decodeSetPixelArgs(t *testing.T) {
	args := setPixelArgs{X: -123456, Y: 654321, R: 9, G: 8, B: 7}

	got, err := decodeSetPixelArgs(args.encode())
	if err != nil || got != args {
		t.Errorf("decodeSetPixelArgs() = %v, %v, want %v", got, err, args)
	}

	for _, size := range []int{0, 10, 12} {
		if _, err := decodeSetPixelArgs(make([]byte, size)); err == nil {
			t.Errorf("decodeSetPixelArgs() accepted %v bytes", size)
		}
	}
}

func Test_encodeInstructionsSysvar(t *testing.T) {
	ins, _ := newSetPixelInstruction(testProgramID, divisionFloor, 0, 0, colorRed)

	data := encodeInstructionsSysvar([]instruction{ins, ins}, 1)

	count, err := instructionsSysvarCount(data)
	if err != nil || count != 2 {
		t.Errorf("instructionsSysvarCount() = %v, %v, want 2", count, err)
	}

	// Header, 2 * (accounts, 2 metas, program, data length, data), current index
	insSize := 2 + 2*(1+32) + 32 + 2 + len(ins.Data)
	if want := 2 + 2*2 + 2*insSize + 2; len(data) != want {
		t.Fatalf("Sysvar has %v bytes, want %v", len(data), want)
	}

	if offset := binary.LittleEndian.Uint16(data[2:]); offset != 6 {
		t.Errorf("Offset of instruction 0 = %v, want 6", offset)
	}
	if offset := binary.LittleEndian.Uint16(data[4:]); int(offset) != 6+insSize {
		t.Errorf("Offset of instruction 1 = %v, want %v", offset, 6+insSize)
	}
	if flags := data[6+2]; flags != 2 {
		t.Errorf("Flags of the chunk account = %v, want writable", flags)
	}
	if current := binary.LittleEndian.Uint16(data[len(data)-2:]); current != 1 {
		t.Errorf("Current instruction = %v, want 1", current)
	}
}
