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
)

// Serializes the instructions of a transaction the way the instructions sysvar stores them:
//
//	u16 count, u16 offset per instruction,
//	per instruction: u16 account count, (u8 flags, 32 byte key) per account, 32 byte program, u16 data length, data,
//	u16 index of the currently executing instruction.
func encodeInstructionsSysvar(instructions []instruction, current int) []byte {
	header := 2 + 2*len(instructions)
	data := make([]byte, header)
	binary.LittleEndian.PutUint16(data[0:], uint16(len(instructions)))

	for i, ins := range instructions {
		binary.LittleEndian.PutUint16(data[2+2*i:], uint16(len(data)))

		data = binary.LittleEndian.AppendUint16(data, uint16(len(ins.Accounts)))
		for _, meta := range ins.Accounts {
			var flags uint8
			if meta.IsSigner {
				flags |= 1 << 0
			}
			if meta.IsWritable {
				flags |= 1 << 1
			}
			data = append(data, flags)
			data = append(data, meta.PublicKey[:]...)
		}
		data = append(data, ins.Program[:]...)
		data = binary.LittleEndian.AppendUint16(data, uint16(len(ins.Data)))
		data = append(data, ins.Data...)
	}

	return binary.LittleEndian.AppendUint16(data, uint16(current))
}
