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

// An account as handed to the program by the runtime.
// The program may only mutate Data, and only when IsWritable is set.
type accountInfo struct {
	Key        solana.PublicKey
	Owner      solana.PublicKey
	IsSigner   bool
	IsWritable bool
	Lamports   uint64
	Data       []byte
}

// Returns a deep copy, so that changes can be discarded when the program aborts.
func (ai *accountInfo) clone() *accountInfo {
	temp := *ai
	temp.Data = make([]byte, len(ai.Data))
	copy(temp.Data, ai.Data)
	return &temp
}

type accountMeta struct {
	PublicKey  solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// A single instruction of a transaction: The program to invoke, the accounts it needs and the raw payload.
type instruction struct {
	Program  solana.PublicKey
	Accounts []accountMeta
	Data     []byte
}
