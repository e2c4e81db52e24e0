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
	"testing"

	"github.com/gagliardetto/solana-go"
)

var testProgramID = solana.MustPublicKeyFromBase58(defaultProgramID)

func Test_deriveChunkAddress(t *testing.T) {
	tests := []struct {
		chunkX, chunkY int32
		want           string
		wantBump       uint8
	}{
		{0, 0, "E4HmtokMD2WY5XeWf4HBbJm27UcwA7xVbn5GfcNHYHRx", 253},
		{1, 0, "J7JvybgyfbzUqQdqyVtZiEUVfdzQ3bYNELjntTr4wHSM", 255},
		{0, 1, "3Sbdo33g26jfsZP2YbC3ixCpxBTRvMQCJrdzZBTUybRD", 255},
		{-1, -1, "DhXtWN3pe7GKKHTJjksnDagVfg7fkBqYSMQ9jSP7QWAB", 255},
		{-1, 0, "GtqVvinhxmZtXugw2VTWH3JC4ETBJ9mRcEmMycYcU4Eh", 255},
	}

	for _, test := range tests {
		got, bump, err := deriveChunkAddress(testProgramID, test.chunkX, test.chunkY)
		if err != nil {
			t.Errorf("deriveChunkAddress(%v, %v) failed: %v", test.chunkX, test.chunkY, err)
			continue
		}
		if got.String() != test.want || bump != test.wantBump {
			t.Errorf("deriveChunkAddress(%v, %v) = %v, %v, want %v, %v", test.chunkX, test.chunkY, got, bump, test.want, test.wantBump)
		}

		// Deterministic
		again, _, _ := deriveChunkAddress(testProgramID, test.chunkX, test.chunkY)
		if !again.Equals(got) {
			t.Errorf("deriveChunkAddress(%v, %v) is not deterministic: %v != %v", test.chunkX, test.chunkY, again, got)
		}

		// The bump reproduces the address
		created, err := solana.CreateProgramAddress(append(chunkSeeds(test.chunkX, test.chunkY), []byte{bump}), testProgramID)
		if err != nil || !created.Equals(got) {
			t.Errorf("CreateProgramAddress with bump %v = %v, %v, want %v", bump, created, err, got)
		}
	}
}

func Test_chunkSeeds(t *testing.T) {
	seeds := chunkSeeds(1, -2)

	want := [][]byte{
		[]byte("Chunk\x00"),
		{0xff, 0xff, 0xff, 0xfe}, // y
		{0x00, 0x00, 0x00, 0x01}, // x
	}

	if len(seeds) != len(want) {
		t.Fatalf("chunkSeeds() has %v seeds, want %v", len(seeds), len(want))
	}
	for i := range want {
		if !bytes.Equal(seeds[i], want[i]) {
			t.Errorf("chunkSeeds()[%v] = %v, want %v", i, seeds[i], want[i])
		}
	}
}

func Test_deriveChunkAddress_differentPrograms(t *testing.T) {
	other := solana.NewWallet().PublicKey()

	a, _, err := deriveChunkAddress(testProgramID, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := deriveChunkAddress(other, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equals(b) {
		t.Errorf("Chunk (0, 0) of different programs has the same address %v", a)
	}

	// Swapping x and y must change the address
	c, _, _ := deriveChunkAddress(testProgramID, 1, 0)
	d, _, _ := deriveChunkAddress(testProgramID, 0, 1)
	if c.Equals(d) {
		t.Errorf("Chunks (1, 0) and (0, 1) have the same address %v", c)
	}
}
