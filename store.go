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
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

const (
	accountStorageOverhead = 128  // Bytes the runtime adds to every account when calculating rent
	lamportsPerByteYear    = 3480 // Default rent rate
	exemptionYears         = 2    // Accounts holding two years of rent are rent exempt
)

var errAccountNotFound = errors.New("Account not found")

// Persists accounts of the local ledger.
type accountStore interface {
	// Returns a copy of the account, or errAccountNotFound.
	getAccount(key solana.PublicKey) (*accountInfo, error)

	// Stores all given accounts at once, or none of them.
	putAccounts(accounts ...*accountInfo) error

	Close() error
}

// Minimum balance an account of the given size needs to be rent exempt.
func rentExemptBalance(dataSize int) uint64 {
	return uint64(accountStorageOverhead+dataSize) * lamportsPerByteYear * exemptionYears
}

// Stand-in for the external allocator: Creates a zeroed, funded chunk account at the derived address.
func createChunkAccount(store accountStore, programID solana.PublicKey, chunkX, chunkY int32) (*accountInfo, error) {
	address, _, err := deriveChunkAddress(programID, chunkX, chunkY)
	if err != nil {
		return nil, err
	}

	if _, err := store.getAccount(address); err == nil {
		return nil, fmt.Errorf("Chunk (%d, %d) already exists at %v", chunkX, chunkY, address)
	} else if !errors.Is(err, errAccountNotFound) {
		return nil, err
	}

	account := &accountInfo{
		Key:      address,
		Owner:    programID,
		Lamports: rentExemptBalance(chunkDataSize),
		Data:     make([]byte, chunkDataSize),
	}
	if err := store.putAccounts(account); err != nil {
		return nil, fmt.Errorf("Can't store chunk (%d, %d): %v", chunkX, chunkY, err)
	}

	return account, nil
}

// Returns the data of the chunk at the given chunk coordinate.
func loadChunkData(store accountStore, programID solana.PublicKey, cc chunkCoordinate) ([]byte, error) {
	address, _, err := deriveChunkAddress(programID, int32(cc.X), int32(cc.Y))
	if err != nil {
		return nil, err
	}

	account, err := store.getAccount(address)
	if err != nil {
		return nil, err
	}
	if !account.Owner.Equals(programID) || len(account.Data) != chunkDataSize {
		return nil, fmt.Errorf("Account %v is not a chunk of program %v", address, programID)
	}

	return account.Data, nil
}

// Keeps accounts in memory. Used for tests and single run executions.
type memoryStore struct {
	sync.RWMutex

	Accounts map[solana.PublicKey]*accountInfo
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		Accounts: map[solana.PublicKey]*accountInfo{},
	}
}

func (ms *memoryStore) getAccount(key solana.PublicKey) (*accountInfo, error) {
	ms.RLock()
	defer ms.RUnlock()

	account, ok := ms.Accounts[key]
	if !ok {
		return nil, fmt.Errorf("%w: %v", errAccountNotFound, key)
	}

	return account.clone(), nil
}

func (ms *memoryStore) putAccounts(accounts ...*accountInfo) error {
	ms.Lock()
	defer ms.Unlock()

	for _, account := range accounts {
		temp := account.clone()
		temp.IsSigner, temp.IsWritable = false, false
		ms.Accounts[account.Key] = temp
	}

	return nil
}

func (ms *memoryStore) Close() error {
	return nil
}
