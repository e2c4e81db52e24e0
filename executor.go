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
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Owner of all sysvar accounts
var sysvarOwner = solana.MustPublicKeyFromBase58("Sysvar1111111111111111111111111111111111111")

// Gets informed about every committed change of the canvas.
type canvasListener interface {
	handleSetPixel(pos image.Point, col color.RGBA) error
	handleChunkCreate(cc chunkCoordinate, data []byte) error
}

// A minimal local runtime for the canvas program.
//
// Transactions are executed one at a time. All accounts are copied before execution,
// and changes are only written back to the store if every instruction succeeded.
type executor struct {
	sync.Mutex // Serializes transactions, like the account locks of the real runtime

	Store     accountStore
	ProgramID solana.PublicKey
	Program   canvasProgram

	ListenersMutex sync.RWMutex
	Listeners      map[canvasListener]struct{}
}

func newExecutor(store accountStore, programID solana.PublicKey, prog canvasProgram) *executor {
	return &executor{
		Store:     store,
		ProgramID: programID,
		Program:   prog,
		Listeners: map[canvasListener]struct{}{},
	}
}

func (ex *executor) subscribeListener(l canvasListener) {
	ex.ListenersMutex.Lock()
	defer ex.ListenersMutex.Unlock()

	ex.Listeners[l] = struct{}{}
}

func (ex *executor) unsubscribeListener(l canvasListener) {
	ex.ListenersMutex.Lock()
	defer ex.ListenersMutex.Unlock()

	delete(ex.Listeners, l)
}

func (ex *executor) broadcast(f func(l canvasListener) error) {
	ex.ListenersMutex.RLock()
	defer ex.ListenersMutex.RUnlock()

	for l := range ex.Listeners {
		if err := f(l); err != nil {
			log.Warnf("Listener %T failed: %v", l, err)
		}
	}
}

// Creates a new chunk account, see createChunkAccount.
func (ex *executor) createChunk(chunkX, chunkY int32) (*accountInfo, error) {
	ex.Lock()
	defer ex.Unlock()

	account, err := createChunkAccount(ex.Store, ex.ProgramID, chunkX, chunkY)
	if err != nil {
		return nil, err
	}

	log.Debugf("Created chunk (%d, %d) at %v", chunkX, chunkY, account.Key)

	cc := chunkCoordinate{int(chunkX), int(chunkY)}
	ex.broadcast(func(l canvasListener) error { return l.handleChunkCreate(cc, account.Data) })

	return account, nil
}

// Sets a single pixel by submitting a set pixel transaction.
func (ex *executor) setPixel(x, y int32, col color.RGBA) error {
	ins, err := newSetPixelInstruction(ex.ProgramID, ex.Program.Division, x, y, col)
	if err != nil {
		return err
	}

	_, err = ex.processTransaction([]instruction{ins})
	return err
}

// Executes all instructions of a transaction in order.
// The result codes of the instructions are returned, or the error of the first failing instruction.
// Nothing is committed when an error is returned.
func (ex *executor) processTransaction(instructions []instruction) ([]uint64, error) {
	ex.Lock()
	defer ex.Unlock()

	working := map[solana.PublicKey]*accountInfo{} // Copies of all loaded accounts
	modified := map[solana.PublicKey]bool{}
	results := make([]uint64, 0, len(instructions))
	pixels := []setPixelArgs{}

	load := func(key solana.PublicKey) (*accountInfo, error) {
		if account, ok := working[key]; ok {
			return account, nil
		}
		account, err := ex.Store.getAccount(key)
		if err != nil {
			return nil, err
		}
		working[key] = account
		return account, nil
	}

	for i, ins := range instructions {
		if !ins.Program.Equals(ex.ProgramID) {
			return nil, fmt.Errorf("Instruction %d: Unknown program %v", i, ins.Program)
		}

		accounts := make([]*accountInfo, 0, len(ins.Accounts))
		snapshots := map[solana.PublicKey][]byte{} // Data of accounts this instruction must not modify
		for _, meta := range ins.Accounts {
			var account *accountInfo
			if meta.PublicKey.Equals(sysvarInstructions) {
				account = &accountInfo{Key: sysvarInstructions, Owner: sysvarOwner, Data: encodeInstructionsSysvar(instructions, i)}
			} else {
				stored, err := load(meta.PublicKey)
				if err != nil {
					return nil, fmt.Errorf("Instruction %d: Can't load account: %w", i, err)
				}
				account = stored
			}

			if !meta.IsWritable || !account.Owner.Equals(ex.ProgramID) {
				snapshots[account.Key] = append([]byte(nil), account.Data...)
			}

			// Every instruction gets its own view with the flags of its account meta, but the data is shared
			accounts = append(accounts, &accountInfo{
				Key:        account.Key,
				Owner:      account.Owner,
				IsSigner:   meta.IsSigner,
				IsWritable: meta.IsWritable,
				Lamports:   account.Lamports,
				Data:       account.Data,
			})
		}

		result, err := ex.Program.entrypoint(ex.ProgramID, accounts, ins.Data)
		if err != nil {
			log.Debugf("Instruction %d failed: %v", i, err)
			return nil, fmt.Errorf("Instruction %d: %w", i, err)
		}

		for _, account := range accounts {
			if snapshot, ok := snapshots[account.Key]; ok {
				if !bytes.Equal(snapshot, account.Data) {
					return nil, fmt.Errorf("Instruction %d: Modified read-only account %v", i, account.Key)
				}
			} else if account.IsWritable {
				modified[account.Key] = true
			}
		}

		if len(ins.Data) > 0 && ins.Data[0] == insSetPixel {
			if args, err := decodeSetPixelArgs(ins.Data[1:]); err == nil {
				pixels = append(pixels, args)
			}
		}

		results = append(results, result)
	}

	// Commit all modified accounts at once
	commit := make([]*accountInfo, 0, len(modified))
	for key := range modified {
		commit = append(commit, working[key])
	}
	if err := ex.Store.putAccounts(commit...); err != nil {
		return nil, fmt.Errorf("Can't commit transaction: %v", err)
	}

	log.Tracef("Committed transaction with %d instructions and %d modified accounts", len(instructions), len(commit))

	for _, args := range pixels {
		pos, col := image.Point{int(args.X), int(args.Y)}, color.RGBA{args.R, args.G, args.B, 255}
		ex.broadcast(func(l canvasListener) error { return l.handleSetPixel(pos, col) })
	}

	return results, nil
}

// Returns the color of a pixel, or an error if the chunk doesn't exist.
func (ex *executor) getPixel(x, y int32) (color.RGBA, error) {
	point := ex.Program.Division.coordsToChunk(x, y)

	data, err := loadChunkData(ex.Store, ex.ProgramID, point.chunkCoord())
	if err != nil {
		return color.RGBA{}, err
	}

	return getPixel(data, point.OffsetX, point.OffsetY)
}
