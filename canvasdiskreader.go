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
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gagliardetto/solana-go"
	gzip "github.com/klauspost/pgzip"
)

// Returns all recordings inside of the directory, oldest first.
func findRecordings(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("Can't read from %v: %v", directory, err)
	}

	files := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == recordingExtension {
			files = append(files, filepath.Join(directory, entry.Name()))
		}
	}
	sort.Strings(files) // File names start with the UTC time

	return files, nil
}

type recordingStats struct {
	Start     time.Time
	ProgramID solana.PublicKey
	Chunks    int
	Pixels    int
}

// Reads a recording and writes the resulting chunk accounts into the store.
// The store is only modified if the whole recording could be read.
func replayRecording(fileName string, store accountStore) (recordingStats, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return recordingStats{}, fmt.Errorf("Can't open recording %v: %v", fileName, err)
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return recordingStats{}, fmt.Errorf("Can't initialize gzip reader for %v: %v", fileName, err)
	}
	defer zipReader.Close()

	var header recordingHeader
	if err := binary.Read(zipReader, binary.LittleEndian, &header); err != nil {
		return recordingStats{}, fmt.Errorf("Error while reading file: %v", err)
	}
	if header.MagicNumber != recordingMagicNumber {
		return recordingStats{}, fmt.Errorf("Wrong file format")
	}
	if header.Version != recordingVersion {
		return recordingStats{}, fmt.Errorf("Unsupported version %d", header.Version)
	}
	if header.ChunkWidth != chunkDimension || header.ChunkHeight != chunkDimension {
		return recordingStats{}, fmt.Errorf("Unsupported chunk size %dx%d", header.ChunkWidth, header.ChunkHeight)
	}

	stats := recordingStats{
		Start:     time.Unix(0, header.Time),
		ProgramID: solana.PublicKey(header.ProgramID),
	}

	chunks := map[chunkCoordinate]*accountInfo{}
	getChunk := func(cc chunkCoordinate) (*accountInfo, error) {
		if account, ok := chunks[cc]; ok {
			return account, nil
		}
		address, _, err := deriveChunkAddress(stats.ProgramID, int32(cc.X), int32(cc.Y))
		if err != nil {
			return nil, err
		}
		account := &accountInfo{
			Key:      address,
			Owner:    stats.ProgramID,
			Lamports: rentExemptBalance(chunkDataSize),
			Data:     make([]byte, chunkDataSize),
		}
		if stored, err := store.getAccount(address); err == nil {
			account = stored
		} else if !errors.Is(err, errAccountNotFound) {
			return nil, err
		}
		chunks[cc] = account
		return account, nil
	}

	for {
		var dataType uint8
		if err := binary.Read(zipReader, binary.LittleEndian, &dataType); err == io.EOF {
			break
		} else if err != nil {
			return stats, fmt.Errorf("Error while reading file: %v", err)
		}

		switch dataType {
		case recordingTypeSetPixel:
			var dat struct {
				Time    int64
				X, Y    int32
				R, G, B uint8
			}
			if err := binary.Read(zipReader, binary.LittleEndian, &dat); err != nil {
				return stats, fmt.Errorf("Error while reading file: %v", err)
			}

			// Recorded pixels were accepted by the program, floor division maps them the same way under both policies
			point := divisionFloor.coordsToChunk(dat.X, dat.Y)
			account, err := getChunk(point.chunkCoord())
			if err != nil {
				return stats, err
			}
			if err := setPixel(account.Data, point.OffsetX, point.OffsetY, dat.R, dat.G, dat.B); err != nil {
				return stats, err
			}
			stats.Pixels++

		case recordingTypeChunkCreate:
			var dat struct {
				Time int64
				X, Y int32
				Size uint32
			}
			if err := binary.Read(zipReader, binary.LittleEndian, &dat); err != nil {
				return stats, fmt.Errorf("Error while reading file: %v", err)
			}
			if dat.Size != chunkDataSize {
				return stats, fmt.Errorf("Chunk (%d, %d) has %d bytes, expected %d", dat.X, dat.Y, dat.Size, chunkDataSize)
			}

			account, err := getChunk(chunkCoordinate{int(dat.X), int(dat.Y)})
			if err != nil {
				return stats, err
			}
			if _, err := io.ReadFull(zipReader, account.Data); err != nil {
				return stats, fmt.Errorf("Error while reading file: %v", err)
			}
			stats.Chunks++

		default:
			return stats, fmt.Errorf("Unknown data type %d", dataType)
		}
	}

	accounts := make([]*accountInfo, 0, len(chunks))
	for _, account := range chunks {
		accounts = append(accounts, account)
	}
	if err := store.putAccounts(accounts...); err != nil {
		return stats, err
	}

	return stats, nil
}
