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
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	gzip "github.com/klauspost/pgzip"
)

const (
	recordingMagicNumber = 1128616528 // ASCII "PREC" in little endian
	recordingVersion     = 2
	recordingExtension   = ".pixrec"

	recordingTypeSetPixel    = 10
	recordingTypeChunkCreate = 30
)

type recordingHeader struct {
	MagicNumber             uint32
	Version                 uint16 // File format version
	Time                    int64
	ChunkWidth, ChunkHeight uint32
	ProgramID               [32]byte
}

// Records every committed canvas change into a gzip compressed file.
type canvasDiskWriter struct {
	Closed      bool
	ClosedMutex sync.RWMutex

	Executor *executor

	File      *os.File
	ZipWriter *gzip.Writer
}

func (ex *executor) newCanvasDiskWriter(directory, name string) (*canvasDiskWriter, error) {
	cdw := &canvasDiskWriter{
		Executor: ex,
	}

	re := regexp.MustCompile("[^a-zA-Z0-9\\-\\.]+")
	name = re.ReplaceAllString(name, "_")

	fileName := time.Now().UTC().Format("2006-01-02T150405.000000000") + recordingExtension // Use RFC3339 like encoding, but with : removed
	fileDirectory := filepath.Join(directory, name)
	filePath := filepath.Join(fileDirectory, fileName)

	if err := os.MkdirAll(fileDirectory, 0777); err != nil {
		return nil, fmt.Errorf("Can't create directory %v: %v", fileDirectory, err)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("Can't create file %v: %v", filePath, err)
	}

	cdw.File = f
	zipWriter, err := gzip.NewWriterLevel(f, gzip.DefaultCompression)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("Can't initialize compression %v: %v", filePath, err)
	}
	cdw.ZipWriter = zipWriter

	// Write basic information about the canvas
	cdw.ZipWriter.Name = name
	cdw.ZipWriter.Comment = "D3's pixel canvas ledger recording"

	err = binary.Write(cdw.ZipWriter, binary.LittleEndian, recordingHeader{
		MagicNumber: recordingMagicNumber,
		Version:     recordingVersion,
		Time:        time.Now().UnixNano(),
		ChunkWidth:  uint32(canvasChunkSize.X),
		ChunkHeight: uint32(canvasChunkSize.Y),
		ProgramID:   ex.ProgramID,
	})
	if err != nil {
		zipWriter.Close()
		f.Close()
		return nil, fmt.Errorf("Can't write to file %v: %v", filePath, err)
	}

	ex.subscribeListener(cdw)

	log.Infof("Recording canvas changes to %v", filePath)

	return cdw, nil
}

func (cdw *canvasDiskWriter) handleSetPixel(pos image.Point, col color.RGBA) error {
	cdw.ClosedMutex.RLock()
	defer cdw.ClosedMutex.RUnlock()
	if cdw.Closed {
		return fmt.Errorf("Listener is closed")
	}

	err := binary.Write(cdw.ZipWriter, binary.LittleEndian, struct {
		DataType uint8
		Time     int64
		X, Y     int32
		R, G, B  uint8
	}{
		DataType: recordingTypeSetPixel,
		Time:     time.Now().UnixNano(),
		X:        int32(pos.X),
		Y:        int32(pos.Y),
		R:        col.R,
		G:        col.G,
		B:        col.B,
	})
	if err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cdw.File.Name(), err)
	}

	return nil
}

func (cdw *canvasDiskWriter) handleChunkCreate(cc chunkCoordinate, data []byte) error {
	cdw.ClosedMutex.RLock()
	defer cdw.ClosedMutex.RUnlock()
	if cdw.Closed {
		return fmt.Errorf("Listener is closed")
	}

	err := binary.Write(cdw.ZipWriter, binary.LittleEndian, struct {
		DataType uint8
		Time     int64
		X, Y     int32  // Chunk coordinate
		Size     uint32 // Size of the RGB data in bytes
	}{
		DataType: recordingTypeChunkCreate,
		Time:     time.Now().UnixNano(),
		X:        int32(cc.X),
		Y:        int32(cc.Y),
		Size:     uint32(len(data)),
	})
	if err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cdw.File.Name(), err)
	}
	if _, err := cdw.ZipWriter.Write(data); err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cdw.File.Name(), err)
	}

	return nil
}

func (cdw *canvasDiskWriter) Close() error {
	cdw.Executor.unsubscribeListener(cdw)

	cdw.ClosedMutex.Lock()
	defer cdw.ClosedMutex.Unlock()
	if cdw.Closed {
		return nil
	}
	cdw.Closed = true // Prevent any new events from happening

	if err := cdw.ZipWriter.Close(); err != nil {
		cdw.File.Close()
		return fmt.Errorf("Can't finish compression of %v: %v", cdw.File.Name(), err)
	}

	return cdw.File.Close()
}
