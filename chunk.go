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
	"fmt"
	"image"
	"image/color"
)

const (
	chunkDimension = 32
	chunkPixels    = chunkDimension * chunkDimension
	pixelBytes     = 3 // R, G, B
	rowSize        = chunkDimension * pixelBytes
	chunkDataSize  = chunkPixels * pixelBytes // Exact size of a chunk account in bytes
)

func boundsCheckOffset(v int32) bool {
	return v >= 0 && v < chunkDimension
}

// Position of the first byte of a pixel inside the chunk data
func pixelDataOffset(offsetX, offsetY int32) int {
	return int(offsetY)*rowSize + int(offsetX)*pixelBytes
}

// Overwrites the color of a single pixel inside the chunk data.
func setPixel(data []byte, offsetX, offsetY int32, r, g, b uint8) error {
	if !boundsCheckOffset(offsetX) || !boundsCheckOffset(offsetY) {
		return abortf("Offset (%d, %d) is outside of the chunk", offsetX, offsetY)
	}
	if len(data) != chunkDataSize {
		return abortf("Chunk data has %d bytes, expected %d", len(data), chunkDataSize)
	}

	ptr := data[pixelDataOffset(offsetX, offsetY):]
	ptr[0] = r
	ptr[1] = g
	ptr[2] = b

	return nil
}

func getPixel(data []byte, offsetX, offsetY int32) (color.RGBA, error) {
	if !boundsCheckOffset(offsetX) || !boundsCheckOffset(offsetY) {
		return color.RGBA{}, fmt.Errorf("Offset (%d, %d) is outside of the chunk", offsetX, offsetY)
	}
	if len(data) != chunkDataSize {
		return color.RGBA{}, fmt.Errorf("Chunk data has %d bytes, expected %d", len(data), chunkDataSize)
	}

	ptr := data[pixelDataOffset(offsetX, offsetY):]
	return color.RGBA{ptr[0], ptr[1], ptr[2], 255}, nil
}

// Returns the chunk data as an image placed at its position on the canvas.
func chunkImage(cc chunkCoordinate, data []byte) (*image.RGBA, error) {
	if len(data) != chunkDataSize {
		return nil, fmt.Errorf("Chunk data has %d bytes, expected %d", len(data), chunkDataSize)
	}

	return rgbArrayToImage(data, cc.getPixelRectangle(canvasChunkSize)), nil
}
