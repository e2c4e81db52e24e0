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
	"image"
	"image/draw"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

// Returns an image of the given canvas area. Pixels of chunks that don't exist are transparent.
func canvasImage(store accountStore, programID solana.PublicKey, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Canon()
	img := image.NewRGBA(rect)

	chunkRect := canvasChunkSize.getOuterChunkRect(rect)
	for iy := chunkRect.Min.Y; iy < chunkRect.Max.Y; iy++ {
		for ix := chunkRect.Min.X; ix < chunkRect.Max.X; ix++ {
			cc := chunkCoordinate{ix, iy}
			data, err := loadChunkData(store, programID, cc)
			if errors.Is(err, errAccountNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}

			chunkImg, err := chunkImage(cc, data)
			if err != nil {
				return nil, err
			}
			draw.Draw(img, chunkImg.Rect.Intersect(rect), chunkImg, chunkImg.Rect.Intersect(rect).Min, draw.Src)
		}
	}

	return img, nil
}

// Encodes the image as BMP, scaled up by an integer factor without smoothing.
func encodeScaledBMP(w io.Writer, img image.Image, scale int) error {
	if scale < 1 {
		return fmt.Errorf("Invalid scale %d", scale)
	}

	if scale > 1 {
		bounds := img.Bounds()
		img = resize.Resize(uint(bounds.Dx()*scale), uint(bounds.Dy()*scale), img, resize.NearestNeighbor)
	}

	return bmp.Encode(w, img)
}

// Writes the given canvas area into a BMP file.
func exportCanvas(store accountStore, programID solana.PublicKey, rect image.Rectangle, scale int, fileName string) error {
	img, err := canvasImage(store, programID, rect)
	if err != nil {
		return err
	}

	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("Can't create file %v: %v", fileName, err)
	}
	defer f.Close()

	if err := encodeScaledBMP(f, img, scale); err != nil {
		return fmt.Errorf("Can't encode %v: %v", fileName, err)
	}

	return f.Close()
}
