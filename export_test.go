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
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func Test_canvasImage(t *testing.T) {
	ex := newExecutor(newMemoryStore(), testProgramID, canvasProgram{})
	for _, cc := range []chunkCoordinate{{-1, -1}, {0, 0}} {
		if _, err := ex.createChunk(int32(cc.X), int32(cc.Y)); err != nil {
			t.Fatal(err)
		}
	}
	ex.setPixel(-1, -1, colorRed)
	ex.setPixel(0, 0, color.RGBA{0, 255, 0, 255})

	rect := image.Rect(-2, -2, 2, 2)
	img, err := canvasImage(ex.Store, testProgramID, rect)
	if err != nil {
		t.Fatalf("canvasImage() failed: %v", err)
	}
	if img.Rect != rect {
		t.Errorf("canvasImage().Rect = %v, want %v", img.Rect, rect)
	}

	tests := []struct {
		pos  image.Point
		want color.RGBA
	}{
		{image.Point{-1, -1}, colorRed},
		{image.Point{0, 0}, color.RGBA{0, 255, 0, 255}},
		{image.Point{-2, -2}, color.RGBA{0, 0, 0, 255}}, // Existing chunk
		{image.Point{1, -1}, color.RGBA{}},              // Chunk (0, -1) doesn't exist
		{image.Point{-1, 1}, color.RGBA{}},              // Chunk (-1, 0) doesn't exist
	}
	for _, test := range tests {
		if got := img.RGBAAt(test.pos.X, test.pos.Y); got != test.want {
			t.Errorf("canvasImage().RGBAAt(%v) = %v, want %v", test.pos, got, test.want)
		}
	}

	fileName := filepath.Join(t.TempDir(), "export.bmp")
	if err := exportCanvas(ex.Store, testProgramID, rect, 3, fileName); err != nil {
		t.Fatalf("exportCanvas() failed: %v", err)
	}

	f, err := os.Open(fileName)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	exported, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("Can't decode export: %v", err)
	}
	if exported.Bounds().Size() != (image.Point{12, 12}) {
		t.Errorf("Export has size %v, want 12x12", exported.Bounds().Size())
	}
}

func Test_encodeScaledBMP_invalidScale(t *testing.T) {
	if err := encodeScaledBMP(nil, image.NewRGBA(image.Rect(0, 0, 1, 1)), 0); err == nil {
		t.Errorf("encodeScaledBMP() accepted scale 0")
	}
}
