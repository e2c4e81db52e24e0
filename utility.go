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
)

// Integer division that rounds to the next integer towards negative infinity
func divideFloor(a, b int) int {
	temp := a / b

	if ((a ^ b) < 0) && (a%b != 0) {
		return temp - 1
	}

	return temp
}

// Integer division that rounds to the next integer towards positive infinity
func divideCeil(a, b int) int {
	temp := a / b

	if ((a ^ b) >= 0) && (a%b != 0) {
		return temp + 1
	}

	return temp
}

// Remainder that belongs to divideFloor. The result has the sign of b.
func modFloor(a, b int) int {
	return a - divideFloor(a, b)*b
}

// Converts a tightly packed RGB array into an opaque RGBA image with the given bounds.
// The array needs to contain at least rect.Dx() * rect.Dy() * 3 bytes.
func rgbArrayToImage(array []byte, rect image.Rectangle) *image.RGBA {
	img := image.NewRGBA(rect)

	i := 0
	for iy := rect.Min.Y; iy < rect.Max.Y; iy++ {
		for ix := rect.Min.X; ix < rect.Max.X; ix++ {
			img.SetRGBA(ix, iy, color.RGBA{array[i], array[i+1], array[i+2], 255})
			i += 3
		}
	}

	return img
}
