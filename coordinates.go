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
)

type pixelSize image.Point // Size of something in pixels

type (
	chunkCoordinate image.Point               // Coordinate of something in chunks
	chunkRectangle  struct{ image.Rectangle } // A rectangle something in chunks
)

// Size of a canvas chunk in pixels
var canvasChunkSize = pixelSize{chunkDimension, chunkDimension}

// Converts a pixel coordinate into a chunk coordinate containing the given pixel
func (ps pixelSize) getChunkCoord(coord image.Point) chunkCoordinate {
	return chunkCoordinate{
		X: divideFloor(coord.X, ps.X),
		Y: divideFloor(coord.Y, ps.Y),
	}
}

// Converts a pixel rectangle into the closest possible rectangle in chunk coordinates.
// The given pixel rectangle will always be inside or equal to the resulting chunk rectangle.
func (ps pixelSize) getOuterChunkRect(rect image.Rectangle) chunkRectangle {
	rectTemp := rect.Canon()

	min := image.Point{
		X: divideFloor(rectTemp.Min.X, ps.X),
		Y: divideFloor(rectTemp.Min.Y, ps.Y),
	}
	max := image.Point{
		X: divideCeil(rectTemp.Max.X, ps.X),
		Y: divideCeil(rectTemp.Max.Y, ps.Y),
	}

	return chunkRectangle{image.Rectangle{
		Min: min,
		Max: max,
	}}
}

// Converts the chunk rectangle back into pixel coordinates
func (cr chunkRectangle) getPixelRectangle(ps pixelSize) image.Rectangle {
	return image.Rectangle{
		Min: image.Point{cr.Min.X * ps.X, cr.Min.Y * ps.Y},
		Max: image.Point{cr.Max.X * ps.X, cr.Max.Y * ps.Y},
	}
}

// Returns the pixel rectangle covered by the chunk
func (cc chunkCoordinate) getPixelRectangle(ps pixelSize) image.Rectangle {
	return chunkRectangle{image.Rect(cc.X, cc.Y, cc.X+1, cc.Y+1)}.getPixelRectangle(ps)
}

// Decides how negative pixel coordinates are split into chunk and offset.
type divisionPolicy int

const (
	divisionFloor    divisionPolicy = iota // Rounds towards negative infinity, every pixel is reachable
	divisionTruncate                       // Rounds towards zero, negative coordinates can produce negative offsets
)

func parseDivisionPolicy(s string) (divisionPolicy, error) {
	switch s {
	case "", "floor":
		return divisionFloor, nil
	case "truncate":
		return divisionTruncate, nil
	}

	return 0, fmt.Errorf("Unknown division policy %q", s)
}

func (dp divisionPolicy) String() string {
	switch dp {
	case divisionFloor:
		return "floor"
	case divisionTruncate:
		return "truncate"
	}
	return fmt.Sprintf("divisionPolicy(%d)", int(dp))
}

// A pixel coordinate split into the chunk and the position inside that chunk.
//
// The offsets are signed, as truncating division yields negative offsets for some negative coordinates.
// Those are rejected by the pixel writer.
type chunkPoint struct {
	ChunkX, ChunkY   int32
	OffsetX, OffsetY int32
}

// Maps pixel coordinates to a chunk.
func (dp divisionPolicy) coordsToChunk(x, y int32) chunkPoint {
	if dp == divisionTruncate {
		return chunkPoint{
			ChunkX:  x / chunkDimension,
			ChunkY:  y / chunkDimension,
			OffsetX: x % chunkDimension,
			OffsetY: y % chunkDimension,
		}
	}

	return chunkPoint{
		ChunkX:  int32(divideFloor(int(x), chunkDimension)),
		ChunkY:  int32(divideFloor(int(y), chunkDimension)),
		OffsetX: int32(modFloor(int(x), chunkDimension)),
		OffsetY: int32(modFloor(int(y), chunkDimension)),
	}
}

// Recomposes the global pixel coordinates.
func (cp chunkPoint) coords() (x, y int32) {
	return cp.ChunkX*chunkDimension + cp.OffsetX, cp.ChunkY*chunkDimension + cp.OffsetY
}

func (cp chunkPoint) chunkCoord() chunkCoordinate {
	return chunkCoordinate{int(cp.ChunkX), int(cp.ChunkY)}
}
