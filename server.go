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
	"encoding/json"
	"errors"
	"image/color"
	"net/http"
	"strconv"
)

// HTTP interface of the local ledger:
//
//	GET  /feed              websocket with all committed changes
//	GET  /chunk/{x}/{y}     chunk as BMP image
//	GET  /pixel/{x}/{y}     pixel color as JSON
//	POST /pixel/{x}/{y}     sets a pixel, body {"r":0,"g":0,"b":0}
func newCanvasServer(ex *executor, feed *canvasFeed, scale int) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /feed", feed)

	mux.HandleFunc("GET /chunk/{x}/{y}", func(w http.ResponseWriter, r *http.Request) {
		cx, errX := strconv.ParseInt(r.PathValue("x"), 10, 32)
		cy, errY := strconv.ParseInt(r.PathValue("y"), 10, 32)
		if errX != nil || errY != nil {
			http.Error(w, "Invalid chunk coordinate", http.StatusBadRequest)
			return
		}

		cc := chunkCoordinate{int(cx), int(cy)}
		data, err := loadChunkData(ex.Store, ex.ProgramID, cc)
		if errors.Is(err, errAccountNotFound) {
			http.Error(w, "Chunk not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		img, err := chunkImage(cc, data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := encodeScaledBMP(&buf, img, scale); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/bmp")
		w.Write(buf.Bytes())
	})

	type pixelColor struct {
		R uint8 `json:"r"`
		G uint8 `json:"g"`
		B uint8 `json:"b"`
	}

	mux.HandleFunc("GET /pixel/{x}/{y}", func(w http.ResponseWriter, r *http.Request) {
		x, errX := strconv.ParseInt(r.PathValue("x"), 10, 32)
		y, errY := strconv.ParseInt(r.PathValue("y"), 10, 32)
		if errX != nil || errY != nil {
			http.Error(w, "Invalid pixel coordinate", http.StatusBadRequest)
			return
		}

		col, err := ex.getPixel(int32(x), int32(y))
		if errors.Is(err, errAccountNotFound) {
			http.Error(w, "Chunk not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pixelColor{col.R, col.G, col.B})
	})

	mux.HandleFunc("POST /pixel/{x}/{y}", func(w http.ResponseWriter, r *http.Request) {
		x, errX := strconv.ParseInt(r.PathValue("x"), 10, 32)
		y, errY := strconv.ParseInt(r.PathValue("y"), 10, 32)
		if errX != nil || errY != nil {
			http.Error(w, "Invalid pixel coordinate", http.StatusBadRequest)
			return
		}

		var col pixelColor
		if err := json.NewDecoder(r.Body).Decode(&col); err != nil {
			http.Error(w, "Invalid color", http.StatusBadRequest)
			return
		}

		if err := ex.setPixel(int32(x), int32(y), color.RGBA{col.R, col.G, col.B, 255}); err != nil {
			if errors.Is(err, errAccountNotFound) {
				http.Error(w, "Chunk not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}
