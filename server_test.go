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
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func Test_canvasServer(t *testing.T) {
	ex := newExecutor(newMemoryStore(), testProgramID, canvasProgram{})
	if _, err := ex.createChunk(0, 0); err != nil {
		t.Fatal(err)
	}

	handler := newCanvasServer(ex, newCanvasFeed(), 2)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec
	}

	if rec := do("POST", "/pixel/5/6", `{"r":10,"g":20,"b":30}`); rec.Code != http.StatusNoContent {
		t.Errorf("POST /pixel/5/6 = %v: %v", rec.Code, rec.Body.String())
	}
	if rec := do("POST", "/pixel/40/6", `{"r":10,"g":20,"b":30}`); rec.Code != http.StatusNotFound {
		t.Errorf("POST /pixel/40/6 = %v, want %v", rec.Code, http.StatusNotFound)
	}
	if rec := do("POST", "/pixel/x/6", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("POST /pixel/x/6 = %v, want %v", rec.Code, http.StatusBadRequest)
	}

	rec := do("GET", "/pixel/5/6", "")
	var col struct{ R, G, B uint8 }
	if err := json.NewDecoder(rec.Body).Decode(&col); err != nil || col.R != 10 || col.G != 20 || col.B != 30 {
		t.Errorf("GET /pixel/5/6 = %v, %+v, %v", rec.Code, col, err)
	}

	rec = do("GET", "/chunk/0/0", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/bmp" {
		t.Fatalf("GET /chunk/0/0 = %v, %v", rec.Code, rec.Header().Get("Content-Type"))
	}
	img, err := bmp.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Can't decode chunk image: %v", err)
	}
	if img.Bounds().Size() != (image.Point{64, 64}) {
		t.Errorf("Chunk image has size %v, want 64x64", img.Bounds().Size())
	}
	if r, g, b, _ := img.At(11, 13).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Chunk image pixel (11, 13) = %v, %v, %v", r>>8, g>>8, b>>8)
	}

	if rec := do("GET", "/chunk/1/0", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /chunk/1/0 = %v, want %v", rec.Code, http.StatusNotFound)
	}
}
