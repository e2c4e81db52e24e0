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
	"path/filepath"
	"testing"
)

func Test_canvasCases(t *testing.T) {
	cases, err := getCanvasCases(filepath.Join("testdata", "cases"))
	if err != nil {
		t.Fatalf("Can't read cases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatalf("No cases found")
	}

	for _, c := range cases {
		t.Run(c.ID, func(t *testing.T) {
			if err := c.check(); err != nil {
				t.Error(err)
			}
		})
	}
}
