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
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// A conformance case: One program execution and its expected outcome.
type canvasCase struct {
	ID                string     `yaml:"id"`
	Division          string     `yaml:"division"`
	SingleInstruction bool       `yaml:"single_instruction"`
	Input             runInput   `yaml:"input"`
	Result            caseResult `yaml:"result"`
}

type caseResult struct {
	Result  string       `yaml:"result"`  // Exact result, or just "Err" for any abort
	Changes []caseChange `yaml:"changes"` // Expected modifications, all other bytes must stay the same
}

type caseChange struct {
	Account int   `yaml:"account"`
	Offset  int   `yaml:"offset"`
	Bytes   []int `yaml:"bytes"`
}

// Reads all cases of a multi document YAML file.
func readCanvasCases(fileName string) ([]canvasCase, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("Can't open %v: %v", fileName, err)
	}
	defer f.Close()

	cases := []canvasCase{}
	decoder := yaml.NewDecoder(f)
	for {
		var c canvasCase
		if err := decoder.Decode(&c); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("Can't parse %v: %v", fileName, err)
		}
		cases = append(cases, c)
	}

	return cases, nil
}

// Reads the cases of all .yml files inside of the directory.
func getCanvasCases(directory string) ([]canvasCase, error) {
	fileNames, err := filepath.Glob(filepath.Join(directory, "*.yml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(fileNames)

	cases := []canvasCase{}
	for _, fileName := range fileNames {
		temp, err := readCanvasCases(fileName)
		if err != nil {
			return nil, err
		}
		cases = append(cases, temp...)
	}

	return cases, nil
}

// Runs the case and returns an error describing the first difference to the expected outcome.
func (c canvasCase) check() error {
	division, err := parseDivisionPolicy(c.Division)
	if err != nil {
		return err
	}
	prog := canvasProgram{Division: division, SingleInstruction: c.SingleInstruction}

	_, accounts, _, err := c.Input.parameters()
	if err != nil {
		return err
	}

	output, err := prog.run(c.Input)
	if err != nil {
		return err
	}

	if c.Result.Result == "Err" {
		if !strings.HasPrefix(output.Result, "Err(") {
			return fmt.Errorf("Result is %v, want an error", output.Result)
		}
	} else if output.Result != c.Result.Result {
		return fmt.Errorf("Result is %v, want %v", output.Result, c.Result.Result)
	}

	// Build the expected account data from the input and the listed changes
	expected := make([][]byte, len(accounts))
	for i, account := range accounts {
		expected[i] = account.Data
	}
	for _, change := range c.Result.Changes {
		if change.Account < 0 || change.Account >= len(expected) {
			return fmt.Errorf("Change refers to missing account %d", change.Account)
		}
		data := expected[change.Account]
		if change.Offset < 0 || change.Offset+len(change.Bytes) > len(data) {
			return fmt.Errorf("Change at %d is outside of account %d", change.Offset, change.Account)
		}
		for i, v := range change.Bytes {
			data[change.Offset+i] = byte(v)
		}
	}

	for i, account := range output.Accounts {
		got, err := intsToBytes(account.Data)
		if err != nil {
			return err
		}
		if len(got) != len(expected[i]) {
			return fmt.Errorf("Account %d has %d bytes, want %d", i, len(got), len(expected[i]))
		}
		for j := range got {
			if got[j] != expected[i][j] {
				return fmt.Errorf("Account %d byte %d is %d, want %d", i, j, got[j], expected[i][j])
			}
		}
	}

	return nil
}
