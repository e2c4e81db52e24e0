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
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema of run input files. Byte arrays are lists of integers, keys are base58.
const runInputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["program_id", "accounts", "instruction_data"],
	"properties": {
		"program_id": {"$ref": "#/definitions/pubkey"},
		"accounts": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["key", "owner"],
				"properties": {
					"key": {"$ref": "#/definitions/pubkey"},
					"owner": {"$ref": "#/definitions/pubkey"},
					"is_signer": {"type": "boolean"},
					"is_writable": {"type": "boolean"},
					"lamports": {"type": "integer", "minimum": 0},
					"data": {"$ref": "#/definitions/bytes"},
					"data_size": {"type": "integer", "minimum": 0, "maximum": 10485760}
				},
				"additionalProperties": false
			}
		},
		"instruction_data": {"$ref": "#/definitions/bytes"}
	},
	"additionalProperties": false,
	"definitions": {
		"pubkey": {"type": "string", "pattern": "^[1-9A-HJ-NP-Za-km-z]{32,44}$"},
		"bytes": {"type": "array", "items": {"type": "integer", "minimum": 0, "maximum": 255}}
	}
}`

var runInputSchemaCompiled = jsonschema.MustCompileString("runinput.schema.json", runInputSchema)

// Input of a single program execution, similar to what rbpf-cli accepts.
type runInput struct {
	ProgramID       string       `json:"program_id" yaml:"program_id"`
	Accounts        []runAccount `json:"accounts" yaml:"accounts"`
	InstructionData []int        `json:"instruction_data" yaml:"instruction_data"`
}

type runAccount struct {
	Key        string `json:"key" yaml:"key"`
	Owner      string `json:"owner" yaml:"owner"`
	IsSigner   bool   `json:"is_signer,omitempty" yaml:"is_signer"`
	IsWritable bool   `json:"is_writable,omitempty" yaml:"is_writable"`
	Lamports   uint64 `json:"lamports,omitempty" yaml:"lamports"`
	Data       []int  `json:"data,omitempty" yaml:"data"`
	DataSize   int    `json:"data_size,omitempty" yaml:"data_size"` // Zero filled data of this size, if data is empty
}

type runOutput struct {
	Result   string             `json:"result"`
	Accounts []runOutputAccount `json:"accounts,omitempty"`
}

type runOutputAccount struct {
	Key  string `json:"key"`
	Data []int  `json:"data"`
}

func intsToBytes(ints []int) ([]byte, error) {
	result := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("Value %d at index %d is not a byte", v, i)
		}
		result[i] = byte(v)
	}
	return result, nil
}

func bytesToInts(b []byte) []int {
	result := make([]int, len(b))
	for i, v := range b {
		result[i] = int(v)
	}
	return result
}

// Reads and validates a JSON run input file.
func readRunInput(fileName string) (runInput, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return runInput{}, fmt.Errorf("Can't read %v: %v", fileName, err)
	}

	var generic interface{}
	if err := json.Unmarshal(content, &generic); err != nil {
		return runInput{}, fmt.Errorf("Can't parse %v: %v", fileName, err)
	}
	if err := runInputSchemaCompiled.Validate(generic); err != nil {
		return runInput{}, fmt.Errorf("Invalid run input %v: %v", fileName, err)
	}

	var in runInput
	if err := json.Unmarshal(content, &in); err != nil {
		return runInput{}, fmt.Errorf("Can't parse %v: %v", fileName, err)
	}

	return in, nil
}

// Converts the input into the parameters of the program entrypoint.
func (in runInput) parameters() (solana.PublicKey, []*accountInfo, []byte, error) {
	programID, err := solana.PublicKeyFromBase58(in.ProgramID)
	if err != nil {
		return solana.PublicKey{}, nil, nil, fmt.Errorf("Invalid program id %q: %v", in.ProgramID, err)
	}

	accounts := make([]*accountInfo, 0, len(in.Accounts))
	for i, ra := range in.Accounts {
		key, err := solana.PublicKeyFromBase58(ra.Key)
		if err != nil {
			return solana.PublicKey{}, nil, nil, fmt.Errorf("Invalid key of account %d: %v", i, err)
		}
		owner, err := solana.PublicKeyFromBase58(ra.Owner)
		if err != nil {
			return solana.PublicKey{}, nil, nil, fmt.Errorf("Invalid owner of account %d: %v", i, err)
		}
		data, err := intsToBytes(ra.Data)
		if err != nil {
			return solana.PublicKey{}, nil, nil, fmt.Errorf("Invalid data of account %d: %v", i, err)
		}
		if len(data) == 0 && ra.DataSize > 0 {
			data = make([]byte, ra.DataSize)
		}

		accounts = append(accounts, &accountInfo{
			Key:        key,
			Owner:      owner,
			IsSigner:   ra.IsSigner,
			IsWritable: ra.IsWritable,
			Lamports:   ra.Lamports,
			Data:       data,
		})
	}

	data, err := intsToBytes(in.InstructionData)
	if err != nil {
		return solana.PublicKey{}, nil, nil, fmt.Errorf("Invalid instruction data: %v", err)
	}

	return programID, accounts, data, nil
}

// Executes the program once with the given input.
// The accounts of the output contain the state after execution, which is the unmodified input when the program aborted.
func (prog canvasProgram) run(in runInput) (runOutput, error) {
	programID, accounts, data, err := in.parameters()
	if err != nil {
		return runOutput{}, err
	}

	working := make([]*accountInfo, len(accounts))
	for i, account := range accounts {
		working[i] = account.clone()
	}

	output := runOutput{}
	result, err := prog.entrypoint(programID, working, data)
	if err != nil {
		output.Result = fmt.Sprintf("Err(%v)", err)
		working = accounts
	} else {
		output.Result = fmt.Sprintf("Ok(%d)", result)
	}

	for _, account := range working {
		output.Accounts = append(output.Accounts, runOutputAccount{
			Key:  account.Key.String(),
			Data: bytesToInts(account.Data),
		})
	}

	return output, nil
}
