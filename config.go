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
	"io/fs"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultProgramID = "67m1g5ph4yjESFtA7iApib6n4wxFbGiCB2Ax3k8HWBw9"

type settings struct {
	ProgramID         solana.PublicKey
	Program           canvasProgram
	LedgerPath        string
	RecorderEnabled   bool
	RecorderDirectory string
	ServerAddress     string
	ExportScale       int
}

func setConfigDefaults() {
	viper.SetDefault("program.id", defaultProgramID)
	viper.SetDefault("program.division", divisionFloor.String())
	viper.SetDefault("program.single_instruction", false)
	viper.SetDefault("ledger.path", "ledger/accounts.db")
	viper.SetDefault("recorder.enabled", false)
	viper.SetDefault("recorder.directory", "recordings")
	viper.SetDefault("server.address", "localhost:8080")
	viper.SetDefault("export.scale", 1)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.directory", "log")
}

// Adds all flags that override configuration values.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("config", "config.json", "Path of the configuration file")
	flags.String("program-id", defaultProgramID, "Address of the canvas program")
	flags.String("division", divisionFloor.String(), "How negative coordinates are split into chunks: floor or truncate")
	flags.Bool("single-instruction", false, "Reject transactions containing more than one instruction")
	flags.String("ledger", "ledger/accounts.db", "Path of the account database")
	flags.Bool("record", false, "Record all canvas changes")
	flags.String("address", "localhost:8080", "Listen address of the server")
	flags.Int("scale", 1, "Scale factor of exported images")
	flags.String("log-level", "info", "Log level: trace, debug, info, warning, error")
}

// Reads the configuration file, flags take precedence over it.
func loadConfig(flags *pflag.FlagSet) error {
	setConfigDefaults()

	bindings := map[string]string{
		"program.id":                 "program-id",
		"program.division":           "division",
		"program.single_instruction": "single-instruction",
		"ledger.path":                "ledger",
		"recorder.enabled":           "record",
		"server.address":             "address",
		"export.scale":               "scale",
		"log.level":                  "log-level",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("Can't bind flag %v: %v", flag, err)
		}
	}

	configFile, _ := flags.GetString("config")
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("Can't load config file: %v", err)
		}
		log.Debugf("No config file at %v, using defaults", configFile)
	}

	return nil
}

func currentSettings() (settings, error) {
	programID, err := solana.PublicKeyFromBase58(viper.GetString("program.id"))
	if err != nil {
		return settings{}, fmt.Errorf("Invalid program id: %v", err)
	}

	division, err := parseDivisionPolicy(viper.GetString("program.division"))
	if err != nil {
		return settings{}, err
	}

	return settings{
		ProgramID: programID,
		Program: canvasProgram{
			Division:          division,
			SingleInstruction: viper.GetBool("program.single_instruction"),
		},
		LedgerPath:        viper.GetString("ledger.path"),
		RecorderEnabled:   viper.GetBool("recorder.enabled"),
		RecorderDirectory: viper.GetString("recorder.directory"),
		ServerAddress:     viper.GetString("server.address"),
		ExportScale:       viper.GetInt("export.scale"),
	}, nil
}
