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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	colorable "github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var log = logrus.New()

const usage = `Usage: D3pixelcanvas [flags] <command> [arguments]

Commands:
  run -i <input.json>              Execute the program once with an rbpf-cli like input file
  cases [directory]                Run all conformance cases (default testdata/cases)
  address <chunk x> <chunk y>      Print the derived address of a chunk
  create-chunk <chunk x> <chunk y> Create an empty chunk account in the local ledger
  set-pixel <x> <y> <r> <g> <b>    Set a pixel in the local ledger
  get-pixel <x> <y>                Print the color of a pixel
  export <x1> <y1> <x2> <y2> <out> Export a canvas area as BMP
  replay <file or directory>       Apply recordings to the local ledger
  serve                            Serve the local ledger via HTTP and websocket

Flags:
`

// Opens a log file inside of the directory, and sends log output to it and to the terminal.
func setupLogging(directory, level string) (io.Closer, error) {
	log.SetReportCaller(true)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors: true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return fmt.Sprintf("%s()", f.Function), ""
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)

	if directory == "" {
		log.SetOutput(colorable.NewColorableStderr())
		return io.NopCloser(nil), nil
	}

	os.MkdirAll(directory, os.ModePerm)
	f, err := os.OpenFile(filepath.Join(directory, time.Now().UTC().Format("2006-01-02T150405")+".log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %v", err)
	}

	log.SetOutput(io.MultiWriter(colorable.NewColorableStderr(), f)) // Stdout is reserved for command output

	return f, nil
}

func parseInt32s(args []string) ([]int32, error) {
	result := make([]int32, len(args))
	for i, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("Invalid number %q: %v", arg, err)
		}
		result[i] = int32(v)
	}
	return result, nil
}

func parseColor(args []string) (color.RGBA, error) {
	var rgb [3]uint8
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("Invalid color component %q: %v", arg, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

func main() {
	flags := pflag.NewFlagSet("D3pixelcanvas", pflag.ContinueOnError)
	addConfigFlags(flags)
	inputFile := flags.StringP("input", "i", "", "Input file of the run command")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(2)
	}

	if err := loadConfig(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := setupLogging(viper.GetString("log.directory"), viper.GetString("log.level"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	log.Debug("D3pixelcanvas started")

	if err := runCommand(flags.Arg(0), flags.Args()[1:], *inputFile); err != nil {
		log.Error(err)
		logFile.Close()
		os.Exit(1)
	}
}

func runCommand(command string, args []string, inputFile string) error {
	s, err := currentSettings()
	if err != nil {
		return err
	}

	// Commands that don't need the ledger
	switch command {
	case "run":
		if inputFile == "" {
			return fmt.Errorf("Missing input file, use -i")
		}
		in, err := readRunInput(inputFile)
		if err != nil {
			return err
		}
		output, err := s.Program.run(in)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(output)

	case "cases":
		directory := filepath.Join("testdata", "cases")
		if len(args) > 0 {
			directory = args[0]
		}
		cases, err := getCanvasCases(directory)
		if err != nil {
			return err
		}
		failed := 0
		for _, c := range cases {
			if err := c.check(); err != nil {
				log.Errorf("Case %v failed: %v", c.ID, err)
				failed++
				continue
			}
			log.Infof("Case %v passed", c.ID)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d cases failed", failed, len(cases))
		}
		return nil

	case "address":
		if len(args) != 2 {
			return fmt.Errorf("Usage: address <chunk x> <chunk y>")
		}
		v, err := parseInt32s(args)
		if err != nil {
			return err
		}
		address, bump, err := deriveChunkAddress(s.ProgramID, v[0], v[1])
		if err != nil {
			return err
		}
		fmt.Printf("%v %d\n", address, bump)
		return nil
	}

	store, err := openSQLiteStore(s.LedgerPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ex := newExecutor(store, s.ProgramID, s.Program)

	if s.RecorderEnabled {
		cdw, err := ex.newCanvasDiskWriter(s.RecorderDirectory, s.ProgramID.String())
		if err != nil {
			return err
		}
		defer cdw.Close()
	}

	switch command {
	case "create-chunk":
		if len(args) != 2 {
			return fmt.Errorf("Usage: create-chunk <chunk x> <chunk y>")
		}
		v, err := parseInt32s(args)
		if err != nil {
			return err
		}
		account, err := ex.createChunk(v[0], v[1])
		if err != nil {
			return err
		}
		fmt.Println(account.Key)
		return nil

	case "set-pixel":
		if len(args) != 5 {
			return fmt.Errorf("Usage: set-pixel <x> <y> <r> <g> <b>")
		}
		v, err := parseInt32s(args[:2])
		if err != nil {
			return err
		}
		col, err := parseColor(args[2:])
		if err != nil {
			return err
		}
		return ex.setPixel(v[0], v[1], col)

	case "get-pixel":
		if len(args) != 2 {
			return fmt.Errorf("Usage: get-pixel <x> <y>")
		}
		v, err := parseInt32s(args)
		if err != nil {
			return err
		}
		col, err := ex.getPixel(v[0], v[1])
		if err != nil {
			return err
		}
		fmt.Printf("%d %d %d\n", col.R, col.G, col.B)
		return nil

	case "export":
		if len(args) != 5 {
			return fmt.Errorf("Usage: export <x1> <y1> <x2> <y2> <out>")
		}
		v, err := parseInt32s(args[:4])
		if err != nil {
			return err
		}
		rect := image.Rect(int(v[0]), int(v[1]), int(v[2]), int(v[3]))
		return exportCanvas(store, s.ProgramID, rect, s.ExportScale, args[4])

	case "replay":
		if len(args) != 1 {
			return fmt.Errorf("Usage: replay <file or directory>")
		}
		files := []string{args[0]}
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			if files, err = findRecordings(args[0]); err != nil {
				return err
			}
		}
		for _, file := range files {
			stats, err := replayRecording(file, store)
			if err != nil {
				return fmt.Errorf("Can't replay %v: %v", file, err)
			}
			if !stats.ProgramID.Equals(s.ProgramID) {
				log.Warnf("Recording %v belongs to program %v", file, stats.ProgramID)
			}
			log.Infof("Replayed %v from %v: %d chunks, %d pixels", file, stats.Start.Format(time.RFC3339), stats.Chunks, stats.Pixels)
		}
		return nil

	case "serve":
		feed := newCanvasFeed()
		ex.subscribeListener(feed)
		defer feed.Close()

		server := &http.Server{
			Addr:    s.ServerAddress,
			Handler: newCanvasServer(ex, feed, s.ExportScale),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()

		log.Infof("Serving program %v on %v", s.ProgramID, s.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	return fmt.Errorf("Unknown command %q", command)
}
