/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/config"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/driver"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/enginerr"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/logging"
)

const startFen = "3BG3/7/7/7/7/7/3RG3 r"

// exit codes, per spec.md §6: "Exit 0 on success; 1 on invalid FEN; 2 on
// internal error."
const (
	exitSuccess  = 0
	exitBadFen   = 1
	exitInternal = 2
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "search" {
		fmt.Fprintln(os.Stderr, "usage: gatengine search <fen> --ms <n> [--depth <n>] [--config <path>]")
		os.Exit(exitInternal)
	}

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	ms := fs.Int64("ms", 1000, "search time budget in milliseconds")
	depth := fs.Int("depth", 0, "search depth limit (0 = unlimited, bounded by internal max)")
	configFile := fs.String("config", "./config.toml", "path to configuration settings file")
	fen := fs.String("fen", startFen, "fen for the position to search")
	cpuProfile := fs.Bool("profile", false, "write a CPU profile of the search to ./cpu.pprof")

	args := os.Args[2:]
	// Allow the FEN as a bare positional argument ahead of the flags, the
	// way `search <fen> --ms <n>` reads in spec.md §6.
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		*fen = args[0]
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(exitInternal)
	}

	stopProfile := func() {}
	if *cpuProfile {
		stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop
	}

	config.ConfFile = *configFile
	config.Setup()
	logging.GetLog("gatengine")

	d := driver.NewDriver()
	outcome, err := d.FindBestMove(*fen, *ms, *depth)
	if err != nil {
		var invalidFen *enginerr.InvalidFenError
		if asInvalidFen(err, &invalidFen) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitBadFen)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInternal)
	}

	fmt.Println(driver.FormatLine(outcome))
	stopProfile()
	os.Exit(exitSuccess)
}

// asInvalidFen reports whether err is an *enginerr.InvalidFenError, writing
// it into target on success. A small helper rather than importing "errors"
// for a single type-switch use.
func asInvalidFen(err error, target **enginerr.InvalidFenError) bool {
	if e, ok := err.(*enginerr.InvalidFenError); ok {
		*target = e
		return true
	}
	return false
}
