/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package logging wires up named op/go-logging loggers for the engine's
// packages, with an optional file backend alongside stdout.
package logging

import (
	"os"

	. "github.com/op/go-logging"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/config"
)

var format = MustStringFormatter(
	`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}:  %{message}`,
)

// GetLog returns a named logger configured with the engine's standard format
// and level, writing to stdout and, if config.Settings.Log.LogPath is set,
// also to that file.
func GetLog(name string) *Logger {
	log := MustGetLogger(name)

	stdoutBackend := NewLogBackend(os.Stdout, "", 0)
	stdoutFormatter := NewBackendFormatter(stdoutBackend, format)
	stdoutLeveled := AddModuleLevel(stdoutFormatter)
	stdoutLeveled.SetLevel(levelFor(config.LogLevel), "")

	backends := []Backend{stdoutLeveled}

	if config.Settings.Log.LogPath != "" {
		if f, err := os.OpenFile(config.Settings.Log.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			fileBackend := NewLogBackend(f, "", 0)
			fileFormatter := NewBackendFormatter(fileBackend, format)
			fileLeveled := AddModuleLevel(fileFormatter)
			fileLeveled.SetLevel(levelFor(config.LogLevel), "")
			backends = append(backends, fileLeveled)
		}
	}

	SetBackend(backends...)
	return log
}

// GetSearchLog returns the logger used for search trace output, honoring the
// dedicated search log level.
func GetSearchLog() *Logger {
	log := MustGetLogger("search")
	stdoutBackend := NewLogBackend(os.Stdout, "", 0)
	stdoutFormatter := NewBackendFormatter(stdoutBackend, format)
	stdoutLeveled := AddModuleLevel(stdoutFormatter)
	stdoutLeveled.SetLevel(levelFor(config.SearchLogLevel), "")
	SetBackend(stdoutLeveled)
	return log
}

func levelFor(n int) Level {
	switch {
	case n <= -1:
		return CRITICAL + 1
	case n == 0:
		return CRITICAL
	case n == 1:
		return ERROR
	case n == 2:
		return WARNING
	case n == 3:
		return NOTICE
	case n == 4:
		return INFO
	default:
		return DEBUG
	}
}
