//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/MatusOllah/slogcolor"
	"github.com/fatih/color"
	"github.com/natefinch/lumberjack"
)

const (
	LoggerMaxSize    = 100
	LoggerMaxBackups = 7
	LoggerMaxAge     = 0
	LoggerCompress   = true
)

var loggerNameArray = []string{"logic", "api", "worker"}

var (
	LogicLogger  *slog.Logger
	ApiLogger    *slog.Logger
	WorkerLogger *slog.Logger
)

type LogConfig struct {
	LogLevel string `json:"log_level"`
	LogPath  string `json:"log_path"`
}

type LogManager struct {
	loggers map[string]*slog.Logger
}

func GetLoggerLevel(loggerLevel string) slog.Level {
	var logLevel slog.Level
	switch strings.ToLower(loggerLevel) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError

	default:
		logLevel = slog.LevelWarn
	}
	return logLevel
}

func NewLogManager(c LogConfig) *LogManager {
	// Configuring lumberjack for log file management
	lm := &LogManager{
		loggers: make(map[string]*slog.Logger),
	}
	for _, name := range loggerNameArray {
		lm.AddLogger(c, name)
	}
	return lm
}

func (lm *LogManager) AddLogger(c LogConfig, name string) {
	logLevel := GetLoggerLevel(c.LogLevel)
	lumberjackLogger := &lumberjack.Logger{
		Filename:   c.LogPath + "/" + name + ".log",
		MaxSize:    LoggerMaxSize,    // Maximum size of a single log file (MB)
		MaxBackups: LoggerMaxBackups, // Maximum number of old log files to keep
		MaxAge:     LoggerMaxAge,     // Maximum number of days reserved
		Compress:   LoggerCompress,
	}

	// Create a log handler in JSON format
	jsonHandler := slog.NewJSONHandler(lumberjackLogger, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(jsonHandler)
	lm.loggers[name] = logger
}

func (lm *LogManager) GetLogger(name string) *slog.Logger {
	return lm.loggers[name]
}

func InitLogger(c LogConfig) {
	lm := NewLogManager(c)
	LogicLogger = lm.GetLogger("logic")
	ApiLogger = lm.GetLogger("api")
	WorkerLogger = lm.GetLogger("worker")
}

// NewConsoleLogger builds a colored console logger for interactive CLI use.
// File loggers stay JSON; this one is for humans watching the terminal.
func NewConsoleLogger(loggerLevel string) *slog.Logger {
	opts := slogcolor.DefaultOptions
	opts.Level = GetLoggerLevel(loggerLevel)
	opts.TimeFormat = time.TimeOnly
	opts.SrcFileMode = slogcolor.Nop
	opts.MsgColor = color.New(color.FgHiWhite)
	return slog.New(slogcolor.NewHandler(os.Stderr, opts))
}
