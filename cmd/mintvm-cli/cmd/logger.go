// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nftmint/mintvm/config"
)

// logFactory writes every logger it makes to stderr at the display level and
// to a rotated file at the log level.
type logFactory struct {
	config logging.Config

	lock    sync.Mutex
	loggers map[string]logging.Logger
}

func newLogFactory(cfg config.Config) *logFactory {
	c := logging.Config{
		LogLevel:     cfg.GetLogLevel(),
		DisplayLevel: cfg.GetDisplayLevel(),
		LogFormat:    logging.Colors,
	}
	c.Directory = cfg.GetLogDir()
	c.MaxSize = cfg.LogMaxSizeMB
	c.MaxFiles = cfg.LogMaxFiles
	c.Compress = true
	return &logFactory{
		config:  c,
		loggers: make(map[string]logging.Logger),
	}
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if _, ok := f.loggers[name]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", name)
	}
	if err := os.MkdirAll(f.config.Directory, 0o755); err != nil {
		return nil, err
	}

	var consoleWriter io.WriteCloser = os.Stderr
	consoleCore := logging.NewWrappedCore(f.config.DisplayLevel, consoleWriter, logging.Colors.ConsoleEncoder())

	rw := &lumberjack.Logger{
		Filename:   filepath.Join(f.config.Directory, name+".log"),
		MaxSize:    f.config.MaxSize,  // megabytes
		MaxBackups: f.config.MaxFiles, // files
		Compress:   f.config.Compress,
	}
	fileCore := logging.NewWrappedCore(f.config.LogLevel, rw, logging.JSON.FileEncoder())

	l := logging.NewLogger(logging.Colors.WrapPrefix(name), consoleCore, fileCore)
	f.loggers[name] = l
	return l, nil
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, l := range f.loggers {
		l.Stop()
	}
	f.loggers = nil
}
