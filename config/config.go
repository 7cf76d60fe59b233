// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the node configuration of mintvm.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"gopkg.in/yaml.v2"

	"github.com/nftmint/mintvm/pebble"
	"github.com/nftmint/mintvm/trace"
)

const (
	DefaultDataDir    = ".mintvm"
	DefaultRPCAddress = "127.0.0.1:9650"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel     string `json:"logLevel" yaml:"logLevel"`
	LogDisplay   string `json:"logDisplayLevel" yaml:"logDisplayLevel"`
	LogDir       string `json:"logDir" yaml:"logDir"`
	LogMaxSizeMB int    `json:"logMaxSizeMB" yaml:"logMaxSizeMB"`
	LogMaxFiles  int    `json:"logMaxFiles" yaml:"logMaxFiles"`

	DataDir  string        `json:"dataDir" yaml:"dataDir"`
	InMemory bool          `json:"inMemory" yaml:"inMemory"`
	Pebble   pebble.Config `json:"pebble" yaml:"pebble"`

	RPCAddress  string   `json:"rpcAddress" yaml:"rpcAddress"`
	CORSOrigins []string `json:"corsOrigins" yaml:"corsOrigins"`

	// AuthVerificationCores bounds the goroutines used to verify signatures.
	AuthVerificationCores int `json:"authVerificationCores" yaml:"authVerificationCores"`

	TraceConfig              trace.Config    `json:"traceConfig" yaml:"traceConfig"`
	ContinuousProfilerConfig profiler.Config `json:"continuousProfilerConfig" yaml:"continuousProfilerConfig"`
}

func NewConfig() Config {
	return Config{
		LogLevel:              logging.Info.LowerString(),
		LogDisplay:            logging.Info.LowerString(),
		LogMaxSizeMB:          8,
		LogMaxFiles:           4,
		DataDir:               DefaultDataDir,
		Pebble:                pebble.NewDefaultConfig(),
		RPCAddress:            DefaultRPCAddress,
		CORSOrigins:           []string{"*"},
		AuthVerificationCores: max(runtime.NumCPU()/2, 1),
		TraceConfig: trace.Config{
			Enabled:         false,
			TraceSampleRate: 1,
			Endpoint:        trace.DefaultEndpoint,
		},
		ContinuousProfilerConfig: profiler.Config{
			Enabled:     false,
			Freq:        time.Minute,
			MaxNumFiles: 5,
		},
	}
}

// New applies the JSON document [b] on top of the defaults.
func New(b []byte) (Config, error) {
	c := NewConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return c, c.Verify()
}

// Load reads a JSON or YAML (by extension) file on top of the defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c := NewConfig()
		if err := yaml.UnmarshalStrict(b, &c); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return c, c.Verify()
	default:
		return New(b)
	}
}

func (c Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: logLevel: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ToLevel(c.LogDisplay); err != nil {
		return fmt.Errorf("%w: logDisplayLevel: %w", ErrInvalidConfig, err)
	}
	if !c.InMemory && len(c.DataDir) == 0 {
		return fmt.Errorf("%w: dataDir is required unless inMemory is set", ErrInvalidConfig)
	}
	if c.AuthVerificationCores < 1 {
		return fmt.Errorf("%w: authVerificationCores must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c Config) GetLogLevel() logging.Level {
	l, _ := logging.ToLevel(c.LogLevel)
	return l
}

func (c Config) GetDisplayLevel() logging.Level {
	l, _ := logging.ToLevel(c.LogDisplay)
	return l
}

// GetLogDir defaults to a logs directory inside the data dir.
func (c Config) GetLogDir() string {
	if len(c.LogDir) > 0 {
		return c.LogDir
	}
	return filepath.Join(c.DataDir, "logs")
}
