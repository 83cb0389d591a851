// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads dicomtags settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/GoogleCloudPlatform/go-dicom-tagview/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/flatten"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/source"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/view"
)

// Config holds the settings shared by the CLI and the HTTP API
type Config struct {
	// Decoder is source.Builtin or source.Library
	Decoder string `yaml:"decoder"`

	MaxDepth      int    `yaml:"max_depth"`
	BulkDataLimit int64  `yaml:"bulk_data_limit"`
	Indent        string `yaml:"indent"`
	IncludeMeta   bool   `yaml:"include_meta"`

	// Format is the CLI output format: table, json or tsv
	Format string `yaml:"format"`

	// Addr and DataDir configure the HTTP API
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`

	// Keywords overrides or extends the data dictionary, keyed by tag as "ggggeeee" hex
	Keywords map[string]string `yaml:"keywords"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Decoder:       source.Builtin,
		MaxDepth:      flatten.DefaultMaxDepth,
		BulkDataLimit: dicom.DefaultBulkDataLimit,
		Indent:        flatten.DefaultIndent,
		Format:        view.FormatTable,
		Addr:          ":8090",
		DataDir:       ".",
	}
}

// Load reads the YAML file at path on top of the defaults, when path is not empty, then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %v", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %v", path, err)
		}
	}

	cfg.Decoder = envOr("DICOMTAGS_DECODER", cfg.Decoder)
	cfg.MaxDepth = envInt("DICOMTAGS_MAX_DEPTH", cfg.MaxDepth)
	cfg.BulkDataLimit = envInt64("DICOMTAGS_BULK_LIMIT", cfg.BulkDataLimit)
	cfg.Addr = envOr("DICOMTAGS_ADDR", cfg.Addr)
	cfg.DataDir = envOr("DICOMTAGS_DATA_DIR", cfg.DataDir)

	return cfg, nil
}

// Validate rejects settings the CLI and API cannot run with
func (c Config) Validate() error {
	switch c.Decoder {
	case source.Builtin, source.Library:
	default:
		return fmt.Errorf("unknown decoder %q", c.Decoder)
	}
	switch c.Format {
	case view.FormatTable, view.FormatJSON, view.FormatTSV:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxDepth <= 0 {
		return errors.New("max_depth must be positive")
	}
	if c.Indent == "" {
		return errors.New("indent must not be empty")
	}
	if _, err := c.Dictionary(); err != nil {
		return err
	}
	return nil
}

// Dictionary returns the keyword overrides chained in front of the standard dictionary
func (c Config) Dictionary() (dicom.Dictionary, error) {
	if len(c.Keywords) == 0 {
		return dicom.StandardDictionary, nil
	}
	overrides := dicom.MapDictionary{}
	for k, v := range c.Keywords {
		t, err := strconv.ParseUint(k, 16, 32)
		if err != nil || len(k) != 8 {
			return nil, fmt.Errorf("keyword override %q: tag must be 8 hex digits", k)
		}
		overrides[uint32(t)] = v
	}
	return dicom.Chain(overrides, dicom.StandardDictionary), nil
}

// Loader returns the source.Loader for these settings
func (c Config) Loader() source.Loader {
	return source.Loader{
		Decoder:       c.Decoder,
		BulkDataLimit: c.BulkDataLimit,
		MaxDepth:      c.MaxDepth,
		IncludeMeta:   c.IncludeMeta,
	}
}

// Flattener returns the flatten.Flattener for these settings
func (c Config) Flattener() (*flatten.Flattener, error) {
	dict, err := c.Dictionary()
	if err != nil {
		return nil, err
	}
	return flatten.New(dict, flatten.WithMaxDepth(c.MaxDepth), flatten.WithIndent(c.Indent)), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
