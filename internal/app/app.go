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

// Package app wires decoding, flattening and presentation together for the CLI and the HTTP API.
package app

import (
	"fmt"

	"github.com/GoogleCloudPlatform/go-dicom-tagview/flatten"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/internal/config"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/source"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/view"
)

// App loads and flattens DICOM files. It keeps no per-file state and is safe for concurrent use.
type App struct {
	loader    source.Loader
	flattener *flatten.Flattener
}

// New validates cfg and returns an App configured by it
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	f, err := cfg.Flattener()
	if err != nil {
		return nil, err
	}
	return &App{loader: cfg.Loader(), flattener: f}, nil
}

// Records decodes and flattens the file at path
func (a *App) Records(path string) ([]flatten.Record, error) {
	elements, err := a.loader.Load(path)
	if err != nil {
		return nil, err
	}
	records, err := a.flattener.Flatten(elements)
	if err != nil {
		return nil, fmt.Errorf("flattening %s: %w", path, err)
	}
	return records, nil
}

// Rows decodes and flattens the file at path and returns the displayed rows matching query
func (a *App) Rows(path, query string) ([]view.Row, error) {
	records, err := a.Records(path)
	if err != nil {
		return nil, err
	}
	return view.Rows(view.Filter(records, query)), nil
}
