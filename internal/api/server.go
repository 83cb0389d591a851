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

// Package api serves flattened DICOM tags over HTTP as JSON.
package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoogleCloudPlatform/go-dicom-tagview/internal/app"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/view"
)

// Server is the HTTP API over the .dcm files of one directory.
type Server struct {
	router  chi.Router
	app     *app.App
	dataDir string
	log     *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(a *app.App, dataDir string, log *slog.Logger) *Server {
	s := &Server{
		app:     a,
		dataDir: dataDir,
		log:     log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/api/files", s.handleListFiles)
	r.Get("/api/files/{name}/records", s.handleRecords)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	names, err := view.ListDICOMFiles(s.dataDir)
	if err != nil {
		s.log.Error("listing files", "dir", s.dataDir, "error", err)
		jsonError(w, "failed to list files", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": names})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		jsonError(w, "invalid file name", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.dataDir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "file not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to open file", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get("q")
	rows, err := s.app.Rows(path, query)
	if err != nil {
		s.log.Warn("flattening file", "file", name, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"file":    name,
		"query":   query,
		"count":   len(rows),
		"records": rows,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
