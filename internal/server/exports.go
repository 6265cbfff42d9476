package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ikdashboard/internal/logger"
	"ikdashboard/internal/reports"
	"ikdashboard/internal/storage"
)

const (
	defaultExportLimit = 10
	maxExportLimit     = 100
)

// HandleExport renders the current selection into a static export. Only
// one export runs at a time.
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.Error(w, "Exports are not configured", http.StatusNotFound)
		return
	}
	if !s.exportMutex.TryLock() {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":  "Export already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.exportMutex.Unlock()

	log := logger.FromContext(r.Context())

	ds, sel, err := s.Service.Request(r.URL.Query())
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	specs, err := s.Service.AllCharts(ds, sel)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	files, err := s.Files.GenerateAllFiles(ds, sel, specs, time.Now().UTC())
	if err != nil {
		log.Error("Export generation failed", err)
		http.Error(w, "Export generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	index, err := reports.NewStorageOrchestrator(s.Storage).StoreAllFiles(r.Context(), files)
	if err != nil {
		log.Error("Export upload failed", err)
		http.Error(w, "Export upload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"folder": files.FolderPath,
		"index":  "/exports/" + index,
		"charts": files.ChartFiles,
	})
}

// HandleListExports lists recent exports
func (s *Server) HandleListExports(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.Error(w, "Exports are not configured", http.StatusNotFound)
		return
	}

	limit := defaultExportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxExportLimit)
		}
	}

	exports, err := s.Storage.ListExports(r.Context(), limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list exports", err)
		http.Error(w, "Failed to list exports: "+err.Error(), http.StatusInternalServerError)
		return
	}

	urls := make([]string, len(exports))
	for i, e := range exports {
		urls[i] = "/exports/" + e
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exports":   urls,
		"count":     len(urls),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleExportFile serves a file of a stored export
func (s *Server) HandleExportFile(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.NotFound(w, r)
		return
	}

	filePath := r.PathValue("path")
	if filePath == "" || strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}
	if strings.HasSuffix(filePath, "/") {
		filePath += storage.ExportIndexFile
	}

	content, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Export file not found", map[string]interface{}{"path": filePath, "error": err.Error()})
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
