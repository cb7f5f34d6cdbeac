package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"bookchunk/internal/doctext"
	"bookchunk/internal/export"
	"bookchunk/internal/extract"
	"bookchunk/internal/pipeline"
)

// readUpload pulls the "file" part out of a multipart request,
// sanitizes its name and enforces the upload size cap. On failure the
// response has already been written and ok is false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (filename string, data []byte, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !extract.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err = io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

// parseOptions reads run option overrides from form values; anything
// absent falls back to the configured defaults.
func (s *Server) parseOptions(r *http.Request) pipeline.Options {
	opts := s.orchestrator.Engine().Defaults()
	if v := r.FormValue("mode"); v != "" {
		opts.Mode = v
	}
	if v := r.FormValue("target_tokens"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.TargetTokens = n
		}
	}
	if v := r.FormValue("overlap_sentences"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			opts.OverlapSentences = n
		}
	}
	return opts
}

// handleChunk runs the whole engine inline and returns the chunks.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	ex, err := extract.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pe, isPDF := ex.(*extract.PDFExtractor); isPDF {
		pe.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	units, err := ex.Extract(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "extract: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	opts := s.parseOptions(r)
	res, err := s.orchestrator.Engine().Run(units, opts)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if wantsCSV(r) {
		writeChunksCSV(w, filename, res.Chunks)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":    pipeline.ContentHashHex(data),
		"filename":  filename,
		"options":   opts,
		"sentences": res.Sentences,
		"chunks":    chunksOrEmpty(res.Chunks),
	})
}

// handleIngest queues an async chunking job.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	job := s.orchestrator.NewJob(filename, r.FormValue("doc_id"), data, s.parseOptions(r))
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/ingest/%s/status", job.ID),
	})
}

func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"options":  snap.Options,
		"progress": snap.Progress,
	})
}

// handleIngestChunks returns the chunk list of a finished job.
func (s *Server) handleIngestChunks(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted && snap.Status != pipeline.StatusPartial {
		jsonError(w, fmt.Sprintf("job is %s", snap.Status), http.StatusConflict)
		return
	}

	if wantsCSV(r) {
		writeChunksCSV(w, snap.Filename, job.Chunks())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id": snap.ID,
		"doc_id": snap.DocID,
		"status": snap.Status,
		"chunks": chunksOrEmpty(job.Chunks()),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"engine":      s.orchestrator.Stats().Snapshot(),
	})
}

func wantsCSV(r *http.Request) bool {
	if r.URL.Query().Get("format") == "csv" || r.FormValue("format") == "csv" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/csv")
}

func writeChunksCSV(w http.ResponseWriter, filename string, chunks []doctext.Chunk) {
	w.Header().Set("Content-Type", "text/csv")
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "chunks"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+".csv"))
	if err := export.WriteCSV(w, chunks); err != nil {
		jsonError(w, "write csv: "+err.Error(), http.StatusInternalServerError)
	}
}

// chunksOrEmpty keeps the JSON field an array even with no chunks.
func chunksOrEmpty(chunks []doctext.Chunk) []doctext.Chunk {
	if chunks == nil {
		return []doctext.Chunk{}
	}
	return chunks
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
