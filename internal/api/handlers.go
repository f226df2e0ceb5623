package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/feedback"
	"github.com/pthm/doclint/internal/parser"
)

type uploadResponse struct {
	Paragraphs []engine.ParagraphReport `json:"paragraphs"`
	Report     any                      `json:"report"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.maxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "No file part", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part named "file" without a filename is parsed as a plain value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			jsonError(w, "No selected file", http.StatusBadRequest)
			return
		}
		jsonError(w, "No file part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.maxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	filename := sanitizeFilename(header.Filename)
	doc, err := parser.Parse(file, filename)
	if err != nil {
		s.log.Warn("parse upload", "file", filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(doc.Paragraphs) == 0 {
		writeJSON(w, http.StatusOK, uploadResponse{
			Paragraphs: []engine.ParagraphReport{},
			Report:     struct{}{},
		})
		return
	}

	reports, aggregate, err := s.engine.Analyze(r.Context(), doc.Texts(), s.source)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.log.Info("analyzed upload",
		"file", filename,
		"format", doc.Format.String(),
		"paragraphs", aggregate.ParagraphCount,
		"avg_quality", aggregate.AvgQualityScore,
	)
	writeJSON(w, http.StatusOK, uploadResponse{Paragraphs: reports, Report: aggregate})
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

type feedbackResponse struct {
	Message      string   `json:"message,omitempty"`
	FeedbackList []string `json:"feedback_list"`
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "No feedback provided", http.StatusBadRequest)
		return
	}

	if _, err := s.store.Add(r.Context(), req.Feedback); err != nil {
		if errors.Is(err, feedback.ErrEmpty) {
			jsonError(w, "No feedback provided", http.StatusBadRequest)
			return
		}
		s.log.Error("store feedback", "error", err)
		jsonError(w, "failed to store feedback", http.StatusInternalServerError)
		return
	}

	entries, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list feedback", "error", err)
		jsonError(w, "failed to list feedback", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, feedbackResponse{
		Message:      "Feedback submitted successfully",
		FeedbackList: feedback.Texts(entries),
	})
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list feedback", "error", err)
		jsonError(w, "failed to list feedback", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, feedbackResponse{FeedbackList: feedback.Texts(entries)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
