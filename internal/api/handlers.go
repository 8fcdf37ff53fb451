package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cedarpro/cybermentor/internal/contract"
)

// Upstream and validation failures flatten to a single 500 shape per
// endpoint; the bodies are part of the public contract.
const chatUnavailableMessage = "I'm temporarily unavailable. Please try again in a moment."

// maxBodyBytes caps inbound request bodies at 10 MB.
const maxBodyBytes = 10 << 20

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.cfg.Env,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   chatUnavailableMessage,
			"details": err.Error(),
		})
		return
	}

	resp, err := s.mentor.Chat(r.Context(), body)
	if err != nil {
		slog.Error("mentor chat failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   chatUnavailableMessage,
			"details": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGeneratePractice(w http.ResponseWriter, r *http.Request) {
	fail := func(err error) {
		slog.Error("practice generation failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate practice scenario",
		})
	}

	var params contract.PracticeParams
	if err := decodeBody(w, r, &params); err != nil {
		fail(err)
		return
	}

	scenario, err := s.mentor.GeneratePractice(r.Context(), params)
	if err != nil {
		fail(err)
		return
	}
	respondRaw(w, http.StatusOK, scenario)
}

func (s *Server) handleGenerateAssessment(w http.ResponseWriter, r *http.Request) {
	fail := func(err error) {
		slog.Error("assessment generation failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate assessment questions",
		})
	}

	var params contract.AssessmentParams
	if err := decodeBody(w, r, &params); err != nil {
		fail(err)
		return
	}

	questions, err := s.mentor.GenerateAssessment(r.Context(), params)
	if err != nil {
		fail(err)
		return
	}
	respondRaw(w, http.StatusOK, questions)
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, into)
}
