package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/session"
)

const (
	maxBodyBytes     = 1 << 20
	defaultWordCount = 5
)

type translateRequest struct {
	Text string `json:"text"`
}

type wordsRequest struct {
	Count        int `json:"count"`
	MinSyllables int `json:"min_syllables"`
}

type wordsResponse struct {
	Words []string `json:"words"`
}

type validateRequest struct {
	Word string `json:"word"`
}

type validateResponse struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// badRequest marks a malformed request body or query
type badRequest struct {
	err error
}

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Language Generator API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Sessions: s.service.Sessions()})
}

func (s *Server) handleCreateLanguage(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.CreateLanguage(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteLanguage(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteLanguage(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeBody(r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	tr, err := s.service.Translate(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tr)
}

func (s *Server) handlePhonemes(w http.ResponseWriter, r *http.Request) {
	inv, err := s.service.Inventory(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	g, err := s.service.Grammar(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	size := 0
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, &badRequest{fmt.Errorf("invalid size %q", v)})
			return
		}
		size = n
	}

	inflect := false
	if v := q.Get("inflect"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, &badRequest{fmt.Errorf("invalid inflect %q", v)})
			return
		}
		inflect = b
	}

	vocab, err := s.service.Vocabulary(r.Context(), r.PathValue("id"), size, inflect)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, vocab)
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	req := wordsRequest{Count: defaultWordCount, MinSyllables: 1}
	if err := decodeBody(r, &req, true); err != nil {
		s.writeError(w, err)
		return
	}

	words, err := s.service.Words(r.Context(), r.PathValue("id"), req.Count, req.MinSyllables)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wordsResponse{Words: words})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeBody(r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	valid, err := s.service.Validate(r.Context(), r.PathValue("id"), req.Word)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, validateResponse{Word: req.Word, Valid: valid})
}

// decodeBody reads a JSON object into v. An empty body is accepted only when
// allowEmpty is set, leaving v untouched.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return &badRequest{errors.New("request body is required")}
		}
		return &badRequest{fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}

func statusFor(err error) int {
	var br *badRequest
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &br), errors.Is(err, phonology.ErrInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Errorf("request failed: %v", err)
	}
	s.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Debugf("failed to write response: %v", err)
	}
}
