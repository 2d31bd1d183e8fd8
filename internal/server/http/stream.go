package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/emmett/conlang/internal/session"
)

type streamWord struct {
	Word string `json:"word"`
}

// handleStream upgrades to a websocket. Each client message
// {"count":N,"min_syllables":M} is answered with N {"word":...} messages, or
// a single {"error":...} message.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	// Reject unknown ids before upgrading so the client sees a 404
	if _, err := s.service.Validate(r.Context(), id, ""); errors.Is(err, session.ErrNotFound) {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		s.log.Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		req := wordsRequest{Count: defaultWordCount, MinSyllables: 1}
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debugf("websocket read for %s ended: %v", id, err)
			}
			return
		}

		words, err := s.service.Words(ctx, id, req.Count, req.MinSyllables)
		if err != nil {
			if werr := conn.WriteJSON(errorResponse{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}
		for _, word := range words {
			if err := conn.WriteJSON(streamWord{Word: word}); err != nil {
				s.log.Debugf("websocket write for %s failed: %v", id, err)
				return
			}
		}
	}
}
