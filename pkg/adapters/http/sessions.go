package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/parley/pkg/session"
	"github.com/go-chi/chi/v5"
)

var errMissingTreeID = errors.New("tree_id is required")

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateSession: Invalid request body", "error", err)
		return
	}
	if body.TreeID == "" {
		http.Error(w, errMissingTreeID.Error(), http.StatusBadRequest)
		return
	}
	if body.SessionID == "" {
		body.SessionID = s.newID()
	}

	turn, err := s.Sessions.Start(r.Context(), body.TreeID, body.SessionID, body.StartNode)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	s.publish(turn)
	s.writeJSON(w, http.StatusCreated, viewOf(turn))
}

// GetSession handles GET /sessions/{sessionID} with the stored snapshot.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Continue handles POST /sessions/{sessionID}/continue.
func (s *Server) Continue(w http.ResponseWriter, r *http.Request) {
	s.advance(w, r, "Continue", session.Continue)
}

// SelectChoice handles POST /sessions/{sessionID}/choices/{choiceID}.
func (s *Server) SelectChoice(w http.ResponseWriter, r *http.Request) {
	s.advance(w, r, "SelectChoice", session.Select(chi.URLParam(r, "choiceID")))
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request, op string, step session.Step) {
	turn, err := s.Sessions.Advance(r.Context(), chi.URLParam(r, "sessionID"), step)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	s.publish(turn)
	s.writeJSON(w, http.StatusOK, viewOf(turn))
}

// publish broadcasts the step's result view to SSE subscribers.
func (s *Server) publish(turn *session.Turn) {
	data, err := json.Marshal(viewOf(turn))
	if err != nil {
		s.logger.Error("Failed to encode result view", "session_id", turn.Session.ID, "err", err)
		return
	}
	s.Streams.Broadcast(turn.Session.ID, string(data))
}
