package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kaushal171205/Code-Visualizer/session"
)

// Server holds the session façade and logger the five handlers share.
type Server struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewServer returns a Server ready to be mounted on a ServeMux.
func NewServer(sessions *session.Manager, logger *slog.Logger) *Server {
	return &Server{sessions: sessions, logger: logger}
}

// Mux builds the routed net/http.ServeMux for all five endpoints (spec
// §6), using Go 1.22's method+path patterns the way the teacher's
// sampleapi registers its own routes directly on a mux.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/debug/start", s.handleStart)
	mux.HandleFunc("POST /api/debug/step-forward", s.handleStepForward)
	mux.HandleFunc("POST /api/debug/step-backward", s.handleStepBackward)
	mux.HandleFunc("POST /api/debug/get-state", s.handleGetState)
	mux.HandleFunc("POST /api/debug/end", s.handleEnd)
	return mux
}

type startRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type startResponse struct {
	Success      bool    `json:"success"`
	SessionID    string  `json:"sessionId,omitempty"`
	TotalSteps   int     `json:"totalSteps,omitempty"`
	InitialState *State  `json:"initialState,omitempty"`
	Error        string  `json:"error,omitempty"`
	Details      string  `json:"details,omitempty"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Code == "" || (req.Language != "cpp" && req.Language != "c") {
		writeJSON(w, http.StatusBadRequest, startResponse{Success: false, Error: "Validation Error", Details: "code is required and language must be \"cpp\" or \"c\""})
		return
	}

	id, total, initial, err := s.sessions.Start(r.Context(), req.Code)
	if err != nil {
		s.writeStartError(w, err)
		return
	}
	init := ToState(initial)
	writeJSON(w, http.StatusOK, startResponse{Success: true, SessionID: id, TotalSteps: total, InitialState: &init})
}

func (s *Server) writeStartError(w http.ResponseWriter, err error) {
	var compErr *session.CompilationError
	if errors.As(err, &compErr) {
		writeJSON(w, http.StatusOK, startResponse{Success: false, Error: "Compilation Error", Details: compErr.Diagnostics})
		return
	}
	s.logger.Error("start_session failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, startResponse{Success: false, Error: "Debug Error", Details: err.Error()})
}

type sessionIDRequest struct {
	SessionID string `json:"sessionId"`
}

type stepResponse struct {
	Success    bool    `json:"success"`
	State      *State  `json:"state,omitempty"`
	Step       int     `json:"step,omitempty"`
	TotalSteps int     `json:"totalSteps,omitempty"`
	AtEnd      *bool   `json:"atEnd,omitempty"`
	AtStart    *bool   `json:"atStart,omitempty"`
	Error      string  `json:"error,omitempty"`
	Details    string  `json:"details,omitempty"`
}

func (s *Server) handleStepForward(w http.ResponseWriter, r *http.Request) {
	var req sessionIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, stepResponse{Success: false, Error: "Validation Error", Details: "sessionId is required"})
		return
	}
	st, step, total, atEnd, err := s.sessions.StepForward(req.SessionID)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	wire := ToState(st)
	writeJSON(w, http.StatusOK, stepResponse{Success: true, State: &wire, Step: step, TotalSteps: total, AtEnd: &atEnd})
}

func (s *Server) handleStepBackward(w http.ResponseWriter, r *http.Request) {
	var req sessionIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, stepResponse{Success: false, Error: "Validation Error", Details: "sessionId is required"})
		return
	}
	st, step, total, atStart, err := s.sessions.StepBackward(req.SessionID)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	wire := ToState(st)
	writeJSON(w, http.StatusOK, stepResponse{Success: true, State: &wire, Step: step, TotalSteps: total, AtStart: &atStart})
}

type getStateRequest struct {
	SessionID string `json:"sessionId"`
	Step      int    `json:"step"`
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	var req getStateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, stepResponse{Success: false, Error: "Validation Error", Details: "sessionId is required"})
		return
	}
	st, total, err := s.sessions.GetState(req.SessionID, req.Step)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			s.writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, stepResponse{Success: false, Error: "Validation Error", Details: err.Error()})
		return
	}
	wire := ToState(st)
	writeJSON(w, http.StatusOK, stepResponse{Success: true, State: &wire, Step: req.Step, TotalSteps: total})
}

type endResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req sessionIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, endResponse{Success: false, Error: "Validation Error"})
		return
	}
	if err := s.sessions.End(req.SessionID); err != nil {
		writeJSON(w, http.StatusOK, endResponse{Success: false, Error: "Session Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, endResponse{Success: true})
}

func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusOK, stepResponse{Success: false, Error: "Session Not Found"})
		return
	}
	s.logger.Error("session operation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, stepResponse{Success: false, Error: "Debug Error", Details: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Validation Error", "details": "malformed JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
