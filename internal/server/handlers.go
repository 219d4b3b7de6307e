package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/martin/listing-hunter/internal/hunt"
	"github.com/martin/listing-hunter/internal/types"
)

// huntRequest is the body for POST /hunts and POST /hunts/stream.
type huntRequest struct {
	Kind        string             `json:"kind,omitempty"`
	Criteria    types.Criteria     `json:"criteria"`
	Preferences *types.Preferences `json:"preferences,omitempty"`
	Limit       int                `json:"limit,omitempty"`
}

func (s *Server) huntOptions(req *huntRequest) hunt.Options {
	opts := hunt.Options{
		Criteria:       req.Criteria,
		Limit:          req.Limit,
		Searcher:       s.searcher,
		Notifier:       s.notifier,
		FallbackToMock: s.cfg.FallbackToMock,
		Database:       s.db,
		Verbose:        s.cfg.Verbose,
	}
	if req.Preferences != nil {
		opts.Preferences = *req.Preferences
	}
	return opts
}

// handleRunHunt runs a hunt synchronously and returns the full result.
func (s *Server) handleRunHunt(w http.ResponseWriter, r *http.Request) {
	var req huntRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	var (
		result *types.RunResult
		err    error
	)
	switch req.Kind {
	case "", string(types.KindProperty):
		result, err = hunt.Properties(r.Context(), s.huntOptions(&req))
	case string(types.KindJob):
		result, err = hunt.Jobs(r.Context(), s.huntOptions(&req))
	default:
		writeError(w, &ErrValidation{Field: "kind", Message: "must be 'property' or 'job'"})
		return
	}
	if err != nil {
		writeError(w, &ErrValidation{Field: "criteria", Message: err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleRunHuntStream runs a hunt and streams stage progress as
// Server-Sent Events, ending with the full result.
func (s *Server) handleRunHuntStream(w http.ResponseWriter, r *http.Request) {
	var req huntRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.huntOptions(&req)
	opts.OnProgress = func(status types.StageStatus) {
		sse.WriteStage(status)
	}

	var result *types.RunResult
	switch req.Kind {
	case "", string(types.KindProperty):
		result, err = hunt.Properties(r.Context(), opts)
	case string(types.KindJob):
		result, err = hunt.Jobs(r.Context(), opts)
	default:
		sse.WriteError("kind must be 'property' or 'job'")
		return
	}
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteResult(result)
}

// handleListHunts returns recent persisted runs, newest first.
func (s *Server) handleListHunts(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			writeError(w, &ErrValidation{Field: "limit", Message: "must be an integer between 1 and 200"})
			return
		}
		limit = n
	}

	runs, err := s.db.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetHunt returns one persisted run with its stage statuses and
// the scored listing artifact when present.
func (s *Server) handleGetHunt(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	run, err := s.db.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if run == nil {
		writeError(w, &ErrRunNotFound{ID: id.String()})
		return
	}

	stageRecords, err := s.db.ListStageStatuses(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response := map[string]any{
		"run":    run,
		"stages": stageRecords,
	}

	artifact, err := s.db.GetArtifact(r.Context(), id, "score")
	if err != nil {
		writeError(w, err)
		return
	}
	if artifact != nil {
		var listings []types.Listing
		if err := json.Unmarshal(artifact, &listings); err == nil {
			response["listings"] = listings
		}
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// chatRequest is the body for POST /chat.
type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleChat answers a one-off assistant message.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.chatAgent == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "chat is not configured (missing API key)")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.Message == "" {
		writeError(w, &ErrValidation{Field: "message", Message: "must not be empty"})
		return
	}

	reply, err := s.chatAgent.Reply(r.Context(), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, chatResponse{Reply: reply})
}
