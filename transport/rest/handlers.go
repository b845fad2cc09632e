package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

type createInviteRequest struct {
	GuestID       string      `json:"guest_id,omitempty"`
	GroupID       string      `json:"group_id,omitempty"`
	Kind          entity.Kind `json:"kind"`
	StartingState string      `json:"starting_state,omitempty"`
}

type respondInviteRequest struct {
	Action string `json:"action"`
}

type moveRequest struct {
	ExpectedVersion int64            `json:"expected_version"`
	Move            entity.MoveInput `json:"move"`
}

type sessionResponse struct {
	ID       string            `json:"id"`
	Kind     entity.Kind       `json:"kind"`
	Player1  string            `json:"player1_id"`
	Player2  string            `json:"player2_id,omitempty"`
	GroupID  string            `json:"group_id,omitempty"`
	State    json.RawMessage   `json:"state"`
	Status   string            `json:"status"`
	Turn     entity.TurnPolicy `json:"turn"`
	WinnerID string            `json:"winner_id,omitempty"`
	Version  int64             `json:"version"`
}

func newSessionResponse(session *entity.GameSession) sessionResponse {
	return sessionResponse{
		ID:       session.ID,
		Kind:     session.Kind,
		Player1:  session.Player1ID,
		Player2:  session.Player2ID,
		GroupID:  session.GroupID,
		State:    session.State,
		Status:   session.Status,
		Turn:     session.Turn,
		WinnerID: session.WinnerID,
		Version:  session.Version,
	}
}

func (that *Server) createInviteHandler(w http.ResponseWriter, r *http.Request, principal *entity.Principal) {
	var req createInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	invite, err := that.inviteService.CreateInvite(r.Context(), principal, req.GuestID, req.GroupID, req.Kind, req.StartingState)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]string{"invite_id": invite.ID})
}

func (that *Server) listInvitesHandler(w http.ResponseWriter, r *http.Request, principal *entity.Principal) {
	invites, err := that.inviteService.ListPendingInvites(r.Context(), principal)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, invites)
}

func (that *Server) respondInviteHandler(w http.ResponseWriter, r *http.Request, principal *entity.Principal) {
	var req respondInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Action != "accept" && req.Action != "reject" {
		http.Error(w, "action must be accept or reject", http.StatusBadRequest)
		return
	}

	session, err := that.inviteService.ResolveInvite(r.Context(), r.PathValue("id"), principal, req.Action == "accept")
	if err != nil {
		that.writeError(w, err)
		return
	}

	if session == nil {
		that.writeJSON(w, http.StatusOK, map[string]string{"message": "invite rejected"})
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]string{"session_id": session.ID})
}

func (that *Server) getSessionHandler(w http.ResponseWriter, r *http.Request, principal *entity.Principal) {
	session, err := that.sessionService.GetSession(r.Context(), r.PathValue("id"), principal)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *Server) listActiveHandler(w http.ResponseWriter, r *http.Request, principal *entity.Principal) {
	sessions, err := that.sessionService.ListActiveSessions(r.Context(), principal)
	if err != nil {
		that.writeError(w, err)
		return
	}

	responses := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, newSessionResponse(session))
	}

	that.writeJSON(w, http.StatusOK, responses)
}

func (that *Server) listHistoryHandler(w http.ResponseWriter, r *http.Request, principal *entity.Principal) {
	sessions, err := that.sessionService.ListFinishedSessions(r.Context(), principal)
	if err != nil {
		that.writeError(w, err)
		return
	}

	responses := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, newSessionResponse(session))
	}

	that.writeJSON(w, http.StatusOK, responses)
}

func (that *Server) submitMoveHandler(w http.ResponseWriter, r *http.Request, principal *entity.Principal) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := that.moveService.SubmitMove(r.Context(), r.PathValue("id"), principal, req.ExpectedVersion, req.Move)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// VersionConflict gets 409: it is the one error a well-behaved caller
// retries after re-reading the session.
func (that *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInviteNotFound), errors.Is(err, apperror.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrVersionConflict):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrGameOver),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrAlreadyMoved),
		errors.Is(err, apperror.ErrInvalidInvite),
		errors.Is(err, apperror.ErrUnknownGameKind):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		http.Error(w, "Internal Server Error", status)
		return
	}

	that.writeJSON(w, status, map[string]string{"error": err.Error()})
}
