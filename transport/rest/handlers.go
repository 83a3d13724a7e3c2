package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

type moveRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Step *int `json:"step"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var (
	errMissingCell = errors.New("cell is required")
	errMissingStep = errors.New("step is required")
)

func (that *Server) createGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.NewSession(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, session)
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.GetView(r.Context(), chi.URLParam(r, "id"))
	that.respond(w, r, session, err)
}

func (that *Server) endGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) applyMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMissingCell.Error()})
		return
	}

	session, err := that.games.ApplyMove(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	that.respond(w, r, session, err)
}

func (that *Server) jumpToStep(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Step == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMissingStep.Error()})
		return
	}

	session, err := that.games.JumpToStep(r.Context(), chi.URLParam(r, "id"), *req.Step)
	that.respond(w, r, session, err)
}

func (that *Server) toggleOrder(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.ToggleOrder(r.Context(), chi.URLParam(r, "id"))
	that.respond(w, r, session, err)
}

func (that *Server) respond(w http.ResponseWriter, r *http.Request, session *usecase.Session, err error) {
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
	case apperror.IsInvalidArgument(err):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
