package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/laya-karavadi/connect-four/internal/domain"
	"github.com/laya-karavadi/connect-four/internal/server"
	"github.com/laya-karavadi/connect-four/internal/store"
	"github.com/laya-karavadi/connect-four/pkg/auth"
	"github.com/laya-karavadi/connect-four/pkg/httputil"
)

// Handler serves the REST side of the game API. Every mutation also
// goes out over the sender, so an open websocket sees moves made
// through plain HTTP.
type Handler struct {
	sessions *server.SessionManager
	tokens   *auth.TokenManager
	sender   server.Sender
}

func NewHandler(sessions *server.SessionManager, tokens *auth.TokenManager, sender server.Sender) *Handler {
	return &Handler{
		sessions: sessions,
		tokens:   tokens,
		sender:   sender,
	}
}

// Register mounts all API routes on the router.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/api/games", h.CreateGame).Methods("POST")
	router.HandleFunc("/api/games/{id}", h.GetGame).Methods("GET")
	router.HandleFunc("/api/games/{id}/move", h.MakeMove).Methods("POST")
	router.HandleFunc("/api/games/{id}/restart", h.RestartGame).Methods("POST")
	router.HandleFunc("/healthz", h.Health).Methods("GET")
}

// RegisterStatic serves the built frontend when a directory is
// configured. Mounted last so API routes win.
func RegisterStatic(router *mux.Router, dir string) {
	if dir == "" {
		return
	}
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
}

type createGameRequest struct {
	Depth int `json:"depth"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

type gameResponse struct {
	GameID      string  `json:"gameId"`
	Token       string  `json:"token,omitempty"`
	Board       [][]int `json:"board"`
	YourPlayer  int     `json:"yourPlayer"`
	CurrentTurn int     `json:"currentTurn"`
	Status      string  `json:"status"`
	Winner      int     `json:"winner,omitempty"`
	MoveCount   int     `json:"moveCount"`
	Depth       int     `json:"depth"`
}

type moveResponse struct {
	gameResponse
	Row          int  `json:"row"`
	EngineColumn *int `json:"engineColumn,omitempty"`
	EngineRow    *int `json:"engineRow,omitempty"`
}

// CreateGame starts a new game and hands back the resume token.
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	session := h.sessions.Create(r.Context(), req.Depth)

	token, err := h.tokens.Issue(session.GameID)
	if err != nil {
		log.Error().Err(err).Str("game_id", session.GameID).Msg("failed to issue resume token")
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	resp := gameResponseFrom(session.State())
	resp.Token = token
	respondWithJSON(w, http.StatusCreated, resp)
}

// GetGame returns the current state of a game.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorize(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, gameResponseFrom(session.State()))
}

// MakeMove plays one human move and returns the state after the
// engine's reply.
func (h *Handler) MakeMove(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Column == nil {
		respondWithError(w, http.StatusBadRequest, "column is required")
		return
	}

	result, err := session.HandleMove(r.Context(), *req.Column, h.sender)
	if err != nil {
		respondWithError(w, statusForMoveError(err), err.Error())
		return
	}

	resp := moveResponse{
		gameResponse: gameResponseFrom(session.State()),
		Row:          result.Row,
	}
	if result.EngineMoved {
		resp.EngineColumn = &result.EngineColumn
		resp.EngineRow = &result.EngineRow
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// RestartGame resets the board for another round.
func (h *Handler) RestartGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorize(w, r)
	if !ok {
		return
	}

	session.Restart(r.Context(), h.sender)
	respondWithJSON(w, http.StatusOK, gameResponseFrom(session.State()))
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorize checks the Bearer token against the game in the URL and
// resolves the session. It writes the error response itself.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (*server.GameSession, bool) {
	gameID := mux.Vars(r)["id"]

	tokenString, err := httputil.TokenFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Authorization token required")
		return nil, false
	}

	claims, err := h.tokens.Validate(tokenString)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}

	if claims.GameID != gameID {
		respondWithError(w, http.StatusForbidden, "Token does not match this game")
		return nil, false
	}

	session, ok := h.sessions.Get(r.Context(), gameID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Game not found")
		return nil, false
	}
	return session, true
}

func statusForMoveError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidMove), errors.Is(err, domain.ErrColumnFull):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotYourTurn), errors.Is(err, domain.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func gameResponseFrom(state store.SessionState) gameResponse {
	return gameResponse{
		GameID:      state.GameID,
		Board:       server.BoardPayload(state.Board),
		YourPlayer:  int(domain.Player1),
		CurrentTurn: int(state.Turn),
		Status:      string(state.Status),
		Winner:      int(state.Winner),
		MoveCount:   state.MoveCount,
		Depth:       state.Depth,
	}
}

// ErrorResponse is the JSON body of every non-2xx API reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
