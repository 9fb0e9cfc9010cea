package rest

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	apperrors "github.com/tabletopforge/battletracker/internal/errors"
	battleservice "github.com/tabletopforge/battletracker/internal/services/battle"
	campaignservice "github.com/tabletopforge/battletracker/internal/services/campaign"
	diceservice "github.com/tabletopforge/battletracker/internal/services/dice"
)

// Handler serves the REST API
type Handler struct {
	battles   battleservice.Service
	campaigns campaignservice.Service
	dice      diceservice.Service
	hub       *Hub
	log       *logrus.Logger
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	BattleService   battleservice.Service
	CampaignService campaignservice.Service
	DiceService     diceservice.Service
	Hub             *Hub
	Logger          *logrus.Logger
}

// NewHandler creates a new REST handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.BattleService == nil {
		panic("battle service is required")
	}
	if cfg.CampaignService == nil {
		panic("campaign service is required")
	}
	if cfg.DiceService == nil {
		panic("dice service is required")
	}

	h := &Handler{
		battles:   cfg.BattleService,
		campaigns: cfg.CampaignService,
		dice:      cfg.DiceService,
		hub:       cfg.Hub,
		log:       cfg.Logger,
	}
	if h.hub == nil {
		h.hub = NewHub()
	}
	if h.log == nil {
		h.log = logrus.StandardLogger()
	}
	return h
}

// Routes builds the full route table. Every endpoint is listed here, method
// and path literal, so the surface is greppable in one place.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /api/battles", h.handleCreateBattle)
	mux.HandleFunc("GET /api/battles", h.handleListBattles)
	mux.HandleFunc("GET /api/battles/{id}", h.handleGetBattle)
	mux.HandleFunc("PATCH /api/battles/{id}", h.handleUpdateBattle)
	mux.HandleFunc("DELETE /api/battles/{id}", h.handleDeleteBattle)

	mux.HandleFunc("POST /api/battles/{id}/creatures", h.handleAddCreature)
	mux.HandleFunc("POST /api/battles/{id}/creatures/from-template", h.handleAddCreatureFromCampaign)
	mux.HandleFunc("PATCH /api/battles/{id}/creatures/{creatureId}", h.handleUpdateCreature)
	mux.HandleFunc("DELETE /api/battles/{id}/creatures/{creatureId}", h.handleRemoveCreature)
	mux.HandleFunc("POST /api/battles/{id}/creatures/{creatureId}/move", h.handleMoveCreature)

	mux.HandleFunc("POST /api/battles/{id}/next-turn", h.handleNextTurn)
	mux.HandleFunc("POST /api/battles/{id}/start", h.handleStartBattle)
	mux.HandleFunc("POST /api/battles/{id}/undo", h.handleUndo)

	mux.HandleFunc("POST /api/battles/{id}/map/terrain", h.handleSetTerrain)
	mux.HandleFunc("POST /api/battles/{id}/map/doors/toggle", h.handleToggleDoor)
	mux.HandleFunc("PUT /api/battles/{id}/description", h.handleUpdateSceneDescription)
	mux.HandleFunc("PUT /api/battles/{id}/positions", h.handleUpdateCreaturePositions)

	mux.HandleFunc("POST /api/campaigns", h.handleCreateCampaign)
	mux.HandleFunc("GET /api/campaigns", h.handleListCampaigns)
	mux.HandleFunc("GET /api/campaigns/{id}", h.handleGetCampaign)
	mux.HandleFunc("DELETE /api/campaigns/{id}", h.handleDeleteCampaign)
	mux.HandleFunc("POST /api/campaigns/{id}/creatures", h.handleSaveCreature)
	mux.HandleFunc("DELETE /api/campaigns/{id}/creatures/{templateId}", h.handleDeleteCreatureTemplate)
	mux.HandleFunc("POST /api/campaigns/{id}/maps", h.handleSaveMap)
	mux.HandleFunc("DELETE /api/campaigns/{id}/maps/{templateId}", h.handleDeleteMapTemplate)
	mux.HandleFunc("POST /api/campaigns/import-monster", h.handleImportMonster)
	mux.HandleFunc("GET /api/campaigns/monsters", h.handleSearchMonsters)

	mux.HandleFunc("POST /api/dice/roll", h.handleRollDice)
	mux.HandleFunc("GET /api/dice/history", h.handleDiceHistory)

	mux.HandleFunc("GET /api/events", h.handleEvents)

	return enableCORS(mux)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.WithError(err).Error("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeInvalidArgument, apperrors.CodeValidation, apperrors.CodeImpossibleCommand:
		status = http.StatusBadRequest
	case apperrors.CodeAlreadyExists:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, apperrors.InvalidArgument("invalid JSON body"))
		return false
	}
	return true
}
