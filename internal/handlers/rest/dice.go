package rest

import (
	"net/http"
	"strconv"

	diceservice "github.com/tabletopforge/battletracker/internal/services/dice"
)

type rollDiceRequest struct {
	Notation     string `json:"notation"`
	Modifier     int    `json:"modifier,omitempty"`
	Description  string `json:"description,omitempty"`
	Advantage    bool   `json:"advantage,omitempty"`
	Disadvantage bool   `json:"disadvantage,omitempty"`
}

func (h *Handler) handleRollDice(w http.ResponseWriter, r *http.Request) {
	var req rollDiceRequest
	if !h.decode(w, r, &req) {
		return
	}

	roll, err := h.dice.Roll(r.Context(), &diceservice.RollInput{
		Notation:     req.Notation,
		Modifier:     req.Modifier,
		Description:  req.Description,
		Advantage:    req.Advantage,
		Disadvantage: req.Disadvantage,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, roll)
}

func (h *Handler) handleDiceHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	rolls, err := h.dice.History(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rolls)
}
