package rest

import (
	"net/http"
	"strconv"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
	campaignservice "github.com/tabletopforge/battletracker/internal/services/campaign"
)

type createCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type saveCreatureRequest struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Creature    *battle.Creature `json:"creature"`
}

type saveMapRequest struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Map         *battle.Map `json:"map"`
}

type importMonsterRequest struct {
	MonsterKey string `json:"monsterKey"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if !h.decode(w, r, &req) {
		return
	}

	c, err := h.campaigns.CreateCampaign(r.Context(), &campaignservice.CreateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	all, err := h.campaigns.ListCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, all)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.GetCampaign(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.campaigns.DeleteCampaign(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveCreature(w http.ResponseWriter, r *http.Request) {
	var req saveCreatureRequest
	if !h.decode(w, r, &req) {
		return
	}

	tpl, err := h.campaigns.SaveCreature(r.Context(), r.PathValue("id"), &campaignservice.SaveCreatureInput{
		Name:        req.Name,
		Description: req.Description,
		Creature:    req.Creature,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tpl)
}

func (h *Handler) handleDeleteCreatureTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.campaigns.DeleteCreature(r.Context(), r.PathValue("id"), r.PathValue("templateId")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSaveMap(w http.ResponseWriter, r *http.Request) {
	var req saveMapRequest
	if !h.decode(w, r, &req) {
		return
	}

	tpl, err := h.campaigns.SaveMap(r.Context(), r.PathValue("id"), &campaignservice.SaveMapInput{
		Name:        req.Name,
		Description: req.Description,
		Map:         req.Map,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tpl)
}

func (h *Handler) handleDeleteMapTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.campaigns.DeleteMap(r.Context(), r.PathValue("id"), r.PathValue("templateId")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleImportMonster(w http.ResponseWriter, r *http.Request) {
	var req importMonsterRequest
	if !h.decode(w, r, &req) {
		return
	}

	tpl, err := h.campaigns.ImportMonster(r.Context(), req.MonsterKey)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tpl)
}

func (h *Handler) handleSearchMonsters(w http.ResponseWriter, r *http.Request) {
	cr, err := strconv.ParseFloat(r.URL.Query().Get("cr"), 64)
	if err != nil {
		h.writeError(w, apperrors.InvalidArgument("query parameter 'cr' must be a number"))
		return
	}

	monsters, err := h.campaigns.SearchMonsters(r.Context(), cr)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, monsters)
}
