package rest

import (
	"net/http"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	battleservice "github.com/tabletopforge/battletracker/internal/services/battle"
)

type createBattleRequest struct {
	Name             string      `json:"name"`
	Mode             battle.Mode `json:"mode,omitempty"`
	MapWidth         int         `json:"mapWidth,omitempty"`
	MapHeight        int         `json:"mapHeight,omitempty"`
	SceneDescription string      `json:"sceneDescription,omitempty"`
}

type updateBattleRequest struct {
	Name             *string      `json:"name,omitempty"`
	Mode             *battle.Mode `json:"mode,omitempty"`
	MapWidth         int          `json:"mapWidth,omitempty"`
	MapHeight        int          `json:"mapHeight,omitempty"`
	SceneDescription *string      `json:"sceneDescription,omitempty"`
}

type addCreatureRequest struct {
	Name          string                `json:"name"`
	HP            int                   `json:"hp"`
	MaxHP         int                   `json:"maxHp"`
	AC            int                   `json:"ac,omitempty"`
	Initiative    int                   `json:"initiative,omitempty"`
	Stats         *battle.AbilityScores `json:"stats,omitempty"`
	StatusEffects []battle.StatusEffect `json:"statusEffects,omitempty"`
	Position      *battle.GridPosition  `json:"position,omitempty"`
	Size          battle.Size           `json:"size,omitempty"`
	IsPlayer      bool                  `json:"isPlayer,omitempty"`
}

type updateCreatureRequest struct {
	Name          *string                `json:"name,omitempty"`
	HP            *int                   `json:"hp,omitempty"`
	MaxHP         *int                   `json:"maxHp,omitempty"`
	AC            *int                   `json:"ac,omitempty"`
	Initiative    *int                   `json:"initiative,omitempty"`
	Stats         *battle.AbilityScores  `json:"stats,omitempty"`
	StatusEffects *[]battle.StatusEffect `json:"statusEffects,omitempty"`
	Position      *battle.GridPosition   `json:"position,omitempty"`
	Size          *battle.Size           `json:"size,omitempty"`
	IsPlayer      *bool                  `json:"isPlayer,omitempty"`
}

type moveCreatureRequest struct {
	Position battle.GridPosition `json:"position"`
}

type addFromTemplateRequest struct {
	TemplateID string               `json:"templateId"`
	Position   *battle.GridPosition `json:"position,omitempty"`
}

type setTerrainRequest struct {
	Positions    []battle.GridPosition `json:"positions"`
	Terrain      battle.Terrain        `json:"terrain"`
	DoorOpen     *bool                 `json:"doorOpen,omitempty"`
	Elevation    *int                  `json:"elevation,omitempty"`
	HazardDamage *int                  `json:"hazardDamage,omitempty"`
}

type toggleDoorRequest struct {
	Position battle.GridPosition `json:"position"`
}

type textRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleCreateBattle(w http.ResponseWriter, r *http.Request) {
	var req createBattleRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.CreateBattle(r.Context(), &battleservice.CreateBattleInput{
		Name:             req.Name,
		Mode:             req.Mode,
		MapWidth:         req.MapWidth,
		MapHeight:        req.MapHeight,
		SceneDescription: req.SceneDescription,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.hub.Publish(Event{Type: "battle_created", BattleID: b.ID, Battle: b})
	h.writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) handleListBattles(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.battles.ListBattles(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleGetBattle(w http.ResponseWriter, r *http.Request) {
	b, err := h.battles.GetBattle(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUpdateBattle(w http.ResponseWriter, r *http.Request) {
	var req updateBattleRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.UpdateBattle(r.Context(), r.PathValue("id"), &battleservice.UpdateBattleInput{
		Name:             req.Name,
		Mode:             req.Mode,
		MapWidth:         req.MapWidth,
		MapHeight:        req.MapHeight,
		SceneDescription: req.SceneDescription,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleDeleteBattle(w http.ResponseWriter, r *http.Request) {
	battleID := r.PathValue("id")
	if err := h.battles.DeleteBattle(r.Context(), battleID); err != nil {
		h.writeError(w, err)
		return
	}

	h.hub.Publish(Event{Type: "battle_deleted", BattleID: battleID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddCreature(w http.ResponseWriter, r *http.Request) {
	var req addCreatureRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.AddCreature(r.Context(), r.PathValue("id"), &battleservice.AddCreatureInput{
		Name:          req.Name,
		HP:            req.HP,
		MaxHP:         req.MaxHP,
		AC:            req.AC,
		Initiative:    req.Initiative,
		Stats:         req.Stats,
		StatusEffects: req.StatusEffects,
		Position:      req.Position,
		Size:          req.Size,
		IsPlayer:      req.IsPlayer,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleAddCreatureFromCampaign(w http.ResponseWriter, r *http.Request) {
	var req addFromTemplateRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.AddCreatureFromCampaign(r.Context(), r.PathValue("id"), req.TemplateID, req.Position)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUpdateCreature(w http.ResponseWriter, r *http.Request) {
	var req updateCreatureRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.UpdateCreature(r.Context(), r.PathValue("id"), r.PathValue("creatureId"), &battleservice.UpdateCreatureInput{
		Name:          req.Name,
		HP:            req.HP,
		MaxHP:         req.MaxHP,
		AC:            req.AC,
		Initiative:    req.Initiative,
		Stats:         req.Stats,
		StatusEffects: req.StatusEffects,
		Position:      req.Position,
		Size:          req.Size,
		IsPlayer:      req.IsPlayer,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleRemoveCreature(w http.ResponseWriter, r *http.Request) {
	b, err := h.battles.RemoveCreature(r.Context(), r.PathValue("id"), r.PathValue("creatureId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleMoveCreature(w http.ResponseWriter, r *http.Request) {
	var req moveCreatureRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.MoveCreature(r.Context(), r.PathValue("id"), r.PathValue("creatureId"), req.Position)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	b, err := h.battles.NextTurn(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleStartBattle(w http.ResponseWriter, r *http.Request) {
	b, err := h.battles.StartBattle(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	b, err := h.battles.Undo(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleSetTerrain(w http.ResponseWriter, r *http.Request) {
	var req setTerrainRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.SetTerrain(r.Context(), r.PathValue("id"), &battleservice.SetTerrainInput{
		Positions:    req.Positions,
		Terrain:      req.Terrain,
		DoorOpen:     req.DoorOpen,
		Elevation:    req.Elevation,
		HazardDamage: req.HazardDamage,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleToggleDoor(w http.ResponseWriter, r *http.Request) {
	var req toggleDoorRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.ToggleDoor(r.Context(), r.PathValue("id"), req.Position)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUpdateSceneDescription(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.UpdateSceneDescription(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUpdateCreaturePositions(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.battles.UpdateCreaturePositions(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.publish(b)
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) publish(b *battle.Battle) {
	h.hub.Publish(Event{Type: "battle_updated", BattleID: b.ID, Battle: b})
}
