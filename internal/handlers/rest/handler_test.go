package rest_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletopforge/battletracker/internal/dice"
	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	"github.com/tabletopforge/battletracker/internal/domain/game/campaign"
	"github.com/tabletopforge/battletracker/internal/handlers/rest"
	"github.com/tabletopforge/battletracker/internal/services"
)

func newTestHandler(t *testing.T) (http.Handler, *rest.Hub) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	provider := services.NewProvider(&services.ProviderConfig{Logger: log})
	hub := rest.NewHub()
	handler := rest.NewHandler(&rest.HandlerConfig{
		BattleService:   provider.BattleService,
		CampaignService: provider.CampaignService,
		DiceService:     provider.DiceService,
		Hub:             hub,
		Logger:          log,
	})
	return handler.Routes(), hub
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func createBattle(t *testing.T, handler http.Handler, body map[string]any) *battle.Battle {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/battles", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[*battle.Battle](t, rec)
}

func TestHealth(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decodeBody[map[string]string](t, rec))
}

func TestCORSPreflight(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/battles", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateBattle(t *testing.T) {
	handler, _ := newTestHandler(t)

	b := createBattle(t, handler, map[string]any{
		"name":      "Goblin Ambush",
		"mode":      "GridBased",
		"mapWidth":  12,
		"mapHeight": 10,
	})

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Goblin Ambush", b.Name)
	assert.Equal(t, battle.ModeGridBased, b.Mode)
	require.NotNil(t, b.Map)
	assert.Equal(t, 12, b.Map.Width)
	assert.Equal(t, 10, b.Map.Height)
}

func TestCreateBattleRejectsEmptyName(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/battles", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/battles", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBattleNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/battles/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Contains(t, body["error"], "missing")
}

func TestListBattles(t *testing.T) {
	handler, _ := newTestHandler(t)

	createBattle(t, handler, map[string]any{"name": "First"})
	createBattle(t, handler, map[string]any{"name": "Second"})

	rec := doJSON(t, handler, http.MethodGet, "/api/battles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	summaries := decodeBody[[]battle.Summary](t, rec)
	require.Len(t, summaries, 2)
	assert.Equal(t, "First", summaries[0].Name)
	assert.Equal(t, "Second", summaries[1].Name)
}

func TestBattleLifecycle(t *testing.T) {
	handler, _ := newTestHandler(t)

	b := createBattle(t, handler, map[string]any{"name": "Skirmish", "mode": "GridBased"})

	rec := doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/creatures", map[string]any{
		"name":       "Fighter",
		"hp":         30,
		"maxHp":      30,
		"initiative": 15,
		"position":   map[string]int{"x": 2, "y": 3},
		"isPlayer":   true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/creatures", map[string]any{
		"name":       "Goblin",
		"hp":         7,
		"maxHp":      7,
		"initiative": 12,
		"position":   map[string]int{"x": 5, "y": 5},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[*battle.Battle](t, rec)
	require.Len(t, updated.Creatures, 2)
	assert.Equal(t, "Fighter", updated.Creatures[0].Name)

	rec = doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	started := decodeBody[*battle.Battle](t, rec)
	assert.True(t, started.IsActive)
	assert.Equal(t, 1, started.Round)

	rec = doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/next-turn", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	advanced := decodeBody[*battle.Battle](t, rec)
	assert.Equal(t, 1, advanced.CurrentTurn)

	goblinID := updated.Creatures[1].ID
	rec = doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/creatures/"+goblinID+"/move", map[string]any{
		"position": map[string]int{"x": 6, "y": 5},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decodeBody[*battle.Battle](t, rec)
	require.NotNil(t, moved.Creatures[1].Position)
	assert.Equal(t, 6, moved.Creatures[1].Position.X)

	rec = doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	undone := decodeBody[*battle.Battle](t, rec)
	assert.Equal(t, 5, undone.Creatures[1].Position.X)

	rec = doJSON(t, handler, http.MethodDelete, "/api/battles/"+b.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/battles/"+b.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCreature(t *testing.T) {
	handler, _ := newTestHandler(t)

	b := createBattle(t, handler, map[string]any{"name": "Skirmish"})
	rec := doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/creatures", map[string]any{
		"name":  "Wizard",
		"hp":    18,
		"maxHp": 18,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	withCreature := decodeBody[*battle.Battle](t, rec)
	creatureID := withCreature.Creatures[0].ID

	rec = doJSON(t, handler, http.MethodPatch, "/api/battles/"+b.ID+"/creatures/"+creatureID, map[string]any{"hp": 9})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decodeBody[*battle.Battle](t, rec)
	assert.Equal(t, 9, patched.Creatures[0].HP)
	assert.Equal(t, 18, patched.Creatures[0].MaxHP)

	rec = doJSON(t, handler, http.MethodDelete, "/api/battles/"+b.ID+"/creatures/"+creatureID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	emptied := decodeBody[*battle.Battle](t, rec)
	assert.Empty(t, emptied.Creatures)
}

func TestUndoWithNoHistory(t *testing.T) {
	handler, _ := newTestHandler(t)

	b := createBattle(t, handler, map[string]any{"name": "Fresh"})
	rec := doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/undo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetTerrainAndToggleDoor(t *testing.T) {
	handler, _ := newTestHandler(t)

	b := createBattle(t, handler, map[string]any{"name": "Dungeon", "mode": "GridBased"})

	rec := doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/map/terrain", map[string]any{
		"positions": []map[string]int{{"x": 3, "y": 3}},
		"terrain":   "Door",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	withDoor := decodeBody[*battle.Battle](t, rec)
	cell := withDoor.Map.CellAt(battle.GridPosition{X: 3, Y: 3})
	require.NotNil(t, cell)
	assert.Equal(t, battle.TerrainDoor, cell.Terrain)
	assert.False(t, cell.DoorOpen)

	rec = doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/map/doors/toggle", map[string]any{
		"position": map[string]int{"x": 3, "y": 3},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decodeBody[*battle.Battle](t, rec)
	assert.True(t, toggled.Map.CellAt(battle.GridPosition{X: 3, Y: 3}).DoorOpen)

	rec = doJSON(t, handler, http.MethodPost, "/api/battles/"+b.ID+"/map/terrain", map[string]any{
		"positions": []map[string]int{{"x": 1, "y": 1}},
		"terrain":   "Lava",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSceneDescription(t *testing.T) {
	handler, _ := newTestHandler(t)

	b := createBattle(t, handler, map[string]any{"name": "Narrative"})
	rec := doJSON(t, handler, http.MethodPut, "/api/battles/"+b.ID+"/description", map[string]any{
		"text": "A fog-drenched moor",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[*battle.Battle](t, rec)
	assert.Equal(t, "A fog-drenched moor", updated.SceneDescription)
}

func TestCampaignEndpoints(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/campaigns", map[string]any{
		"name":        "Curse of the Crag",
		"description": "Season one",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[*campaign.Campaign](t, rec)
	assert.Equal(t, "Curse of the Crag", created.Name)
	assert.False(t, created.IsDefault)

	rec = doJSON(t, handler, http.MethodPost, "/api/campaigns/"+created.ID+"/creatures", map[string]any{
		"name": "Veteran",
		"creature": map[string]any{
			"name":  "Veteran",
			"hp":    58,
			"maxHp": 58,
			"ac":    17,
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tpl := decodeBody[*campaign.CreatureTemplate](t, rec)
	assert.Equal(t, "Veteran", tpl.Name)

	rec = doJSON(t, handler, http.MethodGet, "/api/campaigns", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]*campaign.Campaign](t, rec)
	require.Len(t, all, 1)
	require.Len(t, all[0].Creatures, 1)

	rec = doJSON(t, handler, http.MethodDelete, "/api/campaigns/"+created.ID+"/creatures/"+tpl.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/api/campaigns/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/campaigns/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportMonsterWithoutClient(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/campaigns/import-monster", map[string]any{
		"monsterKey": "goblin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchMonstersEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/campaigns/monsters?cr=half", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No SRD client configured in tests
	rec = doJSON(t, handler, http.MethodGet, "/api/campaigns/monsters?cr=0.5", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiceEndpoints(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/dice/roll", map[string]any{
		"notation":    "2d6",
		"modifier":    3,
		"description": "Shortsword damage",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	roll := decodeBody[*dice.Roll](t, rec)
	assert.Equal(t, "2d6+3", roll.Notation)
	assert.Len(t, roll.Rolls, 2)
	assert.GreaterOrEqual(t, roll.Total, 5)
	assert.LessOrEqual(t, roll.Total, 15)

	rec = doJSON(t, handler, http.MethodPost, "/api/dice/roll", map[string]any{"notation": "nonsense"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/dice/history?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeBody[[]*dice.Roll](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, "Shortsword damage", history[0].Description)
}

func TestEventsPublishedOnMutation(t *testing.T) {
	handler, hub := newTestHandler(t)

	ch, cancel := hub.Subscribe("")
	defer cancel()

	b := createBattle(t, handler, map[string]any{"name": "Watched"})

	select {
	case event := <-ch:
		assert.Equal(t, "battle_created", event.Type)
		assert.Equal(t, b.ID, event.BattleID)
		require.NotNil(t, event.Battle)
	default:
		t.Fatal("expected a battle_created event")
	}

	rec := doJSON(t, handler, http.MethodPut, "/api/battles/"+b.ID+"/description", map[string]any{"text": "dusk"})
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case event := <-ch:
		assert.Equal(t, "battle_updated", event.Type)
	default:
		t.Fatal("expected a battle_updated event")
	}
}
