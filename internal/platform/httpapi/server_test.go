package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/towerdef/internal/config"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
	"github.com/vovakirdan/towerdef/internal/storage"
)

// testConfig is a 4x2 grid with a straight three-cell path on the top row.
func testConfig() config.Config {
	return config.Config{
		InitialMoney:   20,
		FixedDeltaTime: 1,
		Map: config.MapConfig{
			Name:      "straight",
			Width:     200,
			Height:    100,
			CellSize:  50,
			Waypoints: []config.Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		},
		Enemies: []config.EnemyConfig{
			{Type: "basic", Health: 40, Speed: 50, Reward: 3},
		},
		Towers: []config.TowerConfig{
			{Type: "archer", Range: 125, Damage: 10, AttackCooldown: 1, Cost: 20},
			{Type: "cannon", Range: 75, Damage: 75, AttackCooldown: 2, Cost: 35, UnlockWave: 2},
		},
		Waves: config.WavesConfig{
			WaveDelay:          10,
			SpawnDelay:         1,
			GrowthFactor:       1.5,
			HealthGrowthFactor: 2,
			SpeedGrowthFactor:  1.5,
			SpeedLimit:         100,
			List:               []config.WaveComposition{{"basic": 1}, {"basic": 2}},
		},
	}
}

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	srv, err := New(Options{
		Config: testConfig(),
		Store:  store,
		Logger: log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decoding %s %s response %q: %v", method, url, data, err)
		}
	}
	return resp.StatusCode
}

func TestNewRejectsInvalidMap(t *testing.T) {
	cfg := testConfig()
	cfg.Map.Waypoints = []config.Point{{X: 0, Y: 0}, {X: 50, Y: 50}}
	if _, err := New(Options{Config: cfg, Logger: log.New(io.Discard)}); err == nil {
		t.Error("New() with a diagonal path should fail")
	}
}

func TestInfo(t *testing.T) {
	ts := newTestServer(t, nil)

	var info core.Info
	if status := doJSON(t, http.MethodGet, ts.URL+"/info", "", &info); status != http.StatusOK {
		t.Fatalf("GET /info status = %d, expected 200", status)
	}
	if info.Map.PathLength != 100 {
		t.Errorf("path length = %v, expected 100", info.Map.PathLength)
	}
	if len(info.Towers) != 2 {
		t.Errorf("tower catalogue size = %d, expected 2", len(info.Towers))
	}
}

func TestDefaultSessionStepAndReset(t *testing.T) {
	ts := newTestServer(t, nil)

	var state core.GameState
	body := `{"type":"BUILD_TOWER","towerType":"archer","position":{"x":25,"y":75}}`
	if status := doJSON(t, http.MethodPost, ts.URL+"/step", body, &state); status != http.StatusOK {
		t.Fatalf("POST /step status = %d, expected 200", status)
	}
	if state.Money != 0 || len(state.Towers) != 1 || state.GameTime != 1 {
		t.Errorf("after build: money=%d towers=%d time=%v, expected 0/1/1", state.Money, len(state.Towers), state.GameTime)
	}

	var errResp errorResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/step", `{"type":"BUILD_TOWER","towerType":"archer","position":{"x":75,"y":75}}`, &errResp)
	if status != http.StatusBadRequest {
		t.Errorf("unaffordable build status = %d, expected 400", status)
	}
	if !strings.Contains(errResp.Message, "insufficient money") {
		t.Errorf("message = %q, expected insufficient money", errResp.Message)
	}

	// The rejected step did not advance time.
	doJSON(t, http.MethodGet, ts.URL+"/state", "", &state)
	if state.GameTime != 1 {
		t.Errorf("GameTime after rejection = %v, expected 1", state.GameTime)
	}

	doJSON(t, http.MethodPost, ts.URL+"/reset", "", &state)
	if state.Money != 20 || len(state.Towers) != 0 || state.GameTime != 0 {
		t.Errorf("after reset: %+v", state)
	}
}

func TestStepRejectsMalformedActions(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `build please`},
		{"unknown type", `{"type":"SELL_TOWER"}`},
		{"missing position", `{"type":"BUILD_TOWER","towerType":"archer"}`},
		{"unknown field", `{"type":"NONE","speed":2}`},
		{"unknown tower", `{"type":"BUILD_TOWER","towerType":"laser","position":{"x":25,"y":75}}`},
		{"on the path", `{"type":"BUILD_TOWER","towerType":"archer","position":{"x":75,"y":25}}`},
		{"locked", `{"type":"BUILD_TOWER","towerType":"cannon","position":{"x":25,"y":75}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp errorResponse
			if status := doJSON(t, http.MethodPost, ts.URL+"/step", tt.body, &errResp); status != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", status)
			}
			if errResp.Message == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestSessionsLifecycle(t *testing.T) {
	ts := newTestServer(t, nil)

	var created createSessionResponse
	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", "", &created); status != http.StatusCreated {
		t.Fatalf("POST /sessions status = %d, expected 201", status)
	}
	if created.ID == "" || created.State.Money != 20 {
		t.Fatalf("created = %+v", created)
	}
	base := ts.URL + "/sessions/" + created.ID

	var state core.GameState
	doJSON(t, http.MethodPost, base+"/step", `{"type":"NONE"}`, &state)
	doJSON(t, http.MethodPost, base+"/step", `{"type":"NONE"}`, &state)
	if state.GameTime != 2 {
		t.Errorf("session GameTime = %v, expected 2", state.GameTime)
	}

	// Sessions are independent of the default game.
	var def core.GameState
	doJSON(t, http.MethodGet, ts.URL+"/state", "", &def)
	if def.GameTime != 0 {
		t.Errorf("default GameTime = %v, expected 0", def.GameTime)
	}

	if status := doJSON(t, http.MethodDelete, base, "", nil); status != http.StatusNoContent {
		t.Errorf("DELETE status = %d, expected 204", status)
	}
	var errResp errorResponse
	if status := doJSON(t, http.MethodGet, base+"/state", "", &errResp); status != http.StatusNotFound {
		t.Errorf("state of deleted session status = %d, expected 404", status)
	}
	if status := doJSON(t, http.MethodDelete, base, "", nil); status != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, expected 404", status)
	}
}

func TestSessionLimit(t *testing.T) {
	srv, err := New(Options{Config: testConfig(), Logger: log.New(io.Discard), MaxSessions: 1})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", "", &createSessionResponse{}); status != http.StatusCreated {
		t.Fatalf("first session status = %d, expected 201", status)
	}
	var errResp errorResponse
	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", "", &errResp); status != http.StatusServiceUnavailable {
		t.Errorf("second session status = %d, expected 503", status)
	}
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) *core.Engine {
	t.Helper()
	m, err := core.NewMap(testConfig().Map)
	if err != nil {
		t.Fatalf("NewMap() failed: %v", err)
	}
	engine, err := core.NewEngine(testConfig(), m, core.WithTiming(core.TimingFixedStep))
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return engine
}

func TestSessionTableSweep(t *testing.T) {
	clock := &testClock{now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	table := newSessionTable(0, time.Minute)
	table.now = clock.Now

	idle, _ := table.add(newTestEngine(t))
	busy, _ := table.add(newTestEngine(t))

	clock.Advance(50 * time.Second)
	table.get(busy.id)
	clock.Advance(20 * time.Second)

	expired := table.sweep()
	if len(expired) != 1 || expired[0] != idle.id {
		t.Errorf("sweep() = %v, expected [%s]", expired, idle.id)
	}
	if _, ok := table.get(idle.id); ok {
		t.Error("idle session still present after sweep")
	}
	if _, ok := table.get(busy.id); !ok {
		t.Error("recently used session was swept")
	}

	forever := newSessionTable(0, -1)
	forever.now = clock.Now
	forever.add(newTestEngine(t))
	clock.Advance(24 * time.Hour)
	if got := forever.sweep(); len(got) != 0 {
		t.Errorf("sweep() with no ttl = %v, expected none", got)
	}
}

func TestSessionLimitFreesIdleSessions(t *testing.T) {
	srv, err := New(Options{
		Config:      testConfig(),
		Logger:      log.New(io.Discard),
		MaxSessions: 1,
		SessionTTL:  time.Minute,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	clock := &testClock{now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	srv.sessions.now = clock.Now
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	var first createSessionResponse
	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", "", &first); status != http.StatusCreated {
		t.Fatalf("first session status = %d, expected 201", status)
	}
	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", "", &errorResponse{}); status != http.StatusServiceUnavailable {
		t.Fatalf("second session status = %d, expected 503 while the first is fresh", status)
	}

	clock.Advance(2 * time.Minute)
	var second createSessionResponse
	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", "", &second); status != http.StatusCreated {
		t.Fatalf("session after idle expiry status = %d, expected 201", status)
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/sessions/"+first.ID+"/state", "", &errorResponse{}); status != http.StatusNotFound {
		t.Errorf("expired session status = %d, expected 404", status)
	}
}

func TestGameOverSavesResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()
	ts := newTestServer(t, store)

	var state core.GameState
	steps := 0
	for !state.GameOver && steps < 50 {
		doJSON(t, http.MethodPost, ts.URL+"/step", `{"type":"NONE"}`, &state)
		steps++
	}
	if !state.GameOver {
		t.Fatal("undefended game never ended")
	}

	var errResp errorResponse
	if status := doJSON(t, http.MethodPost, ts.URL+"/step", `{"type":"NONE"}`, &errResp); status != http.StatusBadRequest {
		t.Errorf("step after game over status = %d, expected 400", status)
	}

	results, err := store.TopResults("classic", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 saved result, got %d", len(results))
	}
	if results[0].Map != "straight" || results[0].Wave != state.WaveNumber || results[0].GameTime != state.GameTime {
		t.Errorf("saved result = %+v, state = %+v", results[0], state)
	}
}

func TestWebsocketStepping(t *testing.T) {
	ts := newTestServer(t, nil)

	var created createSessionResponse
	doJSON(t, http.MethodPost, ts.URL+"/sessions", "", &created)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + created.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	send := func(msg string) map[string]any {
		t.Helper()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("WriteMessage() failed: %v", err)
		}
		var reply map[string]any
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatalf("ReadJSON() failed: %v", err)
		}
		return reply
	}

	reply := send(`{"type":"NONE"}`)
	if reply["gameTime"] != 1.0 {
		t.Errorf("gameTime = %v, expected 1", reply["gameTime"])
	}

	reply = send(`{"type":"BUILD_TOWER","towerType":"archer","position":{"x":75,"y":25}}`)
	if msg, _ := reply["error"].(string); !strings.Contains(msg, "not buildable") {
		t.Errorf("error = %v, expected not buildable", reply["error"])
	}

	reply = send(`{"type":"BUILD_TOWER","towerType":"archer","position":{"x":75,"y":75}}`)
	if towers, _ := reply["towers"].([]any); len(towers) != 1 {
		t.Errorf("towers = %v, expected one tower", reply["towers"])
	}
}

func TestWebsocketUnknownSession(t *testing.T) {
	ts := newTestServer(t, nil)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("Dial() to unknown session should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("handshake response = %v, expected 404", resp)
	}
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(data, []byte("Tower Defense")) {
		t.Errorf("index body = %q", data)
	}
}
