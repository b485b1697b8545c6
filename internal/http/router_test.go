package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merev/ds-darts-engine/internal/game"
	"github.com/merev/ds-darts-engine/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC))

	svc := game.NewService(store, clock, log.New(io.Discard))
	srv := httptest.NewServer(NewRouter(game.NewHandler(svc, 3*time.Second)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGameLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/games",
		`{"gameType":301,"finishMode":"double","totalLegs":1,"players":["Ann","Bob"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[game.GameView](t, resp)
	id := created.ID

	resp = do(t, srv, http.MethodPost, "/api/games/"+id+"/turns",
		`{"darts":[{"value":20,"multiplier":3,"state":"scored"},{"value":20,"multiplier":3,"state":"scored"},{"value":0,"multiplier":1,"state":"miss"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[game.GameView](t, resp)
	assert.Equal(t, 181, v.State.Players[0].CurrentScore)
	assert.True(t, v.CanUndo)

	resp = do(t, srv, http.MethodPost, "/api/games/"+id+"/undo", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decode[game.GameView](t, resp)
	assert.Equal(t, 301, v.State.Players[0].CurrentScore)

	resp = do(t, srv, http.MethodPost, "/api/games/"+id+"/next-leg", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/games/"+id+"/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[game.StatsView](t, resp)
	assert.Len(t, st.Players, 2)

	resp = do(t, srv, http.MethodGet, "/api/games?phase=playing", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]game.GameSummary](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	resp = do(t, srv, http.MethodDelete, "/api/games/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/games/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/games", `{"gameType":301`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/games", `{"gameType":401,"finishMode":"double","totalLegs":1,"players":["Ann"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/games", `{"gameType":501,"finishMode":"double","totalLegs":1,"players":["Ann"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[game.GameView](t, resp).ID

	resp = do(t, srv, http.MethodPost, "/api/games/"+id+"/turns", `{"notation":["T25"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path  string
		found bool
		route string
	}{
		{"/api/checkout/170", true, "T20 T20 Bull"},
		{"/api/checkout/40?mode=double", true, "D20"},
		{"/api/checkout/20?mode=simple", true, "S20"},
		{"/api/checkout/1?mode=double", false, ""},
		{"/api/checkout/171", false, ""},
	}
	for _, tt := range tests {
		resp := do(t, srv, http.MethodGet, tt.path, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, tt.path)
		v := decode[game.CheckoutView](t, resp)
		assert.Equal(t, tt.found, v.Found, tt.path)
		assert.Equal(t, tt.route, v.Route, tt.path)
	}

	resp := do(t, srv, http.MethodGet, "/api/checkout/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, srv, http.MethodGet, "/api/checkout/40?mode=triple", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
