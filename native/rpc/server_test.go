package rpc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/ledger"
	"github.com/covenant-finance/covenant/native/protocol"
	"github.com/covenant-finance/covenant/native/rpc"
	"github.com/covenant-finance/covenant/native/schedule"
	"github.com/covenant-finance/covenant/native/storage"
)

const testJWTSecret = "test-secret"

func mustAddress(t *testing.T, b byte) crypto.Address {
	t.Helper()
	raw := make([]byte, 20)
	raw[0] = b
	addr, err := crypto.NewAddress(crypto.CovenantPrefix, raw)
	require.NoError(t, err)
	return addr
}

func newTestServer(t *testing.T) (*rpc.Server, http.Handler) {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	db, err := ledger.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	log := ledger.NewLog(db)

	quotaStore, err := rpc.NewQuotaStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, quotaStore.Close()) })

	world := protocol.NewWorld(protocol.InitParams{
		DoveMint:         mustAddress(t, 1),
		DvdMint:          mustAddress(t, 2),
		Sovereign:        mustAddress(t, 3),
		VestingRecipient: mustAddress(t, 4),
		VestingSchedule:  schedule.Schedule{},
		DvdDecimals:      6,
		DoveDecimals:     9,
		Now:              1000,
	})
	require.NoError(t, store.SaveWorld(&world))

	return rpc.New(rpc.Config{
		Store:       store,
		LedgerLog:   log,
		QuotaStore:  quotaStore,
		ExportDir:   t.TempDir(),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   "covenant-test",
		ReadRateQPS: 100,
		ReadBurst:   100,
	})
}

func signTestJWT(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss": "covenant-test",
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func TestHealthz(t *testing.T) {
	_, handler := newTestServer(t)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWorldReflectsSavedState(t *testing.T) {
	_, handler := newTestServer(t)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/world")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, true, body["initialized"])
}

func TestAdminEndpointsRequireBearerToken(t *testing.T) {
	_, handler := newTestServer(t)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/modules/vault/pause?paused=true", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminPauseWithValidToken(t *testing.T) {
	_, handler := newTestServer(t)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	token := signTestJWT(t, "sovereign-operator")
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		srv.URL+"/admin/modules/vault/pause?paused=true", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "vault", body["module"])
	require.Equal(t, true, body["paused"])
}
