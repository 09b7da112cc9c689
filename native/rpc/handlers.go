package rpc

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/oracle"
)

func nowUnix() uint64 { return uint64(time.Now().Unix()) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseAddress(raw string) (crypto.Address, error) {
	return crypto.DecodeAddress(raw)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// worldSummary is the read-only, JSON-safe projection of protocol.World
// this API exposes; it intentionally excludes every mutating method.
type worldSummary struct {
	Initialized   bool   `json:"initialized"`
	DoveMint      string `json:"dove_mint"`
	DoveSupply    string `json:"dove_supply"`
	DvdMint       string `json:"dvd_mint"`
	DvdSupply     string `json:"dvd_supply"`
	Sovereign     string `json:"sovereign"`
	DvdPrice      string `json:"dvd_price"`
	DvdPriceStale bool   `json:"dvd_price_stale"`
	OfferingState int    `json:"offering_state"`
}

func (s *Server) handleWorld(w http.ResponseWriter, r *http.Request) {
	world, err := s.store.LoadWorld()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	now := nowUnix()
	stale := now > world.DvdPrice.LastUpdated && now-world.DvdPrice.LastUpdated > oracle.StaleAfterSecs
	writeJSON(w, http.StatusOK, worldSummary{
		Initialized:   world.IsInitialized(),
		DoveMint:      world.Dove.Key.String(),
		DoveSupply:    world.Dove.Supply.String(),
		DvdMint:       world.Dvd.Key.String(),
		DvdSupply:     world.Dvd.Supply.String(),
		Sovereign:     world.Sovereign.Key.String(),
		DvdPrice:      world.DvdPrice.Price.String(),
		DvdPriceStale: stale,
		OfferingState: int(world.Offering.State),
	})
}

type vaultSummary struct {
	Owner      string `json:"owner"`
	Liquidated bool   `json:"liquidated"`
	Reserves   int    `json:"reserve_count"`
}

func (s *Server) handleVault(w http.ResponseWriter, r *http.Request) {
	owner, err := parseAddress(chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := s.store.LoadVault(owner)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, vaultSummary{
		Owner:      v.Owner.String(),
		Liquidated: v.Auction != nil,
		Reserves:   len(v.Reserves),
	})
}

type stabilityPoolSummary struct {
	StableMint string `json:"stable_mint"`
	Deposited  string `json:"deposited"`
	MaxDeposit string `json:"max_deposit"`
}

func (s *Server) handleStabilityPool(w http.ResponseWriter, r *http.Request) {
	mint, err := parseAddress(chi.URLParam(r, "mint"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := s.store.LoadStabilityPool(mint)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, stabilityPoolSummary{
		StableMint: p.StableMint.Key.String(),
		Deposited:  p.Deposited.String(),
		MaxDeposit: p.MaxDeposit.String(),
	})
}

type savingsSummary struct {
	Owner string `json:"owner"`
	Total string `json:"total"`
}

func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	owner, err := parseAddress(chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sv, err := s.store.LoadSavings(owner)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, savingsSummary{
		Owner: sv.Owner.String(),
		Total: sv.Page.Total.String(),
	})
}

type collateralSummary struct {
	Mint       string `json:"mint"`
	Deposited  string `json:"deposited"`
	MaxDeposit string `json:"max_deposit"`
}

func (s *Server) handleCollateral(w http.ResponseWriter, r *http.Request) {
	mint, err := parseAddress(chi.URLParam(r, "mint"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := s.store.LoadCollateral(mint)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, collateralSummary{
		Mint:       c.Mint.Key.String(),
		Deposited:  c.Deposited.String(),
		MaxDeposit: c.MaxDeposit.String(),
	})
}
