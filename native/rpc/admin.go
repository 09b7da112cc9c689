package rpc

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/covenant-finance/covenant/native/common"
	"github.com/covenant-finance/covenant/native/export"
	"github.com/covenant-finance/covenant/native/ledger"
)

// adminQuota bounds how often a single authenticated caller may hit the
// admin surface per minute; it is independent of the public rate limiter,
// which throttles by IP rather than by authenticated identity.
var adminQuota = common.Quota{MaxRequestsPerMin: 30, EpochSeconds: 60}

func (s *Server) checkAdminQuota(ctx context.Context, caller string) error {
	epoch := uint64(time.Now().Unix()) / uint64(adminQuota.EpochSeconds)
	_, err := common.Apply(s.quotaStore, "admin", epoch, []byte(caller), adminQuota, 1, 0)
	return err
}

// handlePauseModule pauses or resumes a named module. Gated by bearer auth
// and native/common's per-caller request quota.
func (s *Server) handlePauseModule(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())
	if err := s.checkAdminQuota(r.Context(), caller); err != nil {
		writeError(w, http.StatusTooManyRequests, err)
		return
	}
	module := chi.URLParam(r, "module")
	paused := r.URL.Query().Get("paused") != "false"
	s.pauses.SetPaused(module, paused)
	if s.ledgerLog != nil {
		action := ledger.ActionConfigUpdate
		_ = s.ledgerLog.Record(r.Context(), action, caller, module, "", "pause="+r.URL.Query().Get("paused"))
	}
	writeJSON(w, http.StatusOK, map[string]any{"module": module, "paused": paused})
}

// handleExportAction writes the N most recent ledger entries for an action
// to a Parquet file under the server's export directory.
func (s *Server) handleExportAction(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())
	if err := s.checkAdminQuota(r.Context(), caller); err != nil {
		writeError(w, http.StatusTooManyRequests, err)
		return
	}
	action := chi.URLParam(r, "action")
	path := filepath.Join(s.exportDir, action+"-"+time.Now().UTC().Format("20060102T150405Z")+".parquet")
	count, err := export.WriteAction(r.Context(), s.ledgerLog, action, 10_000, path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"path": path, "rows": count})
}
