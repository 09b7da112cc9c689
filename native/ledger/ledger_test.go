package ledger_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/native/ledger"
)

func setupTestLog(t *testing.T) *ledger.Log {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := ledger.Open("sqlite", dsn)
	require.NoError(t, err)
	return ledger.NewLog(db)
}

func TestRecordAndRecentByActor(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	require.NoError(t, log.Record(ctx, ledger.ActionBorrow, "alice", "vault-1", "100", "opened position"))
	require.NoError(t, log.Record(ctx, ledger.ActionRepay, "alice", "vault-1", "40", "partial repay"))
	require.NoError(t, log.Record(ctx, ledger.ActionBorrow, "bob", "vault-2", "50", "opened position"))

	entries, err := log.RecentByActor(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, ledger.ActionRepay, entries[0].Action)
}

func TestRecentByAction(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	require.NoError(t, log.Record(ctx, ledger.ActionLiquidate, "keeper", "vault-3", "200", ""))
	require.NoError(t, log.Record(ctx, ledger.ActionBorrow, "alice", "vault-1", "100", ""))

	entries, err := log.RecentByAction(ctx, ledger.ActionLiquidate, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "vault-3", entries[0].Subject)
}
