package export_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/native/export"
	"github.com/covenant-finance/covenant/native/ledger"
)

type fixedSource struct {
	entries []ledger.Entry
}

func (f fixedSource) RecentByAction(ctx context.Context, action string, limit int) ([]ledger.Entry, error) {
	var out []ledger.Entry
	for _, e := range f.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestWriteActionWritesParquetFile(t *testing.T) {
	src := fixedSource{entries: []ledger.Entry{
		{ID: uuid.New(), Action: ledger.ActionLiquidate, Actor: "keeper", Subject: "vault-1", Amount: "100"},
		{ID: uuid.New(), Action: ledger.ActionLiquidate, Actor: "keeper", Subject: "vault-2", Amount: "200"},
		{ID: uuid.New(), Action: ledger.ActionBorrow, Actor: "alice", Subject: "vault-3", Amount: "50"},
	}}

	path := filepath.Join(t.TempDir(), "liquidations.parquet")
	count, err := export.WriteAction(context.Background(), src, ledger.ActionLiquidate, 10, path)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.FileExists(t, path)
}

func TestWriteRowsRespectsEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	count, err := export.WriteRows(nil, path)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.FileExists(t, path)
}
