// Package export materializes a window of the ledger's audit entries — a
// closed auction, an offering settlement, a batch of liquidations — as a
// columnar Parquet file for offline risk analytics, independent of the
// sqlite/postgres store those entries live in day to day.
package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/covenant-finance/covenant/native/ledger"
)

// Row is one flattened ledger entry, shaped for columnar storage.
type Row struct {
	ID        string `parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Action    string `parquet:"name=action, type=BYTE_ARRAY, convertedtype=UTF8"`
	Actor     string `parquet:"name=actor, type=BYTE_ARRAY, convertedtype=UTF8"`
	Subject   string `parquet:"name=subject, type=BYTE_ARRAY, convertedtype=UTF8"`
	Amount    string `parquet:"name=amount, type=BYTE_ARRAY, convertedtype=UTF8"`
	Detail    string `parquet:"name=detail, type=BYTE_ARRAY, convertedtype=UTF8"`
	CreatedAt string `parquet:"name=created_at, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Source is the query surface export needs out of the ledger; satisfied by
// *ledger.Log, kept as an interface so tests can supply a fixed row set
// without opening a database.
type Source interface {
	RecentByAction(ctx context.Context, action string, limit int) ([]ledger.Entry, error)
}

// WriteAction queries the most recent limit entries for action out of src
// and writes them to a new Parquet file at path, newest first.
func WriteAction(ctx context.Context, src Source, action string, limit int, path string) (int, error) {
	entries, err := src.RecentByAction(ctx, action, limit)
	if err != nil {
		return 0, fmt.Errorf("export: query %s: %w", action, err)
	}
	return WriteRows(toRows(entries), path)
}

func toRows(entries []ledger.Entry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			ID:        e.ID.String(),
			Action:    e.Action,
			Actor:     e.Actor,
			Subject:   e.Subject,
			Amount:    e.Amount,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
	}
	return rows
}

// WriteRows writes rows to a new Parquet file at path, snappy-compressed.
func WriteRows(rows []Row, path string) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("export: create %s: %w", path, err)
	}
	defer file.Close()

	fw := writerfile.NewWriterFile(file)
	pw, err := writer.NewParquetWriter(fw, new(Row), 1)
	if err != nil {
		return 0, fmt.Errorf("export: parquet schema: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := pw.Write(&rows[i]); err != nil {
			pw.WriteStop()
			return 0, fmt.Errorf("export: write row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return 0, fmt.Errorf("export: flush: %w", err)
	}
	return len(rows), nil
}
