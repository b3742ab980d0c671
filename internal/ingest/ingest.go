package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"DowntimeIncome/internal/recorder"
	"DowntimeIncome/internal/table"
)

// Ingestor loads a table from a Source and installs it in a Holder. A failed
// load leaves the previously active table in place.
type Ingestor struct {
	Source   Source
	Tables   *table.Holder
	Recorder recorder.Recorder

	// OnSwap runs after a new table has been installed.
	OnSwap func(*table.Table)

	mu sync.Mutex
}

// NewIngestor creates an Ingestor. A nil recorder records nothing.
func NewIngestor(src Source, tables *table.Holder, rec recorder.Recorder) *Ingestor {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Ingestor{Source: src, Tables: tables, Recorder: rec}
}

// Ingest fetches, parses and installs the table. On failure the error is
// returned and the active table is unchanged.
func (i *Ingestor) Ingest(ctx context.Context) (*table.Table, error) {
	if i.Source == nil {
		return nil, errors.New("no external table source configured")
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	name := i.Source.Name()
	records, err := i.Source.Fetch(ctx)
	if err != nil {
		return nil, i.fail(name, table.LoadStats{}, err)
	}
	t, stats, err := table.Load(records, name)
	if err != nil {
		return nil, i.fail(name, stats, err)
	}

	i.Tables.Swap(t)
	log.Printf("[INFO] income table loaded from %s: %d rows (%d skipped)", name, stats.Rows, stats.Skipped)
	if err := i.Recorder.RecordTableLoad(&recorder.TableLoadEvent{
		Source: name, Provenance: string(t.Provenance()), Rows: stats.Rows, Skipped: stats.Skipped,
	}); err != nil {
		log.Printf("[ERROR] record table load: %v", err)
	}
	if i.OnSwap != nil {
		i.OnSwap(t)
	}
	return t, nil
}

func (i *Ingestor) fail(name string, stats table.LoadStats, cause error) error {
	active := i.Tables.Current()
	log.Printf("[WARN] income table load from %s failed: %v; keeping %s table (%s)",
		name, cause, active.Provenance(), active.Source())
	if err := i.Recorder.RecordTableLoad(&recorder.TableLoadEvent{
		Source: name, Provenance: string(table.ProvenanceExternal), Rows: stats.Rows, Skipped: stats.Skipped, Err: cause,
	}); err != nil {
		log.Printf("[ERROR] record table load: %v", err)
	}
	return fmt.Errorf("ingest %s: %w", name, cause)
}
