package worker

import (
	"fmt"
	"os"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/andys/csvforge/config"
	"github.com/andys/csvforge/db"
)

// Loader writes transformed rows to a destination database using a
// worker pool.
type Loader struct {
	destDB   *db.Connection
	schema   *db.TableSchema
	pool     pond.Pool
	progress *LoaderProgress
	cfg      *config.Config
}

var _ RowSink = (*Loader)(nil)

// NewLoader creates a new loader worker pool targeting one table
func NewLoader(destDB *db.Connection, schema *db.TableSchema, maxWorkers int, cfg *config.Config) *Loader {
	return &Loader{
		destDB: destDB,
		schema: schema,
		pool:   pond.NewPool(maxWorkers, pond.WithQueueSize(maxWorkers*2000)),
		progress: &LoaderProgress{
			Table:     schema.Name,
			StartTime: time.Now(),
		},
		cfg: cfg,
	}
}

// Submit submits a row for writing to the destination database
func (l *Loader) Submit(data map[string]interface{}) {
	l.pool.SubmitErr(func() error {
		err := l.destDB.UpsertRow(l.schema, data)
		if err != nil {
			l.progress.ErrorCount.Add(1)
			if l.cfg.Debug {
				fmt.Fprintf(os.Stderr, "Error writing to table %s: %v\n", l.schema.Name, err)
			}
			return err
		}
		l.progress.LoadedRows.Add(1)
		return nil
	})
}

// GetProgress returns the current progress
func (l *Loader) GetProgress() *LoaderProgress {
	return l.progress
}

// StopAndWait stops the worker pool, waits for all pending writes and
// reports a single error if any row failed to load.
func (l *Loader) StopAndWait() error {
	l.pool.StopAndWait()
	if n := l.progress.ErrorCount.Load(); n > 0 {
		return fmt.Errorf("failed to load %d rows into table %s", n, l.schema.Name)
	}
	return nil
}
