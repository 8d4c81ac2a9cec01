package worker

import (
	"time"

	"github.com/alitto/pond/v2"
	"github.com/andys/csvforge/config"
	"github.com/andys/csvforge/table"
	"github.com/andys/csvforge/transform"
)

// Transformer applies a pipeline to dataset rows using a worker pool.
// Results are collected by input index, so the output row order is
// deterministic regardless of worker scheduling.
type Transformer struct {
	pipeline *transform.Pipeline
	pool     pond.Pool
	progress *Progress
	cfg      *config.Config
}

// NewTransformer creates a new transformer worker pool
func NewTransformer(pipeline *transform.Pipeline, maxWorkers int, cfg *config.Config) *Transformer {
	return &Transformer{
		pipeline: pipeline,
		pool:     pond.NewPool(maxWorkers),
		progress: &Progress{
			StartTime: time.Now(),
		},
		cfg: cfg,
	}
}

// Run transforms every row of the dataset and returns a new dataset
// with the pipeline's output schema. Rows dropped by filter rules are
// omitted; surviving rows keep their input order.
func (t *Transformer) Run(ds *table.Dataset) (*table.Dataset, error) {
	t.progress.TotalRows = int64(len(ds.Rows))
	results := make([]map[string]interface{}, len(ds.Rows))
	group := t.pool.NewGroup()

	for i, row := range ds.Rows {
		i, row := i, row // local copies for closure

		group.SubmitErr(func() error {
			out, keep, err := t.pipeline.ApplyRow(row)
			if err != nil {
				return err
			}
			if keep {
				results[i] = out
			} else {
				t.progress.FilteredRows.Add(1)
			}
			t.progress.ProcessedRows.Add(1)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := &table.Dataset{
		Schema: t.pipeline.OutputSchema(),
		Rows:   make([]map[string]interface{}, 0, len(ds.Rows)),
	}
	for _, row := range results {
		if row != nil {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// GetProgress returns the current progress
func (t *Transformer) GetProgress() *Progress {
	return t.progress
}

// Stop stops the worker pool and waits for all tasks to complete
func (t *Transformer) Stop() {
	t.pool.StopAndWait()
}
