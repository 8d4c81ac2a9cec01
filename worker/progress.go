package worker

import (
	"sync/atomic"
	"time"
)

// Progress tracks row transformation progress
type Progress struct {
	TotalRows     int64
	ProcessedRows atomic.Int64
	FilteredRows  atomic.Int64
	StartTime     time.Time
}

// LoaderProgress tracks the progress of database load operations
type LoaderProgress struct {
	Table      string
	LoadedRows atomic.Int64
	ErrorCount atomic.Int64
	StartTime  time.Time
}

// RowSink receives transformed rows for delivery to a destination
type RowSink interface {
	Submit(data map[string]interface{})
}
