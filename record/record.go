// Package record keeps the results of a run in an sqlite file written by
// akita's data recorder.
package record

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/datarecording"
)

// Recorder is the part of akita's DataRecorder the packages write through.
type Recorder interface {
	CreateTable(table string, sampleEntry any)
	InsertData(table string, entry any)
	Flush()
}

// Open creates a recorder for one run. The database is
// "<prefix>_<run id>.sqlite3" under dir so repeated runs never collide. The
// returned path is that file. Buffered rows are flushed by the writer's own
// atexit handler, or by calling Flush.
func Open(dir, prefix string) (Recorder, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create record dir: %w", err)
	}

	name := filepath.Join(dir, prefix+"_"+xid.New().String())

	w := datarecording.NewSQLiteWriter(name)
	w.Init()

	return w, name + ".sqlite3", nil
}
