package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

func stores(t *testing.T) map[string]ports.HistoryRepository {
	dir := t.TempDir()
	sqlite := NewSQLiteStore(filepath.Join(dir, "history.db"))
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]ports.HistoryRepository{
		"sqlite": sqlite,
		"file":   NewFileStore(filepath.Join(dir, "history.jsonl")),
	}
}

func record(query, command string, at time.Time) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp:   at,
		Query:       query,
		Command:     command,
		Description: "desc",
		SafetyLevel: domain.SafetySafe,
		SessionID:   "session-1",
	}
}

func TestStoresSaveAndList(t *testing.T) {
	now := time.Now()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.NilError(t, store.Save(record("list docker containers", "docker ps -a", now.Add(-time.Minute))))
			assert.NilError(t, store.Save(record("show disk usage", "df -h", now)))

			records, err := store.Records(0, "")
			assert.NilError(t, err)
			assert.Equal(t, len(records), 2)
			assert.Equal(t, records[0].Command, "df -h")
			assert.Equal(t, records[1].Command, "docker ps -a")
			assert.Equal(t, records[1].SafetyLevel, domain.SafetySafe)
			assert.Equal(t, records[1].SessionID, "session-1")

			limited, err := store.Records(1, "")
			assert.NilError(t, err)
			assert.Equal(t, len(limited), 1)

			found, err := store.Records(0, "docker")
			assert.NilError(t, err)
			assert.Equal(t, len(found), 1)
			assert.Equal(t, found[0].Query, "list docker containers")
		})
	}
}

func TestStoresPruneAndClear(t *testing.T) {
	now := time.Now()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.NilError(t, store.Save(record("old", "ls /old", now.Add(-48*time.Hour))))
			assert.NilError(t, store.Save(record("new", "ls /new", now)))

			pruned, err := store.PruneOlderThan(24 * time.Hour)
			assert.NilError(t, err)
			assert.Equal(t, pruned, 1)

			records, err := store.Records(0, "")
			assert.NilError(t, err)
			assert.Equal(t, len(records), 1)
			assert.Equal(t, records[0].Command, "ls /new")

			assert.NilError(t, store.Clear())
			records, err = store.Records(0, "")
			assert.NilError(t, err)
			assert.Equal(t, len(records), 0)
		})
	}
}

func TestStoresExportJSON(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.NilError(t, store.Save(record("list files", "ls -la", time.Now())))
			dest := filepath.Join(t.TempDir(), "export.jsonl")
			assert.NilError(t, store.ExportJSON(dest))

			data, err := os.ReadFile(dest)
			assert.NilError(t, err)
			assert.Assert(t, len(data) > 0)
		})
	}
}
