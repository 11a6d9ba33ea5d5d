package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/locate"
	"github.com/fwojciec/locate/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, text string, isRegex bool) *locate.Pattern {
	t.Helper()
	p, err := locate.CompilePattern(text, isRegex, locate.ModeList)
	require.NoError(t, err)
	return p
}

// observingContext calls observe on every cancellation check. ReplaceAll
// checks once per row, so observe runs while its transaction is open.
type observingContext struct {
	context.Context
	mu      sync.Mutex
	observe func()
}

func (c *observingContext) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observe()
	return c.Context.Err()
}

func TestIndexService_ReplaceAll(t *testing.T) {
	t.Parallel()

	t.Run("stores paths in insertion order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		ctx := context.Background()

		paths := []string{"/data/report.txt", "/data/notes.md", "/data/REPORT.TXT"}
		require.NoError(t, svc.ReplaceAll(ctx, paths))

		all, err := svc.Scan(ctx, mustCompile(t, "^", true))
		require.NoError(t, err)
		assert.Equal(t, paths, all)
	})

	t.Run("discards the previous index", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.ReplaceAll(ctx, []string{"/old/a", "/old/b"}))
		require.NoError(t, svc.ReplaceAll(ctx, []string{"/new/c"}))

		all, err := svc.Scan(ctx, mustCompile(t, "/", false))
		require.NoError(t, err)
		assert.Equal(t, []string{"/new/c"}, all)
	})

	t.Run("accepts an empty set", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.ReplaceAll(ctx, []string{"/a"}))
		require.NoError(t, svc.ReplaceAll(ctx, nil))

		n, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("failure mid-insert leaves prior index intact", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		ctx := context.Background()

		before := []string{"/keep/1", "/keep/2"}
		require.NoError(t, svc.ReplaceAll(ctx, before))

		err := svc.ReplaceAll(ctx, []string{"/new/1", "/new/2", "relative/path", "/new/3"})
		require.Error(t, err)
		assert.Equal(t, locate.EINVALID, locate.ErrorCode(err))

		all, err := svc.Scan(ctx, mustCompile(t, "/", false))
		require.NoError(t, err)
		assert.Equal(t, before, all)
	})

	t.Run("cancelled context fails with ESTORAGE and keeps prior index", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		require.NoError(t, svc.ReplaceAll(context.Background(), []string{"/keep"}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := svc.ReplaceAll(ctx, []string{"/new"})

		require.Error(t, err)
		assert.Equal(t, locate.ESTORAGE, locate.ErrorCode(err))

		all, err := svc.Scan(context.Background(), mustCompile(t, "/", false))
		require.NoError(t, err)
		assert.Equal(t, []string{"/keep"}, all)
	})

	t.Run("second handle sees only committed data", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "index.db")
		writerDB := sqlite.NewDB(dbPath)
		require.NoError(t, writerDB.Open())
		defer writerDB.Close()
		readerDB := sqlite.NewDB(dbPath)
		require.NoError(t, readerDB.Open())
		defer readerDB.Close()

		writer := sqlite.NewIndexService(writerDB)
		reader := sqlite.NewIndexService(readerDB)
		ctx := context.Background()

		require.NoError(t, writer.ReplaceAll(ctx, []string{"/one"}))
		_ = writer.ReplaceAll(ctx, []string{"/two", ""})

		all, err := reader.Scan(ctx, mustCompile(t, "/", false))
		require.NoError(t, err)
		assert.Equal(t, []string{"/one"}, all)
	})

	t.Run("readers see the previous index until commit", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "index.db")
		writerDB := sqlite.NewDB(dbPath)
		require.NoError(t, writerDB.Open())
		defer writerDB.Close()
		readerDB := sqlite.NewDB(dbPath)
		require.NoError(t, readerDB.Open())
		defer readerDB.Close()

		writer := sqlite.NewIndexService(writerDB)
		reader := sqlite.NewIndexService(readerDB)
		all := mustCompile(t, "/", false)
		require.NoError(t, writer.ReplaceAll(context.Background(), []string{"/one"}))

		var snapshots [][]string
		var readErrs []error
		ctx := &observingContext{
			Context: context.Background(),
			observe: func() {
				paths, err := reader.Scan(context.Background(), all)
				if err != nil {
					readErrs = append(readErrs, err)
					return
				}
				snapshots = append(snapshots, paths)
			},
		}

		newPaths := []string{"/two", "/three", "/four"}
		require.NoError(t, writer.ReplaceAll(ctx, newPaths))

		assert.Empty(t, readErrs)
		require.GreaterOrEqual(t, len(snapshots), len(newPaths))
		for _, snapshot := range snapshots {
			assert.Equal(t, []string{"/one"}, snapshot)
		}

		committed, err := reader.Scan(context.Background(), all)
		require.NoError(t, err)
		assert.Equal(t, newPaths, committed)
	})
}

func TestIndexService_Scan(t *testing.T) {
	t.Parallel()

	t.Run("is case-sensitive substring match for literals", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.ReplaceAll(ctx, []string{"/data/report.txt", "/data/notes.md", "/data/REPORT.TXT"}))

		matches, err := svc.Scan(ctx, mustCompile(t, "report", false))

		require.NoError(t, err)
		assert.Equal(t, []string{"/data/report.txt"}, matches)
	})

	t.Run("evaluates regular expressions", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.ReplaceAll(ctx, []string{"/data/report.txt", "/data/notes.md", "/data/REPORT.TXT"}))

		matches, err := svc.Scan(ctx, mustCompile(t, `(?i)report\.txt$`, true))

		require.NoError(t, err)
		assert.Equal(t, []string{"/data/report.txt", "/data/REPORT.TXT"}, matches)
	})

	t.Run("does not modify the index", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.ReplaceAll(ctx, []string{"/a", "/b"}))

		_, err := svc.Scan(ctx, mustCompile(t, "a", false))
		require.NoError(t, err)

		n, err := svc.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("returns nothing from an empty index", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))

		matches, err := svc.Scan(context.Background(), mustCompile(t, "x", false))

		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("requires a compiled pattern", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewIndexService(setupTestDB(t))

		_, err := svc.Scan(context.Background(), nil)

		assert.Equal(t, locate.EINVALID, locate.ErrorCode(err))
	})
}

// BenchmarkIndexService compares a full rebuild with a full-scan query over
// a synthetic index.
func BenchmarkIndexService(b *testing.B) {
	paths := make([]string, 10000)
	for i := range paths {
		paths[i] = fmt.Sprintf("/home/user/project%d/src/file%d.go", i%50, i)
	}

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()
	svc := sqlite.NewIndexService(db)
	ctx := context.Background()

	b.Run("replace_all", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			require.NoError(b, svc.ReplaceAll(ctx, paths))
		}
	})

	b.Run("scan", func(b *testing.B) {
		require.NoError(b, svc.ReplaceAll(ctx, paths))
		p, err := locate.CompilePattern("project7/", false, locate.ModeList)
		require.NoError(b, err)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := svc.Scan(ctx, p)
			require.NoError(b, err)
		}
	})
}
