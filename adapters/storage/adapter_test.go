package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"utilfee/core/demo"
	"utilfee/core/store"
	"utilfee/core/types"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data", "periods.json"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestFileStoreMissingFileUsesDemo(t *testing.T) {
	s := newFileStore(t)

	periods, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, periods, len(demo.Periods()))
	assert.Equal(t, "2023-08-01", periods[0].ID)
}

func TestFileStoreMalformedFileUsesDemo(t *testing.T) {
	for name, content := range map[string]string{
		"not json":  "{oops",
		"not array": `{"id": "x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			s := newFileStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

			periods, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Len(t, periods, 3)
		})
	}
}

func TestFileStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	table := store.New(demo.Periods())
	added := table.Add("Draft", types.MustParseDate("2026-01-01"))
	require.NoError(t, table.SetRate(added.ID, types.AgeNew, types.BandElectric, types.AudienceLegal, 123))
	require.NoError(t, s.Save(ctx, table.Periods()))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	assert.Equal(t, added.ID, loaded[0].ID)
	assert.Equal(t, "123", loaded[0].Tables.Row(types.AgeNew, types.BandElectric).Legal.String())

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestFileStoreSaveEmpty(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	require.NoError(t, s.Save(ctx, nil))
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded, "an empty table is a valid table")
}

func TestFileStoreReset(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	require.NoError(t, s.Save(ctx, nil))
	periods, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, periods, 3)

	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))

	_, err = s.Reset(ctx)
	assert.NoError(t, err, "reset without a file is fine")
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryStoreWithData([]byte("garbage"))
	periods, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, periods, 3)

	require.NoError(t, s.Save(ctx, periods[:1]))
	assert.Contains(t, string(s.Bytes()), `"id": "2023-08-01"`)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	_, err = s.Reset(ctx)
	require.NoError(t, err)
	assert.Nil(t, s.Bytes())
}

func TestStoreFactory(t *testing.T) {
	s, err := StoreFactory(BackendFile, map[string]string{"path": filepath.Join(t.TempDir(), "p.json")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = StoreFactory(BackendMemory, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = StoreFactory("postgres", nil, nil)
	assert.Error(t, err)
}
