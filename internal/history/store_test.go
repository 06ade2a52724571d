// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzbor/raw-to-img/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run := Run{
		StartedAt: time.Now().Add(-time.Minute),
		Finished:  time.Now(),
		Input:     "/photos",
		Format:    "png",
		Converted: 2,
		Skipped:   1,
		Failed:    1,
	}
	records := []types.FileRecord{
		{Input: "/photos/a.cr2", Output: "/photos/a.png", Status: types.StatusConverted, DecodeTime: time.Second},
		{Input: "/photos/b.cr2", Status: types.StatusFailed, Error: "corrupt tile data"},
	}

	id, err := s.Record(ctx, run, records)
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "/photos", runs[0].Input)
	assert.Equal(t, "png", runs[0].Format)
	assert.Equal(t, 2, runs[0].Converted)
	assert.Equal(t, 1, runs[0].Failed)

	files, err := s.Files(ctx, id)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "/photos/a.png", files[0].Output)
	assert.Equal(t, types.StatusFailed, files[1].Status)
	assert.Equal(t, "corrupt tile data", files[1].Error)
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i, input := range []string{"/first", "/second", "/third"} {
		_, err := s.Record(ctx, Run{
			StartedAt: time.Now().Add(time.Duration(i) * time.Second),
			Finished:  time.Now(),
			Input:     input,
			Format:    "jpeg",
		}, nil)
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "/third", runs[0].Input, "newest run first")
	assert.Equal(t, "/second", runs[1].Input)
}

func TestRecentEmptyStore(t *testing.T) {
	s := openStore(t)
	runs, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
