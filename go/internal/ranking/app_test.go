package ranking_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/mcdev12/weblurk/go/internal/ranking"
	"github.com/mcdev12/weblurk/go/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seed(t *testing.T, points map[string]int64) *memory.Store {
	t.Helper()
	store := memory.New()
	for nick, p := range points {
		v, err := store.CreateViewer(context.Background(), nick, time.Now())
		require.NoError(t, err)
		require.NoError(t, store.SetPoints(v.ID, p))
	}
	return store
}

func TestList(t *testing.T) {
	app := ranking.NewApp(seed(t, map[string]int64{"bravo": 5, "alpha": 5, "top": 1234, "zero": 0}))

	entries, err := app.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ranking.Entry{
		{Position: 1, ChannelNick: "top", Points: 1234, Average: 123.4},
		{Position: 2, ChannelNick: "alpha", Points: 5, Average: 0.5},
		{Position: 3, ChannelNick: "bravo", Points: 5, Average: 0.5},
		{Position: 4, ChannelNick: "zero", Points: 0, Average: 0},
	}, entries)
}

func TestAverageRounding(t *testing.T) {
	app := ranking.NewApp(seed(t, map[string]int64{"a": 7, "b": 333}))

	entries, err := app.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33.3, entries[0].Average)
	assert.Equal(t, 0.7, entries[1].Average)
}

func TestExportCSV(t *testing.T) {
	app := ranking.NewApp(seed(t, map[string]int64{"alpha": 12, "bravo": 3}))

	var buf bytes.Buffer
	require.NoError(t, app.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Position", "Viewer", "Points", "Average"},
		{"1", "alpha", "12", "1.2"},
		{"2", "bravo", "3", "0.3"},
	}, records)
}

func TestExportXLSX(t *testing.T) {
	app := ranking.NewApp(seed(t, map[string]int64{"alpha": 12, "bravo": 3}))

	var buf bytes.Buffer
	require.NoError(t, app.ExportXLSX(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ranking"}, f.GetSheetList())
	rows, err := f.GetRows("Ranking")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Position", "Viewer", "Points", "Average"}, rows[0])
	assert.Equal(t, []string{"1", "alpha", "12", "1.2"}, rows[1])
}

func TestReset(t *testing.T) {
	store := seed(t, map[string]int64{"alpha": 12, "bravo": 0})
	app := ranking.NewApp(store)

	n, err := app.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entries, err := app.List(context.Background())
	require.NoError(t, err)
	for _, e := range entries {
		assert.Zero(t, e.Points)
	}
}
