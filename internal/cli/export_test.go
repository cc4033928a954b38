package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/match"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

func catalog() []database.Neighborhood {
	return []database.Neighborhood{
		{ID: 1, Name: "Greenwood", City: "Seattle", WalkScore: 88, Amenities: "parks,schools"},
		{ID: 2, Name: "Hyde Park", City: "Chicago", WalkScore: 82, Amenities: "museums"},
	}
}

func TestRankedRows(t *testing.T) {
	ranking := &service.Ranking{
		Results: []match.Result{
			{Neighborhood: match.Neighborhood{ID: "2"}, Score: 90, Breakdown: match.Breakdown{Safety: 71}},
			{Neighborhood: match.Neighborhood{ID: "1"}, Score: 80, Breakdown: match.Breakdown{Safety: 79}},
			{Neighborhood: match.Neighborhood{ID: "99"}, Score: 10},
		},
	}

	rows := rankedRows(catalog(), ranking)
	require.Len(t, rows, 2)
	assert.Equal(t, "Hyde Park", rows[0].Name)
	assert.Equal(t, 90, *rows[0].Score)
	assert.Equal(t, 71.0, *rows[0].Safety)
	assert.Equal(t, 79.0, *rows[1].Safety)
}

func TestExportCSV(t *testing.T) {
	rows := []ExportRow{toExportRow(catalog()[0])}
	score := 87
	rows[0].Score = &score

	var buf bytes.Buffer
	require.NoError(t, exportCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, len(records[0]), len(records[1]))
	assert.Equal(t, "Greenwood", records[1][1])
	assert.Equal(t, "parks,schools", records[1][9])
	assert.Equal(t, "87", records[1][10])
	assert.Equal(t, "", records[1][11])
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exportJSON(&buf, []ExportRow{toExportRow(catalog()[1])}))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Hyde Park", decoded[0]["name"])
	_, hasScore := decoded[0]["score"]
	assert.False(t, hasScore)
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"config", "init"},
		{"seed"},
		{"neighborhoods", "list"},
		{"neighborhoods", "add"},
		{"prefs", "set"},
		{"match"},
		{"score"},
		{"reviews", "average"},
		{"reviews", "edit"},
		{"ratings"},
		{"mcp"},
		{"serve"},
		{"export"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestReviewFlags(t *testing.T) {
	edit, _, err := rootCmd.Find([]string{"reviews", "edit"})
	require.NoError(t, err)
	for _, name := range []string{"user", "content", "category", "rating", "rate"} {
		assert.NotNil(t, edit.Flags().Lookup(name), name)
	}

	list, _, err := rootCmd.Find([]string{"reviews", "list"})
	require.NoError(t, err)
	assert.NotNil(t, list.Flags().Lookup("category"))
}
