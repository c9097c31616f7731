package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnairn/vexdraft/internal/models"
)

func testSnapshot() *models.SessionSnapshot {
	return &models.SessionSnapshot{
		Name:       "spring-draft",
		RoundLimit: 2,
		Participants: []*models.Participant{
			{ID: "u2", Name: "Two", Position: 2, Picks: []string{"3C", ""}},
			{ID: "u1", Name: "One", Position: 1, Picks: []string{"1A", "2B"}},
		},
	}
}

func TestRows_SortedByPositionWithPaddedPicks(t *testing.T) {
	rows := Rows(testSnapshot())
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "One", rows[0].Name)
	assert.Equal(t, []string{"1A", "2B"}, rows[0].Picks)

	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, []string{"3C", ""}, rows[1].Picks, "skipped rounds stay as empty columns")

	assert.Nil(t, Rows(nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testSnapshot()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Position", "ID", "Name", "Round 1", "Round 2"}, records[0])
	assert.Equal(t, []string{"1", "u1", "One", "1A", "2B"}, records[1])
	assert.Equal(t, []string{"2", "u2", "Two", "3C", ""}, records[2])
}

func TestWriteCSVNilSnapshot(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV(&buf, nil))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "spring-draft_results.csv", Filename("spring-draft"))
}
