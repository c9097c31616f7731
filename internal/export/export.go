// Package export turns a session snapshot into the tabular results
// artifact the draft admins hand out once the picking is done.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/jnairn/vexdraft/internal/models"
)

// Row is one participant's line in the results table
type Row struct {
	// Position is the participant's draft position
	Position int

	// ParticipantID is the platform-assigned user ID
	ParticipantID string

	// Name is the participant's display name
	Name string

	// Picks holds the committed team per round; empty string marks a
	// skipped round
	Picks []string
}

// Rows flattens a snapshot into result rows, ordered by draft position.
func Rows(snap *models.SessionSnapshot) []Row {
	if snap == nil {
		return nil
	}

	rows := make([]Row, 0, len(snap.Participants))
	for _, p := range snap.Participants {
		picks := make([]string, snap.RoundLimit)
		copy(picks, p.Picks)
		rows = append(rows, Row{
			Position:      p.Position,
			ParticipantID: p.ID,
			Name:          p.Name,
			Picks:         picks,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Position < rows[j].Position
	})
	return rows
}

// WriteCSV writes the results table as CSV: a header row, then one row per
// participant in position order with a column per round.
func WriteCSV(w io.Writer, snap *models.SessionSnapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}

	writer := csv.NewWriter(w)

	header := []string{"Position", "ID", "Name"}
	for round := 1; round <= snap.RoundLimit; round++ {
		header = append(header, fmt.Sprintf("Round %d", round))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range Rows(snap) {
		record := []string{
			fmt.Sprintf("%d", row.Position),
			row.ParticipantID,
			row.Name,
		}
		record = append(record, row.Picks...)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Filename suggests a name for the exported artifact.
func Filename(sessionName string) string {
	return fmt.Sprintf("%s_results.csv", sessionName)
}
