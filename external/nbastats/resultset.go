package nbastats

import (
	"strings"

	"github.com/bytedance/sonic"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
)

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

type statsEnvelope struct {
	ResultSets []resultSet `json:"resultSets"`
	ResultSet  *resultSet  `json:"resultSet"`
}

// Normalize reshapes a columnar stats.nba.com payload into keyed rows,
// selecting the result set whose name matches nameHint case-insensitively
// and falling back to the first one. Headers are zipped to row values
// positionally; short rows simply omit the trailing fields. Malformed or
// empty payloads normalize to no rows rather than an error.
func Normalize(raw []byte, nameHint string) []gamelog.Row {
	if len(raw) == 0 {
		return []gamelog.Row{}
	}

	var envelope statsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return []gamelog.Row{}
	}

	sets := envelope.ResultSets
	if len(sets) == 0 && envelope.ResultSet != nil {
		sets = []resultSet{*envelope.ResultSet}
	}
	if len(sets) == 0 {
		return []gamelog.Row{}
	}

	selected := sets[0]
	if hint := strings.TrimSpace(nameHint); hint != "" {
		for _, candidate := range sets {
			if strings.EqualFold(candidate.Name, hint) {
				selected = candidate
				break
			}
		}
	}

	rows := make([]gamelog.Row, 0, len(selected.RowSet))
	for _, values := range selected.RowSet {
		row := make(gamelog.Row, len(selected.Headers))
		for i, header := range selected.Headers {
			if i >= len(values) {
				break
			}
			row[header] = values[i]
		}
		rows = append(rows, row)
	}

	return rows
}
