package scoring

import (
	"sort"
	"strings"
)

// Aggregate sums points per person over the given picks and ranks them.
//
// Undetermined picks are dropped, so a person whose picks are all
// undetermined is absent from the output. Rows are ordered by points
// descending, then person name ascending. Equal points share a rank and the
// following rank is skipped (1, 2, 2, 4).
func Aggregate(picks []Pick) []Standing {
	byPerson := make(map[string]*Standing)
	for _, pick := range picks {
		points, ok := Points(pick.Predicted, pick.Actual)
		if !ok {
			continue
		}

		row, exists := byPerson[pick.PersonName]
		if !exists {
			row = &Standing{PersonName: pick.PersonName}
			byPerson[pick.PersonName] = row
		}
		row.Points += points
		row.Scored++
		switch points {
		case ExactScorePoints:
			row.Exact++
		case CorrectOutcomePoints:
			row.Correct++
		}
	}

	out := make([]Standing, 0, len(byPerson))
	for _, row := range byPerson {
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return strings.Compare(out[i].PersonName, out[j].PersonName) < 0
	})

	for idx := range out {
		if idx > 0 && out[idx].Points == out[idx-1].Points {
			out[idx].Rank = out[idx-1].Rank
			continue
		}
		out[idx].Rank = idx + 1
	}

	return out
}
