package scoring

import "testing"

func TestPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		predicted Scoreline
		actual    *Scoreline
		want      int
		wantKnown bool
	}{
		{name: "exact home win", predicted: Scoreline{2, 0}, actual: &Scoreline{2, 0}, want: 5, wantKnown: true},
		{name: "exact draw", predicted: Scoreline{1, 1}, actual: &Scoreline{1, 1}, want: 5, wantKnown: true},
		{name: "exact goalless", predicted: Scoreline{0, 0}, actual: &Scoreline{0, 0}, want: 5, wantKnown: true},
		{name: "same margin wrong score", predicted: Scoreline{3, 1}, actual: &Scoreline{2, 0}, want: 1, wantKnown: true},
		{name: "away win different margin", predicted: Scoreline{0, 1}, actual: &Scoreline{1, 4}, want: 1, wantKnown: true},
		{name: "draw different score", predicted: Scoreline{2, 2}, actual: &Scoreline{0, 0}, want: 1, wantKnown: true},
		{name: "home win predicted but draw", predicted: Scoreline{1, 0}, actual: &Scoreline{0, 0}, want: 0, wantKnown: true},
		{name: "away win predicted but draw", predicted: Scoreline{0, 2}, actual: &Scoreline{1, 1}, want: 0, wantKnown: true},
		{name: "reversed result", predicted: Scoreline{2, 1}, actual: &Scoreline{1, 2}, want: 0, wantKnown: true},
		{name: "result unknown", predicted: Scoreline{2, 1}, actual: nil, want: 0, wantKnown: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, known := Points(tc.predicted, tc.actual)
			if known != tc.wantKnown {
				t.Fatalf("unexpected known flag: got=%t want=%t", known, tc.wantKnown)
			}
			if got != tc.want {
				t.Fatalf("unexpected points: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestPoints_ExactAlwaysFive(t *testing.T) {
	t.Parallel()

	for home := -2; home <= 6; home++ {
		for away := -2; away <= 6; away++ {
			line := Scoreline{Home: home, Away: away}
			if got, known := Points(line, &line); !known || got != ExactScorePoints {
				t.Fatalf("expected exact points for %d-%d, got=%d known=%t", home, away, got, known)
			}
		}
	}
}

func TestPoints_OutcomeBuckets(t *testing.T) {
	t.Parallel()

	for ph := 0; ph <= 4; ph++ {
		for pa := 0; pa <= 4; pa++ {
			for ah := 0; ah <= 4; ah++ {
				for aa := 0; aa <= 4; aa++ {
					predicted := Scoreline{Home: ph, Away: pa}
					actual := Scoreline{Home: ah, Away: aa}
					got, _ := Points(predicted, &actual)

					want := 0
					switch {
					case predicted == actual:
						want = ExactScorePoints
					case predicted.Outcome() == actual.Outcome():
						want = CorrectOutcomePoints
					}
					if got != want {
						t.Fatalf("predicted=%v actual=%v: got=%d want=%d", predicted, actual, got, want)
					}
				}
			}
		}
	}
}

func TestScoreline_Outcome(t *testing.T) {
	t.Parallel()

	if got := (Scoreline{Home: 3, Away: 1}).Outcome(); got != OutcomeHomeWin {
		t.Fatalf("expected home win, got %s", got)
	}
	if got := (Scoreline{Home: 0, Away: 1}).Outcome(); got != OutcomeAwayWin {
		t.Fatalf("expected away win, got %s", got)
	}
	if got := (Scoreline{Home: 2, Away: 2}).Outcome(); got != OutcomeDraw {
		t.Fatalf("expected draw, got %s", got)
	}
}
