package prediction

import "testing"

func TestParseGoals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{raw: "2", want: 2, wantOK: true},
		{raw: " 0 ", want: 0, wantOK: true},
		{raw: "10", want: 10, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "   ", wantOK: false},
		{raw: "two", wantOK: false},
		{raw: "1.5", wantOK: false},
		{raw: "-1", wantOK: false},
	}

	for _, tc := range cases {
		got, ok := ParseGoals(tc.raw)
		if ok != tc.wantOK {
			t.Fatalf("raw=%q: unexpected ok: got=%t want=%t", tc.raw, ok, tc.wantOK)
		}
		if ok && got != tc.want {
			t.Fatalf("raw=%q: unexpected goals: got=%d want=%d", tc.raw, got, tc.want)
		}
	}
}

func TestPredictionValidate(t *testing.T) {
	t.Parallel()

	valid := Prediction{FixtureID: 1, Gameweek: 3, PersonName: "Alice", Home: 1, Away: 0}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid prediction, got %v", err)
	}

	invalid := []Prediction{
		{Gameweek: 3, PersonName: "Alice"},
		{FixtureID: 1, PersonName: "Alice"},
		{FixtureID: 1, Gameweek: 3, PersonName: "  "},
		{FixtureID: 1, Gameweek: 3, PersonName: "Alice", Home: -1},
	}
	for idx, item := range invalid {
		if err := item.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", idx)
		}
	}
}
