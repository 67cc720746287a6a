package scoring

// Points scores a prediction against the actual scoreline. The second return
// value is false when the actual scoreline is unknown; such predictions are
// undetermined and must not count towards any total.
func Points(predicted Scoreline, actual *Scoreline) (int, bool) {
	if actual == nil {
		return 0, false
	}
	if predicted == *actual {
		return ExactScorePoints, true
	}
	if predicted.Outcome() == actual.Outcome() {
		return CorrectOutcomePoints, true
	}
	return 0, true
}
