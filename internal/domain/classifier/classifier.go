// Package classifier maps survey answers to a behavioral category.
package classifier

import "github.com/okian/teammate/internal/domain/model"

// Survey scale constants.
const (
	QuestionCount = 5
	MinAnswer     = 1
	MaxAnswer     = 5
	scoreFactor   = 4 // 5..25 -> 20..100
)

// Category score bands (inclusive).
const (
	leaderMin   = 90
	leaderMax   = 100
	balancedMin = 70
	balancedMax = 89
	thinkerMin  = 50
	thinkerMax  = 69
)

// ScaledScore sums the five answers and scales the total to 0..100.
// Answers are not clamped; range checking belongs to the caller.
func ScaledScore(q1, q2, q3, q4, q5 int) int {
	return (q1 + q2 + q3 + q4 + q5) * scoreFactor
}

// Classify maps a scaled score to its category.
func Classify(scaled int) model.Category {
	switch {
	case scaled >= leaderMin && scaled <= leaderMax:
		return model.Leader
	case scaled >= balancedMin && scaled <= balancedMax:
		return model.Balanced
	case scaled >= thinkerMin && scaled <= thinkerMax:
		return model.Thinker
	default:
		return model.Unknown
	}
}

// FromAnswers scores and classifies a full answer set.
func FromAnswers(a [QuestionCount]int) (int, model.Category) {
	scaled := ScaledScore(a[0], a[1], a[2], a[3], a[4])
	return scaled, Classify(scaled)
}
