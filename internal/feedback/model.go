package feedback

import "time"

// Feedback records a user's assessment of a prediction's accuracy. Records
// are immutable once written. AccuracyRating carries whatever numeric value
// the caller submitted; no bounds are enforced.
type Feedback struct {
	ID             string
	PredictionID   string
	UserID         string
	AccuracyRating float64
	Comment        string
	ActualYield    string
	CreatedAt      time.Time
}
