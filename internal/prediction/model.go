package prediction

import "time"

// Prediction records a yield forecast made by a user. Records are immutable
// once written. PlantingDate and HarvestDate are unix seconds; no ordering
// between them is enforced.
type Prediction struct {
	ID              string
	UserID          string
	CropType        string
	PlantingDate    int64
	YieldPrediction string
	HarvestDate     int64
	PredictionData  string
	CreatedAt       time.Time
}
