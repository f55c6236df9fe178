package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores feedback in PostgreSQL. Foreign keys enforce that
// the referenced prediction and submitting user exist at insert time.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed feedback repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a feedback record.
func (r *PostgresRepository) Create(ctx context.Context, feedback Feedback) error {
	feedbackID, err := uuid.Parse(feedback.ID)
	if err != nil {
		return err
	}
	predictionID, err := uuid.Parse(feedback.PredictionID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(feedback.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO feedback (id, prediction_id, user_id, accuracy_rating, comment, actual_yield, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		feedbackID, predictionID, userID, feedback.AccuracyRating, feedback.Comment, feedback.ActualYield, feedback.CreatedAt.UTC())
	return err
}

// ListByPrediction returns a prediction's feedback in insertion order.
func (r *PostgresRepository) ListByPrediction(ctx context.Context, predictionID string) ([]Feedback, error) {
	predID, err := uuid.Parse(predictionID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, prediction_id, user_id, accuracy_rating, comment, actual_yield, created_at
        FROM feedback WHERE prediction_id = $1 ORDER BY created_at`, predID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Feedback{}
	for rows.Next() {
		var (
			id         uuid.UUID
			prediction uuid.UUID
			userID     uuid.UUID
			createdAt  time.Time
			f          Feedback
		)
		if err := rows.Scan(&id, &prediction, &userID, &f.AccuracyRating, &f.Comment, &f.ActualYield, &createdAt); err != nil {
			return nil, err
		}
		f.ID = id.String()
		f.PredictionID = prediction.String()
		f.UserID = userID.String()
		f.CreatedAt = createdAt.UTC()
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

var _ Repository = (*PostgresRepository)(nil)
