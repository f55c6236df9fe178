package prediction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores predictions in PostgreSQL. The foreign key on
// user_id is what enforces that the owning user exists at insert time.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed prediction repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a prediction record.
func (r *PostgresRepository) Create(ctx context.Context, prediction Prediction) error {
	predictionID, err := uuid.Parse(prediction.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(prediction.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO predictions (id, user_id, crop_type, planting_date, yield_prediction, harvest_date, prediction_data, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		predictionID, userID, prediction.CropType, prediction.PlantingDate, prediction.YieldPrediction, prediction.HarvestDate, prediction.PredictionData, prediction.CreatedAt.UTC())
	return err
}

// ListByUser returns a user's predictions in insertion order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Prediction, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, crop_type, planting_date, yield_prediction, harvest_date, prediction_data, created_at
        FROM predictions WHERE user_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := []Prediction{}
	for rows.Next() {
		var (
			id        uuid.UUID
			owner     uuid.UUID
			createdAt time.Time
			p         Prediction
		)
		if err := rows.Scan(&id, &owner, &p.CropType, &p.PlantingDate, &p.YieldPrediction, &p.HarvestDate, &p.PredictionData, &createdAt); err != nil {
			return nil, err
		}
		p.ID = id.String()
		p.UserID = owner.String()
		p.CreatedAt = createdAt.UTC()
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

var _ Repository = (*PostgresRepository)(nil)
