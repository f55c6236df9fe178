package prediction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAddAndListByUser(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	ctx := context.Background()
	ownerID := uuid.NewString()
	input := AddInput{
		UserID:          ownerID,
		CropType:        "maize",
		PlantingDate:    1_700_000_000,
		YieldPrediction: "3.2 t/ha",
		HarvestDate:     1_710_000_000,
		PredictionData:  `{"model":"v2"}`,
	}

	added, err := svc.Add(ctx, input)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("expected a generated id")
	}

	listed, err := svc.ListByUser(ctx, ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one prediction, got %d", len(listed))
	}
	got := listed[0]
	if got.CropType != input.CropType || got.PlantingDate != input.PlantingDate ||
		got.YieldPrediction != input.YieldPrediction || got.HarvestDate != input.HarvestDate ||
		got.PredictionData != input.PredictionData || got.UserID != ownerID {
		t.Fatalf("round-tripped prediction mismatch: %+v", got)
	}
}

func TestListByUserPreservesInsertionOrder(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	ctx := context.Background()
	ownerID := uuid.NewString()
	for _, crop := range []string{"maize", "beans", "sorghum"} {
		if _, err := svc.Add(ctx, AddInput{UserID: ownerID, CropType: crop}); err != nil {
			t.Fatalf("add %s: %v", crop, err)
		}
	}

	listed, err := svc.ListByUser(ctx, ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected three predictions, got %d", len(listed))
	}
	for i, crop := range []string{"maize", "beans", "sorghum"} {
		if listed[i].CropType != crop {
			t.Fatalf("expected %s at position %d, got %s", crop, i, listed[i].CropType)
		}
	}
}

func TestAddAllowsHarvestBeforePlanting(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	// Date ordering is deliberately not validated.
	_, err := svc.Add(context.Background(), AddInput{
		UserID:       uuid.NewString(),
		CropType:     "maize",
		PlantingDate: 2_000_000_000,
		HarvestDate:  1_000_000_000,
	})
	if err != nil {
		t.Fatalf("expected inverted dates to be accepted, got %v", err)
	}
}

func TestAddRejectsMalformedUserID(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Add(context.Background(), AddInput{UserID: "not-a-uuid"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
