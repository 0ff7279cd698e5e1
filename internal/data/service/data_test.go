package service

import (
	"context"
	"errors"
	"hotelbooking/internal/store/memory"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"testing"
)

type failingRepo struct{ err error }

func (r failingRepo) SeedReferenceData(context.Context, []*model.RoomType, []*model.Hotel) error {
	return r.err
}

func (r failingRepo) ClearTransactionalData(context.Context) error { return r.err }

func testConfig() *config.Config {
	return &config.Config{Log: logger.Discard()}
}

func TestSeed(t *testing.T) {
	s := memory.New()
	svc := NewDataService(s, testConfig())
	ctx := context.Background()

	summary, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.RoomTypes != 3 || len(summary.Hotels) != 5 || summary.Rooms != 30 {
		t.Errorf("unexpected summary %+v", summary)
	}
	for _, h := range summary.Hotels {
		if h.ID == 0 {
			t.Errorf("hotel %s has no id", h.Name)
		}
	}

	savoy, err := s.LoadHotelWithRooms(ctx, summary.Hotels[4].ID)
	if err != nil {
		t.Fatal(err)
	}
	var capacities []int
	for _, r := range savoy.Rooms {
		capacities = append(capacities, r.Capacity())
	}
	expected := []int{1, 1, 2, 2, 4, 4}
	if len(capacities) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, capacities)
	}
	for i := range expected {
		if capacities[i] != expected[i] {
			t.Errorf("expected capacities %v, got %v", expected, capacities)
			break
		}
	}

	_, err = svc.Seed(ctx)
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected conflict on reseed, got %v", err)
	}
	if err := SeedIfEmpty(ctx, svc); err != nil {
		t.Errorf("SeedIfEmpty should ignore an already seeded store, got %v", err)
	}
}

func TestClear(t *testing.T) {
	s := memory.New()
	svc := NewDataService(s, testConfig())
	ctx := context.Background()

	if _, err := svc.Seed(ctx); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := s.CountHotels(ctx); n != 0 {
		t.Errorf("expected no hotels after clear, got %d", n)
	}
	if _, err := svc.Seed(ctx); err != nil {
		t.Errorf("expected reseed after clear to work, got %v", err)
	}
}

func TestRepoFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "storage", err: errors.New("boom"), code: apperrors.CodeInternal},
		{name: "cancelled", err: context.Canceled, code: apperrors.CodeCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDataService(failingRepo{err: tt.err}, testConfig())
			if _, err := svc.Seed(context.Background()); apperrors.AsAppError(err).Code != tt.code {
				t.Errorf("Seed: expected %s, got %v", tt.code, err)
			}
			if err := svc.Clear(context.Background()); apperrors.AsAppError(err).Code != tt.code {
				t.Errorf("Clear: expected %s, got %v", tt.code, err)
			}
			if err := SeedIfEmpty(context.Background(), svc); err == nil {
				t.Error("SeedIfEmpty should surface non-conflict errors")
			}
		})
	}
}
