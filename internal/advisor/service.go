package advisor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/crop"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

// Analysis is the immutable result of one pipeline run. A refresh produces a
// new Analysis; Observations is never modified after it is stored.
type Analysis struct {
	ID           string                     `json:"id"`
	Coordinate   weather.Coordinate         `json:"coordinate"`
	PlantingDate time.Time                  `json:"plantingDate"`
	Range        weather.DateRange          `json:"range"`
	CreatedAt    time.Time                  `json:"createdAt"`
	Observations []weather.DailyObservation `json:"observations"`
}

// Store retains analyses between user interactions.
type Store interface {
	Save(a *Analysis)
	Get(id string) (*Analysis, error)
	Latest() (*Analysis, error)
}

// FieldStatus is where the crop stands today.
type FieldStatus struct {
	Coordinate        weather.Coordinate `json:"coordinate"`
	PlantingDate      time.Time          `json:"plantingDate"`
	DaysSincePlanting int                `json:"daysSincePlanting"`
	Stage             crop.Stage         `json:"growthStage"`
}

// Service runs the fetch → build → store pipeline.
type Service struct {
	store    Store
	provider weather.Provider
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(store Store, provider weather.Provider) *Service {
	return &Service{
		store:    store,
		provider: provider,
		now:      time.Now,
	}
}

// Analyze fetches weather for req, builds the annotated table and stores it
// as a new Analysis. No partial table is stored on failure.
func (s *Service) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	now := s.now()
	if err := req.Validate(now); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no weather provider configured", weather.ErrTransport)
	}

	planting := common.Midnight(req.PlantingDate)
	rng := req.Range()

	log.Printf("DEBUG: fetching %s for %s from %s to %s", s.provider.Name(), req.Coordinate.Key(),
		rng.Start.Format(common.ISODateLayout), rng.End.Format(common.ISODateLayout))

	raw, err := s.provider.Fetch(ctx, weather.FetchRequest{
		Coordinate: req.Coordinate,
		Range:      rng,
		APIKey:     req.APIKey,
	})
	if err != nil {
		log.Printf("ERROR: provider %s fetch failed for %s: %v", s.provider.Name(), req.Coordinate.Key(), err)
		return nil, err
	}

	rows, err := weather.BuildSeries(raw, planting)
	if err != nil {
		log.Printf("ERROR: building series for %s: %v", req.Coordinate.Key(), err)
		return nil, err
	}
	if len(rows) == 0 {
		log.Printf("ERROR: no daily rows for %s", req.Coordinate.Key())
		return nil, weather.ErrNoData
	}

	a := &Analysis{
		ID:           uuid.NewString(),
		Coordinate:   req.Coordinate,
		PlantingDate: planting,
		Range:        rng,
		CreatedAt:    now.UTC(),
		Observations: rows,
	}
	s.store.Save(a)

	log.Printf("INFO: analysis %s stored with %d rows for %s", a.ID, len(rows), req.Coordinate.Key())
	return a, nil
}

// Get delegates to the underlying store.
func (s *Service) Get(id string) (*Analysis, error) {
	return s.store.Get(id)
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (*Analysis, error) {
	return s.store.Latest()
}

// FieldStatus reports today's days since planting and growth stage.
func (s *Service) FieldStatus(coord weather.Coordinate, planting time.Time) (FieldStatus, error) {
	now := s.now()
	if err := ValidateField(coord, planting, now); err != nil {
		return FieldStatus{}, err
	}

	days := common.DaysSince(planting, now)
	return FieldStatus{
		Coordinate:        coord,
		PlantingDate:      common.Midnight(planting),
		DaysSincePlanting: days,
		Stage:             crop.StageFor(days),
	}, nil
}
