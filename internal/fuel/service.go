package fuel

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/TejasJagadale/backendofficial/internal/domain"
	"github.com/TejasJagadale/backendofficial/internal/log"
	"github.com/TejasJagadale/backendofficial/internal/metrics"
	"github.com/TejasJagadale/backendofficial/internal/queue"
	"github.com/TejasJagadale/backendofficial/internal/repo"
)

// Sources reported to callers so they can tell stored data from fallbacks.
const (
	SourceDatabase = "database"
	SourceAPI      = "api"
	SourceMock     = "mock"
)

// Service runs the fetch-and-store job and serves the read paths. The mutex
// serializes the scheduled run against on-demand triggers: overlapping runs
// target the same (date, state) upsert, so they must not interleave.
type Service struct {
	Store  *repo.Store
	Client *Client
	Events queue.Publisher

	Cities []string
	State  string
	Mock   []domain.CityPrice

	mu sync.Mutex
}

func NewService(store *repo.Store, client *Client, events queue.Publisher) *Service {
	return &Service{
		Store:  store,
		Client: client,
		Events: events,
		Cities: TargetCities,
		State:  State,
		Mock:   MockPrices,
	}
}

type RunResult struct {
	Success bool   `json:"success"`
	Date    string `json:"date,omitempty"`
	Cities  int    `json:"citiesCount,omitempty"`
	Message string `json:"message,omitempty"`
}

func dateKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// RunUpdate fetches every target city, falling back to mock data per failed
// city, and upserts the collected list under today's date. A run that collects
// nothing writes nothing and reports failure.
func (s *Service) RunUpdate(ctx context.Context) RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	date := dateKey(now)

	collected := make([]domain.CityPrice, 0, len(s.Cities))
	for _, city := range s.Cities {
		cp, err := s.Client.FetchCity(ctx, city)
		if err == nil {
			collected = append(collected, cp)
			metrics.FuelCitiesCollected.WithLabelValues(SourceAPI).Inc()
			continue
		}
		log.L().Warn("fuel: city fetch failed",
			zap.String("city", city), zap.Error(err))
		if mc, ok := s.mockFor(city); ok {
			mc.LastUpdated = now
			collected = append(collected, mc)
			metrics.FuelCitiesCollected.WithLabelValues(SourceMock).Inc()
		}
	}

	if len(collected) == 0 {
		metrics.FuelRuns.WithLabelValues("failure").Inc()
		return RunResult{Success: false, Date: date, Message: "No data collected"}
	}

	if err := s.Store.UpsertFuelPrices(ctx, date, s.State, collected); err != nil {
		log.L().Error("fuel: upsert failed", zap.String("date", date), zap.Error(err))
		metrics.FuelRuns.WithLabelValues("failure").Inc()
		return RunResult{Success: false, Date: date, Message: "Failed to store fuel prices"}
	}

	metrics.FuelRuns.WithLabelValues("success").Inc()
	go s.Events.Publish(context.Background(), queue.KeyFuelPricesUpdated,
		queue.FuelPricesUpdated{Date: date, State: s.State, Cities: len(collected)}, "")

	log.L().Info("fuel: stored prices",
		zap.String("date", date), zap.Int("cities", len(collected)))
	return RunResult{Success: true, Date: date, Cities: len(collected)}
}

// Today returns the day's snapshot: stored data when present, otherwise a full
// mock snapshot in the same shape.
func (s *Service) Today(ctx context.Context) (*domain.FuelPrice, string, error) {
	date := dateKey(time.Now())
	fp, err := s.Store.FindFuelPrices(ctx, date, s.State)
	if err != nil {
		return nil, "", err
	}
	if fp != nil {
		return fp, SourceDatabase, nil
	}
	return &domain.FuelPrice{
		Date:   date,
		State:  s.State,
		Cities: mockSnapshot(s.Mock, time.Now().UTC()),
	}, SourceMock, nil
}

// StoredToday returns only persisted target-city data, nil when nothing is
// stored for today.
func (s *Service) StoredToday(ctx context.Context) (*domain.FuelPrice, error) {
	date := dateKey(time.Now())
	fp, err := s.Store.FindFuelPrices(ctx, date, s.State)
	if err != nil || fp == nil {
		return nil, err
	}
	filtered := make([]domain.CityPrice, 0, len(fp.Cities))
	for _, c := range fp.Cities {
		if s.IsTargetCity(c.City) {
			filtered = append(filtered, c)
		}
	}
	fp.Cities = filtered
	return fp, nil
}

// CityToday resolves one city: stored document, then a live fetch (persisted
// for the rest of the day), then mock. ok=false means the city has no data
// from any source.
func (s *Service) CityToday(ctx context.Context, city string) (domain.CityPrice, string, bool, error) {
	var zero domain.CityPrice
	date := dateKey(time.Now())

	fp, err := s.Store.FindFuelPrices(ctx, date, s.State)
	if err != nil {
		return zero, "", false, err
	}
	if fp != nil {
		for _, c := range fp.Cities {
			if strings.EqualFold(c.City, city) {
				return c, SourceDatabase, true, nil
			}
		}
	}

	if cp, err := s.Client.FetchCity(ctx, city); err == nil {
		if err := s.Store.AddFuelCity(ctx, date, s.State, cp); err != nil {
			log.L().Warn("fuel: persist single city failed",
				zap.String("city", city), zap.Error(err))
		}
		return cp, SourceAPI, true, nil
	} else {
		log.L().Warn("fuel: live fetch failed",
			zap.String("city", city), zap.Error(err))
	}

	if mc, ok := s.mockFor(city); ok {
		mc.LastUpdated = time.Now().UTC()
		return mc, SourceMock, true, nil
	}
	return zero, "", false, nil
}

func (s *Service) IsTargetCity(city string) bool {
	for _, c := range s.Cities {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}

func (s *Service) mockFor(city string) (domain.CityPrice, bool) {
	for _, m := range s.Mock {
		if strings.EqualFold(m.City, city) {
			return m, true
		}
	}
	return domain.CityPrice{}, false
}
