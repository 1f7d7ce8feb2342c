package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hvmartinez/coordsim/internal/core/domain"
	"github.com/hvmartinez/coordsim/internal/core/ports"
	"github.com/hvmartinez/coordsim/internal/pkg/metrics"
)

// ErrInvalidSweepRange is returned when a sweep's anion range is empty or
// reversed.
var ErrInvalidSweepRange = errors.New("anion sweep range must be increasing")

// Sweep step limits. The default matches a 0.1–2.5 Å anion range walked at
// 0.01 Å.
const (
	minSweepSteps     = 2
	maxSweepSteps     = 2001
	defaultSweepSteps = 241
)

// SweepPoint is one sample of a ratio curve: the ratio r/R and its
// coordination number for a fixed cation radius and a varying anion radius.
type SweepPoint struct {
	AnionRadius        float64 `json:"anion_radius"`
	Ratio              float64 `json:"ratio"`
	CoordinationNumber int     `json:"coordination_number"`
}

// ClassifierService evaluates radius pairs against a stability table and
// computes sweep series for charting. The cache is optional; a nil cache
// disables read-through caching of sweeps.
type ClassifierService struct {
	table domain.Table
	cache ports.CacheService
}

// NewClassifierService creates a new ClassifierService.
func NewClassifierService(table domain.Table, cache ports.CacheService) *ClassifierService {
	return &ClassifierService{table: table, cache: cache}
}

// Evaluate classifies one cation/anion radius pair.
func (s *ClassifierService) Evaluate(ctx context.Context, cationRadius, anionRadius float64) (*domain.ClassificationResult, error) {
	result, err := s.table.Classify(cationRadius, anionRadius)
	if err != nil {
		metrics.ClassificationErrors.WithLabelValues(ErrorReason(err)).Inc()
		return nil, err
	}

	metrics.ClassificationsTotal.WithLabelValues(result.Geometry).Inc()
	return result, nil
}

// Table returns a copy of the ordered stability table for presentation
// (reference tables, chart bands).
func (s *ClassifierService) Table() domain.Table {
	return append(domain.Table(nil), s.table...)
}

// Sweep computes the r/R curve for a fixed cation radius over an anion
// radius range, sampled at evenly spaced steps. Steps outside [2, 2001] are
// clamped; zero or negative steps select the default of 241.
func (s *ClassifierService) Sweep(ctx context.Context, cationRadius, minAnion, maxAnion float64, steps int) ([]SweepPoint, error) {
	if cationRadius <= 0 {
		return nil, fmt.Errorf("%w: r=%g Å", domain.ErrNonPositiveRadius, cationRadius)
	}
	if minAnion <= 0 {
		return nil, fmt.Errorf("%w: R=%g Å", domain.ErrNonPositiveRadius, minAnion)
	}
	if maxAnion <= minAnion {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidSweepRange, minAnion, maxAnion)
	}

	if steps <= 0 {
		steps = defaultSweepSteps
	}
	if steps < minSweepSteps {
		steps = minSweepSteps
	}
	if steps > maxSweepSteps {
		steps = maxSweepSteps
	}

	// Try cache: the series is a pure function of its parameters.
	cacheKey := fmt.Sprintf("sweep:%g:%g:%g:%d", cationRadius, minAnion, maxAnion, steps)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var points []SweepPoint
			if err := json.Unmarshal(data, &points); err == nil {
				metrics.CacheHits.WithLabelValues("sweep").Inc()
				return points, nil
			}
		} else {
			metrics.CacheMisses.WithLabelValues("sweep").Inc()
		}
	}

	points := make([]SweepPoint, 0, steps)
	span := maxAnion - minAnion
	for i := 0; i < steps; i++ {
		anion := minAnion + span*float64(i)/float64(steps-1)
		result, err := s.table.Classify(cationRadius, anion)
		if err != nil {
			return nil, fmt.Errorf("sweep at R=%g Å: %w", anion, err)
		}
		points = append(points, SweepPoint{
			AnionRadius:        anion,
			Ratio:              result.Ratio,
			CoordinationNumber: result.CoordinationNumber,
		})
	}
	metrics.SweepsComputed.Inc()

	// A computed series never changes; 1h keeps the cache warm across a session.
	if s.cache != nil {
		if data, err := json.Marshal(points); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 3600)
		}
	}

	return points, nil
}

// ErrorReason maps a classification error onto its stable reason label,
// shared by the error metrics and the HTTP error taxonomy.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrZeroAnionRadius):
		return "undefined_ratio"
	case errors.Is(err, domain.ErrNonPositiveRadius):
		return "invalid_radius"
	case errors.Is(err, domain.ErrNoMatchingInterval):
		return "unclassifiable_ratio"
	default:
		return "internal"
	}
}
