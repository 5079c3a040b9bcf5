package services

import (
	"context"
	"math"
	"sort"

	"github.com/okvist/crewdesk/internal/models"
	"github.com/okvist/crewdesk/internal/utils"
)

// EstimateSource is the slice of the backend client the estimate
// service needs: one PostgREST read.
type EstimateSource interface {
	Select(ctx context.Context, table, query string, dst any) error
}

type EstimateService interface {
	List(ctx context.Context) ([]models.Estimate, error)
	DivisionSummary(ctx context.Context) ([]models.DivisionCount, error)
}

type estimateService struct {
	src EstimateSource
}

func NewEstimateService(src EstimateSource) EstimateService {
	return &estimateService{src: src}
}

// List returns the active estimates, the same view the frontend works
// from. Archived and draft rows are filtered out server-side.
func (s *estimateService) List(ctx context.Context) ([]models.Estimate, error) {
	const op = "EstimateService.List"

	if s.src == nil {
		return nil, utils.E(utils.CodeInternal, op,
			"SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set", nil)
	}

	var rows []models.Estimate
	query := "select=estimate_number,division,status&status=eq.active&order=estimate_number.asc"
	if err := s.src.Select(ctx, "estimates", query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DivisionSummary aggregates the active estimates by division with
// counts and percentages, sorted by count descending.
func (s *estimateService) DivisionSummary(ctx context.Context) ([]models.DivisionCount, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return SummarizeDivisions(rows), nil
}

// SummarizeDivisions computes the distribution of the division field
// over a set of estimates. Empty divisions are reported as "(none)".
func SummarizeDivisions(rows []models.Estimate) []models.DivisionCount {
	counts := map[string]int{}
	for _, r := range rows {
		div := r.Division
		if div == "" {
			div = "(none)"
		}
		counts[div]++
	}

	out := make([]models.DivisionCount, 0, len(counts))
	for div, n := range counts {
		pct := 0.0
		if len(rows) > 0 {
			pct = math.Round(float64(n)/float64(len(rows))*1000) / 10
		}
		out = append(out, models.DivisionCount{Division: div, Count: n, Percent: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Division < out[j].Division
	})
	return out
}
