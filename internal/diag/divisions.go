package diag

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okvist/crewdesk/internal/models"
	"github.com/okvist/crewdesk/internal/services"
)

// MembershipResult records whether one estimate number appears in the
// active set, and for misses, whether the row exists at all or is just
// excluded by the status filter.
type MembershipResult struct {
	Number   string
	InActive bool
	Division string
	Exists   bool
	Status   string
}

// CrossCheck fetches the active estimates once, then checks each given
// number against them. Secondary lookups for missing numbers run one at
// a time, so results are complete and ordered when this returns.
func CrossCheck(ctx context.Context, src services.EstimateSource, numbers []string) ([]MembershipResult, error) {
	var active []models.Estimate
	query := "select=estimate_number,division,status&status=eq.active&order=estimate_number.asc"
	if err := src.Select(ctx, "estimates", query, &active); err != nil {
		return nil, err
	}

	byNumber := make(map[string]models.Estimate, len(active))
	for _, e := range active {
		byNumber[e.EstimateNumber] = e
	}

	results := make([]MembershipResult, 0, len(numbers))
	for _, num := range numbers {
		if e, ok := byNumber[num]; ok {
			results = append(results, MembershipResult{
				Number:   num,
				InActive: true,
				Division: e.Division,
				Exists:   true,
				Status:   e.Status,
			})
			continue
		}

		// Look the number up without the status filter to tell
		// "filtered out" apart from "does not exist".
		var rows []models.Estimate
		q := "select=estimate_number,division,status&estimate_number=eq." + num
		if err := src.Select(ctx, "estimates", q, &rows); err != nil {
			return nil, fmt.Errorf("lookup for %s failed: %w", num, err)
		}

		res := MembershipResult{Number: num}
		if len(rows) > 0 {
			res.Exists = true
			res.Division = rows[0].Division
			res.Status = rows[0].Status
		}
		results = append(results, res)
	}
	return results, nil
}

type apiEstimatesResponse struct {
	Success   bool              `json:"success"`
	Estimates []models.Estimate `json:"estimates"`
	Error     string            `json:"error"`
}

// FetchAPIEstimates pulls the estimate list through the deployed API
// rather than straight from the database, so the report reflects what
// the frontend actually sees.
func FetchAPIEstimates(ctx context.Context, baseURL string) ([]models.Estimate, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/data/estimates", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out apiEstimatesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("malformed response from %s: %w", baseURL, err)
	}
	if !out.Success {
		if out.Error != "" {
			return nil, fmt.Errorf("api error: %s", out.Error)
		}
		return nil, fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	return out.Estimates, nil
}
