package pricing

import (
	"math"
	"sort"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// Preference selects the tie-breaking axis for Recommend.
type Preference string

const (
	// PreferQuality breaks cost ties by quality rating.
	PreferQuality Preference = "quality"
	// PreferSpeed breaks cost ties by speed rating.
	PreferSpeed Preference = "speed"
)

// EstimateTokens estimates input and output token counts for nbytes of log
// content analyzed by the given provider in the given mode. Input uses the
// provider's chars/token ratio; output is a mode-dependent fraction of input.
func EstimateTokens(nbytes int, provider models.ProviderType, mode models.AnalysisMode) (inputTokens, outputTokens int) {
	inputTokens = int(float64(nbytes) / provider.CharsPerToken())
	outputTokens = int(float64(inputTokens) * mode.OutputRatio())
	return inputTokens, outputTokens
}

// Cost computes the USD cost of one call against a model.
func Cost(p ModelPricing, inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1000*p.InputPer1K + float64(outputTokens)/1000*p.OutputPer1K
}

// ChunksNeeded is the number of upstream round trips required for
// inputTokens against a model's context window in the given mode.
func ChunksNeeded(inputTokens int, p ModelPricing, mode models.AnalysisMode) int {
	budget := float64(p.ContextWindow) * mode.ContextRatio()
	if budget <= 0 {
		return 1
	}
	n := int(math.Ceil(float64(inputTokens) / budget))
	if n < 1 {
		n = 1
	}
	return n
}

// Compare estimates every known model for a file of fileKB kilobytes and
// returns the estimates sorted ascending by total cost. budgetUSD <= 0 means
// "no budget": every estimate is within budget.
func Compare(fileKB float64, mode models.AnalysisMode, budgetUSD float64) []models.Estimate {
	nbytes := int(fileKB * 1024)
	var out []models.Estimate

	for provider, catalog := range catalogs {
		in, outTok := EstimateTokens(nbytes, provider, mode)
		for model, p := range catalog {
			est := models.Estimate{
				Provider:     provider,
				Model:        model,
				InputTokens:  in,
				OutputTokens: outTok,
				CostUSD:      Cost(p, in, outTok),
				ChunksNeeded: ChunksNeeded(in, p, mode),
			}
			est.EstTimeMinutes = estimateMinutes(est.ChunksNeeded, outTok, p)
			est.WithinBudget = budgetUSD <= 0 || est.CostUSD <= budgetUSD
			if !est.WithinBudget {
				est.Warnings = append(est.Warnings, "exceeds budget")
			}
			if outTok > p.MaxOutputTokens*est.ChunksNeeded {
				est.Warnings = append(est.Warnings, "output may be truncated")
			}
			out = append(out, est)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CostUSD != out[j].CostUSD {
			return out[i].CostUSD < out[j].CostUSD
		}
		// Stable ordering for equal costs.
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].Model < out[j].Model
	})
	return out
}

// estimateMinutes approximates wall time: per-chunk round-trip overhead plus
// generation time scaled by the model's speed rating.
func estimateMinutes(chunks, outputTokens int, p ModelPricing) float64 {
	speed := p.SpeedRating
	if speed < 1 {
		speed = 1
	}
	// ~150 tokens/s at speed 10, proportionally slower below.
	tokensPerMinute := float64(speed) * 900
	return float64(chunks)*0.25 + float64(outputTokens)/tokensPerMinute
}

// Recommend picks the cheapest within-budget model; when none fits, the
// cheapest overall. Cost ties are broken by quality or speed rating per the
// preference, then by model id for determinism. Returns provider and model.
func Recommend(fileKB float64, mode models.AnalysisMode, budgetUSD float64, prefer Preference) (models.ProviderType, string) {
	estimates := Compare(fileKB, mode, budgetUSD)
	if len(estimates) == 0 {
		return "", ""
	}

	candidates := make([]models.Estimate, 0, len(estimates))
	for _, e := range estimates {
		if e.WithinBudget {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		candidates = estimates
	}

	best := candidates[0]
	for _, e := range candidates[1:] {
		if e.CostUSD < best.CostUSD {
			best = e
			continue
		}
		if e.CostUSD == best.CostUSD && rating(e, prefer) > rating(best, prefer) {
			best = e
		}
	}
	return best.Provider, best.Model
}

func rating(e models.Estimate, prefer Preference) int {
	p, err := Lookup(e.Provider, e.Model)
	if err != nil {
		return 0
	}
	if prefer == PreferSpeed {
		return p.SpeedRating
	}
	return p.QualityRating
}
