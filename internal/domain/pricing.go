package domain

// ModelRates are per-million-token prices in USD.
type ModelRates struct {
	Input      float64 `json:"input"`
	Output     float64 `json:"output"`
	CacheRead  float64 `json:"cache_read"`
	CacheWrite float64 `json:"cache_write"`
}

// PricingService provides pricing information and cost calculation for different models.
// Note: This interface returns plain rates to avoid import cycles.
// The actual ModelPricing struct is defined in the config package.
type PricingService interface {
	// Rates returns the per-MTok prices of model and whether the model is known.
	// Unknown models (e.g., Ollama, custom models) price at zero.
	Rates(model string) (ModelRates, bool)

	// Cost converts a token count into USD at a per-MTok rate.
	Cost(tokens int, ratePerMToken float64) float64

	// FormatModelPricing renders the input/output prices for display.
	FormatModelPricing(model string) string
}
