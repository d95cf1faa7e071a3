package services

import (
	"fmt"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
)

// PricingServiceImpl implements the PricingService interface.
type PricingServiceImpl struct {
	config        *config.PricingConfig
	defaultPrices map[string]config.ModelPricing
}

// NewPricingService creates a new pricing service instance.
func NewPricingService(cfg *config.PricingConfig) domain.PricingService {
	return &PricingServiceImpl{
		config:        cfg,
		defaultPrices: config.DefaultModelPricing,
	}
}

// Rates retrieves the per-MTok prices for a model. Custom prices win over the table.
// Returns zero rates for unknown models (e.g., Ollama, custom models).
func (p *PricingServiceImpl) Rates(model string) (domain.ModelRates, bool) {
	if customPrice, exists := p.config.CustomPrices[model]; exists {
		return domain.ModelRates{
			Input:      customPrice.InputPricePerMToken,
			Output:     customPrice.OutputPricePerMToken,
			CacheRead:  customPrice.CacheReadPricePerMToken,
			CacheWrite: customPrice.CacheWritePricePerMToken,
		}, true
	}

	if defaultPrice, exists := p.defaultPrices[model]; exists {
		return domain.ModelRates{
			Input:      defaultPrice.InputPricePerMToken,
			Output:     defaultPrice.OutputPricePerMToken,
			CacheRead:  defaultPrice.CacheReadPricePerMToken,
			CacheWrite: defaultPrice.CacheWritePricePerMToken,
		}, true
	}

	return domain.ModelRates{}, false
}

// Cost converts tokens to USD at a per-million-token rate.
func (p *PricingServiceImpl) Cost(tokens int, ratePerMToken float64) float64 {
	if tokens <= 0 || ratePerMToken <= 0 {
		return 0.0
	}
	return (float64(tokens) / 1_000_000.0) * ratePerMToken
}

// FormatModelPricing renders "$in/$out per MTok", or "free" for zero-priced models.
func (p *PricingServiceImpl) FormatModelPricing(model string) string {
	rates, _ := p.Rates(model)
	if rates.Input == 0 && rates.Output == 0 {
		return "free"
	}
	return fmt.Sprintf("$%.2f/$%.2f per MTok", rates.Input, rates.Output)
}
