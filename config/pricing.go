package config

// PricingConfig holds the static price table settings. Currency is fixed to USD.
type PricingConfig struct {
	Currency     string                   `yaml:"currency" mapstructure:"currency"`
	CustomPrices map[string]CustomPricing `yaml:"custom_prices" mapstructure:"custom_prices"`
}

// CustomPricing allows users to override default pricing for specific models.
type CustomPricing struct {
	InputPricePerMToken      float64 `yaml:"input_price_per_mtoken" mapstructure:"input_price_per_mtoken"`
	OutputPricePerMToken     float64 `yaml:"output_price_per_mtoken" mapstructure:"output_price_per_mtoken"`
	CacheReadPricePerMToken  float64 `yaml:"cache_read_price_per_mtoken" mapstructure:"cache_read_price_per_mtoken"`
	CacheWritePricePerMToken float64 `yaml:"cache_write_price_per_mtoken" mapstructure:"cache_write_price_per_mtoken"`
}

// ModelPricing represents pricing information for a specific model.
// Prices are per million tokens to align with common pricing conventions.
type ModelPricing struct {
	Provider                 string
	Model                    string
	InputPricePerMToken      float64
	OutputPricePerMToken     float64
	CacheReadPricePerMToken  float64
	CacheWritePricePerMToken float64
}

// DefaultPricingModel is priced when a caller does not name a model.
const DefaultPricingModel = "anthropic/claude-sonnet-4-5-20250929"

// GetDefaultPricingConfig returns the default pricing configuration.
func GetDefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Currency:     "USD",
		CustomPrices: make(map[string]CustomPricing),
	}
}

// DefaultModelPricing contains hardcoded pricing for common models.
// Users can override these in their config files; there is no live lookup.
var DefaultModelPricing = map[string]ModelPricing{
	"anthropic/claude-opus-4-5-20251101": {
		Provider:                 "anthropic",
		Model:                    "claude-opus-4-5-20251101",
		InputPricePerMToken:      5.00,
		OutputPricePerMToken:     25.00,
		CacheReadPricePerMToken:  0.50,
		CacheWritePricePerMToken: 6.25,
	},
	"anthropic/claude-haiku-4-5-20251001": {
		Provider:                 "anthropic",
		Model:                    "claude-haiku-4-5-20251001",
		InputPricePerMToken:      1.00,
		OutputPricePerMToken:     5.00,
		CacheReadPricePerMToken:  0.10,
		CacheWritePricePerMToken: 1.25,
	},
	"anthropic/claude-sonnet-4-5-20250929": {
		Provider:                 "anthropic",
		Model:                    "claude-sonnet-4-5-20250929",
		InputPricePerMToken:      3.00,
		OutputPricePerMToken:     15.00,
		CacheReadPricePerMToken:  0.30,
		CacheWritePricePerMToken: 3.75,
	},
	"anthropic/claude-opus-4-1-20250805": {
		Provider:                 "anthropic",
		Model:                    "claude-opus-4-1-20250805",
		InputPricePerMToken:      15.00,
		OutputPricePerMToken:     75.00,
		CacheReadPricePerMToken:  1.50,
		CacheWritePricePerMToken: 18.75,
	},
	"anthropic/claude-sonnet-4-20250514": {
		Provider:                 "anthropic",
		Model:                    "claude-sonnet-4-20250514",
		InputPricePerMToken:      3.00,
		OutputPricePerMToken:     15.00,
		CacheReadPricePerMToken:  0.30,
		CacheWritePricePerMToken: 3.75,
	},
	"anthropic/claude-3-5-haiku-20241022": {
		Provider:                 "anthropic",
		Model:                    "claude-3-5-haiku-20241022",
		InputPricePerMToken:      0.80,
		OutputPricePerMToken:     4.00,
		CacheReadPricePerMToken:  0.08,
		CacheWritePricePerMToken: 1.00,
	},
	"openai/gpt-4o": {
		Provider:                 "openai",
		Model:                    "gpt-4o",
		InputPricePerMToken:      2.50,
		OutputPricePerMToken:     10.00,
		CacheReadPricePerMToken:  1.25,
		CacheWritePricePerMToken: 2.50,
	},
	"openai/gpt-4o-mini": {
		Provider:                 "openai",
		Model:                    "gpt-4o-mini",
		InputPricePerMToken:      0.15,
		OutputPricePerMToken:     0.60,
		CacheReadPricePerMToken:  0.075,
		CacheWritePricePerMToken: 0.15,
	},
	"openai/o1": {
		Provider:                 "openai",
		Model:                    "o1",
		InputPricePerMToken:      15.00,
		OutputPricePerMToken:     60.00,
		CacheReadPricePerMToken:  7.50,
		CacheWritePricePerMToken: 15.00,
	},
	"google/gemini-2.0-flash": {
		Provider:                 "google",
		Model:                    "gemini-2.0-flash",
		InputPricePerMToken:      0.10,
		OutputPricePerMToken:     0.40,
		CacheReadPricePerMToken:  0.025,
		CacheWritePricePerMToken: 0.10,
	},
	"deepseek/deepseek-chat": {
		Provider:                 "deepseek",
		Model:                    "deepseek-chat",
		InputPricePerMToken:      0.27,
		OutputPricePerMToken:     1.10,
		CacheReadPricePerMToken:  0.07,
		CacheWritePricePerMToken: 0.27,
	},
	"ollama/llama3.2": {
		Provider: "ollama",
		Model:    "llama3.2",
	},
}
