package services

import (
	"strings"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
)

// RiskClassifier inflates the declared cache read of tasks whose description suggests
// a codebase-wide change. Rules are evaluated in order and the first match wins.
type RiskClassifier struct {
	threshold int
	rules     []config.RiskRule
}

// NewRiskClassifier creates a classifier from the configured rule table
func NewRiskClassifier(cfg config.RiskConfig) *RiskClassifier {
	rules := make([]config.RiskRule, 0, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		phrases := make([]string, 0, len(rule.Phrases))
		for _, phrase := range rule.Phrases {
			phrase = strings.ToLower(strings.TrimSpace(phrase))
			if phrase != "" {
				phrases = append(phrases, phrase)
			}
		}
		rule.Phrases = phrases
		rules = append(rules, rule)
	}

	return &RiskClassifier{
		threshold: cfg.CacheReadThreshold,
		rules:     rules,
	}
}

// Classify matches the task name and plan against the rule phrases. Rules only fire
// while the declared cache read is below the threshold.
func (c *RiskClassifier) Classify(taskName, plan string, declaredCacheRead int) domain.RiskAssessment {
	none := domain.RiskAssessment{Multiplier: 1}
	if declaredCacheRead >= c.threshold {
		return none
	}

	text := strings.ToLower(taskName + "\n" + plan)
	for _, rule := range c.rules {
		for _, phrase := range rule.Phrases {
			if strings.Contains(text, phrase) {
				return domain.RiskAssessment{
					Rule:       rule.Name,
					Multiplier: rule.Multiplier,
					Warning:    rule.Warning,
				}
			}
		}
	}
	return none
}
