package container

import (
	"fmt"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
	logger "github.com/inference-gateway/costgate/internal/logger"
	mcpserver "github.com/inference-gateway/costgate/internal/mcpserver"
	services "github.com/inference-gateway/costgate/internal/services"
)

// ServiceContainer manages all application dependencies
type ServiceContainer struct {
	// Configuration
	config *config.Config

	// Domain services
	tokenCounter domain.TokenCounter
	scanner      domain.Scanner
	pricing      domain.PricingService

	// Estimators
	costModel *services.CostModel
	budget    *services.BudgetCalculator
}

// NewServiceContainer creates a new service container with all dependencies
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	container := &ServiceContainer{
		config: cfg,
	}

	if err := container.initializeDomainServices(); err != nil {
		return nil, err
	}
	container.initializeEstimators()

	return container, nil
}

// initializeDomainServices creates the tokenizer, scanner and pricing table
func (c *ServiceContainer) initializeDomainServices() error {
	counter, err := services.NewTokenCounter(c.config.Tokenizer.Model)
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	c.tokenCounter = counter

	c.scanner = services.NewScannerService(c.config.Scanner, c.tokenCounter)
	c.pricing = services.NewPricingService(&c.config.Pricing)

	logger.Debug("domain services initialized",
		"tokenizer", c.config.Tokenizer.Model,
		"workers", c.config.Scanner.Workers,
		"respect_gitignore", c.config.Scanner.RespectGitignore)
	return nil
}

// initializeEstimators wires both cost model modes
func (c *ServiceContainer) initializeEstimators() {
	c.costModel = services.NewCostModel(c.config, c.scanner, c.pricing)
	c.budget = services.NewBudgetCalculator(c.config.Estimator)
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetTokenCounter returns the token counter
func (c *ServiceContainer) GetTokenCounter() domain.TokenCounter {
	return c.tokenCounter
}

// GetScanner returns the filesystem scanner
func (c *ServiceContainer) GetScanner() domain.Scanner {
	return c.scanner
}

// GetPricingService returns the pricing service
func (c *ServiceContainer) GetPricingService() domain.PricingService {
	return c.pricing
}

// GetCostModel returns the exact-measurement cost model
func (c *ServiceContainer) GetCostModel() *services.CostModel {
	return c.costModel
}

// GetBudgetCalculator returns the heuristic budget calculator
func (c *ServiceContainer) GetBudgetCalculator() *services.BudgetCalculator {
	return c.budget
}

// NewApprovalGate creates an approval gate for the given approver
func (c *ServiceContainer) NewApprovalGate(approver domain.Approver) *services.ApprovalGate {
	return services.NewApprovalGate(approver)
}

// NewMCPServer creates the MCP server exposing the estimators as tools
func (c *ServiceContainer) NewMCPServer(version string) *mcpserver.Server {
	return mcpserver.NewServer(c.config, version, c.costModel, c.budget, c.scanner)
}
