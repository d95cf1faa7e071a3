package mcpserver

import (
	"context"
	"time"

	domain "github.com/inference-gateway/costgate/internal/domain"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	fieldCostBreakdown = "cost_breakdown"
	fieldRiskLevel     = "risk_level"
	fieldPlan          = "plan"

	elicitActionAccept = "accept"
	emptyFieldValue    = "(none)"
)

// ElicitationApprover asks the connected MCP client to confirm an estimate through an
// elicitation form. One approver serves a single tool call.
type ElicitationApprover struct {
	session *mcp.ServerSession
	timeout time.Duration
}

// NewElicitationApprover creates an approver for the session that issued a tool call.
// A zero timeout waits until the caller's context ends.
func NewElicitationApprover(session *mcp.ServerSession, timeout time.Duration) *ElicitationApprover {
	return &ElicitationApprover{
		session: session,
		timeout: timeout,
	}
}

// RequestApproval sends one elicitation/create request and waits for the answer.
func (a *ElicitationApprover) RequestApproval(ctx context.Context, req domain.ApprovalRequest) (domain.ApprovalDecision, error) {
	if a.session == nil || !supportsElicitation(a.session) {
		return "", domain.ErrApprovalUnsupported
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	result, err := a.session.Elicit(ctx, &mcp.ElicitParams{
		Message:         req.Message,
		RequestedSchema: approvalSchema(req),
	})
	if err != nil {
		return "", err
	}

	if result != nil && result.Action == elicitActionAccept {
		return domain.ApprovalAccepted, nil
	}
	return domain.ApprovalRejected, nil
}

func supportsElicitation(session *mcp.ServerSession) bool {
	params := session.InitializeParams()
	return params != nil && params.Capabilities != nil && params.Capabilities.Elicitation != nil
}

// approvalSchema pins every displayed field to a single enum value, so the user can
// accept or reject the estimate but cannot edit it.
func approvalSchema(req domain.ApprovalRequest) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			fieldCostBreakdown: fixedField("Cost breakdown", "Estimated token usage and cost", req.Breakdown),
			fieldRiskLevel:     fixedField("Risk level", "Risk level declared for this task", req.RiskLevel),
			fieldPlan:          fixedField("Plan", "The plan that will be executed if approved", req.Plan),
		},
	}
}

func fixedField(title, description, value string) map[string]any {
	if value == "" {
		value = emptyFieldValue
	}
	return map[string]any{
		"type":        "string",
		"title":       title,
		"description": description,
		"enum":        []string{value},
		"default":     value,
	}
}
