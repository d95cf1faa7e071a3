package domain

import "context"

// ApprovalDecision is the host's answer to a cost confirmation request.
type ApprovalDecision string

const (
	ApprovalAccepted ApprovalDecision = "accepted"
	ApprovalRejected ApprovalDecision = "rejected"
)

// ApprovalRequest is the single outbound confirmation for one estimate.
type ApprovalRequest struct {
	Message   string
	Breakdown string
	RiskLevel string
	Plan      string
}

// Approver asks a human to accept or reject an estimate. Implementations block until
// the decision arrives or ctx ends.
type Approver interface {
	RequestApproval(ctx context.Context, req ApprovalRequest) (ApprovalDecision, error)
}

// ApprovalOutcome is the terminal instruction relayed to the caller.
type ApprovalOutcome struct {
	Decision    ApprovalDecision `json:"decision"`
	Instruction string           `json:"instruction"`
}

// Proceed reports whether the caller may continue with the task.
func (o ApprovalOutcome) Proceed() bool {
	return o.Decision == ApprovalAccepted
}
