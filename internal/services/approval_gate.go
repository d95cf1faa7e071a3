package services

import (
	"context"
	"errors"

	domain "github.com/inference-gateway/costgate/internal/domain"
	logger "github.com/inference-gateway/costgate/internal/logger"
	zap "go.uber.org/zap"
)

const (
	// DefaultApprovalMessage is shown when the caller supplies no message of its own.
	DefaultApprovalMessage = "Review the estimated cost of this task and accept or reject it."

	// ProceedInstruction is relayed to the caller after the user accepts.
	ProceedInstruction = "APPROVED: the user accepted the estimated cost. Proceed with the task exactly as planned, without asking for confirmation again."

	// HaltInstruction is relayed to the caller after the user rejects or dismisses the request.
	HaltInstruction = "REJECTED: the user did not approve the estimated cost. Stop immediately, make no further changes, and ask the user for a revised plan."
)

// ApprovalGate sends one confirmation request per estimate and turns the decision into
// an instruction for the caller.
type ApprovalGate struct {
	approver domain.Approver
}

// NewApprovalGate creates an approval gate backed by approver
func NewApprovalGate(approver domain.Approver) *ApprovalGate {
	return &ApprovalGate{approver: approver}
}

// Request blocks until the approver answers. Anything other than an explicit accept
// halts the task. Approver failures are returned as *domain.ApprovalError.
func (g *ApprovalGate) Request(ctx context.Context, req domain.ApprovalRequest) (domain.ApprovalOutcome, error) {
	if req.Message == "" {
		req.Message = DefaultApprovalMessage
	}

	decision, err := g.approver.RequestApproval(ctx, req)
	if err != nil {
		logger.L(ctx).Warn("approval request failed", zap.Error(err))

		var approvalErr *domain.ApprovalError
		if errors.As(err, &approvalErr) {
			return domain.ApprovalOutcome{}, err
		}
		return domain.ApprovalOutcome{}, &domain.ApprovalError{Err: err}
	}

	logger.L(ctx).Info("approval decision received", zap.String("decision", string(decision)))
	return Relay(decision), nil
}

// Relay maps a decision onto the instruction returned to the caller.
func Relay(decision domain.ApprovalDecision) domain.ApprovalOutcome {
	if decision == domain.ApprovalAccepted {
		return domain.ApprovalOutcome{Decision: domain.ApprovalAccepted, Instruction: ProceedInstruction}
	}
	return domain.ApprovalOutcome{Decision: domain.ApprovalRejected, Instruction: HaltInstruction}
}
