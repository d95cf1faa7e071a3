package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/inference-gateway/costgate/internal/domain"
	logger "github.com/inference-gateway/costgate/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApprover struct {
	decision domain.ApprovalDecision
	err      error
	requests []domain.ApprovalRequest
}

func (f *fakeApprover) RequestApproval(_ context.Context, req domain.ApprovalRequest) (domain.ApprovalDecision, error) {
	f.requests = append(f.requests, req)
	return f.decision, f.err
}

func TestApprovalGate_Request(t *testing.T) {
	tests := []struct {
		name                string
		decision            domain.ApprovalDecision
		expectedDecision    domain.ApprovalDecision
		expectedInstruction string
	}{
		{
			name:                "accepted proceeds",
			decision:            domain.ApprovalAccepted,
			expectedDecision:    domain.ApprovalAccepted,
			expectedInstruction: ProceedInstruction,
		},
		{
			name:                "rejected halts",
			decision:            domain.ApprovalRejected,
			expectedDecision:    domain.ApprovalRejected,
			expectedInstruction: HaltInstruction,
		},
		{
			name:                "unknown decision halts",
			decision:            domain.ApprovalDecision("cancel"),
			expectedDecision:    domain.ApprovalRejected,
			expectedInstruction: HaltInstruction,
		},
		{
			name:                "empty decision halts",
			decision:            "",
			expectedDecision:    domain.ApprovalRejected,
			expectedInstruction: HaltInstruction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approver := &fakeApprover{decision: tt.decision}
			gate := NewApprovalGate(approver)

			outcome, err := gate.Request(logger.NopContext(), domain.ApprovalRequest{
				Breakdown: "breakdown",
				RiskLevel: "low",
				Plan:      "plan",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedDecision, outcome.Decision)
			assert.Equal(t, tt.expectedInstruction, outcome.Instruction)
			assert.Equal(t, tt.expectedDecision == domain.ApprovalAccepted, outcome.Proceed())

			require.Len(t, approver.requests, 1)
			assert.Equal(t, DefaultApprovalMessage, approver.requests[0].Message)
			assert.Equal(t, "breakdown", approver.requests[0].Breakdown)
		})
	}
}

func TestApprovalGate_KeepsCallerMessage(t *testing.T) {
	approver := &fakeApprover{decision: domain.ApprovalAccepted}
	_, err := NewApprovalGate(approver).Request(logger.NopContext(), domain.ApprovalRequest{Message: "Approve $1.20?"})
	require.NoError(t, err)
	assert.Equal(t, "Approve $1.20?", approver.requests[0].Message)
}

func TestApprovalGate_TransportFailure(t *testing.T) {
	transportErr := errors.New("connection closed")
	approver := &fakeApprover{err: transportErr}
	ctx, logs := logger.TestContext()

	outcome, err := NewApprovalGate(approver).Request(ctx, domain.ApprovalRequest{})
	require.Error(t, err)

	var approvalErr *domain.ApprovalError
	require.ErrorAs(t, err, &approvalErr)
	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, "approval request failed: connection closed", err.Error())
	assert.Empty(t, outcome.Instruction)
	assert.Equal(t, 1, logs.FilterMessage("approval request failed").Len())
}

func TestApprovalGate_DoesNotDoubleWrap(t *testing.T) {
	inner := &domain.ApprovalError{Err: domain.ErrApprovalUnsupported}
	_, err := NewApprovalGate(&fakeApprover{err: inner}).Request(logger.NopContext(), domain.ApprovalRequest{})

	assert.Same(t, inner, err)
	assert.ErrorIs(t, err, domain.ErrApprovalUnsupported)
}
