package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	domain "github.com/inference-gateway/costgate/internal/domain"
	formatting "github.com/inference-gateway/costgate/internal/formatting"
	logger "github.com/inference-gateway/costgate/internal/logger"
	term "golang.org/x/term"
)

const defaultWidth = 80

// Approver renders an estimate on the terminal and reads a y/N answer from the user.
type Approver struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	autoApprove bool
	width       int
	styles      *Styles
}

// NewApprover creates an approver reading from in and rendering to out. When in is not
// a terminal nobody can answer, so the estimate is rejected unless autoApprove is set.
func NewApprover(in *os.File, out io.Writer, autoApprove bool) *Approver {
	interactive := in != nil && term.IsTerminal(int(in.Fd()))

	width := defaultWidth
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	return newApprover(in, out, interactive, autoApprove, width)
}

func newApprover(in io.Reader, out io.Writer, interactive, autoApprove bool, width int) *Approver {
	return &Approver{
		in:          in,
		out:         out,
		interactive: interactive,
		autoApprove: autoApprove,
		width:       formatting.GetResponsiveWidth(width),
		styles:      NewStyles(),
	}
}

// RequestApproval prints the request and waits for an answer or for ctx to end.
func (a *Approver) RequestApproval(ctx context.Context, req domain.ApprovalRequest) (domain.ApprovalDecision, error) {
	if _, err := fmt.Fprintln(a.out, a.render(req)); err != nil {
		return "", fmt.Errorf("failed to write approval prompt: %w", err)
	}

	switch {
	case a.autoApprove:
		logger.Debug("approval granted by flag")
		return a.finish(domain.ApprovalAccepted, "approved (--yes)")
	case !a.interactive:
		logger.Warn("stdin is not a terminal, rejecting estimate")
		return a.finish(domain.ApprovalRejected, "rejected (no terminal to confirm on, pass --yes to approve)")
	}

	if _, err := fmt.Fprint(a.out, a.styles.Prompt.Render("Approve this estimate? [y/N] ")); err != nil {
		return "", fmt.Errorf("failed to write approval prompt: %w", err)
	}

	answer, err := a.readAnswer(ctx)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return a.finish(domain.ApprovalAccepted, "approved")
	default:
		return a.finish(domain.ApprovalRejected, "rejected")
	}
}

func (a *Approver) readAnswer(ctx context.Context) (string, error) {
	type line struct {
		text string
		err  error
	}

	// A blocked read cannot be interrupted. On cancellation the goroutine stays parked
	// until the input yields a line or closes, which for the CLI is process exit.
	lines := make(chan line, 1)
	go func() {
		text, err := bufio.NewReader(a.in).ReadString('\n')
		if err == io.EOF && text != "" {
			err = nil
		}
		lines <- line{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-lines:
		if l.err == io.EOF {
			return "", nil
		}
		if l.err != nil {
			return "", fmt.Errorf("failed to read answer: %w", l.err)
		}
		return l.text, nil
	}
}

func (a *Approver) finish(decision domain.ApprovalDecision, label string) (domain.ApprovalDecision, error) {
	style := a.styles.Rejected
	if decision == domain.ApprovalAccepted {
		style = a.styles.Accepted
	}
	if _, err := fmt.Fprintln(a.out, style.Render(label)); err != nil {
		return "", fmt.Errorf("failed to write approval result: %w", err)
	}
	return decision, nil
}

func (a *Approver) render(req domain.ApprovalRequest) string {
	inner := a.width - 4

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(formatting.WrapText(req.Message, inner)))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Body.Render(req.Breakdown))

	if req.RiskLevel != "" {
		b.WriteString("\n\n")
		b.WriteString(a.styles.Label.Render("Risk level: "))
		b.WriteString(req.RiskLevel)
	}

	if req.Plan != "" {
		b.WriteString("\n\n")
		b.WriteString(a.styles.Label.Render("Plan"))
		b.WriteString("\n")
		b.WriteString(formatting.FormatResponsiveMessage(req.Plan, inner))
	}

	return a.styles.Box.Render(b.String())
}
