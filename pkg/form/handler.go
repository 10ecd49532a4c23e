package form

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-studentservices/internal/logger"
	"github.com/goliatone/go-studentservices/pkg/request"
)

// Submission is what the terminal handler receives for a valid draft.
type Submission struct {
	ID         string        `json:"id"`
	ReceivedAt time.Time     `json:"receivedAt"`
	Request    request.Draft `json:"request"`
}

// SubmitHandler is the terminal step of a successful submit. Returning an
// error reports the submission as failed; the controller keeps the draft.
type SubmitHandler interface {
	Handle(ctx context.Context, sub Submission) error
}

// HandlerFunc adapts a function into a SubmitHandler.
type HandlerFunc func(ctx context.Context, sub Submission) error

// Handle calls fn.
func (fn HandlerFunc) Handle(ctx context.Context, sub Submission) error {
	return fn(ctx, sub)
}

// Chain runs handlers in order and stops at the first error.
func Chain(handlers ...SubmitHandler) SubmitHandler {
	return HandlerFunc(func(ctx context.Context, sub Submission) error {
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if err := h.Handle(ctx, sub); err != nil {
				return err
			}
		}
		return nil
	})
}

// LogHandler writes the submission to log and always succeeds. Contact
// details are masked.
func LogHandler(log *zap.Logger) SubmitHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return HandlerFunc(func(_ context.Context, sub Submission) error {
		d := sub.Request
		log.Info("service request submitted",
			zap.String("id", sub.ID),
			zap.Time("received_at", sub.ReceivedAt),
			zap.String("student_name", d.StudentName),
			zap.String("phone", logger.MaskPhone(d.Phone)),
			zap.String("bsol_email", logger.MaskEmail(d.BsolEmail)),
			zap.String("program", string(d.Program)),
			zap.String("inquiry_type", string(d.InquiryType)),
			zap.String("complaint_type", string(d.ComplaintType)),
			zap.String("academic_issue_type", string(d.AcademicIssueType)),
			zap.String("inquiry_details", d.InquiryDetails),
		)
		return nil
	})
}
