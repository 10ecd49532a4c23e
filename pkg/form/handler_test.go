package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-studentservices/pkg/request"
)

func TestLogHandler_MasksContactDetails(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := LogHandler(zap.New(core))

	sub := Submission{
		ID:         "req-1",
		ReceivedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Request: request.Draft{
			StudentName: "Jane Doe",
			Phone:       "2121234567",
			BsolEmail:   "jane.doe@blackstone.edu",
			Program:     request.ProgramLLB,
			InquiryType: request.InquiryGeneral,
		},
	}
	if err := h.Handle(context.Background(), sub); err != nil {
		t.Fatalf("handle: %v", err)
	}

	entries := logs.FilterMessage("service request submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["bsol_email"] != "ja...e@blackstone.edu" {
		t.Fatalf("email not masked: %v", fields["bsol_email"])
	}
	if fields["phone"] != "******4567" {
		t.Fatalf("phone not masked: %v", fields["phone"])
	}
	if fields["program"] != "llb" || fields["id"] != "req-1" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestChain_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var order []string
	h := Chain(
		HandlerFunc(func(context.Context, Submission) error { order = append(order, "a"); return nil }),
		nil,
		HandlerFunc(func(context.Context, Submission) error { order = append(order, "b"); return boom }),
		HandlerFunc(func(context.Context, Submission) error { order = append(order, "c"); return nil }),
	)
	if err := h.Handle(context.Background(), Submission{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(order) != 2 || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
}
