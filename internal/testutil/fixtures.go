package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/tallerhq/taller/internal/domain"
)

// OrderOption mutates a test work order before it is returned.
type OrderOption func(*domain.WorkOrder)

func WithPhase(p domain.Phase) OrderOption {
	return func(o *domain.WorkOrder) {
		o.CurrentPhase = p
	}
}

func WithDiagnosis(text string, hours float64) OrderOption {
	return func(o *domain.WorkOrder) {
		o.DiagnosisText = text
		o.EstimatedHours = hours
	}
}

func WithWaiting(reason string) OrderOption {
	return func(o *domain.WorkOrder) {
		o.IsWaiting = true
		o.WaitReason = reason
	}
}

func WithQuoteAccepted() OrderOption {
	return func(o *domain.WorkOrder) {
		o.QuoteAccepted = true
	}
}

func WithRunningTimer(startedAt time.Time) OrderOption {
	return func(o *domain.WorkOrder) {
		o.Timer.Start(startedAt)
	}
}

func WithAccumulatedMinutes(minutes int) OrderOption {
	return func(o *domain.WorkOrder) {
		o.Timer.AccumulatedMinutes = minutes
	}
}

// NewTestOrder creates a work order fixture in RECEIVED with a fresh id.
func NewTestOrder(vehicle string, opts ...OrderOption) *domain.WorkOrder {
	now := time.Now().UTC().Truncate(time.Second)
	o := domain.NewWorkOrder(uuid.New().String(), vehicle, "client-"+uuid.New().String()[:8], now)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DefaultTemplate is a small disassembly-style template used across tests.
func DefaultTemplate() []domain.TemplateItem {
	return []domain.TemplateItem{
		{ID: "drain-fluids", Description: "Drain fluids", Mandatory: true},
		{ID: "label-bolts", Description: "Label and bag bolts", Mandatory: true},
		{ID: "photo-harness", Description: "Photograph wiring harness", Mandatory: false},
	}
}
