// Package events публикует доменные события доски подписчикам вне пути запроса.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	JobSaved                 Type = "JOB_SAVED"
	JobUnsaved               Type = "JOB_UNSAVED"
	JobApplied               Type = "JOB_APPLIED"
	ApplicationStatusChanged Type = "APPLICATION_STATUS_CHANGED"
)

type Event struct {
	Type          Type       `json:"type"`
	CandidateID   uuid.UUID  `json:"candidateId"`
	JobID         uuid.UUID  `json:"jobId"`
	ApplicationID *uuid.UUID `json:"applicationId,omitempty"`
	From          string     `json:"from,omitempty"`
	To            string     `json:"to,omitempty"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

// Publisher доставляет события. Ошибки доставки вызывающие не считают фатальными.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop отбрасывает события, когда брокер не настроен.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
