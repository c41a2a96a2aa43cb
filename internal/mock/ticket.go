package mock

import (
	"context"

	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/port"
)

// TicketIssuer implements port.TicketIssuer for tests.
type TicketIssuer struct {
	Out model.UploadTicket
	Err error

	In     port.IssueTicketInput
	Called bool
}

func (m *TicketIssuer) IssueTicket(ctx context.Context, in port.IssueTicketInput) (model.UploadTicket, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return model.UploadTicket{}, m.Err
	}
	return m.Out, nil
}

// RateLimiter implements port.RateLimiter for tests.
type RateLimiter struct {
	Deny bool
	Err  error

	Keys []string
}

func (m *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.Keys = append(m.Keys, key)
	if m.Err != nil {
		return false, m.Err
	}
	return !m.Deny, nil
}
