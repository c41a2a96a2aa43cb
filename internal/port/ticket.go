package port

import (
	"context"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

// TicketIssuer signs upload tickets on the trusted backend.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, in IssueTicketInput) (model.UploadTicket, error)
}
type IssueTicketInput struct {
	Folder       string
	ResourceType string
}

// RateLimiter counts requests per key inside a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
