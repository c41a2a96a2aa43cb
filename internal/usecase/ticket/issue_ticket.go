package ticket

import (
	"context"
	"errors"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/signing"
)

var (
	ErrFolderNotAllowed       = errors.New("folder is not allowed")
	ErrResourceTypeNotAllowed = errors.New("resource type is not allowed")
)

var resourceTypes = map[string]struct{}{"image": {}, "video": {}, "raw": {}, "auto": {}}

// Credentials identify the storage provider account tickets are signed for.
type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

type ticketIssuerSrv struct {
	creds   Credentials
	folders map[string]struct{}
	now     func() time.Time
}

// compile-time check: *ticketIssuerSrv must satisfy port.TicketIssuer
var _ port.TicketIssuer = (*ticketIssuerSrv)(nil)

// NewTicketIssuer constructs a TicketIssuer signing for the given folders only.
func NewTicketIssuer(creds Credentials, allowedFolders []string, now func() time.Time) port.TicketIssuer {
	m := make(map[string]struct{}, len(allowedFolders))
	for _, f := range allowedFolders {
		m[f] = struct{}{}
	}
	if now == nil {
		now = time.Now
	}
	return &ticketIssuerSrv{creds: creds, folders: m, now: now}
}

// IssueTicket signs a ticket for one upload into in.Folder, timestamped now.
func (s *ticketIssuerSrv) IssueTicket(ctx context.Context, in port.IssueTicketInput) (model.UploadTicket, error) {
	if _, ok := s.folders[in.Folder]; !ok {
		return model.UploadTicket{}, ErrFolderNotAllowed
	}
	if in.ResourceType != "" {
		if _, ok := resourceTypes[in.ResourceType]; !ok {
			return model.UploadTicket{}, ErrResourceTypeNotAllowed
		}
	}

	ts := s.now().Unix()
	sig := signing.Sign(signing.UploadParams(in.Folder, ts), s.creds.APISecret)
	logger.Debugf(ctx, "signed ticket for folder %q at %d", in.Folder, ts)

	return model.UploadTicket{
		CloudName: s.creds.CloudName,
		APIKey:    s.creds.APIKey,
		Timestamp: ts,
		Signature: sig,
		Folder:    in.Folder,
	}, nil
}
