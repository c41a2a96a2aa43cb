package media

import (
	"context"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/port"
)

// LogNotifier is the default Notifier; it only writes log lines.
type LogNotifier struct{}

var _ port.Notifier = LogNotifier{}

func (LogNotifier) Rejected(ctx context.Context, fileName string, err error) {
	logger.Warnf(ctx, "⚠️  File %q rejected: %v", fileName, err)
}

func (LogNotifier) Truncated(ctx context.Context, accepted, dropped int) {
	logger.Warnf(ctx, "⚠️  Only %d file(s) accepted, %d ignored: maximum number of images reached", accepted, dropped)
}

func (LogNotifier) Succeeded(ctx context.Context, fileName string) {
	logger.Infof(ctx, "✅  %q uploaded", fileName)
}

func (LogNotifier) Failed(ctx context.Context, fileName string, err error) {
	logger.Errorf(ctx, "❌  %q could not be uploaded: %v", fileName, err)
}
