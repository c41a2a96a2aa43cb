package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/port"
)

// console prints user-facing notices and per-file progress.
type console struct {
	mu  sync.Mutex
	out io.Writer
	// last printed progress per file, to skip repeated lines
	last map[model.UploadKey]model.PendingUpload
}

var _ port.Notifier = (*console)(nil)

func newConsole(out io.Writer) *console {
	return &console{out: out, last: map[model.UploadKey]model.PendingUpload{}}
}

func (c *console) printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, format+"\n", a...)
}

func (c *console) Rejected(_ context.Context, fileName string, err error) {
	c.printf("⚠️  %s skipped: %v", fileName, err)
}

func (c *console) Truncated(_ context.Context, accepted, dropped int) {
	c.printf("⚠️  Maximum number of images reached: %d accepted, %d ignored", accepted, dropped)
}

func (c *console) Succeeded(_ context.Context, fileName string) {
	c.printf("✅  %s uploaded", fileName)
}

func (c *console) Failed(_ context.Context, fileName string, err error) {
	c.printf("❌  %s failed: %v", fileName, err)
}

// progress is a port.ProgressFunc.
func (c *console) progress(key model.UploadKey, p model.PendingUpload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.last[key]; ok && prev == p {
		return
	}
	c.last[key] = p
	if p.Status.Terminal() {
		delete(c.last, key)
	}
	_, _ = fmt.Fprintf(c.out, "   %-32s %-12s %3d%%\n", key.Name, p.Status, p.Progress)
}
