package media

import (
	"sync"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/port"
)

// ProgressSettings shapes the synthesized progress of a network call.
type ProgressSettings struct {
	Interval time.Duration
	Step     int
	Cap      int
	// RetainDone is how long a finished entry stays in the live map.
	RetainDone time.Duration
}

func (s ProgressSettings) withDefaults() ProgressSettings {
	if s.Interval <= 0 {
		s.Interval = 200 * time.Millisecond
	}
	if s.Step <= 0 {
		s.Step = 10
	}
	if s.Cap <= 0 || s.Cap >= 100 {
		s.Cap = 90
	}
	if s.RetainDone <= 0 {
		s.RetainDone = 2 * time.Second
	}
	return s
}

// Tracker holds the live progress map of the uploads of one Uploader.
type Tracker struct {
	mu       sync.Mutex
	entries  map[model.UploadKey]model.PendingUpload
	settings ProgressSettings
	listener port.ProgressFunc
}

func NewTracker(settings ProgressSettings, listener port.ProgressFunc) *Tracker {
	return &Tracker{
		entries:  make(map[model.UploadKey]model.PendingUpload),
		settings: settings.withDefaults(),
		listener: listener,
	}
}

// Snapshot returns a copy of the live entries.
func (t *Tracker) Snapshot() map[model.UploadKey]model.PendingUpload {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[model.UploadKey]model.PendingUpload, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

func (t *Tracker) Get(key model.UploadKey) (model.PendingUpload, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.entries[key]
	return p, ok
}

func (t *Tracker) set(key model.UploadKey, p model.PendingUpload) {
	t.mu.Lock()
	t.entries[key] = p
	t.mu.Unlock()
	t.emit(key, p)
}

func (t *Tracker) status(key model.UploadKey, s model.UploadStatus) {
	t.mu.Lock()
	p := t.entries[key]
	p.Status = s
	t.entries[key] = p
	t.mu.Unlock()
	t.emit(key, p)
}

// advance moves progress forward by one step, never reaching 100.
func (t *Tracker) advance(key model.UploadKey) {
	t.mu.Lock()
	p, ok := t.entries[key]
	if !ok || p.Status.Terminal() || p.Progress >= t.settings.Cap {
		t.mu.Unlock()
		return
	}
	p.Progress += t.settings.Step
	if p.Progress > t.settings.Cap {
		p.Progress = t.settings.Cap
	}
	t.entries[key] = p
	t.mu.Unlock()
	t.emit(key, p)
}

// synthesize ticks progress until the returned stop func is called. stop
// blocks until the ticker goroutine has exited, so no tick lands afterwards.
func (t *Tracker) synthesize(key model.UploadKey) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(t.settings.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				t.advance(key)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}

// complete snaps the entry to 100 and drops it after the retention delay.
func (t *Tracker) complete(key model.UploadKey) {
	t.set(key, model.PendingUpload{Progress: 100, Status: model.UploadStatusDone})
	time.AfterFunc(t.settings.RetainDone, func() {
		t.mu.Lock()
		if p, ok := t.entries[key]; ok && p.Status == model.UploadStatusDone {
			delete(t.entries, key)
		}
		t.mu.Unlock()
	})
}

// fail reports the terminal error state and drops the entry immediately.
func (t *Tracker) fail(key model.UploadKey) {
	t.mu.Lock()
	p := t.entries[key]
	p.Status = model.UploadStatusError
	delete(t.entries, key)
	t.mu.Unlock()
	t.emit(key, p)
}

func (t *Tracker) emit(key model.UploadKey, p model.PendingUpload) {
	if t.listener != nil {
		t.listener(key, p)
	}
}
