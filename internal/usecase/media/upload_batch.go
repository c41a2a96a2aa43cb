package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/api_context"
	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/ordering"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/validation"
	"github.com/google/uuid"
)

const (
	StageTranscode = "transcode"
	StageAuthorize = "authorize"
	StageTransport = "transport"
)

// UploaderConfig is supplied by the form that owns the asset list.
type UploaderConfig struct {
	TargetFolder  string `validate:"required,folder"`
	ResourceType  string `validate:"omitempty,oneof=image video raw auto"`
	AllowMultiple bool
	MaxFiles      int `validate:"gt=0"`

	// CurrentAssets returns the owner's list as it is right now.
	CurrentAssets    func() model.AssetList
	OnUploadComplete func(assets []model.MediaAsset)
	OnRemoveAsset    func(index int)
	OnReorderAssets  func(list model.AssetList)

	Transcode  model.TranscodeOptions
	Progress   ProgressSettings
	OnProgress port.ProgressFunc
}

// Uploader processes the files of a batch one after the other:
// transcode, request a ticket, transfer. Its state lives as long as the
// Uploader itself.
type Uploader struct {
	cfg        UploaderConfig
	transcoder port.Transcoder
	tickets    port.TicketRequester
	transport  port.Transport
	notifier   port.Notifier
	observer   port.Observer
	tracker    *Tracker
	ordering   *ordering.Manager
}

// compile-time check: *Uploader must satisfy port.BatchUploader
var _ port.BatchUploader = (*Uploader)(nil)

// NewUploader builds an Uploader. A nil notifier logs outcomes; a nil
// observer records nothing.
func NewUploader(cfg UploaderConfig, tc port.Transcoder, tickets port.TicketRequester, tr port.Transport, notifier port.Notifier, observer port.Observer) (*Uploader, error) {
	if err := validation.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid uploader config: %w", err)
	}
	if cfg.OnUploadComplete == nil {
		return nil, errors.New("invalid uploader config: OnUploadComplete is required")
	}
	if tc == nil || tickets == nil || tr == nil {
		return nil, errors.New("uploader needs a transcoder, a ticket requester and a transport")
	}
	if cfg.ResourceType == "" {
		cfg.ResourceType = "image"
	}
	cfg.Transcode = cfg.Transcode.WithDefaults()
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if observer == nil {
		observer = noopObserver{}
	}

	return &Uploader{
		cfg:        cfg,
		transcoder: tc,
		tickets:    tickets,
		transport:  tr,
		notifier:   notifier,
		observer:   observer,
		tracker:    NewTracker(cfg.Progress, cfg.OnProgress),
		ordering:   ordering.NewManager(cfg.OnReorderAssets, cfg.OnRemoveAsset),
	}, nil
}

// Tracker exposes the live progress map.
func (u *Uploader) Tracker() *Tracker { return u.tracker }

// Ordering exposes the reorder/remove controls bound to the same owner.
func (u *Uploader) Ordering() *ordering.Manager { return u.ordering }

// Upload admits the selection and uploads the accepted files sequentially.
// One failing file never stops the others. OnUploadComplete fires once,
// with the successful assets in submission order, if any file succeeded.
func (u *Uploader) Upload(ctx context.Context, files []model.File) port.BatchResult {
	ctx = api_context.WithBatchID(ctx, uuid.NewString())

	adm := Admit(files, len(u.currentAssets()), u.cfg.MaxFiles, u.cfg.AllowMultiple)
	for _, r := range adm.Rejected {
		u.notifier.Rejected(ctx, r.File, r)
	}
	if adm.Truncated {
		u.notifier.Truncated(ctx, len(adm.Accepted), adm.Dropped)
	}

	res := port.BatchResult{Rejected: len(adm.Rejected), Dropped: adm.Dropped}
	if len(adm.Accepted) == 0 {
		return res
	}

	u.ordering.BeginAppend()
	defer func() { u.ordering.EndAppend(u.currentAssets()) }()

	for _, f := range adm.Accepted {
		u.tracker.set(f.Key(), model.PendingUpload{Status: model.UploadStatusQueued})
	}

	logger.Infof(ctx, "🚀 Uploading %d file(s) to folder %q", len(adm.Accepted), u.cfg.TargetFolder)
	for _, f := range adm.Accepted {
		asset, err := u.uploadOne(ctx, f)
		if err != nil {
			res.Failed++
			u.notifier.Failed(ctx, f.Name, err)
			continue
		}
		res.Assets = append(res.Assets, asset)
		u.notifier.Succeeded(ctx, f.Name)
	}
	logger.Infof(ctx, "✅  Batch settled: %d uploaded, %d failed", len(res.Assets), res.Failed)

	if len(res.Assets) > 0 {
		out := make([]model.MediaAsset, len(res.Assets))
		copy(out, res.Assets)
		u.cfg.OnUploadComplete(out)
	}
	return res
}

func (u *Uploader) uploadOne(ctx context.Context, f model.File) (model.MediaAsset, error) {
	key := f.Key()
	if err := ctx.Err(); err != nil {
		u.tracker.fail(key)
		u.observer.RecordFile(string(model.UploadStatusError), f.Size())
		return model.MediaAsset{}, &TransportError{File: f.Name, Err: err}
	}

	u.tracker.status(key, model.UploadStatusCompressing)
	payload := u.transcode(ctx, f)

	u.tracker.status(key, model.UploadStatusUploading)
	stop := u.tracker.synthesize(key)
	asset, err := u.send(ctx, f.Name, payload)
	stop()

	if err != nil {
		u.tracker.fail(key)
		u.observer.RecordFile(string(model.UploadStatusError), payload.Size())
		return model.MediaAsset{}, err
	}
	u.tracker.complete(key)
	u.observer.RecordFile(string(model.UploadStatusDone), payload.Size())
	return asset, nil
}

// transcode never fails: on error the original file is returned.
func (u *Uploader) transcode(ctx context.Context, f model.File) model.File {
	start := time.Now()
	out, err := u.transcoder.Transcode(ctx, f, u.cfg.Transcode)
	u.observer.RecordStage(StageTranscode, time.Since(start), err)
	if err != nil {
		var terr *TranscodeError
		if !errors.As(err, &terr) {
			terr = &TranscodeError{File: f.Name, Err: err}
		}
		logger.Warnf(ctx, "⚠️  %v; uploading the original file", terr)
		return f
	}
	logger.Debugf(ctx, "transcoded %q: %d → %d bytes", f.Name, f.Size(), out.Size())
	return out
}

func (u *Uploader) send(ctx context.Context, name string, f model.File) (model.MediaAsset, error) {
	start := time.Now()
	ticket, err := u.tickets.RequestTicket(ctx, u.cfg.TargetFolder, u.cfg.ResourceType)
	u.observer.RecordStage(StageAuthorize, time.Since(start), err)
	if err != nil {
		return model.MediaAsset{}, asAuthorizationError(name, err)
	}

	start = time.Now()
	asset, err := u.transport.Upload(ctx, f, ticket)
	u.observer.RecordStage(StageTransport, time.Since(start), err)
	if err != nil {
		return model.MediaAsset{}, asTransportError(name, err)
	}
	return asset, nil
}

func (u *Uploader) currentAssets() model.AssetList {
	if u.cfg.CurrentAssets == nil {
		return nil
	}
	return u.cfg.CurrentAssets()
}

func asAuthorizationError(name string, err error) error {
	var aerr *AuthorizationError
	if errors.As(err, &aerr) {
		out := *aerr
		out.File = name
		return &out
	}
	return &AuthorizationError{File: name, Err: err}
}

func asTransportError(name string, err error) error {
	var terr *TransportError
	if errors.As(err, &terr) {
		out := *terr
		out.File = name
		return &out
	}
	return &TransportError{File: name, Err: err}
}

type noopObserver struct{}

func (noopObserver) RecordStage(string, time.Duration, error) {}
func (noopObserver) RecordFile(string, int64)                 {}
