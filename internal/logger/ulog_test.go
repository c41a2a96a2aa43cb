package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fhuszti/catalog-media-go/internal/api_context"
)

func TestContextAttrHandler_AddsUIDAndBatch(t *testing.T) {
	buf := &bytes.Buffer{}
	l := slog.New(contextAttrHandler{h: slog.NewJSONHandler(buf, nil)})

	ctx := context.WithValue(context.Background(), api_context.AuthUserIDKey, "u-1")
	ctx = api_context.WithBatchID(ctx, "b-9")
	l.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	if rec["uid"] != "u-1" {
		t.Errorf("uid = %v; want u-1", rec["uid"])
	}
	if rec["batch"] != "b-9" {
		t.Errorf("batch = %v; want b-9", rec["batch"])
	}
}

func TestContextAttrHandler_SystemDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	l := slog.New(contextAttrHandler{h: slog.NewJSONHandler(buf, nil)})
	l.InfoContext(context.Background(), "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if rec["uid"] != "system" {
		t.Errorf("uid = %v; want system", rec["uid"])
	}
	if _, ok := rec["batch"]; ok {
		t.Error("batch attribute should be absent without a batch id")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in).Level(); got != want {
			t.Errorf("parseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}
