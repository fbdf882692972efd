package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	appctx "github.com/smartlearn/platform-api/internal/pkg/context"
)

func TestInitWithWriter_JSON(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Info().Str("k", "v").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"k":"v"`) || !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestInitWithWriter_BadLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "nonsense")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Debug().Msg("should be filtered at info")
	Logger.Info().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Fatalf("debug message should not be logged: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("info message missing: %s", out)
	}
}

func TestWithCtx_AttachesRequestID(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	ctx := appctx.WithRequestID(context.Background(), "req-123")
	WithCtx(ctx).Info().Msg("tagged")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Fatalf("request id missing: %s", buf.String())
	}
}
