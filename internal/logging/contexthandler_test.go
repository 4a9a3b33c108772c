package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/myrjola/gymplanner/internal/logging"
)

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, slog.LevelInfo, nil)

	ctx := logging.WithAttrs(context.Background(), slog.String("trace_id", "abc"))
	sibling := logging.WithAttrs(ctx, slog.String("day", "Monday"))
	ctx = logging.WithAttrs(ctx, slog.String("day", "Tuesday"))

	logger.LogAttrs(ctx, slog.LevelInfo, "composed day")
	logger.LogAttrs(sibling, slog.LevelDebug, "filtered out by level")

	got := buf.String()
	for _, want := range []string{"trace_id=abc", "day=Tuesday", `msg="composed day"`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q to contain %q", got, want)
		}
	}
	if strings.Contains(got, "Monday") {
		t.Errorf("sibling context leaked into %q", got)
	}
	if n := len(logging.Attrs(sibling)); n != 2 {
		t.Errorf("len(Attrs(sibling)) = %d, want 2", n)
	}
}
