package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/BTreeMap/CoverageGuide/internal/store"
)

func newTestHandler(t *testing.T, v models.Variant) (*Handler, *flow.Manager) {
	t.Helper()
	mgr := flow.NewManager(flow.ManagerConfig{Content: content.MustNew(v), Store: store.NewInMemoryStore()})
	h, err := NewHandler(mgr)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	return h, mgr
}

func render(t *testing.T, h http.Handler, target string) string {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("%s: expected 200, got %d", target, rr.Code)
	}
	return rr.Body.String()
}

func TestHandler_ConsumerDefaults(t *testing.T) {
	h, _ := newTestHandler(t, models.VariantConsumer)
	body := render(t, h, "/")
	for _, want := range []string{"The Why &amp; When", "Coverage Explorer", "AI Advisor", Disclaimer[:20], `class="timeline"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(body, "Knowledge Check") {
		t.Error("consumer page must not offer the quiz")
	}
}

func TestHandler_ExplorerFilter(t *testing.T) {
	h, _ := newTestHandler(t, models.VariantConsumer)
	body := render(t, h, "/?tab=explorer&filter=optional")
	if strings.Count(body, `<li class="optional">`) != 2 {
		t.Errorf("expected two optional coverages:\n%s", body)
	}
	if strings.Contains(body, `<li class="mandatory">`) {
		t.Error("mandatory coverages must be filtered out")
	}
}

func TestHandler_EmployeeSessionQuiz(t *testing.T) {
	h, mgr := newTestHandler(t, models.VariantEmployee)
	rec, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := render(t, h, "/?tab=quiz&session="+rec.ID)
	if !strings.Contains(body, "Question 1 of 10") {
		t.Errorf("expected quiz progress in page")
	}
	body = render(t, h, "/?tab=reference")
	if !strings.Contains(body, content.GroupHealth) && !strings.Contains(body, "Health &amp; Recovery") {
		t.Errorf("expected grouped reference")
	}
}

// failingWriter accepts headers but rejects every body write.
type failingWriter struct {
	header http.Header
}

func (f *failingWriter) Header() http.Header         { return f.header }
func (f *failingWriter) WriteHeader(statusCode int)  {}
func (f *failingWriter) Write(b []byte) (int, error) { return 0, errors.New("connection reset") }

func TestHandler_LogsWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h, _ := newTestHandler(t, models.VariantConsumer)
	h.ServeHTTP(&failingWriter{header: http.Header{}}, httptest.NewRequest(http.MethodGet, "/", nil))

	out := logs.String()
	if !strings.Contains(out, "web.Handler: failed to write page") || !strings.Contains(out, "connection reset") {
		t.Errorf("expected the write failure to be logged, got %q", out)
	}
}
