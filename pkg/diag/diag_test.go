package diag_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-jadn/pkg/diag"
)

func TestCollector_ConcurrentReports(t *testing.T) {
	c := diag.NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Report(diag.Warning(diag.KindUnrecognizedOption, "option %d", i))
		}(i)
	}
	wg.Wait()

	if c.Len() != 50 {
		t.Fatalf("expected 50 diagnostics, got %d", c.Len())
	}
	if !c.Has(diag.KindUnrecognizedOption) || c.Has(diag.KindDuplicateTag) {
		t.Fatalf("Has reported the wrong kinds")
	}
}

func TestCollector_ForwardAndTee(t *testing.T) {
	src := diag.NewCollector()
	src.Report(diag.Warning(diag.KindIgnoredFields, "a").At("T", ""))
	src.Report(diag.Warning(diag.KindMissingRequiredTag, "b").At("T", "f"))

	left, right := diag.NewCollector(), diag.NewCollector()
	src.Forward(diag.Tee(left, nil, right))

	if diff := cmp.Diff(src.Diagnostics(), left.Diagnostics()); diff != "" {
		t.Fatalf("left mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(src.Diagnostics(), right.Diagnostics()); diff != "" {
		t.Fatalf("right mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := diag.Warning(diag.KindUnrecognizedOption, "unknown field option").At("Msg", "body").WithValue("weird")
	want := `warning [unrecognized_option] Msg.body: unknown field option ("weird")`
	if got := d.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestError_IsAndKindOf(t *testing.T) {
	cause := errors.New("strconv")
	err := fmt.Errorf("wrapped: %w", diag.NewError(diag.KindInvalidTag, "bad").WithType("Msg").WithField("a").WithCause(cause))

	if !errors.Is(err, diag.NewError(diag.KindInvalidTag, "")) {
		t.Fatalf("kind sentinel should match")
	}
	if !errors.Is(err, diag.NewError(diag.KindInvalidTag, "").WithType("Msg")) {
		t.Fatalf("kind and type sentinel should match")
	}
	if errors.Is(err, diag.NewError(diag.KindInvalidTag, "").WithType("Other")) {
		t.Fatalf("different type should not match")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause should be reachable")
	}
	if kind, ok := diag.KindOf(err); !ok || kind != diag.KindInvalidTag {
		t.Fatalf("KindOf = %q, %v", kind, ok)
	}
	if _, ok := diag.KindOf(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestEscalate_KeepsContext(t *testing.T) {
	d := diag.Warning(diag.KindMissingRequiredTag, "missing tag").At("Action", "query")
	got := diag.Escalate(d)
	want := &diag.Error{Kind: diag.KindMissingRequiredTag, Type: "Action", Field: "query", Message: "missing tag"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("escalate mismatch (-want +got):\n%s", diff)
	}
	if got.Error() != "[missing_required_tag] Action.query: missing tag" {
		t.Fatalf("unexpected message %q", got.Error())
	}
}

func TestZapReporter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := diag.NewZapReporter(zap.New(core))

	r.Report(diag.Warning(diag.KindIgnoredFields, "ignored").At("Id", ""))
	r.Report(diag.Diagnostic{Kind: diag.KindDuplicateTag, Severity: diag.SeverityError, Message: "dup"})

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("unexpected levels %v %v", entries[0].Level, entries[1].Level)
	}
	if got := entries[0].ContextMap()["kind"]; got != string(diag.KindIgnoredFields) {
		t.Fatalf("kind field = %v", got)
	}
}
