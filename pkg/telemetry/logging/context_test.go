package logging

import (
	"context"
	"testing"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if GetLoadID(ctx) != "" || GetDocument(ctx) != "" {
		t.Fatal("empty context should carry no values")
	}
	if fields := extractContextFields(ctx); len(fields) != 0 {
		t.Errorf("extractContextFields() = %v, want none", fields)
	}

	ctx = WithLoadID(ctx, "abc")
	ctx = WithDocument(ctx, "/a.yaml")

	if got := GetLoadID(ctx); got != "abc" {
		t.Errorf("GetLoadID() = %q, want abc", got)
	}
	if got := GetDocument(ctx); got != "/a.yaml" {
		t.Errorf("GetDocument() = %q, want /a.yaml", got)
	}

	fields := extractContextFields(ctx)
	if len(fields) != 2 || fields[0].Key != "load_id" || fields[1].Key != "document" {
		t.Errorf("extractContextFields() = %v", fields)
	}
}
