package shared

import (
	"errors"
	"net/url"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	page, limit, err := ParsePagination(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("defaults = (%d, %d), want (1, 20)", page, limit)
	}
}

func TestParsePaginationExplicit(t *testing.T) {
	q := url.Values{"page": {"3"}, "limit": {"50"}}
	page, limit, err := ParsePagination(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 || limit != 50 {
		t.Fatalf("parsed = (%d, %d), want (3, 50)", page, limit)
	}
}

func TestParsePaginationRejectsBadValues(t *testing.T) {
	cases := []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"limit": {"0"}},
		{"limit": {"500"}},
		{"limit": {"ten"}},
	}
	for _, q := range cases {
		_, _, err := ParsePagination(q)
		if err == nil {
			t.Fatalf("query %v accepted", q)
		}
		if KindOf(err) != KindValidation {
			t.Fatalf("query %v: kind = %v, want validation", q, KindOf(err))
		}
		var se *Error
		if !errors.As(err, &se) || se.Message != "Invalid pagination parameters" {
			t.Fatalf("query %v: message = %v", q, err)
		}
	}
}

func TestPaginationMetadata(t *testing.T) {
	p := NewPagination(2, 20, 45)
	if p.Pages != 3 {
		t.Fatalf("pages = %d, want 3", p.Pages)
	}
	if p.Offset() != 20 {
		t.Fatalf("offset = %d, want 20", p.Offset())
	}

	empty := NewPagination(1, 20, 0)
	if empty.Pages != 0 {
		t.Fatalf("pages for empty total = %d, want 0", empty.Pages)
	}
}
