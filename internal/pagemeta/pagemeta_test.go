package pagemeta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFetchExtractsTitleAndDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<title>Jane Doe Portfolio</title>
			<meta name="description" content="Product designer in Berlin.">
		</head><body></body></html>`))
	}))
	defer srv.Close()

	meta, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.Title != "Jane Doe Portfolio" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if meta.Description != "Product designer in Berlin." {
		t.Fatalf("unexpected description: %q", meta.Description)
	}
}

func TestFetchFallsBackToOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<meta content="OG Title" property="og:title">
			<meta property="og:description" content="OG description.">
		</head></html>`))
	}))
	defer srv.Close()

	meta, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.Title != "OG Title" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if meta.Description != "OG description." {
		t.Fatalf("unexpected description: %q", meta.Description)
	}
}

func TestFetchRejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewFetcher().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchRejectsNonHTTPScheme(t *testing.T) {
	if _, err := NewFetcher().Fetch(context.Background(), "ftp://example.com"); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
}

func TestParseTruncatesLongDescription(t *testing.T) {
	long := strings.Repeat("a", 300)
	meta, err := Parse(strings.NewReader(`<html><head><meta name="description" content="` + long + `"></head></html>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(meta.Description) != maxDescription+3 {
		t.Fatalf("expected truncated description, got len %d", len(meta.Description))
	}
	if !strings.HasSuffix(meta.Description, "...") {
		t.Fatalf("expected ellipsis suffix")
	}
}

func TestParseTruncationKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("é", 300)
	meta, err := Parse(strings.NewReader(`<html><head><meta name="description" content="` + long + `"></head></html>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !utf8.ValidString(meta.Description) {
		t.Fatalf("truncation must not split a rune")
	}
	kept := strings.TrimSuffix(meta.Description, "...")
	if n := utf8.RuneCountInString(kept); n != maxDescription {
		t.Fatalf("expected %d characters kept, got %d", maxDescription, n)
	}
}
