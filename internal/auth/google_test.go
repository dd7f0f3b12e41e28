package auth

import (
	"testing"
	"time"
)

func TestStateStoreConsumeIsOneShot(t *testing.T) {
	store := newStateStore()
	store.put("abc", time.Now().Add(time.Minute))

	if !store.consume("abc") {
		t.Fatalf("expected first consume to succeed")
	}
	if store.consume("abc") {
		t.Fatalf("expected second consume to fail")
	}
	if store.consume("never-stored") {
		t.Fatalf("expected unknown state to fail")
	}
}

func TestStateStoreRejectsExpired(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))

	if store.consume("old") {
		t.Fatalf("expected expired state to fail")
	}
}

func TestAppendTokens(t *testing.T) {
	got, err := appendTokens("https://app.example.com/auth/done?source=google", "tok123", "ref456")
	if err != nil {
		t.Fatalf("appendTokens: %v", err)
	}
	want := "https://app.example.com/auth/done?refresh=ref456&source=google&token=tok123"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got, err = appendTokens("https://app.example.com/auth/done", "tok123", "")
	if err != nil {
		t.Fatalf("appendTokens: %v", err)
	}
	if want := "https://app.example.com/auth/done?token=tok123"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if _, err := appendTokens("", "tok", ""); err == nil {
		t.Fatalf("expected error for empty redirect url")
	}
}
