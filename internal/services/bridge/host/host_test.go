package host

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
)

func TestNotFound(t *testing.T) {
	err := NotFound("Alrik")
	if !apperrors.HasCode(err, apperrors.CodeCharacterNotFound) {
		t.Fatalf("expected CHARACTER_NOT_FOUND, got %v", err)
	}
}

func TestFailureCarriesReason(t *testing.T) {
	cause := errors.New("disk full")
	err := Failure(apperrors.CodeCharacterUpdateFailed, "save actor", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if got := apperrors.Localize(err, "en-US"); got != "Character update failed: disk full" {
		t.Fatalf("Localize = %q", got)
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	got, err := NormalizeIdentifier("  a1 ")
	if err != nil || got != "a1" {
		t.Fatalf("NormalizeIdentifier = %q, %v", got, err)
	}
	if _, err := NormalizeIdentifier(" "); !apperrors.HasCode(err, apperrors.CodeCharacterIDRequired) {
		t.Fatalf("expected CHARACTER_ID_REQUIRED, got %v", err)
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultPageSize},
		{-1, DefaultPageSize},
		{10, 10},
		{DefaultPageSize + 1, DefaultPageSize},
	}
	for _, tt := range tests {
		if got := PageSize(tt.in); got != tt.want {
			t.Errorf("PageSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
