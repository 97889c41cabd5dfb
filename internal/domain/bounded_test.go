package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewHandle_WithinLimit(t *testing.T) {
	raw := strings.Repeat("a", HandleMaxChars)

	handle, err := NewHandle(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if handle.String() != raw {
		t.Errorf("expected stored value %q, got %q", raw, handle.String())
	}
}

func TestNewHandle_TooLong(t *testing.T) {
	raw := strings.Repeat("a", HandleMaxChars+1)

	_, err := NewHandle(raw)
	if err == nil {
		t.Fatal("expected error for over-limit handle")
	}

	tooLong, ok := AsTooLongError(err)
	if !ok {
		t.Fatalf("expected TooLongError, got %T", err)
	}

	if tooLong.Max != HandleMaxChars {
		t.Errorf("expected max %d, got %d", HandleMaxChars, tooLong.Max)
	}
}

func TestNewHeadline_CountsRunesNotBytes(t *testing.T) {
	raw := strings.Repeat("é", HeadlineMaxChars)
	if len(raw) <= HeadlineMaxChars {
		t.Fatal("test string must exceed max in bytes")
	}

	headline, err := NewHeadline(raw)
	if err != nil {
		t.Fatalf("expected no error for %d runes, got %v", HeadlineMaxChars, err)
	}

	if utf8.RuneCountInString(headline.String()) != HeadlineMaxChars {
		t.Errorf("expected %d runes preserved", HeadlineMaxChars)
	}
}

func TestNewMessage_TooLong(t *testing.T) {
	_, err := NewMessage(strings.Repeat("x", MessageMaxChars+1))
	if err == nil {
		t.Fatal("expected error for over-limit message")
	}

	if err.Error() != "Message is too long. Must be at most 100 characters." {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestNewDisplayName_NoNormalization(t *testing.T) {
	raw := "  spaced out  "

	name, err := NewDisplayName(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if name.String() != raw {
		t.Errorf("expected value untouched, got %q", name.String())
	}
}

func TestNewMessage_EmptyAllowed(t *testing.T) {
	msg, err := NewMessage("")
	if err != nil {
		t.Fatalf("expected empty message to be allowed, got %v", err)
	}
	if msg.String() != "" {
		t.Errorf("expected empty value, got %q", msg.String())
	}
}
