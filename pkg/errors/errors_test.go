package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFileNotFound, cause, "open catalog")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "FILE_NOT_FOUND: open catalog: underlying error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsAndGetCode(t *testing.T) {
	strategy := New(ErrCodeInvalidStrategy, "unknown strategy %q", "grid")

	tests := []struct {
		name string
		err  error
		code Code // expected GetCode
		is   Code // probed with Is
		want bool
	}{
		{"matching code", strategy, ErrCodeInvalidStrategy, ErrCodeInvalidStrategy, true},
		{"other code", strategy, ErrCodeInvalidStrategy, ErrCodeInvalidFormat, false},
		{"outer code wins", Wrap(ErrCodeCache, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeCache, ErrCodeCache, true},
		{"through fmt wrapping", fmt.Errorf("compute layout: %w", strategy), ErrCodeInvalidStrategy, ErrCodeInvalidStrategy, true},
		{"plain error", errors.New("plain"), "", ErrCodeInvalidInput, false},
		{"nil", nil, "", ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if got := Is(tt.err, tt.is); got != tt.want {
				t.Errorf("Is(%s) = %v, want %v", tt.is, got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
		{"wrapped", fmt.Errorf("load: %w", New(ErrCodeInvalidCatalog, "no skills")), "no skills"},
		{
			"several validation failures",
			ValidationErrors{New(ErrCodeInvalidSkill, "a"), New(ErrCodeInvalidColor, "b")},
			"2 validation errors:\n  INVALID_SKILL: a\n  INVALID_COLOR: b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	t.Run("empty is nil", func(t *testing.T) {
		var v ValidationErrors
		if v.Err() != nil {
			t.Errorf("Err() = %v, want nil", v.Err())
		}
	})

	t.Run("single error", func(t *testing.T) {
		v := ValidationErrors{New(ErrCodeInvalidSkill, "bad")}
		if got := v.Error(); got != "INVALID_SKILL: bad" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		v := ValidationErrors{
			New(ErrCodeInvalidSkill, "first"),
			New(ErrCodeInvalidColor, "second"),
		}
		err := v.Err()
		if err == nil {
			t.Fatal("Err() = nil, want error")
		}
		if !strings.HasPrefix(err.Error(), "2 validation errors:") {
			t.Errorf("Error() = %q", err.Error())
		}
		if !Is(err, ErrCodeInvalidColor) {
			t.Error("Is(err, ErrCodeInvalidColor) = false, want true")
		}
	})
}
