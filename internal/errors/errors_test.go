package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestScoutError_Error(t *testing.T) {
	err := &ScoutError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "template not found",
	}

	expected := "NOT_FOUND: template not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfiguration(t *testing.T) {
	cause := fmt.Errorf("mkdir /readonly: permission denied")
	err := NewConfiguration("cache directory is not writable", cause)

	if err.Code != ErrConfiguration {
		t.Errorf("Code = %q, want %q", err.Code, ErrConfiguration)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("query is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "query is required" {
		t.Errorf("Message = %q, want %q", err.Message, "query is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("template", "patient-by-id")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["identifier"] != "patient-by-id" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "patient-by-id")
	}
}

func TestNewSchemaUnavailable(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := fmt.Errorf("dial tcp: connection refused")
		err := NewSchemaUnavailable(cause)

		if err.Code != ErrSchemaUnavailable {
			t.Errorf("Code = %q, want %q", err.Code, ErrSchemaUnavailable)
		}
		if err.Status != 503 {
			t.Errorf("Status = %d, want 503", err.Status)
		}
		if !stderrors.Is(err, cause) {
			t.Error("errors.Is should match the wrapped cause")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewSchemaUnavailable(nil)
		if err.Message != "schema not available" {
			t.Errorf("Message = %q, want %q", err.Message, "schema not available")
		}
	})
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		originalErr := fmt.Errorf("template store corrupted")
		err := NewInternal(originalErr)

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)
		if err.Message != "internal error" {
			t.Errorf("Message = %q, want %q", err.Message, "internal error")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound("template", "test")
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound("template", "test")
		if Is(err, ErrSchemaUnavailable) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-ScoutError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for non-ScoutError")
		}
	})
}
