package validation

import (
	"testing"

	"github.com/kbukum/authd/internal/apperrors"
)

type signupForm struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
}

func TestValidate_Valid(t *testing.T) {
	form := signupForm{
		Username: "alice",
		Password: "correct horse",
		Email:    "alice@example.com",
	}
	if err := Validate(form); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	form := signupForm{
		Username: "ab",
		Password: "short",
		Email:    "not-an-email",
	}

	err := Validate(form)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected *apperrors.AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeInvalidInput {
		t.Errorf("code = %s, want INVALID_INPUT", appErr.Code)
	}

	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("details[fields] has type %T", appErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Fatalf("got %d field errors, want 3: %+v", len(fields), fields)
	}

	byField := make(map[string]string, len(fields))
	for _, fe := range fields {
		byField[fe.Field] = fe.Message
	}
	if msg := byField["username"]; msg != "must be at least 3 characters" {
		t.Errorf("username message = %q", msg)
	}
	if msg := byField["email"]; msg != "must be a valid email address" {
		t.Errorf("email message = %q", msg)
	}
}

func TestValidate_RequiredUsesJSONNames(t *testing.T) {
	err := Validate(signupForm{})
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}

	appErr, _ := apperrors.AsAppError(err)
	fields := appErr.Details["fields"].([]FieldError)
	for _, fe := range fields {
		switch fe.Field {
		case "username", "password", "email":
		default:
			t.Errorf("unexpected field name %q, want the json tag name", fe.Field)
		}
		if fe.Message != "is required" {
			t.Errorf("%s message = %q, want %q", fe.Field, fe.Message, "is required")
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Username":     "username",
		"PasswordHash": "password_hash",
		"ID":           "i_d",
		"email":        "email",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
