package models

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	user := User{ID: 3, FirstName: "Ann", LastName: "Lee", Email: "a@x.com", PasswdHash: &hash}

	public := user.Sanitize()
	raw, err := json.Marshal(public)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "assw") {
		t.Errorf("sanitized user leaks a password field: %s", raw)
	}
	if public.ID != 3 || public.Email != "a@x.com" {
		t.Errorf("Sanitize() = %+v, want identity fields preserved", public)
	}
}

func TestProvisioned(t *testing.T) {
	u := User{}
	if !u.Provisioned() {
		t.Error("user without hash should be provisioned")
	}
	hash := "x"
	u.PasswdHash = &hash
	if u.Provisioned() {
		t.Error("user with hash should not be provisioned")
	}
}

func TestStatusErrors(t *testing.T) {
	if err := NewValidationError(MsgMissingFields); err.Code != http.StatusUnprocessableEntity || !err.ClientFault() {
		t.Errorf("validation error misclassified: %+v", err)
	}
	if err := NewConflictError(MsgEmailExists); !errors.Is(err, ErrEmailAlreadyUsed) {
		t.Errorf("conflict error should unwrap to ErrEmailAlreadyUsed")
	}
	cause := errors.New("boom")
	ierr := NewInternalError(cause)
	if ierr.ClientFault() {
		t.Error("internal error must be a server fault")
	}
	if !errors.Is(ierr, cause) {
		t.Error("internal error should wrap its cause")
	}
	if ierr.Message != MsgInternalError {
		t.Errorf("internal error message = %q, want generic", ierr.Message)
	}
}
