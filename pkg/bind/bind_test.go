package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vyshnav-v/food-delivery/pkg/bind"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestJSONValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))

	var body loginBody
	errs, err := bind.JSON(r, &body)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if errs != nil {
		t.Fatalf("errs = %v", errs)
	}
	if body.Email != "a@b.co" {
		t.Errorf("email = %q", body.Email)
	}
}

func TestJSONValidationErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"email":"nope","password":"123"}`))

	var body loginBody
	errs, err := bind.JSON(r, &body)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if errs["email"] == "" || errs["password"] == "" {
		t.Errorf("expected field errors, got %v", errs)
	}
}

func TestJSONMalformed(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))

	var body loginBody
	if _, err := bind.JSON(r, &body); err == nil {
		t.Error("malformed JSON should error")
	}
}
