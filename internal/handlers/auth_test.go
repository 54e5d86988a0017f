package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"countdown_timers/internal/repository"
	"countdown_timers/internal/service"
)

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	auth := &mockAuth{signUpID: 42, genTokenToken: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth}, true)

	w := doRequest(r, http.MethodPost, "/auth/sign-up", `{"username":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 42 || auth.lastSignUpUsername != "u" {
		t.Fatalf("sign-up response %v, username %q", m, auth.lastSignUpUsername)
	}

	w = doRequest(r, http.MethodPost, "/auth/sign-in", `{"username":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}

	if w := doRequest(r, http.MethodPost, "/auth/sign-in", `{"username":1}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_ErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		auth *mockAuth
		path string
		want int
	}{
		{"sign-up duplicate", &mockAuth{signUpErr: fmt.Errorf("create user: %w", repository.ErrUsernameTaken)}, "/auth/sign-up", http.StatusConflict},
		{"sign-up bad password", &mockAuth{signUpErr: fmt.Errorf("invalid password")}, "/auth/sign-up", http.StatusBadRequest},
		{"sign-up disabled", &mockAuth{signUpErr: service.ErrAuthDisabled}, "/auth/sign-up", http.StatusServiceUnavailable},
		{"sign-in wrong password", &mockAuth{genTokenErr: service.ErrInvalidPassword}, "/auth/sign-in", http.StatusUnauthorized},
		{"sign-in disabled", &mockAuth{genTokenErr: service.ErrAuthDisabled}, "/auth/sign-in", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tc.auth}, true)
			w := doRequest(r, http.MethodPost, tc.path, `{"username":"u","password":"p"}`, nil)
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
