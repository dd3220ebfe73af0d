package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestClientRegister(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/users" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["name"] != "Ann" || body["email"] != "ann@example.com" || body["password"] != "longenough" {
			t.Errorf("unexpected payload: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok123"}`))
	})

	token, err := c.Register(context.Background(), "Ann", "ann@example.com", "longenough")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok123" {
		t.Errorf("token: want tok123, got %s", token)
	}
}

func TestClientLogin(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok456"}`))
	})

	token, err := c.Login(context.Background(), "ann@example.com", "longenough")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok456" {
		t.Errorf("token: want tok456, got %s", token)
	}
}

func TestClientLoginErrorPayload(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"msg":"Invalid credentials"}]}`))
	})

	_, err := c.Login(context.Background(), "ann@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestClientRegisterJoinsValidationErrors(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"msg":"Name is required","param":"name"},{"msg":"Please enter a valid email","param":"email"}]}`))
	})

	_, err := c.Register(context.Background(), "", "nope", "longenough")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Name is required; Please enter a valid email"
	if err.Error() != want {
		t.Errorf("message: want %q, got %q", want, err.Error())
	}
}

func TestClientNonJSONError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Server error"))
	})

	_, err := c.Login(context.Background(), "ann@example.com", "longenough")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "server returned status 500" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestClientWhoami(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/auth" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if tok := r.Header.Get("x-auth-token"); tok != "tok123" {
			t.Errorf("unexpected token header: %s", tok)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","name":"Ann","email":"ann@example.com","avatar":"https://gravatar.test/a"}`))
	})

	info, err := c.Whoami(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != "u1" || info.Name != "Ann" || info.Email != "ann@example.com" {
		t.Errorf("unexpected profile: %+v", info)
	}
}

func TestClientWhoamiUnauthorized(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"Token is not valid"}`))
	})

	_, err := c.Whoami(context.Background(), "bad")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Token is not valid" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
