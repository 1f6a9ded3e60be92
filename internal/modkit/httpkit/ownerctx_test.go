package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireOwner(t *testing.T) {
	t.Parallel()

	const owner = "6f1b0c9e-9a1e-4e29-8f0d-2f4a4a1b9c11"

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = MustOwner(r)
		w.WriteHeader(http.StatusOK)
	})
	h := RequireOwner()(next)

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantOwner  string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusBadRequest},
		{name: "malformed id", header: "not-a-uuid", wantStatus: http.StatusBadRequest},
		{name: "valid id", header: owner, wantStatus: http.StatusOK, wantOwner: owner},
		{name: "padded id", header: "  " + owner + "  ", wantStatus: http.StatusOK, wantOwner: owner},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/breeding/metrics", nil)
			if tc.header != "" {
				req.Header.Set(OwnerHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantOwner != "" && seen != tc.wantOwner {
				t.Fatalf("owner in ctx = %q, want %q", seen, tc.wantOwner)
			}
			if tc.wantStatus != http.StatusOK {
				var env Envelope
				if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
					t.Fatalf("error body is not envelope JSON: %v", err)
				}
				if env.Field != "owner_id" {
					t.Fatalf("envelope field = %q, want owner_id", env.Field)
				}
			}
		})
	}
}

func TestOwner_MissingScope(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := Owner(req); err == nil {
		t.Fatalf("Owner returned nil error without scope")
	}
}
