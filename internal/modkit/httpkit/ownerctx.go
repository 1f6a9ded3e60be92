package httpkit

import (
	"net/http"
	"strings"

	perrs "herdpulse/internal/platform/errors"
	pnet "herdpulse/internal/platform/net"
	phttp "herdpulse/internal/platform/net/http"

	"github.com/google/uuid"
)

// OwnerHeader carries the herd owner the request is scoped to
const OwnerHeader = "X-Owner-ID"

// RequireOwner reads the owner header, validates it, and scopes the request context
// requests without a well formed owner id are rejected before any handler runs
func RequireOwner() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(OwnerHeader))
			if raw == "" {
				phttp.RespondError(w, r, perrs.Validationf("owner_id", "missing %s header", OwnerHeader))
				return
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				phttp.RespondError(w, r, perrs.Validationf("owner_id", "malformed %s header", OwnerHeader))
				return
			}
			ctx := pnet.WithOwner(r.Context(), id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Owner returns the owner id from the request context
func Owner(r *http.Request) (string, error) {
	oid := pnet.OwnerID(r.Context())
	if oid == "" {
		return "", perrs.Validationf("owner_id", "missing owner scope")
	}
	return oid, nil
}

// MustOwner returns the owner id or panics
// only use on routes behind RequireOwner
func MustOwner(r *http.Request) string {
	oid, err := Owner(r)
	if err != nil {
		panic(err)
	}
	return oid
}
