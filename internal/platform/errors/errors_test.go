package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCode_Table(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want int
	}{
		{"validation is a client error", ErrorCodeValidation, http.StatusBadRequest},
		{"period is a client error", ErrorCodePeriod, http.StatusBadRequest},
		{"json is a client error", ErrorCodeJSON, http.StatusBadRequest},
		{"data insufficient is unprocessable", ErrorCodeDataInsufficient, http.StatusUnprocessableEntity},
		{"invalid argument is unprocessable", ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{"not found", ErrorCodeNotFound, http.StatusNotFound},
		{"unavailable", ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{"infra is a server error", ErrorCodeInfra, http.StatusInternalServerError},
		{"calculation is a server error", ErrorCodeCalculation, http.StatusInternalServerError},
		{"unknown falls back to 500", ErrorCode(9999), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatusCode(tc.code); got != tc.want {
				t.Fatalf("HTTPStatusCode(%d) = %d, want %d", tc.code, got, tc.want)
			}
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrs.New("socket closed")
	err := Infra(cause, "breeding data source failed")

	if CodeOf(err) != ErrorCodeInfra {
		t.Fatalf("CodeOf = %d, want infra", CodeOf(err))
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped cause should survive errors.Is")
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v, want original cause", Root(err))
	}
}

func TestMetadataCarriers(t *testing.T) {
	needs := []string{"INSEMINATION", "CALVING", "PREGNANCY_CHECK"}
	di := DataInsufficientf(needs, "no breeding events in window")
	e, ok := As(di)
	if !ok {
		t.Fatal("expected project error")
	}
	if len(e.Needs()) != 3 || e.Needs()[0] != "INSEMINATION" {
		t.Fatalf("needs not carried: %v", e.Needs())
	}
	if e.ToWire().Needs[2] != "PREGNANCY_CHECK" {
		t.Fatal("needs should surface on the wire payload")
	}

	pe := Periodf("2025-06..2025-01", "start after end")
	if e, _ := As(pe); e.Label() != "2025-06..2025-01" {
		t.Fatalf("label not carried: %q", e.Label())
	}

	ce := Calculationf("conceptionRate", 140.2, "value out of range")
	e, _ = As(ce)
	if e.Metric() != "conceptionRate" || e.Value() != 140.2 {
		t.Fatalf("metric metadata not carried: %q %v", e.Metric(), e.Value())
	}
}

func TestWithFieldCopyOnWrite(t *testing.T) {
	base := Validationf("", "must be positive")
	scoped := WithField(base, "inseminations")

	b, _ := As(base)
	s, _ := As(scoped)
	if b.Field() != "" {
		t.Fatal("original error mutated")
	}
	if s.Field() != "inseminations" {
		t.Fatalf("field not attached: %q", s.Field())
	}
}

func TestWireFrom_ForeignError(t *testing.T) {
	w := WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("unexpected wire: %+v", w)
	}
	if got := WireFrom(nil); got.Code != ErrorCodeUnknown || got.Message != "" {
		t.Fatalf("nil should map to zero wire, got %+v", got)
	}
}
