package apispec_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-reportforms/pkg/apispec"
)

func TestDefault_IndexesOperations(t *testing.T) {
	spec, err := apispec.Default()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := map[string][2]string{
		apispec.OpGetKV:              {http.MethodGet, "/api/kv/{key}"},
		apispec.OpPutKV:              {http.MethodPut, "/api/kv/{key}"},
		apispec.OpGetDeviceSettings:  {http.MethodGet, "/api/device-settings"},
		apispec.OpPutDeviceSettings:  {http.MethodPut, "/api/device-settings"},
		apispec.OpListInvoices:       {http.MethodGet, "/api/invoices"},
		apispec.OpGetInvoicePdf:      {http.MethodGet, "/api/invoices/{id}/pdf"},
		apispec.OpListDeliveryNotes:  {http.MethodGet, "/api/delivery-notes"},
		apispec.OpGetDeliveryNotePdf: {http.MethodGet, "/api/delivery-notes/by-id/{id}/pdf"},
	}
	for id, want := range cases {
		op, ok := spec.Operation(id)
		if !ok {
			t.Fatalf("operation %s missing", id)
		}
		if op.Method != want[0] || op.Path != want[1] {
			t.Fatalf("%s: want %s %s, got %s %s", id, want[0], want[1], op.Method, op.Path)
		}
	}
	if got := len(spec.Operations()); got != len(cases) {
		t.Fatalf("expected %d operations, got %d", len(cases), got)
	}
}

func TestOperation_Expand(t *testing.T) {
	spec, err := apispec.Default()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	op, _ := spec.Operation(apispec.OpGetKV)

	path, err := op.Expand(map[string]string{"key": "reportTemplates.remittance"})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if path != "/api/kv/reportTemplates.remittance" {
		t.Fatalf("unexpected path %q", path)
	}

	path, _ = op.Expand(map[string]string{"key": "a b/c"})
	if path != "/api/kv/a%20b%2Fc" {
		t.Fatalf("expected escaped segment, got %q", path)
	}

	if _, err := op.Expand(nil); err == nil {
		t.Fatalf("expected missing parameter error")
	}
	if _, err := op.Expand(map[string]string{"id": "1"}); err == nil {
		t.Fatalf("expected unknown parameter error")
	}
}

func TestValidateResponse(t *testing.T) {
	spec, err := apispec.Default()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	good := map[string]any{"invoices": []any{map[string]any{"id": 12.0, "invoiceNo": "INV-1"}}}
	if err := spec.ValidateResponse(apispec.OpListInvoices, http.StatusOK, good); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	bad := map[string]any{"invoices": "none"}
	if err := spec.ValidateResponse(apispec.OpListInvoices, http.StatusOK, bad); err == nil {
		t.Fatalf("expected schema error")
	}

	if err := spec.ValidateResponse(apispec.OpGetKV, http.StatusOK, map[string]any{"ok": true, "value": nil}); err != nil {
		t.Fatalf("null kv value rejected: %v", err)
	}
	if err := spec.ValidateResponse("nope", http.StatusOK, nil); err == nil {
		t.Fatalf("expected unknown operation error")
	}
}

func TestValidateRequest(t *testing.T) {
	spec, err := apispec.Default()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := spec.ValidateRequest(apispec.OpPutDeviceSettings, map[string]any{"settings": map[string]any{}}); err != nil {
		t.Fatalf("valid body rejected: %v", err)
	}
	if err := spec.ValidateRequest(apispec.OpPutDeviceSettings, map[string]any{}); err == nil {
		t.Fatalf("expected missing settings error")
	}
}

func TestLoad_RejectsEmpty(t *testing.T) {
	if _, err := apispec.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
