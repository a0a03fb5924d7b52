// Package apispec loads the OpenAPI description of the backends the editor
// talks to. The remote client builds its request paths from it, and tests
// validate fake server payloads against the same schemas.
package apispec

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation identifiers declared in remote.yaml.
const (
	OpGetKV              = "getKV"
	OpPutKV              = "putKV"
	OpGetDeviceSettings  = "getDeviceSettings"
	OpPutDeviceSettings  = "putDeviceSettings"
	OpListInvoices       = "listInvoices"
	OpGetInvoicePdf      = "getInvoicePdf"
	OpListDeliveryNotes  = "listDeliveryNotes"
	OpGetDeliveryNotePdf = "getDeliveryNotePdf"
)

//go:embed remote.yaml
var remoteDocument []byte

// Operation is one endpoint of the remote surface.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string

	request   *openapi3.SchemaRef
	responses map[int]*openapi3.SchemaRef
}

// Spec is a parsed and validated document.
type Spec struct {
	doc        *openapi3.T
	raw        []byte
	operations map[string]Operation
}

var (
	defaultOnce sync.Once
	defaultSpec *Spec
	defaultErr  error
)

// Default returns the embedded description, parsed once.
func Default() (*Spec, error) {
	defaultOnce.Do(func() {
		defaultSpec, defaultErr = Load(context.Background(), remoteDocument)
	})
	return defaultSpec, defaultErr
}

// Raw returns the embedded YAML document.
func Raw() []byte {
	return append([]byte(nil), remoteDocument...)
}

// Load parses raw, validates it and indexes its operations by operationId.
func Load(ctx context.Context, raw []byte) (*Spec, error) {
	if len(raw) == 0 {
		return nil, errors.New("apispec: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("apispec: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		collectOperation(operations, http.MethodGet, path, item.Get)
		collectOperation(operations, http.MethodPut, path, item.Put)
		collectOperation(operations, http.MethodPost, path, item.Post)
		collectOperation(operations, http.MethodDelete, path, item.Delete)
	}
	if len(operations) == 0 {
		return nil, errors.New("apispec: no operations extracted")
	}
	return &Spec{doc: doc, raw: raw, operations: operations}, nil
}

func collectOperation(target map[string]Operation, method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	out := Operation{
		ID:        id,
		Method:    method,
		Path:      path,
		Summary:   op.Summary,
		request:   requestSchema(op.RequestBody),
		responses: responseSchemas(op.Responses),
	}
	target[id] = out
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	if mt := body.Value.Content.Get("application/json"); mt != nil {
		return mt.Schema
	}
	return nil
}

func responseSchemas(responses *openapi3.Responses) map[int]*openapi3.SchemaRef {
	if responses == nil || responses.Len() == 0 {
		return nil
	}
	out := make(map[int]*openapi3.SchemaRef)
	for status, ref := range responses.Map() {
		code, err := strconv.Atoi(status)
		if err != nil || ref == nil || ref.Value == nil {
			continue
		}
		if mt := ref.Value.Content.Get("application/json"); mt != nil && mt.Schema != nil {
			out[code] = mt.Schema
		}
	}
	return out
}

// Title is the document title.
func (s *Spec) Title() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Title
}

// Operation returns the operation registered under id.
func (s *Spec) Operation(id string) (Operation, bool) {
	op, ok := s.operations[id]
	return op, ok
}

// Operations lists every operation sorted by path then method.
func (s *Spec) Operations() []Operation {
	out := make([]Operation, 0, len(s.operations))
	for _, op := range s.operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Expand substitutes path parameters, escaping each value as a single path
// segment.
func (op Operation) Expand(params map[string]string) (string, error) {
	path := op.Path
	for name, value := range params {
		token := "{" + name + "}"
		if !strings.Contains(path, token) {
			return "", fmt.Errorf("apispec: %s has no parameter %q", op.ID, name)
		}
		path = strings.ReplaceAll(path, token, url.PathEscape(value))
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("apispec: %s missing path parameters in %s", op.ID, path)
	}
	return path, nil
}

// ValidateRequest checks a decoded JSON request body against the operation.
func (s *Spec) ValidateRequest(id string, body any) error {
	op, ok := s.operations[id]
	if !ok {
		return fmt.Errorf("apispec: unknown operation %q", id)
	}
	if op.request == nil || op.request.Value == nil {
		return nil
	}
	if err := op.request.Value.VisitJSON(body); err != nil {
		return fmt.Errorf("apispec: %s request: %w", id, err)
	}
	return nil
}

// ValidateResponse checks a decoded JSON response body for status against
// the operation. Statuses without a JSON schema are accepted.
func (s *Spec) ValidateResponse(id string, status int, body any) error {
	op, ok := s.operations[id]
	if !ok {
		return fmt.Errorf("apispec: unknown operation %q", id)
	}
	ref := op.responses[status]
	if ref == nil || ref.Value == nil {
		return nil
	}
	if err := ref.Value.VisitJSON(body); err != nil {
		return fmt.Errorf("apispec: %s response %d: %w", id, status, err)
	}
	return nil
}
