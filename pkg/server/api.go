package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/goliatone/go-reportforms/pkg/editor"
	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

type stateResponse struct {
	Kind         string            `json:"kind"`
	Title        string            `json:"title"`
	Status       string            `json:"status"`
	Busy         bool              `json:"busy"`
	Template     any               `json:"template"`
	Helper       editor.Helper     `json:"helper"`
	PreviewNonce int               `json:"previewNonce"`
	Documents    documentsResponse `json:"documents"`
}

type documentsResponse struct {
	Loading      bool                 `json:"loading"`
	Error        string               `json:"error,omitempty"`
	Invoice      *remote.Invoice      `json:"invoice,omitempty"`
	DeliveryNote *remote.DeliveryNote `json:"deliveryNote,omitempty"`
}

type editRequest struct {
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

type selectRequest struct {
	Kind string `json:"kind"`
}

type editResponse struct {
	State stateResponse `json:"state"`
	Error string        `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) snapshot() stateResponse {
	state := s.editor.State()
	return stateResponse{
		Kind:         state.Selected.String(),
		Title:        state.Title(),
		Status:       state.StatusText(),
		Busy:         state.Busy,
		Template:     state.Active(),
		Helper:       s.editor.Helper(),
		PreviewNonce: state.PreviewNonce,
		Documents: documentsResponse{
			Loading:      state.Documents.Loading,
			Error:        state.Documents.Error,
			Invoice:      state.Documents.Invoice,
			DeliveryNote: state.Documents.DeliveryNote,
		},
	}
}

func (s *Server) apiState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) apiSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.selectKind(r.Context(), req.Kind); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

// apiEdit sets one field. Edit failures still answer with the current state
// so the page can keep its status line in sync.
func (s *Server) apiEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if req.Kind != "" {
		if err := s.selectKind(r.Context(), req.Kind); err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}
	}

	value, err := editValue(s.editor.State().Selected, req.Path, req.Value)
	if err == nil {
		err = s.editor.Edit(r.Context(), req.Path, value)
	}
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, schema.ErrUnknownField) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, editResponse{State: s.snapshot(), Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, editResponse{State: s.snapshot()})
}

// editValue checks a JSON value against the field at path. Text aimed at a
// number or boolean is parsed the way a form post is. Number fields take
// finite numbers only.
func editValue(kind schema.Kind, path string, value any) (any, error) {
	field, err := schema.FieldByPath(kind, path)
	if err != nil {
		return nil, err
	}
	if text, ok := value.(string); ok && field.Type != schema.FieldString {
		return schema.ParseValue(field, text)
	}
	switch field.Type {
	case schema.FieldNumber:
		v, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("server: %s expects a number, got %T", path, value)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("server: %s expects a finite number", path)
		}
	case schema.FieldBoolean:
		if _, ok := value.(bool); !ok {
			return nil, fmt.Errorf("server: %s expects a boolean, got %T", path, value)
		}
	}
	return value, nil
}

func (s *Server) apiAction(run func(context.Context)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run(r.Context())
		writeJSON(w, http.StatusOK, s.snapshot())
	}
}

func (s *Server) apiPreview(w http.ResponseWriter, _ *http.Request) {
	p, err := s.editor.Preview()
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
