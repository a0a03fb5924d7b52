package model

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-reportforms/pkg/schema"
)

var errTemplateMissing = errors.New("model builder: template is required")

func validateInput(kind schema.Kind, template any) error {
	if _, ok := schema.Lookup(kind); !ok {
		return fmt.Errorf("model builder: %w: %q", schema.ErrUnknownKind, kind)
	}
	if template == nil {
		return errTemplateMissing
	}
	return nil
}
