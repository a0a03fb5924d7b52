// Package model defines the form model renderers consume: one Field per
// editable template leaf, grouped into Sections. Builders reside in
// internal/model but return the types defined here. Numeric bounds are
// exposed as min/max validation rules with string parameters so renderers
// can map them onto input attributes without losing deterministic JSON
// snapshots. UIHints carry renderer directives such as widget, rows,
// placeholder and helpText; overlays from pkg/uischema fill them in.
package model
