// Package uischema loads the label overlays of the edit panel and applies
// them to form models: section titles, Japanese field labels, widgets,
// placeholders and help text. The model builder stays unaware of the
// overlays; the orchestrator opts into the decorator.
package uischema
