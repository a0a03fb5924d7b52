// Package orchestrator wires the template → form model → decorators →
// renderer pipeline behind a single entry point. Callers inject their own
// builder, decorators, renderers or theme selector where the defaults do not
// fit.
package orchestrator
