// Package server serves the editor over HTTP: the page itself, form posts
// for browsers without JavaScript, a small JSON API used by the bundled
// script, the preview fragment and the static assets.
package server
