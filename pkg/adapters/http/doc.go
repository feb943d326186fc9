// Package http exposes the TimeScript engine as a small JSON API routed with chi.
package http
