// Package memory provides an in-process DocumentCache.
package memory
