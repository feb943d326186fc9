// Package mcp exposes the TimeScript engine as Model Context Protocol tools
// (compile_script, validate_script) and a grammar resource.
package mcp
