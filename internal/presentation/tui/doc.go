// Package tui holds the terminal presentation helpers of the CLI: the banner,
// diagnostic listings and the glamour Markdown renderer.
package tui
