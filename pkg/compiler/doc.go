/*
Package compiler turns TimeScript source into a domain.Document.

Compilation is a single forward pass. The parse context (an open question
waiting for its options, an open response waiting for its conversation end)
is a value local to each Compile call, so one Compiler may serve concurrent
callers.

Lines that cannot be extracted are skipped. Every skip is logged at warn
level and recorded in the returned Compilation's warnings; nothing aborts a
compilation.
*/
package compiler
