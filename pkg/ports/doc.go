/*
Package ports defines the driven ports (interfaces) of the TimeScript engine.

These interfaces decouple compilation from external implementations, so a
compiled document can be kept in memory, in Redis, or not at all.

# Key Interfaces

  - DocumentCache: stores Compilations keyed by a digest of their source.
*/
package ports
