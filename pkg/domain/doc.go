/*
Package domain contains the core data model shared by the TimeScript compiler, validator and adapters.

It defines the compiled dialogue tree and the diagnostics produced while reading a script.
This package is kept pure and free of I/O so it can be reused by every adapter.

# Key Entities

  - Node: a compiled top-level statement (Dialogue, Question or Answer).
  - Statement: the header shared by every node (uiType, dataTag, voiceType, speaker, content, metadata).
  - Option: a branch attached to a Question.
  - ResponseBlock: the conversation body closing an Answer.
  - Metadata: an ordered string-to-string mapping taken from a trailing brace block.
  - Diagnostic: a positioned, severity-tagged finding.
  - Compilation: a compiled Document together with the compiler's warnings.
*/
package domain
