package syntax

import "strings"

// Form is the statement kind of a line.
type Form int

const (
	FormUnknown Form = iota
	FormAnswer
	FormStatement
	FormOption
	FormConversation
	FormConversationEnd
	FormParameter
)

func (f Form) String() string {
	switch f {
	case FormAnswer:
		return "answer statement"
	case FormStatement:
		return "dialogue statement"
	case FormOption:
		return "question option"
	case FormConversation:
		return "conversation dialogue"
	case FormConversationEnd:
		return "conversation end"
	case FormParameter:
		return "parameter definition"
	default:
		return "unknown statement"
	}
}

// OptionIndent is the exact indentation that introduces a question option.
const OptionIndent = "        "

// Full-width punctuation marking a parameter definition.
const (
	ParamColon     = "："
	ParamSemicolon = "；"
)

// Classify assigns a significant line to a Form. The first matching rule wins,
// so the answer prefix must be tested before the generic "#[" prefix.
func Classify(line string) Form {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "#[(A1)"):
		return FormAnswer
	case strings.HasPrefix(trimmed, "#["):
		return FormStatement
	case strings.HasPrefix(line, OptionIndent+"-("):
		return FormOption
	case strings.HasPrefix(trimmed, "+#["):
		return FormConversation
	case strings.Contains(line, "#<") && strings.Contains(line, "end;"):
		return FormConversationEnd
	case strings.Contains(line, ParamColon) && strings.Contains(line, ParamSemicolon):
		return FormParameter
	default:
		return FormUnknown
	}
}
