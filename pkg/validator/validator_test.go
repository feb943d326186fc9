package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/validator"
)

const clean = `// Chapter one
#[T1-A]-Default<N>~: The Clock Tower
#[Q1-A]-Default<Guard>~: Who goes there? {mood:stern}
        -(1)::[D1-A]-Default<Hero>::<L1>~: A friend.
        -(2)::[D1-A]-V1<Hero>::<L2>~: Nobody.
#[(A1)-A]-Default<Guard>~(1):
+#[D1-A]-Default<Guard>~: Then pass.
#<L1> end;
speed：fast；
`

func TestValidate_Clean(t *testing.T) {
	diags := validator.New().Validate(clean)
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestValidate_FieldValues(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		column int
		msg    string
	}{
		{"ui type", "#[ZZ-A]-Default<S>~: hi", 3, "Invalid UI type: ZZ"},
		{"voice type", "#[D1-A]-X9<S>~: hi", 9, "Invalid voice type: X9"},
		{"missing content", "#[D1-A]-Default<S>~:", 21, "Missing dialogue content"},
		{"answer voice", "#[(A1)-A]-X9<S>~(1):\n#<x> end;", 11, "Invalid voice type: X9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := validator.New().Validate(tt.src)
			require.Len(t, diags, 1, "%v", diags)
			assert.Equal(t, 1, diags[0].Line)
			assert.Equal(t, tt.column, diags[0].Column)
			assert.Equal(t, tt.msg, diags[0].Message)
			assert.Equal(t, domain.SeverityError, diags[0].Severity)
		})
	}
}

func TestValidate_MissingClosingBrace(t *testing.T) {
	diags := validator.New().Validate("#[D1-A]-Default<S>~: hi {a:1")
	require.Len(t, diags, 2)

	assert.Equal(t, "Missing closing brace in data block", diags[0].Message)
	assert.Equal(t, 28, diags[0].Column)
	assert.Equal(t, domain.DiagField, diags[0].Kind)

	assert.Equal(t, domain.DiagStructure, diags[1].Kind)
	assert.Equal(t, domain.SeverityWarning, diags[1].Severity)
}

func TestValidate_PatternMismatch(t *testing.T) {
	diags := validator.New().Validate("#[d1-A]-Default<S>~: hi")
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Column)
	assert.Equal(t, domain.DiagPattern, diags[0].Kind)
	assert.Equal(t, "Invalid dialogue statement format: expected uiType", diags[0].Message)
}

func TestValidate_OptionID(t *testing.T) {
	src := "#[Q1-A]-Default<S>~: pick\n        -(100)::[D1-A]-Default<P>::<L1>~: x"
	diags := validator.New().Validate(src)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 11, diags[0].Column)
	assert.Equal(t, "Option ID must be between 0 and 99", diags[0].Message)
}

func TestValidate_OptionIDOverflowWithoutContent(t *testing.T) {
	src := "#[Q1-A]-Default<S>~: pick\n        -(99999999999999999999999)::[D1-A]-Default<S>::<L1>~:"
	diags := validator.New().Validate(src)
	require.Len(t, diags, 2, "%v", diags)
	assert.Equal(t, "Missing dialogue content", diags[0].Message)
	assert.Equal(t, 62, diags[0].Column)
	assert.Equal(t, "Option ID must be between 0 and 99", diags[1].Message)
	assert.Equal(t, 11, diags[1].Column)
}

func TestValidate_ParameterKeepsQuestionOpen(t *testing.T) {
	src := "#[Q1-A]-Default<S>~: pick\n" +
		"speed：1；\n" +
		"        -(1)::[D1-A]-Default<S>::<L1>~: go"
	assert.Empty(t, validator.New().Validate(src))
}

func TestValidate_ColumnsCountLeadingWhitespace(t *testing.T) {
	diags := validator.New().Validate("    #[ZZ-A]-Default<S>~: hi")
	require.Len(t, diags, 1)
	assert.Equal(t, "Invalid UI type: ZZ", diags[0].Message)
	assert.Equal(t, 7, diags[0].Column)
}

func TestValidate_BlockOnlyIsContent(t *testing.T) {
	assert.Empty(t, validator.New().Validate("#[D1-A]-Default<S>~: {a:1}"))
}

func TestValidate_OptionWithoutQuestion(t *testing.T) {
	src := "#[D1-A]-Default<S>~: aside\n        -(1)::[D1-A]-Default<P>::<L1>~: x"
	diags := validator.New().Validate(src)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, domain.DiagContext, diags[0].Kind)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
}

func TestValidate_ConversationContext(t *testing.T) {
	diags := validator.New().Validate("+#[D1-A]-Default<S>~: orphan")
	require.Len(t, diags, 1)
	assert.Equal(t, domain.DiagContext, diags[0].Kind)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
}

func TestValidate_ConversationBalance(t *testing.T) {
	src := "#[(A1)-A]-Default<S>~(1):\n+#[D1-A]-Default<S>~: hi"
	diags := validator.New().Validate(src)
	require.Len(t, diags, 1)
	assert.Equal(t, domain.Diagnostic{
		Line:     1,
		Column:   1,
		Message:  "Mismatched conversation blocks: 1 opened, 0 closed",
		Severity: domain.SeverityError,
		Kind:     domain.DiagStructure,
	}, diags[0])
}

func TestValidate_EndWithoutAnswer(t *testing.T) {
	diags := validator.New().Validate("#<x> end;")
	require.Len(t, diags, 2)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
	assert.Equal(t, domain.DiagContext, diags[0].Kind)
	assert.Equal(t, domain.DiagStructure, diags[1].Kind)
}

func TestValidate_ReopenedAnswer(t *testing.T) {
	src := "#[(A1)-A]-Default<S>~(1):\n" +
		"+#[D1-A]-Default<S>~: one\n" +
		"#[(A1)-A]-Default<S>~(2):\n" +
		"#<x> end;"
	diags := validator.New().Validate(src)
	require.Len(t, diags, 2)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[1].Message, "2 opened, 1 closed")
}

func TestValidate_LooseEndMarker(t *testing.T) {
	src := "#[(A1)-A]-Default<S>~(1):\nso #<x> end; maybe\n#<x> end;"
	diags := validator.New().Validate(src)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
	assert.Contains(t, diags[0].Message, "Invalid conversation end format")
}

func TestValidate_UnterminatedComment(t *testing.T) {
	diags := validator.New().Validate("#[D1-A]-Default<S>~: seen\n/* open\n#[D1-A]-Default<S>~: hidden")
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "Unterminated block comment", diags[0].Message)
}

func TestValidate_CustomConfig(t *testing.T) {
	cfg := validator.DefaultConfig()
	cfg.QID = validator.Range{Min: 1, Max: 5}
	cfg.UITypes = []string{"D1", "X1"}
	v := validator.New(validator.WithConfig(cfg))

	diags := v.Validate("#[(A1)-A]-Default<S>~(9):\n#<x> end;\n#[X1-A]-Default<S>~: custom")
	require.Len(t, diags, 1)
	assert.Equal(t, 23, diags[0].Column)
	assert.Equal(t, "QID must be between 1 and 5", diags[0].Message)
}

func TestValidate_EmptyTypeListsFallBack(t *testing.T) {
	v := validator.New(validator.WithConfig(validator.Config{OptionID: validator.Range{Max: 99}, QID: validator.Range{Max: -1}}))
	assert.Equal(t, domain.DefaultUITypes(), v.Config().UITypes)
	assert.Empty(t, v.Validate(clean))
}

func TestValidate_DocumentChecksLast(t *testing.T) {
	src := "#[(A1)-A]-Default<S>~(1):\n#[ZZ-A]-Default<S>~: bad {x:1"
	diags := validator.New().Validate(src)
	require.Len(t, diags, 4)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, domain.DiagStructure, diags[2].Kind)
	assert.Equal(t, domain.DiagStructure, diags[3].Kind)
}

func TestRange(t *testing.T) {
	bounded := validator.Range{Min: 0, Max: 99}
	assert.True(t, bounded.Contains(0))
	assert.True(t, bounded.Contains(99))
	assert.False(t, bounded.Contains(100))

	open := validator.Range{Min: 0, Max: -1}
	assert.True(t, open.Contains(1 << 40))
	assert.False(t, open.Contains(-1))
}
