package export_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/timescript/pkg/compiler"
	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/export"
)

const script = `#[T1-A]-Default<N>~: Title
#[Q1-A]-Default<S>~: Pick
        -(1)::[D1-A]-Default<P>::<L1>~: left
#[(A1)-A]-Default<S>~(1):
+#[D1-A]-Default<S>~: ok
#<L1> end;
`

func compile(t *testing.T) domain.Document {
	t.Helper()
	res := compiler.New().Compile(script)
	require.Empty(t, res.Warnings)
	return res.Document
}

func TestToJSON_Indented(t *testing.T) {
	data, err := export.ToJSON(compile(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"type\": \"title\"")

	var back domain.Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, compile(t), back)
}

func TestToJSON_Empty(t *testing.T) {
	data, err := export.ToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestToYAML(t *testing.T) {
	data, err := export.ToYAML(compile(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), "- type: title")

	var back domain.Document
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, compile(t), back)
}

func TestToEngine(t *testing.T) {
	data, err := export.ToEngine(compile(t))
	require.NoError(t, err)

	var env struct {
		Version   string            `json:"version"`
		Language  string            `json:"language"`
		Dialogues []json.RawMessage `json:"dialogues"`
		Metadata  export.Summary    `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, "1.0.0", env.Version)
	assert.Equal(t, "timescript", env.Language)
	assert.Len(t, env.Dialogues, 3)
	assert.Equal(t, export.Summary{TotalDialogues: 3, Questions: 1, Answers: 1}, env.Metadata)
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	_, err := export.Encode(nil, export.Format("xml"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSON, f)

	f, err = export.ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, export.FormatYAML, f)
	assert.Equal(t, "application/yaml", f.ContentType())

	_, err = export.ParseFormat("toml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
