package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/timescript/pkg/syntax"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  map[string]string
	}{
		{"pairs", "a:1, b:2", map[string]string{"a": "1", "b": "2"}},
		{"no colon", "malformed", map[string]string{}},
		{"missing value", "a:, b:2", map[string]string{"b": "2"}},
		{"missing key", " :1", map[string]string{}},
		{"value keeps later colons", "time:10:30", map[string]string{"time": "10:30"}},
		{"later duplicate wins", "a:1,a:2", map[string]string{"a": "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, syntax.ParseMetadata(tt.block).Map())
		})
	}
}
