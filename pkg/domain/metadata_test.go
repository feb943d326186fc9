package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/timescript/pkg/domain"
)

func TestMetadata_SetKeepsFirstPosition(t *testing.T) {
	m := domain.NewMetadata("b", "1", "a", "2")
	m.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestMetadata_JSONOrder(t *testing.T) {
	m := domain.NewMetadata("zeta", "1", "alpha", "2")
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"1","alpha":"2"}`, string(data))

	var back domain.Metadata
	require.NoError(t, json.Unmarshal([]byte(`{"y":"1","x":"2"}`), &back))
	assert.Equal(t, []string{"y", "x"}, back.Keys())
}

func TestMetadata_JSONRejectsNonString(t *testing.T) {
	var m domain.Metadata
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &m))
}

func TestMetadata_YAMLOrder(t *testing.T) {
	m := domain.NewMetadata("zeta", "1", "alpha", "2")
	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "zeta: \"1\"\nalpha: \"2\"\n", string(data))

	var back domain.Metadata
	require.NoError(t, yaml.Unmarshal([]byte("y: one\nx: two\n"), &back))
	assert.Equal(t, []string{"y", "x"}, back.Keys())
}

func TestMetadata_Equal(t *testing.T) {
	a := domain.NewMetadata("a", "1", "b", "2")
	b := domain.NewMetadata("b", "2", "a", "1")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(domain.NewMetadata("a", "1")))
	assert.True(t, domain.Metadata{}.IsZero())
}
