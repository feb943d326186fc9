package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timescript"
	"github.com/aretw0/timescript/pkg/domain"
)

const script = "#[T1-A]-Default<N>~: Title\n#[d1-A]-Default<S>~: broken"

func newTestServer() *Server {
	return NewServer(timescript.New(), nil)
}

func TestHandleCompile(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleCompile(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": script,
	})
	require.NoError(t, err)
	assert.Equal(t, "json", resp.Format)
	assert.Equal(t, 1, resp.Nodes)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, 2, resp.Warnings[0].Line)

	var doc domain.Document
	require.NoError(t, json.Unmarshal([]byte(resp.Output), &doc))
	assert.Equal(t, domain.KindTitle, doc[0].Kind())
}

func TestHandleCompile_YAMLAndBadFormat(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleCompile(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": script,
		"format": "yaml",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Output, "type: title")

	_, err = s.handleCompile(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": script,
		"format": "xml",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestHandleCompile_BadArguments(t *testing.T) {
	s := newTestServer()
	_, err := s.handleCompile(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": []int{1, 2},
	})
	assert.Error(t, err)
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": script,
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, 1, resp.Errors)
	require.Len(t, resp.Diagnostics, 1)
	assert.Equal(t, domain.DiagPattern, resp.Diagnostics[0].Kind)
}

func TestHandleValidate_Clean(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": "#[D1-A]-Default<S>~: fine",
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.NotNil(t, resp.Diagnostics)
}

func TestReadGrammar(t *testing.T) {
	s := newTestServer()
	contents, err := s.readGrammar(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, GrammarURI, text.URI)
	assert.Contains(t, text.Text, "#<label> end;")
}
