package mcp_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaknative/verbgen/internal/assemble"
	"github.com/speaknative/verbgen/internal/catalog"
	"github.com/speaknative/verbgen/internal/generator"
	"github.com/speaknative/verbgen/internal/lookup"
	verbmcp "github.com/speaknative/verbgen/internal/mcp"
)

func newMCPServer(t *testing.T) *verbmcp.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat, err := catalog.Default()
	require.NoError(t, err)
	res, err := generator.New(assemble.DefaultDialects(), logger).Generate(cat)
	require.NoError(t, err)
	return verbmcp.NewServer(lookup.NewIndex(res.Records, lookup.DefaultAggregates()), "test", logger)
}

// makeReq builds a CallToolRequest with the given arguments.
func makeReq(toolName string, args map[string]any) mcpgo.CallToolRequest {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = toolName
	req.Params.Arguments = args
	return req
}

// textContent extracts the first TextContent string from a CallToolResult.
func textContent(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "expected at least one content item")
	tc, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text
}

func decode(t *testing.T, result *mcpgo.CallToolResult) map[string]any {
	t.Helper()
	require.False(t, result.IsError, "tool returned error: %s", textContent(t, result))
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &out))
	return out
}

func TestMCPListVerbs(t *testing.T) {
	srv := newMCPServer(t)
	ctx := context.Background()

	result, err := srv.HandleListVerbs(ctx, makeReq("list_verbs", nil))
	require.NoError(t, err)
	out := decode(t, result)
	assert.Len(t, out["ids"], 50)

	result, err = srv.HandleListVerbs(ctx, makeReq("list_verbs", map[string]any{"source": "co", "target": "us"}))
	require.NoError(t, err)
	out = decode(t, result)
	verbs := out["verbs"].([]any)
	assert.Equal(t, "to be", verbs[0].(map[string]any)["infinitive"])

	result, err = srv.HandleListVerbs(ctx, makeReq("list_verbs", map[string]any{"source": "co"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMCPGetVerb(t *testing.T) {
	srv := newMCPServer(t)
	ctx := context.Background()

	result, err := srv.HandleGetVerb(ctx, makeReq("get_verb", map[string]any{"id": "ir"}))
	require.NoError(t, err)
	out := decode(t, result)
	assert.Equal(t, "ir", out["id"])
	infinitive := out["infinitive"].(map[string]any)
	assert.Equal(t, "to go", infinitive["us-ca"])

	result, err = srv.HandleGetVerb(ctx, makeReq("get_verb", map[string]any{"id": "nadar"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "not found")

	result, err = srv.HandleGetVerb(ctx, makeReq("get_verb", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMCPConjugation_SingleForm(t *testing.T) {
	srv := newMCPServer(t)

	result, err := srv.HandleConjugation(context.Background(), makeReq("conjugation", map[string]any{
		"id": "tener", "locale": "co", "tense": "past", "person": "1p",
	}))
	require.NoError(t, err)
	out := decode(t, result)
	assert.Equal(t, "tuvimos", out["form"])
	assert.Equal(t, "co-cartagena", out["locale"])
}

func TestMCPConjugation_Tense(t *testing.T) {
	srv := newMCPServer(t)

	result, err := srv.HandleConjugation(context.Background(), makeReq("conjugation", map[string]any{
		"id": "ir", "locale": "us-ca", "tense": "past",
	}))
	require.NoError(t, err)
	out := decode(t, result)
	conj := out["conjugation"].(map[string]any)
	require.Len(t, conj, 1)
	assert.Equal(t, "went", conj["past"].(map[string]any)["3p"])
}

func TestMCPConjugation_Invalid(t *testing.T) {
	srv := newMCPServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing locale", map[string]any{"id": "tener"}},
		{"bad tense", map[string]any{"id": "tener", "locale": "co", "tense": "perfect"}},
		{"bad person", map[string]any{"id": "tener", "locale": "co", "tense": "past", "person": "2p"}},
		{"person without tense", map[string]any{"id": "tener", "locale": "co", "person": "1s"}},
		{"unknown locale", map[string]any{"id": "tener", "locale": "fr"}},
		{"unknown verb", map[string]any{"id": "nadar", "locale": "co"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.HandleConjugation(ctx, makeReq("conjugation", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
		})
	}
}

func TestMCPFindForm(t *testing.T) {
	srv := newMCPServer(t)
	ctx := context.Background()

	result, err := srv.HandleFindForm(ctx, makeReq("find_form", map[string]any{"form": "Tuvimos"}))
	require.NoError(t, err)
	out := decode(t, result)
	matches := out["matches"].([]any)
	require.Len(t, matches, 2)
	assert.Equal(t, "past", matches[0].(map[string]any)["tense"])

	result, err = srv.HandleFindForm(ctx, makeReq("find_form", map[string]any{"form": " "}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMCPNilIndex(t *testing.T) {
	srv := verbmcp.NewServer(nil, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NotNil(t, srv.MCPServer())

	result, err := srv.HandleGetVerb(context.Background(), makeReq("get_verb", map[string]any{"id": "ser"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
