// Package mcp implements the Model Context Protocol server for verbgen.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/speaknative/verbgen/internal/lookup"
	"github.com/speaknative/verbgen/internal/models"
)

// Server wraps an MCPServer with the verb index.
type Server struct {
	mcp    *mcpserver.MCPServer
	index  *lookup.Index
	logger *slog.Logger
}

// NewServer creates a new MCP server. If idx is nil every tool call returns
// an error response instead of panicking.
func NewServer(idx *lookup.Index, version string, logger *slog.Logger) *Server {
	s := &Server{
		index:  idx,
		logger: logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"verbgen",
		version,
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildListVerbsTool(), s.handleListVerbs)
	mcpSrv.AddTool(buildGetVerbTool(), s.handleGetVerb)
	mcpSrv.AddTool(buildConjugationTool(), s.handleConjugation)
	mcpSrv.AddTool(buildFindFormTool(), s.handleFindForm)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleListVerbs is the exported handler for the "list_verbs" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleListVerbs(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListVerbs(ctx, req)
}

// HandleGetVerb is the exported handler for the "get_verb" tool.
func (s *Server) HandleGetVerb(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleGetVerb(ctx, req)
}

// HandleConjugation is the exported handler for the "conjugation" tool.
func (s *Server) HandleConjugation(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleConjugation(ctx, req)
}

// HandleFindForm is the exported handler for the "find_form" tool.
func (s *Server) HandleFindForm(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleFindForm(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// --- tool definitions ---

func buildListVerbsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_verbs",
		mcpgo.WithDescription("List the curated verbs. With source and target locales, returns each verb flattened for a learner: infinitive and forms to learn plus the translation in the learner's own locale."),
		mcpgo.WithString("source",
			mcpgo.Description("The learner's own locale, concrete (co-medellin) or aggregate (co)"),
		),
		mcpgo.WithString("target",
			mcpgo.Description("The locale being learned, concrete (us-ca) or aggregate (us)"),
		),
	)
}

func buildGetVerbTool() mcpgo.Tool {
	return mcpgo.NewTool("get_verb",
		mcpgo.WithDescription("Get the full manifest record of a verb: infinitives and conjugation tables for every locale."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The verb id, e.g. tener"),
		),
	)
}

func buildConjugationTool() mcpgo.Tool {
	return mcpgo.NewTool("conjugation",
		mcpgo.WithDescription("Get conjugated forms of a verb in one locale, optionally narrowed to a tense and person."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The verb id, e.g. tener"),
		),
		mcpgo.WithString("locale",
			mcpgo.Required(),
			mcpgo.Description("Concrete or aggregate locale, e.g. co-cartagena, co, us-ca"),
		),
		mcpgo.WithString("tense",
			mcpgo.Description("present, past or future (default: all tenses)"),
		),
		mcpgo.WithString("person",
			mcpgo.Description("1s, 2s, 3s, 1p or 3p (requires tense)"),
		),
	)
}

func buildFindFormTool() mcpgo.Tool {
	return mcpgo.NewTool("find_form",
		mcpgo.WithDescription("Find which verb, locale, tense and person produce a conjugated form. Matching ignores case and accents."),
		mcpgo.WithString("form",
			mcpgo.Required(),
			mcpgo.Description("The conjugated form to look up, e.g. tendrá"),
		),
	)
}

// --- tool handlers ---

func (s *Server) handleListVerbs(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.index == nil {
		return mcpgo.NewToolResultError("verb index is unavailable"), nil
	}

	source := req.GetString("source", "")
	target := req.GetString("target", "")
	if source == "" && target == "" {
		ids := make([]string, 0, s.index.Len())
		for _, rec := range s.index.Records() {
			ids = append(ids, rec.ID)
		}
		return toolResultJSON(map[string]any{"ids": ids})
	}
	if source == "" || target == "" {
		return mcpgo.NewToolResultError("source and target must be given together"), nil
	}
	return toolResultJSON(map[string]any{"verbs": s.index.ForLocales(source, target)})
}

func (s *Server) handleGetVerb(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.index == nil {
		return mcpgo.NewToolResultError("verb index is unavailable"), nil
	}

	id := req.GetString("id", "")
	if strings.TrimSpace(id) == "" {
		return mcpgo.NewToolResultError("id is required and must not be empty"), nil
	}

	rec, err := s.index.ByID(id)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			return mcpgo.NewToolResultErrorf("verb %q not found", id), nil
		}
		return mcpgo.NewToolResultErrorf("get failed: %s", err.Error()), nil
	}
	return toolResultJSON(rec)
}

func (s *Server) handleConjugation(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.index == nil {
		return mcpgo.NewToolResultError("verb index is unavailable"), nil
	}

	id := req.GetString("id", "")
	locale := req.GetString("locale", "")
	if strings.TrimSpace(id) == "" || strings.TrimSpace(locale) == "" {
		return mcpgo.NewToolResultError("id and locale are required"), nil
	}

	tense := models.Tense(req.GetString("tense", ""))
	if tense != "" && !tense.IsValid() {
		return mcpgo.NewToolResultErrorf("invalid tense %q: must be one of present, past, future", tense), nil
	}
	person := models.Person(req.GetString("person", ""))
	if person != "" {
		if !person.IsValid() {
			return mcpgo.NewToolResultErrorf("invalid person %q: must be one of 1s, 2s, 3s, 1p, 3p", person), nil
		}
		if tense == "" {
			return mcpgo.NewToolResultError("person requires tense"), nil
		}
	}

	table, tag, err := s.index.Conjugation(id, locale)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			return mcpgo.NewToolResultErrorf("no conjugation for verb %q in locale %q", id, locale), nil
		}
		return mcpgo.NewToolResultErrorf("conjugation failed: %s", err.Error()), nil
	}

	s.logger.Debug("mcp: conjugation", "id", id, "locale", tag, "tense", tense, "person", person)

	result := map[string]any{"id": id, "locale": tag}
	switch {
	case person != "":
		result["tense"] = tense
		result["person"] = person
		result["form"] = table.Get(tense, person)
	case tense != "":
		result["conjugation"] = models.ConjugationTable{tense: table[tense]}
	default:
		result["conjugation"] = table
	}
	return toolResultJSON(result)
}

func (s *Server) handleFindForm(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.index == nil {
		return mcpgo.NewToolResultError("verb index is unavailable"), nil
	}

	form := req.GetString("form", "")
	if strings.TrimSpace(form) == "" {
		return mcpgo.NewToolResultError("form is required and must not be empty"), nil
	}

	matches := s.index.FindForm(form)
	if matches == nil {
		matches = []lookup.FormMatch{}
	}
	return toolResultJSON(map[string]any{"matches": matches})
}
