// Package mcp exposes the fix engine as an MCP (Model Context Protocol)
// server over stdio, so agent tooling can lint and fix documentation in
// place.
package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/asciidoc-dita/adfix/internal/config"
	"github.com/asciidoc-dita/adfix/internal/logging"
	"github.com/asciidoc-dita/adfix/internal/process"
	"github.com/asciidoc-dita/adfix/internal/report"
	"github.com/asciidoc-dita/adfix/internal/rule"
	"github.com/asciidoc-dita/adfix/internal/vale"
)

// Server is the MCP server. It communicates via JSON-RPC over stdio.
type Server struct {
	cfg      *config.Config
	registry *rule.Registry
}

// NewServer creates a server using the given configuration and the global
// rule registry.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg, registry: rule.Global()}
}

// CheckFilesInput is the input schema for the check_files tool.
type CheckFilesInput struct {
	Paths []string `json:"paths" jsonschema:"AsciiDoc files or directories to lint"`
}

// FixFilesInput is the input schema for the fix_files tool.
type FixFilesInput struct {
	Paths  []string `json:"paths" jsonschema:"AsciiDoc files or directories to lint and fix"`
	DryRun bool     `json:"dry_run,omitempty" jsonschema:"Compute fixes without writing files"`
}

// ListRulesInput is the input schema for the list_rules tool.
type ListRulesInput struct {
	// No parameters - returns all rules in execution order
}

// Start runs the stdio server until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	fmt.Fprintln(os.Stderr, "adfix MCP server started (stdio mode)")
	fmt.Fprintln(os.Stderr, "Available tools: check_files, fix_files, list_rules")

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "adfix",
		Version: "1.0.0",
	}, nil)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_files",
		Description: "Lint AsciiDoc files for DITA compatibility violations without editing anything.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckFilesInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		violations, err := s.lint(ctx, input.Paths)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		lines := make([]string, 0, len(violations))
		for i := range violations {
			lines = append(lines, violations[i].String())
		}
		return nil, textResult(fmt.Sprintf("%d violations\n%s", len(violations), strings.Join(lines, "\n"))), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "fix_files",
		Description: "Lint AsciiDoc files and apply DITA compatibility fixes in place (with backups).",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input FixFilesInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		violations, err := s.lint(ctx, input.Paths)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}

		proc := process.New(s.cfg, s.registry, logging.New(false))
		proc.DryRun = input.DryRun
		result, err := proc.Process(ctx, violations)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		data, err := report.JSON(result)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		return nil, textResult(string(data)), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_rules",
		Description: "List the fix rules in their dependency-resolved execution order.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRulesInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		ordered, err := s.registry.ExecutionOrder()
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		var b strings.Builder
		for _, r := range ordered {
			fmt.Fprintf(&b, "%s\t%s\t%s\n", r.Name(), r.FixType(), r.Severity())
		}
		return nil, textResult(b.String()), nil
	})

	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) lint(ctx context.Context, paths []string) ([]rule.Violation, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths given")
	}
	executor := vale.NewExecutor()
	executor.Binary = s.cfg.ValeBinary
	executor.ConfigPath = s.cfg.ValeConfig
	return executor.Run(ctx, paths)
}

// textResult wraps plain text in the MCP content shape.
func textResult(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
}
