// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mlopshq/driftmon/internal/contract"
)

// Deps bundles the workspace capabilities the MCP tools need.
type Deps struct {
	Lister contract.ScheduleLister
	Prober contract.APIProber
}

// NewMCPServer initializes and configures the driftmon MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"Driftmon Verification Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		deps:    deps,
	}

	// --- 1. Tool: list_monitor_schedules ---
	s.AddTool(mcp.NewTool("list_monitor_schedules",
		mcp.WithDescription("List the schedules in the workspace, including drift monitors and their provisioning state."),
		mcp.WithBoolean("monitors_only", mcp.Description("Only return schedules that run drift monitors. Defaults to false.")),
	), h.handleListMonitorSchedules)

	// --- 2. Tool: probe_api_versions ---
	s.AddTool(mcp.NewTool("probe_api_versions",
		mcp.WithDescription("Probe the monitoring endpoints across known management api-versions and report status codes."),
		mcp.WithString("endpoint", mcp.Description("Endpoint to probe (monitorSchedules or monitorSignals). Probes both when omitted."), mcp.Enum("monitorSchedules", "monitorSignals")),
	), h.handleProbeAPIVersions)

	return s
}

// StartMCPServer starts the driftmon MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, deps Deps) error {
	s := NewMCPServer(baseCfg, deps)
	return server.ServeStdio(s)
}
