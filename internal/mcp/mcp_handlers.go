package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	deps    Deps
}

func (h *toolHandler) handleListMonitorSchedules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schedules, err := h.deps.Lister.ListSchedules(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing schedules failed: %v", err)), nil
	}

	if request.GetBool("monitors_only", false) {
		monitors := make([]schema.ScheduleSummary, 0, len(schedules))
		for _, s := range schedules {
			if s.IsMonitor {
				monitors = append(monitors, s)
			}
		}
		schedules = monitors
	}

	jsonData, _ := json.MarshalIndent(schedules, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleProbeAPIVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endpoints := schema.ProbeEndpoints
	if e := request.GetString("endpoint", ""); e != "" {
		endpoints = []string{e}
	}

	results := make([]schema.ProbeResult, 0, len(schema.ProbeAPIVersions)*len(endpoints))
	for _, version := range schema.ProbeAPIVersions {
		for _, endpoint := range endpoints {
			result, err := h.deps.Prober.Probe(ctx, version, endpoint)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("probe failed: %v", err)), nil
			}
			results = append(results, result)
		}
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
