package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/highlight"
)

// dataset returns the dataset for the locale argument of a request.
func (s *Server) dataset(request mcp.CallToolRequest) (*dataset.Dataset, error) {
	locale := dataset.ResolveLocale(request.GetString("locale", ""), s.locale)
	return s.registry.Get(locale)
}

func canonicalCiv(ds *dataset.Dataset, civ string) (string, bool) {
	if ds.HasCiv(civ) {
		return civ, true
	}
	return ds.CanonicalCiv(civ)
}

// handleListCivs lists civilizations sorted by localized name.
func (s *Server) handleListCivs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, err := s.dataset(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading dataset: %v", err)), nil
	}

	var sb strings.Builder
	civs := ds.SortedCivs()
	sb.WriteString(fmt.Sprintf("%d civilization(s):\n", len(civs)))
	for _, c := range civs {
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", c.Name, c.ID))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleFindNode searches node names in the requested locale.
func (s *Server) handleFindNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	ds, err := s.dataset(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading dataset: %v", err)), nil
	}

	q := strings.ToLower(query)
	var matches []string
	for _, n := range ds.Graph.Nodes() {
		name := ds.NodeName(n.ID)
		if strings.Contains(strings.ToLower(name), q) || strings.Contains(n.ID, q) {
			matches = append(matches, fmt.Sprintf("- %s: %s (%s)", n.ID, name, n.Category))
		}
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No nodes match %q.", query)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d node(s):\n%s\n", len(matches), strings.Join(matches, "\n"))), nil
}

// handleGetHelpText renders the help panel of a node.
func (s *Server) handleGetHelpText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node, err := request.RequireString("node")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: node"), nil
	}
	ds, err := s.dataset(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading dataset: %v", err)), nil
	}

	var ov *availability.Overlay
	if civ := request.GetString("civ", ""); civ != "" {
		canonical, ok := canonicalCiv(ds, civ)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown civilization %q", civ)), nil
		}
		if ov, err = ds.Overlay(canonical); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	view, err := ds.Help(ov, node)
	if err != nil {
		if errors.Is(err, graph.ErrNodeNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no node %q. Use find_node to look up ids.", node)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("help text failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatHelp(view)), nil
}

// handleCivAvailability lists the overlay of a civilization by state.
func (s *Server) handleCivAvailability(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	civ, err := request.RequireString("civ")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: civ"), nil
	}
	ds, err := s.dataset(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading dataset: %v", err)), nil
	}
	canonical, ok := canonicalCiv(ds, civ)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown civilization %q. Use list_civs to see them.", civ)), nil
	}
	ov, err := ds.Overlay(canonical)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var only *availability.State
	if v := request.GetString("state", ""); v != "" {
		var st availability.State
		if err := st.UnmarshalText([]byte(v)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		only = &st
	}

	return mcp.NewToolResultText(formatOverlay(ds, ov, only)), nil
}

// handleAncestorPath lists the prerequisites of a node.
func (s *Server) handleAncestorPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node, err := request.RequireString("node")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: node"), nil
	}
	ds, err := s.dataset(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading dataset: %v", err)), nil
	}

	nodes, _, err := highlight.Path(ds.Graph, node)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no node %q. Use find_node to look up ids.", node)), nil
	}

	var sb strings.Builder
	for i, id := range nodes {
		sb.WriteString(fmt.Sprintf("%s%s (%s)\n", strings.Repeat("  ", i), ds.NodeName(id), id))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatHelp converts a help view into text for AI agent consumption.
func formatHelp(view *dataset.HelpView) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Node: %s\n", view.Node))
	if view.Entity != view.Node {
		sb.WriteString(fmt.Sprintf("Shows: %s\n", view.Entity))
	}
	sb.WriteString(fmt.Sprintf("Type: %s\n", view.Category))
	if view.Name != "" {
		sb.WriteString(fmt.Sprintf("Name: %s\n", view.Name))
	}
	sb.WriteString("\n")
	sb.WriteString(view.HTML)
	sb.WriteString("\n")
	if view.AdvancedStats != "" {
		sb.WriteString("\n")
		sb.WriteString(view.AdvancedStats)
		sb.WriteString("\n")
	}

	var have, lack []string
	for _, b := range view.Badges {
		if b.Active {
			have = append(have, b.Name)
		} else {
			lack = append(lack, b.Name)
		}
	}
	if len(have) > 0 {
		sb.WriteString(fmt.Sprintf("\nAvailable to: %s\n", strings.Join(have, ", ")))
	}
	if len(lack) > 0 {
		sb.WriteString(fmt.Sprintf("Not available to: %s\n", strings.Join(lack, ", ")))
	}
	return sb.String()
}

func formatOverlay(ds *dataset.Dataset, ov *availability.Overlay, only *availability.State) string {
	groups := map[availability.State][]string{}
	for id, ns := range ov.Nodes {
		name := ns.Name
		if ns.State != availability.UniqueReskin {
			name = ds.NodeName(id)
		}
		groups[ns.State] = append(groups[ns.State], fmt.Sprintf("  %s: %s", id, name))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Civilization: %s\n", ds.CivName(ov.Civ)))
	for _, st := range []availability.State{availability.UniqueReskin, availability.Enabled, availability.Disabled} {
		if only != nil && *only != st {
			continue
		}
		lines := groups[st]
		sort.Strings(lines)
		sb.WriteString(fmt.Sprintf("\n%s (%d):\n", st, len(lines)))
		for _, l := range lines {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
	}
	if len(ov.Stale) > 0 {
		sb.WriteString(fmt.Sprintf("\n%d stale reference(s) skipped.\n", len(ov.Stale)))
	}
	return sb.String()
}
