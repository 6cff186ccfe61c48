package mcp

import (
	"context"
	"testing"

	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/mcp-school/dispatch"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

func sampleCommand() *registry.Command {
	return &registry.Command{
		Name:        "record_visit",
		Description: "Record a campus visit",
		Fields: []registry.Field{
			{Name: "visitor", Description: "Visitor name", Type: registry.String, Required: true},
			{Name: "branch_id", Description: "Branch visited", Type: registry.Number},
			{Name: "purpose", Description: "Reason for the visit", Type: registry.String,
				Enum: []string{"admission", "meeting", "other"}, Default: "admission"},
			{Name: "escorted", Description: "Whether the visitor was escorted", Type: registry.Boolean},
			{Name: "items", Description: "Items carried in", Type: registry.Array},
		},
		Handler: func(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
			return "Recorded visit by " + args.String("visitor") + ".", nil
		},
	}
}

func TestBuildToolSchema(t *testing.T) {
	tool := BuildTool(sampleCommand())

	assert.Equal(t, "record_visit", tool.Name)
	assert.Equal(t, "Record a campus visit", tool.Description)
	assert.Equal(t, "object", tool.InputSchema.Type)
	assert.Equal(t, []string{"visitor"}, tool.InputSchema.Required)

	props := tool.InputSchema.Properties
	require.Len(t, props, 5)
	for name, wantType := range map[string]string{
		"visitor":   "string",
		"branch_id": "number",
		"purpose":   "string",
		"escorted":  "boolean",
		"items":     "array",
	} {
		prop, ok := props[name].(map[string]any)
		require.True(t, ok, "property %s missing", name)
		assert.Equal(t, wantType, prop["type"], "property %s", name)
		assert.NotEmpty(t, prop["description"], "property %s", name)
	}

	purpose := props["purpose"].(map[string]any)
	assert.ElementsMatch(t, []string{"admission", "meeting", "other"}, purpose["enum"])
	assert.Equal(t, "admission", purpose["default"])
}

func TestToolHandlerWrapsEnvelope(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(*sampleCommand()))
	d := dispatch.New(reg, nil)
	handler := toolHandler(d, "record_visit")

	var req goMCP.CallToolRequest
	req.Params.Arguments = map[string]any{"visitor": "Priya"}

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(goMCP.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Recorded visit by Priya.", text.Text)
}

func TestToolHandlerReportsFailuresInBand(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(*sampleCommand()))
	d := dispatch.New(reg, nil)
	handler := toolHandler(d, "record_visit")

	var req goMCP.CallToolRequest
	req.Params.Arguments = map[string]any{}

	res, err := handler(context.Background(), req)
	require.NoError(t, err, "failures must be envelopes, not transport errors")
	assert.True(t, res.IsError)
}
