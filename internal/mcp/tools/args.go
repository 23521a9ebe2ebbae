package tools

import (
	"fmt"

	mcp "github.com/mark3labs/mcp-go/mcp"
)

func arguments(req mcp.CallToolRequest) map[string]any {
	if req.Params.Arguments == nil {
		return nil
	}
	raw, _ := req.Params.Arguments.(map[string]any)
	return raw
}

// readStringArg extracts an optional string argument from the request.
func readStringArg(req mcp.CallToolRequest, key string) string {
	if value, ok := arguments(req)[key].(string); ok {
		return value
	}
	return ""
}

// readStringArgWithDefault extracts an optional string argument with a default fallback.
func readStringArgWithDefault(req mcp.CallToolRequest, key, def string) string {
	if value, ok := arguments(req)[key].(string); ok && value != "" {
		return value
	}
	return def
}

// readIntArgWithDefault extracts an optional int argument with a default fallback.
func readIntArgWithDefault(req mcp.CallToolRequest, key string, def int) int {
	switch value := arguments(req)[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	}
	return def
}

// readBoolArg extracts an optional bool argument from the request.
func readBoolArg(req mcp.CallToolRequest, key string) bool {
	value, _ := arguments(req)[key].(bool)
	return value
}

// errorResult reports a tool failure as text prefixed with "Error: ".
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + fmt.Sprintf(format, args...))
}
