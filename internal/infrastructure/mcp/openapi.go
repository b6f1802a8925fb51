package mcp

import (
	"encoding/json"
	"sort"

	mcplib "github.com/felixgeelhaar/mcp-go"
)

// OpenAPISpec is the subset of an OpenAPI 3.0 document needed to describe
// tool calls as HTTP endpoints.
type OpenAPISpec struct {
	OpenAPI string              `json:"openapi"`
	Info    OpenAPIInfo         `json:"info"`
	Paths   map[string]PathItem `json:"paths"`
}

type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type PathItem struct {
	Post *Operation `json:"post,omitempty"`
}

type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
	Tags        []string            `json:"tags,omitempty"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema any `json:"schema"`
}

type Response struct {
	Description string `json:"description"`
}

// OpenAPI describes the registered tools as an OpenAPI document.
func (s *Server) OpenAPI() ([]byte, error) {
	return GenerateOpenAPI(s.mcpServer)
}

// ToolNames lists the registered tools alphabetically.
func (s *Server) ToolNames() []string {
	var names []string
	for _, t := range s.mcpServer.Tools() {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// GenerateOpenAPI maps every tool of srv to POST /tools/{name}. Tools taking
// arguments get a JSON request body with the tool's input schema.
func GenerateOpenAPI(srv *mcplib.Server) ([]byte, error) {
	responses := map[string]Response{
		"200": {Description: "Report"},
		"400": {Description: "Unknown board or sprint"},
		"500": {Description: "Tracker unavailable"},
	}

	paths := make(map[string]PathItem)
	for _, t := range srv.Tools() {
		op := &Operation{
			OperationID: t.Name,
			Summary:     t.Description,
			Responses:   responses,
			Tags:        []string{"sprintpulse"},
		}
		if takesArguments(t.InputSchema) {
			op.RequestBody = &RequestBody{
				Required: true,
				Content:  map[string]MediaType{"application/json": {Schema: t.InputSchema}},
			}
		}
		paths["/tools/"+t.Name] = PathItem{Post: op}
	}

	return json.MarshalIndent(OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: OpenAPIInfo{
			Title:       "SprintPulse MCP API",
			Description: "Sprint report tools exposed over HTTP.",
			Version:     SchemaVersion,
		},
		Paths: paths,
	}, "", "  ")
}

func takesArguments(schema any) bool {
	m, _ := schema.(map[string]any)
	props, _ := m["properties"].(map[string]any)
	return len(props) > 0
}
