package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/felixgeelhaar/mcp-go"
)

// SchemaVersion is the current MCP tool schema version (semver).
const SchemaVersion = "1.0.0"

const schemaURI = "sprintpulse://schema"

// DeprecatedField records a tool argument scheduled for removal.
type DeprecatedField struct {
	Tool      string `json:"tool"`
	Field     string `json:"field"`
	Since     string `json:"since"`
	RemovedIn string `json:"removed_in"`
	Migration string `json:"migration"`
}

func deprecatedFields() []DeprecatedField {
	return []DeprecatedField{}
}

type schemaResponse struct {
	SchemaVersion string            `json:"schema_version"`
	ServerVersion string            `json:"server_version"`
	Tools         []string          `json:"tools"`
	Deprecated    []DeprecatedField `json:"deprecated"`
}

func (s *Server) schemaDocument() ([]byte, error) {
	return json.Marshal(schemaResponse{
		SchemaVersion: SchemaVersion,
		ServerVersion: Version,
		Tools:         s.ToolNames(),
		Deprecated:    deprecatedFields(),
	})
}

func (s *Server) registerSchemaResource() {
	s.mcpServer.Resource(schemaURI).
		Name(schemaURI).
		Description("Tool schema version, tool list and deprecations").
		MimeType("application/json").
		Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
			data, err := s.schemaDocument()
			if err != nil {
				return nil, err
			}
			return &mcplib.ResourceContent{
				URI:      schemaURI,
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})
}
