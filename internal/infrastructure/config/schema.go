package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/xeipuuv/gojsonschema"
)

const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["baseUrl", "boards"],
  "properties": {
    "baseUrl": {"type": "string", "pattern": "^https?://"},
    "timeout": {"type": "string"},
    "timezone": {"type": "string"},
    "defaultBoard": {"type": "integer", "minimum": 0},
    "boards": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "name": {"type": "string", "minLength": 1},
          "defaultTeamVelocity": {"type": "number"},
          "finishLineStatuses": {"type": "array", "items": {"type": "string"}},
          "doneStatuses": {"type": "array", "items": {"type": "string"}},
          "statusOrder": {"type": "array", "items": {"type": "string"}},
          "customFields": {
            "type": "object",
            "properties": {
              "storyPoints": {"type": "string", "pattern": "^customfield_[0-9]+$"},
              "groomedStatus": {"type": "array", "items": {"type": "string"}},
              "ungroomedStatus": {"type": "array", "items": {"type": "string"}}
            }
          },
          "sprints": {
            "type": "object",
            "additionalProperties": {
              "type": "object",
              "properties": {
                "totalBusinessDays": {"type": "integer", "minimum": 1},
                "teamVelocity": {"type": "number"},
                "notes": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "messaging": {
      "type": "object",
      "properties": {
        "adapters": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "type", "url"],
            "properties": {
              "type": {"enum": ["webhook", "slack"]},
              "url": {"type": "string", "pattern": "^https?://"}
            }
          }
        }
      }
    }
  }
}`

var configSchemaLoader = gojsonschema.NewStringLoader(configSchemaJSON)

// Validate checks cfg against the configuration schema and cross-field rules.
func Validate(cfg *Config) error {
	result, err := gojsonschema.Validate(configSchemaLoader, gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return errors.Wrap(err, "schema validation failed")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return sprint.ConfigError("fix the listed fields", "invalid configuration: %s", strings.Join(msgs, "; "))
	}

	seen := make(map[int]bool, len(cfg.Boards))
	for _, b := range cfg.Boards {
		if seen[b.ID] {
			return sprint.ConfigError("give every board a unique id", "board %d is configured twice", b.ID)
		}
		seen[b.ID] = true
	}
	if cfg.DefaultBoard != 0 && !seen[cfg.DefaultBoard] {
		return sprint.ConfigError("point defaultBoard at one of the configured boards", "default board %d is not configured", cfg.DefaultBoard)
	}
	return nil
}
