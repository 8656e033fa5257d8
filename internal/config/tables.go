package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/tahfiz/tahfiz/internal/progression"
)

// tablesSchema validates a progression override file before decoding.
var tablesSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"levels": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"level":           map[string]any{"type": "integer", "minimum": 1},
					"xp":              map[string]any{"type": "integer", "minimum": 0},
					"reward_diamonds": map[string]any{"type": "integer", "minimum": 0},
				},
				"required":             []any{"level", "xp"},
				"additionalProperties": false,
			},
		},
		"path_unlocks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path":      map[string]any{"type": "string"},
					"min_level": map[string]any{"type": "integer", "minimum": 1},
				},
				"required":             []any{"path", "min_level"},
				"additionalProperties": false,
			},
		},
		"question_caps": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"min_level":     map[string]any{"type": "integer", "minimum": 1},
					"max_questions": map[string]any{"type": "integer", "minimum": 1},
				},
				"required":             []any{"min_level", "max_questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"levels"},
	"additionalProperties": false,
}

type tablesFile struct {
	Levels []struct {
		Level          int `json:"level"`
		XP             int `json:"xp"`
		RewardDiamonds int `json:"reward_diamonds"`
	} `json:"levels"`
	PathUnlocks []struct {
		Path     string `json:"path"`
		MinLevel int    `json:"min_level"`
	} `json:"path_unlocks"`
	QuestionCaps []struct {
		MinLevel     int `json:"min_level"`
		MaxQuestions int `json:"max_questions"`
	} `json:"question_caps"`
}

// LoadTables reads a progression override from path. Sections absent from
// the file keep their defaults; rules are never overridable from disk.
func LoadTables(path string) (progression.Tables, error) {
	tables := DefaultTables()

	raw, err := os.ReadFile(path)
	if err != nil {
		return tables, fmt.Errorf("read tables: %w", err)
	}
	if err := validateTables(raw); err != nil {
		return tables, fmt.Errorf("validate tables: %w", err)
	}

	var f tablesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return tables, fmt.Errorf("decode tables: %w", err)
	}

	tables.Thresholds = tables.Thresholds[:0]
	prevXP := -1
	for _, l := range f.Levels {
		if l.XP <= prevXP {
			return tables, fmt.Errorf("level %d: thresholds must be strictly increasing", l.Level)
		}
		prevXP = l.XP
		tables.Thresholds = append(tables.Thresholds, progression.LevelThreshold{
			Level:          l.Level,
			XP:             l.XP,
			RewardDiamonds: l.RewardDiamonds,
		})
	}

	if len(f.PathUnlocks) > 0 {
		tables.Unlocks = tables.Unlocks[:0]
		for _, u := range f.PathUnlocks {
			tables.Unlocks = append(tables.Unlocks, progression.PathUnlock{
				Path:     progression.PathID(u.Path),
				MinLevel: u.MinLevel,
			})
		}
	}
	if len(f.QuestionCaps) > 0 {
		tables.QuestionCaps = tables.QuestionCaps[:0]
		for _, qc := range f.QuestionCaps {
			tables.QuestionCaps = append(tables.QuestionCaps, progression.QuestionCap{
				MinLevel:     qc.MinLevel,
				MaxQuestions: qc.MaxQuestions,
			})
		}
	}

	return tables, nil
}

func validateTables(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	// The jsonschema library expects a parsed JSON value, so round-trip the
	// schema definition through encoding/json first.
	defBytes, err := json.Marshal(tablesSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://tables.json", defParsed); err != nil {
		return fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile("schema://tables.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
