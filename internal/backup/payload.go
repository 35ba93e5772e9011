// Package backup bundles the whole learner state into a single portable
// payload and persists it: either split across the live data files or
// as one backup file for transfer between devices. Imports are guarded
// by structural validation and an automatic rollback snapshot.
package backup

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/training"
	"github.com/ArndGit/JonMem/internal/vocab"
)

// timeLayout matches the timestamp format of the progress and log files.
const timeLayout = "2006-01-02T15:04:05"

// Meta carries backup-level metadata.
type Meta struct {
	Created string `yaml:"created,omitempty" json:"created,omitempty"`
}

// Payload is the complete learner state: corpus, progress, and logs.
// It is the unit of export, import, and rollback.
type Payload struct {
	Meta        Meta                    `yaml:"meta,omitempty" json:"meta,omitempty"`
	Vocab       *vocab.Vocabulary       `yaml:"vocab" json:"vocab"`
	Progress    progress.Store          `yaml:"progress,omitempty" json:"progress,omitempty"`
	TrainingLog []training.LogEntry     `yaml:"training_log,omitempty" json:"training_log,omitempty"`
	ExamLog     []training.ExamLogEntry `yaml:"exam_log,omitempty" json:"exam_log,omitempty"`
}

// FormatError reports a structurally invalid backup document. The
// learner state on disk is untouched when this is returned.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid backup: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid backup: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Build snapshots the current state into a payload.
func Build(v *vocab.Vocabulary, prog progress.Store, trainingLog []training.LogEntry, examLog []training.ExamLogEntry, now time.Time) *Payload {
	return &Payload{
		Meta:        Meta{Created: now.Format(timeLayout)},
		Vocab:       v,
		Progress:    prog,
		TrainingLog: trainingLog,
		ExamLog:     examLog,
	}
}

// payloadSchema is the structural contract every imported backup must
// satisfy before any of it reaches the learner state.
const payloadSchema = `{
	"type": "object",
	"required": ["vocab"],
	"properties": {
		"meta": {
			"type": "object",
			"properties": {"created": {"type": "string"}}
		},
		"vocab": {
			"type": "object",
			"required": ["cards"],
			"properties": {
				"topics": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["id", "name", "lang"]
					}
				},
				"cards": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["id", "lang", "front", "back"],
						"properties": {
							"id": {"type": "string", "minLength": 1},
							"lang": {"type": "string", "minLength": 1}
						}
					}
				}
			}
		},
		"progress": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"additionalProperties": {
					"type": "object",
					"required": ["stage"],
					"properties": {"stage": {"type": "integer"}}
				}
			}
		},
		"training_log": {"type": "array"},
		"exam_log": {"type": "array"}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(payloadSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse backup schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://backup.json", doc); err != nil {
			schemaErr = fmt.Errorf("add backup schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://backup.json")
	})
	return compiledSchema, schemaErr
}

// Decode parses and validates a backup document. YAML is the on-disk
// format; the decoded value is JSON-roundtripped so schema validation
// and struct decoding see identical canonical values. Returns a
// *FormatError for anything structurally off.
func Decode(data []byte) (*Payload, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Reason: "not a YAML document", Err: err}
	}
	if doc == nil {
		return nil, &FormatError{Reason: "empty document"}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &FormatError{Reason: "unsupported document structure", Err: err}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &FormatError{Reason: "unsupported document structure", Err: err}
	}

	schema, err := getSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &FormatError{Reason: "schema violation", Err: err}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &FormatError{Reason: "cannot decode document", Err: err}
	}
	p.normalize()
	return &p, nil
}

// Encode renders the payload as a YAML backup document.
func (p *Payload) Encode() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// normalize repairs what the schema tolerates: nil collections become
// empty, stored stages are clamped, progress for unknown cards or
// unknown directions is dropped.
func (p *Payload) normalize() {
	if p.Vocab == nil {
		p.Vocab = vocab.New()
	}
	if p.Vocab.Topics == nil {
		p.Vocab.Topics = []vocab.Topic{}
	}
	if p.Vocab.Cards == nil {
		p.Vocab.Cards = []vocab.Card{}
	}
	if p.Progress == nil {
		p.Progress = progress.NewStore()
	}

	known := make(map[string]bool, len(p.Vocab.Cards))
	for _, c := range p.Vocab.Cards {
		known[c.ID] = true
	}
	for cardID, byDir := range p.Progress {
		if !known[cardID] {
			delete(p.Progress, cardID)
			continue
		}
		for dir, e := range byDir {
			if dir != vocab.FrontToBack && dir != vocab.BackToFront {
				delete(byDir, dir)
				continue
			}
			e.Stage = progress.ClampStage(e.Stage)
		}
		if len(byDir) == 0 {
			delete(p.Progress, cardID)
		}
	}
}

// Scan summarizes a payload for the import confirmation prompt.
type Scan struct {
	Created          string
	Cards            int
	Topics           int
	ProgressEntries  int
	TrainingSessions int
	Exams            int
}

// Scan counts what the payload would replace on import.
func (p *Payload) Scan() Scan {
	s := Scan{
		Created:          p.Meta.Created,
		TrainingSessions: len(p.TrainingLog),
		Exams:            len(p.ExamLog),
	}
	if p.Vocab != nil {
		s.Cards = len(p.Vocab.Cards)
		s.Topics = len(p.Vocab.Topics)
	}
	for _, byDir := range p.Progress {
		s.ProgressEntries += len(byDir)
	}
	return s
}
