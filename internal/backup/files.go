package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/training"
	"github.com/ArndGit/JonMem/internal/vocab"
)

// Extension is the canonical backup file extension. Plain .yaml/.yml
// files are accepted on import since the content is the same.
const Extension = ".jonmem"

// FilePaths names the four live data files of one learner profile.
type FilePaths struct {
	Vocab       string
	Progress    string
	TrainingLog string
	ExamLog     string
}

// DefaultFilePaths lays out the live files under dir.
func DefaultFilePaths(dir string) FilePaths {
	return FilePaths{
		Vocab:       filepath.Join(dir, "vocab.yaml"),
		Progress:    filepath.Join(dir, "progress.json"),
		TrainingLog: filepath.Join(dir, "training_log.json"),
		ExamLog:     filepath.Join(dir, "exam_log.json"),
	}
}

// PersistStage identifies which live file a persistence error hit.
type PersistStage string

const (
	StageVocab       PersistStage = "vocab"
	StageProgress    PersistStage = "progress"
	StageTrainingLog PersistStage = "training_log"
	StageExamLog     PersistStage = "exam_log"
)

// StageError wraps a write failure with the stage it happened at, so
// callers know which files were already written and can re-persist a
// known-good payload over the partial state.
type StageError struct {
	Stage PersistStage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

type writeFunc func(name string, data []byte, perm os.FileMode) error

// PersistToFiles writes the payload to the live files in a fixed order:
// vocab, progress, training log, exam log. A failure midway leaves the
// earlier files written; the returned *StageError names the failing
// stage so the caller can restore consistency by re-persisting.
func PersistToFiles(p *Payload, paths FilePaths) error {
	return persistToFiles(p, paths, os.WriteFile)
}

func persistToFiles(p *Payload, paths FilePaths, write writeFunc) error {
	v := p.Vocab
	if v == nil {
		v = vocab.New()
	}
	data, err := yaml.Marshal(v)
	if err == nil {
		err = write(paths.Vocab, data, 0o644)
	}
	if err != nil {
		return &StageError{Stage: StageVocab, Err: err}
	}

	if err := writeJSON(write, paths.Progress, p.Progress); err != nil {
		return &StageError{Stage: StageProgress, Err: err}
	}
	if err := writeJSON(write, paths.TrainingLog, p.TrainingLog); err != nil {
		return &StageError{Stage: StageTrainingLog, Err: err}
	}
	if err := writeJSON(write, paths.ExamLog, p.ExamLog); err != nil {
		return &StageError{Stage: StageExamLog, Err: err}
	}
	return nil
}

func writeJSON(write writeFunc, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return write(path, data, 0o644)
}

// LoadFromFiles reads the live files back into a payload. The vocab
// file must exist; the others default to empty when missing so a fresh
// profile loads cleanly.
func LoadFromFiles(paths FilePaths) (*Payload, error) {
	p := &Payload{
		Vocab:       vocab.New(),
		Progress:    progress.NewStore(),
		TrainingLog: nil,
		ExamLog:     nil,
	}

	data, err := os.ReadFile(paths.Vocab)
	if err != nil {
		return nil, fmt.Errorf("load vocab: %w", err)
	}
	if err := yaml.Unmarshal(data, p.Vocab); err != nil {
		return nil, fmt.Errorf("load vocab: %w", err)
	}

	if err := readJSON(paths.Progress, &p.Progress); err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	var trainingLog []training.LogEntry
	if err := readJSON(paths.TrainingLog, &trainingLog); err != nil {
		return nil, fmt.Errorf("load training log: %w", err)
	}
	var examLog []training.ExamLogEntry
	if err := readJSON(paths.ExamLog, &examLog); err != nil {
		return nil, fmt.Errorf("load exam log: %w", err)
	}
	p.TrainingLog = trainingLog
	p.ExamLog = examLog

	p.normalize()
	return p, nil
}

// readJSON decodes path into v, treating a missing file as empty.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// PersistToPath writes the payload as one backup file.
func PersistToPath(p *Payload, path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// LoadFromPath reads and validates one backup file.
func LoadFromPath(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return Decode(data)
}

// EnsureExtension appends the backup extension unless the path already
// carries it or a plain YAML extension.
func EnsureExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case Extension, ".yaml", ".yml":
		return path
	}
	return path + Extension
}
