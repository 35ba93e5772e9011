// Package app wires the learner state together: configuration, the card
// corpus, progress, logs, and the backup import/export flow. The CLI
// commands operate exclusively through this layer.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/ArndGit/JonMem/internal/backup"
	"github.com/ArndGit/JonMem/internal/config"
	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/training"
	"github.com/ArndGit/JonMem/internal/vocab"
)

// App is the loaded application state for one data directory.
type App struct {
	Config   *config.Config
	Settings *config.Settings

	Vocab       *vocab.Vocabulary
	Progress    progress.Store
	TrainingLog []training.LogEntry
	ExamLog     []training.ExamLogEntry

	paths backup.FilePaths

	pendingImport   *backup.Payload
	pendingSnapshot string
}

// Load reads the state from the configured data directory. A fresh
// directory is seeded with the starter vocabulary so the first session
// has something to train.
func Load(cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	settings, err := config.LoadSettings(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Settings: settings,
		paths:    backup.DefaultFilePaths(cfg.DataDir),
	}

	if _, err := os.Stat(a.paths.Vocab); os.IsNotExist(err) {
		a.Vocab = vocab.Seed()
		a.Progress = progress.NewStore()
		if err := a.Save(); err != nil {
			return nil, fmt.Errorf("seed data dir: %w", err)
		}
		return a, nil
	}

	p, err := backup.LoadFromFiles(a.paths)
	if err != nil {
		return nil, err
	}
	a.Vocab = p.Vocab
	a.Progress = p.Progress
	a.TrainingLog = p.TrainingLog
	a.ExamLog = p.ExamLog
	return a, nil
}

// Save persists the whole state to the live files.
func (a *App) Save() error {
	p := backup.Build(a.Vocab, a.Progress, a.TrainingLog, a.ExamLog, time.Now())
	if err := backup.PersistToFiles(p, a.paths); err != nil {
		return err
	}
	return a.Settings.Save(a.Config.DataDir)
}

// SessionConfig maps the configuration knobs onto session shape.
func (a *App) SessionConfig() training.Config {
	cfg := training.DefaultConfig()
	cfg.MaxItems = a.Config.SessionItems
	cfg.Seconds = a.Config.SessionSeconds
	cfg.RepeatCount = a.Config.RepeatCount
	return cfg
}

// RecordTraining appends a session log entry.
func (a *App) RecordTraining(e training.LogEntry) {
	a.TrainingLog = append(a.TrainingLog, e)
}

// RecordExam appends an exam log entry.
func (a *App) RecordExam(e training.ExamLogEntry) {
	a.ExamLog = append(a.ExamLog, e)
}

// DeleteCard removes a card and all of its progress.
func (a *App) DeleteCard(id string) bool {
	if !a.Vocab.DeleteCard(id) {
		return false
	}
	a.Progress.RemoveCard(id)
	return true
}

// ExportBackup writes the current state to path, normalizing the file
// extension. Returns the path actually written.
func (a *App) ExportBackup(path string) (string, error) {
	path = backup.EnsureExtension(path)
	p := backup.Build(a.Vocab, a.Progress, a.TrainingLog, a.ExamLog, time.Now())
	if err := backup.PersistToPath(p, path); err != nil {
		return "", err
	}
	return path, nil
}

// ImportBackup validates the backup at path and stages it for
// ConfirmImport. Nothing is replaced yet; the returned scan feeds the
// confirmation prompt.
func (a *App) ImportBackup(path string) (backup.Scan, error) {
	p, err := backup.LoadFromPath(path)
	if err != nil {
		return backup.Scan{}, err
	}
	a.pendingImport = p
	return p.Scan(), nil
}

// ConfirmImport snapshots the current state, replaces it with the staged
// payload, and persists. The snapshot is written before anything is
// replaced; if persistence fails midway, re-persisting the snapshot
// restores the pre-import state.
func (a *App) ConfirmImport() error {
	if a.pendingImport == nil {
		return fmt.Errorf("no import staged")
	}
	current := backup.Build(a.Vocab, a.Progress, a.TrainingLog, a.ExamLog, time.Now())
	snap, err := backup.SnapshotForImport(current, a.Config.DataDir, time.Now())
	if err != nil {
		return err
	}
	a.pendingSnapshot = snap

	p := a.pendingImport
	a.pendingImport = nil
	a.Vocab = p.Vocab
	a.Progress = p.Progress
	a.TrainingLog = p.TrainingLog
	a.ExamLog = p.ExamLog

	if err := a.Save(); err != nil {
		return fmt.Errorf("persist import (rollback snapshot at %s): %w", snap, err)
	}
	return backup.PruneRollbacks(a.Config.DataDir, a.Config.RollbackKeep)
}

// CancelImport drops a staged import.
func (a *App) CancelImport() {
	a.pendingImport = nil
}

// RollbackLastImport restores the newest pre-import snapshot.
func (a *App) RollbackLastImport() (string, error) {
	snap := a.pendingSnapshot
	if snap == "" {
		latest, err := backup.LatestRollback(a.Config.DataDir)
		if err != nil {
			return "", err
		}
		if latest == "" {
			return "", fmt.Errorf("no rollback snapshot found")
		}
		snap = latest
	}
	p, err := backup.LoadFromPath(snap)
	if err != nil {
		return "", err
	}
	a.Vocab = p.Vocab
	a.Progress = p.Progress
	a.TrainingLog = p.TrainingLog
	a.ExamLog = p.ExamLog
	a.pendingSnapshot = ""
	if err := a.Save(); err != nil {
		return "", err
	}
	return snap, nil
}
