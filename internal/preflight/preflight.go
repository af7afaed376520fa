package preflight

import (
	"context"

	"scribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config. Directory
// checks assume EnsureDirectories already ran.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckInputDir(cfg.Paths.InputDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Workspace directory", cfg.Paths.WorkspaceDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckFreeSpace(cfg.Paths.OutputDir),
		CheckRunner(),
	}

	if cfg.WhisperX.HFToken == "" {
		results = append(results, Result{
			Name:   "Diarization token",
			Detail: "hf_token missing (set hf_token or HF_TOKEN); diarization will fail",
		})
	} else {
		results = append(results, Result{Name: "Diarization token", Passed: true, Detail: "configured"})
	}

	return results
}

// Failed returns the subset of results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
