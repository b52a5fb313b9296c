// Package pipeline orchestrates the offline train -> evaluate sequence
// around the external deep-learning stages. Any non-zero stage exit aborts
// the whole run.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"blast-detection-api/services"
)

// DefaultNamePrefix matches artifacts produced by the training stage.
const DefaultNamePrefix = "rice_leaf_blast_cnn"

const artifactMarker = "artifact="

var runLogHeader = []string{
	"timestamp", "model_path", "accuracy",
	"blast_precision", "blast_recall",
	"healthy_precision", "healthy_recall",
}

// StageError reports a stage that exited non-zero. The run stops at the
// failing stage; there is no partial retry.
type StageError struct {
	Stage    string
	ExitCode int
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed with exit code %d", e.Stage, e.ExitCode)
}

// Runner executes one stage and returns its stdout and exit code. The
// default runner shells out; tests substitute their own.
type Runner func(ctx context.Context, name string, args ...string) (stdout string, exitCode int, err error)

type Options struct {
	TrainCmd   []string
	EvalCmd    []string
	ModelsDir  string
	ReportsDir string
	NamePrefix string
	Tag        string
	Epochs     int

	Run Runner
	Now func() time.Time
}

// Run executes train then evaluate. The canonical artifact name is built
// from the timestamp and optional tag; the training stage is expected to
// report the artifact it produced on stdout as "artifact=<path>". When it
// does not, selection falls back to the newest matching file by
// modification time, with the lexically greatest name breaking mtime ties
// so the choice stays deterministic. Returns the canonical model path.
func Run(ctx context.Context, opts Options) (string, error) {
	if len(opts.TrainCmd) == 0 || len(opts.EvalCmd) == 0 {
		return "", errors.New("train and evaluate commands are required")
	}
	if opts.Run == nil {
		opts.Run = execRunner
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NamePrefix == "" {
		opts.NamePrefix = DefaultNamePrefix
	}

	tagPart := ""
	if opts.Tag != "" {
		tagPart = "_" + opts.Tag
	}
	timestamp := opts.Now().Format("20060102_150405")
	canonical := filepath.Join(opts.ModelsDir,
		fmt.Sprintf("%s%s_%s.keras", opts.NamePrefix, tagPart, timestamp))

	trainArgs := append(opts.TrainCmd[1:], "--epochs", strconv.Itoa(opts.Epochs))
	out, err := runStage(ctx, opts.Run, "train", opts.TrainCmd[0], trainArgs...)
	if err != nil {
		return "", err
	}

	artifact := reportedArtifact(out)
	if artifact == "" {
		artifact, err = newestArtifact(opts.ModelsDir, opts.NamePrefix)
		if err != nil {
			return "", err
		}
	}

	if artifact != canonical {
		if err := copyFile(artifact, canonical); err != nil {
			return "", fmt.Errorf("copy artifact to canonical path: %w", err)
		}
	}

	evalArgs := append(opts.EvalCmd[1:], "--model", canonical)
	if _, err := runStage(ctx, opts.Run, "evaluate", opts.EvalCmd[0], evalArgs...); err != nil {
		return "", err
	}

	if err := appendRunLog(opts.ReportsDir, canonical, opts.Now()); err != nil {
		return "", fmt.Errorf("append run log: %w", err)
	}

	return canonical, nil
}

func runStage(ctx context.Context, run Runner, stage, name string, args ...string) (string, error) {
	out, code, err := run(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", stage, err)
	}
	if code != 0 {
		return "", &StageError{Stage: stage, ExitCode: code}
	}
	return out, nil
}

func execRunner(ctx context.Context, name string, args ...string) (string, int, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.MultiWriter(&out, os.Stdout)
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.String(), exitErr.ExitCode(), nil
		}
		return out.String(), -1, err
	}
	return out.String(), 0, nil
}

// reportedArtifact scans stage stdout for the last "artifact=<path>" line.
func reportedArtifact(stdout string) string {
	artifact := ""
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, artifactMarker) {
			artifact = strings.TrimSpace(strings.TrimPrefix(line, artifactMarker))
		}
	}
	return artifact
}

// newestArtifact picks the most recently modified matching artifact.
// Equal modification times are broken by lexically greatest name.
func newestArtifact(dir, prefix string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*.keras"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s*.keras artifacts in %s", prefix, dir)
	}

	type candidate struct {
		path  string
		mtime time.Time
	}
	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return "", err
		}
		candidates = append(candidates, candidate{path: m, mtime: info.ModTime()})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].mtime.Equal(candidates[j].mtime) {
			return candidates[i].mtime.After(candidates[j].mtime)
		}
		return candidates[i].path > candidates[j].path
	})
	return candidates[0].path, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

type classMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

type evalReport struct {
	Accuracy float64      `json:"accuracy"`
	Blast    classMetrics `json:"blast"`
	Healthy  classMetrics `json:"healthy"`
}

// appendRunLog records the evaluation metrics the evaluate stage wrote to
// reports/metrics.json into the append-only run log CSV.
func appendRunLog(reportsDir, modelPath string, now time.Time) error {
	data, err := os.ReadFile(filepath.Join(reportsDir, "metrics.json"))
	if err != nil {
		return err
	}
	var report evalReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("parse metrics.json: %w", err)
	}

	absModel, err := filepath.Abs(modelPath)
	if err != nil {
		return err
	}

	runLog := services.NewCSVLog(filepath.Join(reportsDir, "run_log.csv"), runLogHeader)
	return runLog.Append([]string{
		now.Format("2006-01-02T15:04:05"),
		absModel,
		formatMetric(report.Accuracy),
		formatMetric(report.Blast.Precision),
		formatMetric(report.Blast.Recall),
		formatMetric(report.Healthy.Precision),
		formatMetric(report.Healthy.Recall),
	})
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
