// Package ffmpeg drives the external media tool. Every invocation is
// synchronous, captures stdout and stderr in full, and surfaces a non-zero
// exit as an *Error carrying the diagnostic stream. The diagnostic stream is
// never interpreted for control flow, only reported.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/filtergraph"
	"github.com/clipstack/video-editor-backend/pkg/logger"
)

// Error describes a failed tool invocation.
type Error struct {
	Op     string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Op, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type ProbeResult struct {
	DurationSec float64
	SizeBytes   int64
}

type FFmpeg struct {
	cfg    config.FFmpegConfig
	logger logger.Logger
}

func New(cfg *config.Config, log logger.Logger) *FFmpeg {
	c := cfg.FFmpeg
	if c.FFmpegBin == "" {
		c.FFmpegBin = "ffmpeg"
	}
	if c.FFprobeBin == "" {
		c.FFprobeBin = "ffprobe"
	}
	return &FFmpeg{cfg: c, logger: log}
}

// GraphOptions supplies the filter-graph builder with the configured font
// environment.
func (f *FFmpeg) GraphOptions() filtergraph.Options {
	return filtergraph.Options{
		FontsDir:    f.cfg.FontsDir,
		DefaultFont: f.cfg.DefaultFont,
	}
}

// Probe inspects a media file for duration and size.
func (f *FFmpeg) Probe(ctx context.Context, inputPath string) (*ProbeResult, error) {
	stdout, err := f.run(ctx, "probe", f.cfg.FFprobeBin, probeArgs(inputPath))
	if err != nil {
		return nil, err
	}
	res, err := parseProbeOutput(stdout)
	if err != nil {
		return nil, &Error{Op: "probe", Err: err}
	}
	return res, nil
}

// Trim re-encodes the input between the given bounds in fractional seconds.
func (f *FFmpeg) Trim(ctx context.Context, inputPath string, start, end float64, outputPath string) error {
	_, err := f.run(ctx, "trim", f.cfg.FFmpegBin, trimArgs(inputPath, start, end, outputPath))
	return err
}

// Composite applies a compiled filter graph over the primary input and its
// auxiliary inputs.
func (f *FFmpeg) Composite(ctx context.Context, inputPath string, graph *filtergraph.Graph, outputPath string) error {
	_, err := f.run(ctx, "composite", f.cfg.FFmpegBin, compositeArgs(inputPath, graph, outputPath))
	return err
}

// Rescale produces one output at the requested target height.
func (f *FFmpeg) Rescale(ctx context.Context, inputPath string, height int, outputPath string) error {
	_, err := f.run(ctx, fmt.Sprintf("rescale %dp", height), f.cfg.FFmpegBin, rescaleArgs(inputPath, height, outputPath))
	return err
}

func (f *FFmpeg) run(ctx context.Context, op, bin string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	f.logger.Debugf("running %s %s", bin, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, &Error{Op: op, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// ffprobe reports format values as JSON strings.
type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
		Size     string `json:"size"`
	} `json:"format"`
}

func parseProbeOutput(out []byte) (*ProbeResult, error) {
	var pf probeFormat
	if err := json.Unmarshal(out, &pf); err != nil {
		return nil, fmt.Errorf("malformed probe output: %w", err)
	}

	res := &ProbeResult{}
	if pf.Format.Duration != "" {
		duration, err := strconv.ParseFloat(pf.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid probe duration %q: %w", pf.Format.Duration, err)
		}
		res.DurationSec = duration
	}
	if pf.Format.Size != "" {
		size, err := strconv.ParseInt(pf.Format.Size, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid probe size %q: %w", pf.Format.Size, err)
		}
		res.SizeBytes = size
	}
	return res, nil
}
