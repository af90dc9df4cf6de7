package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/clipstack/video-editor-backend/internal/filtergraph"
)

// crf per target height; higher values trade quality for size on the
// smaller tiers.
var rescaleCRF = map[int]int{
	1080: 20,
	720:  22,
	480:  24,
}

const defaultRescaleCRF = 24

func crfForHeight(height int) int {
	if crf, ok := rescaleCRF[height]; ok {
		return crf
	}
	return defaultRescaleCRF
}

func probeArgs(inputPath string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "format=duration,size",
		"-of", "json",
		inputPath,
	}
}

func trimArgs(inputPath string, start, end float64, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-ss", strconv.FormatFloat(start, 'f', -1, 64),
		"-to", strconv.FormatFloat(end, 'f', -1, 64),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "128k",
		outputPath,
	}
}

// compositeArgs maps the graph's terminal label as the output video stream,
// or passes the primary stream through when the graph is empty. Audio always
// comes from the primary input; duration clips to the shortest mapped stream.
func compositeArgs(inputPath string, graph *filtergraph.Graph, outputPath string) []string {
	args := []string{"-y", "-i", inputPath}
	for _, extra := range graph.Inputs() {
		args = append(args, "-i", extra)
	}
	if !graph.Empty() {
		args = append(args,
			"-filter_complex", graph.FilterComplex(),
			"-map", fmt.Sprintf("[%s]", graph.OutputLabel()),
		)
	} else {
		args = append(args, "-map", "0:v")
	}
	args = append(args,
		"-map", "0:a?",
		"-shortest",
		"-c:v", "libx264",
		"-crf", "20",
		"-preset", "veryfast",
		"-c:a", "copy",
		outputPath,
	)
	return args
}

func rescaleArgs(inputPath string, height int, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vf", fmt.Sprintf("scale=-2:%d", height),
		"-c:v", "libx264",
		"-crf", strconv.Itoa(crfForHeight(height)),
		"-preset", "veryfast",
		"-c:a", "aac",
		"-b:a", "128k",
		outputPath,
	}
}
