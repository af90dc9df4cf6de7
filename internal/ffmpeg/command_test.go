package ffmpeg

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/clipstack/video-editor-backend/internal/filtergraph"
	"github.com/clipstack/video-editor-backend/internal/models"
)

func TestTrimArgs(t *testing.T) {
	got := trimArgs("/media/in.mp4", 1.5, 9, "/media/out.mp4")
	want := []string{
		"-y",
		"-i", "/media/in.mp4",
		"-ss", "1.5",
		"-to", "9",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "128k",
		"/media/out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trimArgs = %v, want %v", got, want)
	}
}

func TestCompositeArgsEmptyGraphPassesPrimaryThrough(t *testing.T) {
	graph := filtergraph.Build(nil, nil, filtergraph.Options{})
	got := compositeArgs("/media/in.mp4", graph, "/media/out.mp4")
	want := []string{
		"-y", "-i", "/media/in.mp4",
		"-map", "0:v",
		"-map", "0:a?",
		"-shortest",
		"-c:v", "libx264",
		"-crf", "20",
		"-preset", "veryfast",
		"-c:a", "copy",
		"/media/out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("compositeArgs = %v, want %v", got, want)
	}
}

func TestCompositeArgsMapsTerminalLabelAndAuxInputs(t *testing.T) {
	graph := filtergraph.Build(nil, &models.WatermarkSpec{ImagePath: "/assets/logo.png"}, filtergraph.Options{})
	got := compositeArgs("/media/in.mp4", graph, "/media/out.mp4")

	want := []string{
		"-y", "-i", "/media/in.mp4",
		"-i", "/assets/logo.png",
		"-filter_complex", graph.FilterComplex(),
		"-map", "[v1]",
		"-map", "0:a?",
		"-shortest",
		"-c:v", "libx264",
		"-crf", "20",
		"-preset", "veryfast",
		"-c:a", "copy",
		"/media/out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("compositeArgs = %v, want %v", got, want)
	}
}

func TestRescaleArgsCRFPerTier(t *testing.T) {
	cases := []struct {
		height int
		crf    string
	}{
		{1080, "20"},
		{720, "22"},
		{480, "24"},
		{360, "24"},
	}
	for _, tc := range cases {
		got := rescaleArgs("/media/in.mp4", tc.height, "/media/out.mp4")
		foundScale, foundCRF := false, false
		for i, a := range got {
			if a == "-vf" && i+1 < len(got) {
				foundScale = got[i+1] == "scale=-2:"+strconv.Itoa(tc.height)
			}
			if a == "-crf" && i+1 < len(got) {
				foundCRF = got[i+1] == tc.crf
			}
		}
		if !foundScale || !foundCRF {
			t.Errorf("rescaleArgs(%d) = %v, want scale=-2:%d and crf %s", tc.height, got, tc.height, tc.crf)
		}
	}
}

func TestParseProbeOutput(t *testing.T) {
	out := []byte(`{"format": {"duration": "12.480000", "size": "1048576"}}`)
	res, err := parseProbeOutput(out)
	if err != nil {
		t.Fatalf("parseProbeOutput: %v", err)
	}
	if res.DurationSec != 12.48 {
		t.Errorf("duration = %v, want 12.48", res.DurationSec)
	}
	if res.SizeBytes != 1048576 {
		t.Errorf("size = %v, want 1048576", res.SizeBytes)
	}
}

func TestParseProbeOutputMalformed(t *testing.T) {
	if _, err := parseProbeOutput([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed output")
	}
	if _, err := parseProbeOutput([]byte(`{"format": {"duration": "abc"}}`)); err == nil {
		t.Fatal("expected error for non-numeric duration")
	}
}
