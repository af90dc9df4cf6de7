package filtergraph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/clipstack/video-editor-backend/internal/models"
)

var testOpts = Options{
	FontsDir:    "/fonts",
	DefaultFont: "DejaVuSans.ttf",
}

func floatPtr(f float64) *float64 { return &f }

func TestBuildEmpty(t *testing.T) {
	g := Build(nil, nil, testOpts)
	if !g.Empty() {
		t.Fatal("expected empty graph")
	}
	if g.FilterComplex() != "" {
		t.Errorf("filter complex = %q, want empty", g.FilterComplex())
	}
	if len(g.Inputs()) != 0 {
		t.Errorf("inputs = %v, want none", g.Inputs())
	}
	if g.OutputLabel() != "" {
		t.Errorf("output label = %q, want empty", g.OutputLabel())
	}
}

func TestBuildTextWithWatermark(t *testing.T) {
	overlays := []models.OverlaySpec{
		{Type: models.OverlayTypeText, Text: "Hi", Start: 0, End: floatPtr(5)},
	}
	watermark := &models.WatermarkSpec{ImagePath: "/assets/logo.png", Opacity: floatPtr(0.5)}

	g := Build(overlays, watermark, testOpts)

	want := "[0:v]drawtext=text='Hi':fontfile=/fonts/DejaVuSans.ttf:fontsize=32:fontcolor=white:x=20:y=20:enable='between(t,0,5)':text_shaping=1[v1];" +
		"[1]format=rgba,colorchannelmixer=aa=0.5[wm1];" +
		"[v1][wm1]overlay=W-w-20:H-h-20:enable='between(t,0,1e9)'[v2]"
	if got := g.FilterComplex(); got != want {
		t.Errorf("filter complex =\n%s\nwant\n%s", got, want)
	}
	if got := g.Inputs(); !reflect.DeepEqual(got, []string{"/assets/logo.png"}) {
		t.Errorf("inputs = %v, want exactly the watermark image", got)
	}
	if g.OutputLabel() != "v2" {
		t.Errorf("output label = %q, want v2", g.OutputLabel())
	}
	// exactly one text compositing stage and one watermark compositing stage,
	// the watermark one last
	if n := strings.Count(g.FilterComplex(), "drawtext="); n != 1 {
		t.Errorf("drawtext stages = %d, want 1", n)
	}
	if n := strings.Count(g.FilterComplex(), "overlay="); n != 1 {
		t.Errorf("overlay stages = %d, want 1", n)
	}
	if !strings.HasSuffix(g.FilterComplex(), "[v2]") {
		t.Error("watermark stage must produce the terminal label")
	}
}

func TestBuildIsPure(t *testing.T) {
	overlays := []models.OverlaySpec{
		{Type: models.OverlayTypeText, Text: "caption", Start: 1, End: floatPtr(4)},
		{Type: models.OverlayTypeImage, ImagePath: "/assets/badge.png", Opacity: floatPtr(0.8), X: "center"},
		{Type: models.OverlayTypeVideo, VideoPath: "/assets/clip.mp4", Scale: floatPtr(0.5)},
	}
	watermark := &models.WatermarkSpec{ImagePath: "/assets/logo.png"}

	first := Build(overlays, watermark, testOpts)
	for i := 0; i < 5; i++ {
		g := Build(overlays, watermark, testOpts)
		if g.FilterComplex() != first.FilterComplex() {
			t.Fatal("filter complex differs across identical builds")
		}
		if !reflect.DeepEqual(g.Inputs(), first.Inputs()) {
			t.Fatal("inputs differ across identical builds")
		}
		if g.OutputLabel() != first.OutputLabel() {
			t.Fatal("output label differs across identical builds")
		}
	}
}

func TestBuildWatermarkOnly(t *testing.T) {
	g := Build(nil, &models.WatermarkSpec{ImagePath: "/assets/logo.png"}, testOpts)

	got := g.FilterComplex()
	if !strings.HasPrefix(got, "[1]format=rgba,colorchannelmixer=aa=0.5[wm1];") {
		t.Errorf("watermark alpha stage missing: %s", got)
	}
	if !strings.Contains(got, "[0:v][wm1]overlay=W-w-20:H-h-20:enable='between(t,0,1e9)'[v1]") {
		t.Errorf("watermark compositing stage wrong: %s", got)
	}
	if g.OutputLabel() != "v1" {
		t.Errorf("output label = %q, want v1", g.OutputLabel())
	}
}

func TestBuildImageOpacityAndVideoScale(t *testing.T) {
	overlays := []models.OverlaySpec{
		{Type: models.OverlayTypeImage, ImagePath: "/assets/badge.png", Opacity: floatPtr(0.8)},
		{Type: models.OverlayTypeVideo, VideoPath: "/assets/clip.mp4", Scale: floatPtr(0.5), Start: 2, End: floatPtr(8)},
	}
	g := Build(overlays, nil, testOpts)

	want := "[1]format=rgba,colorchannelmixer=aa=0.8[img1];" +
		"[0:v][img1]overlay=20:20:enable='between(t,0,1e9)'[v1];" +
		"[2]scale=iw*0.5:ih*0.5[vid2];" +
		"[v1][vid2]overlay=20:20:enable='between(t,2,8)'[v2]"
	if got := g.FilterComplex(); got != want {
		t.Errorf("filter complex =\n%s\nwant\n%s", got, want)
	}
	if got := g.Inputs(); !reflect.DeepEqual(got, []string{"/assets/badge.png", "/assets/clip.mp4"}) {
		t.Errorf("inputs = %v", got)
	}
}

func TestBuildSkipsPrepStagesWhenUnneeded(t *testing.T) {
	overlays := []models.OverlaySpec{
		{Type: models.OverlayTypeImage, ImagePath: "/assets/badge.png"},
		{Type: models.OverlayTypeVideo, VideoPath: "/assets/clip.mp4", Scale: floatPtr(1.0)},
	}
	g := Build(overlays, nil, testOpts)

	got := g.FilterComplex()
	if strings.Contains(got, "colorchannelmixer") {
		t.Errorf("unexpected alpha stage without opacity: %s", got)
	}
	if strings.Contains(got, "scale=") {
		t.Errorf("unexpected scale stage at factor 1.0: %s", got)
	}
	if !strings.Contains(got, "[0:v][1]overlay=") {
		t.Errorf("image should composite its raw input: %s", got)
	}
	if !strings.Contains(got, "[v1][2]overlay=") {
		t.Errorf("video should composite its raw input: %s", got)
	}
}

func TestBuildLabelsNeverCollide(t *testing.T) {
	overlays := []models.OverlaySpec{
		{Type: models.OverlayTypeText, Text: "a"},
		{Type: models.OverlayTypeText, Text: "b"},
		{Type: models.OverlayTypeImage, ImagePath: "/assets/one.png", Opacity: floatPtr(0.3)},
		{Type: models.OverlayTypeText, Text: "c"},
	}
	g := Build(overlays, &models.WatermarkSpec{ImagePath: "/assets/logo.png"}, testOpts)

	seen := map[string]bool{}
	for _, part := range strings.Split(g.FilterComplex(), ";") {
		label := part[strings.LastIndex(part, "[")+1 : len(part)-1]
		if seen[label] {
			t.Fatalf("label %q allocated twice", label)
		}
		seen[label] = true
	}
	if g.OutputLabel() != "v5" {
		t.Errorf("output label = %q, want v5", g.OutputLabel())
	}
}

func TestZeroEndMeansVisibleUntilOutputEnds(t *testing.T) {
	overlays := []models.OverlaySpec{
		{Type: models.OverlayTypeText, Text: "forever", Start: 3, End: floatPtr(0)},
	}
	g := Build(overlays, nil, testOpts)
	if !strings.Contains(g.FilterComplex(), "enable='between(t,3,1e9)'") {
		t.Errorf("end=0 must map to the unbounded sentinel: %s", g.FilterComplex())
	}
}

func TestDrawTextEscaping(t *testing.T) {
	overlays := []models.OverlaySpec{
		{Type: models.OverlayTypeText, Text: `it's 10:30`},
	}
	g := Build(overlays, nil, testOpts)
	if !strings.Contains(g.FilterComplex(), `text='it\'s 10\:30'`) {
		t.Errorf("text not escaped: %s", g.FilterComplex())
	}
}

func TestNormalizePosition(t *testing.T) {
	cases := []struct {
		in   models.Coord
		ax   axis
		want string
	}{
		{"", axisX, "20"},
		{"42", axisX, "42"},
		{"12.5", axisY, "12.5"},
		{"center", axisX, "(W-w)/2"},
		{"Centre", axisY, "(H-h)/2"},
		{"MIDDLE", axisX, "(W-w)/2"},
		{"(w-w_i)/2", axisX, "(W-w)/2"},
		{"(h-h_i)/2", axisY, "(H-h)/2"},
		{"W-w-10", axisX, "W-w-10"},
	}
	for _, tc := range cases {
		if got := normalizePosition(tc.in, tc.ax, "20"); got != tc.want {
			t.Errorf("normalizePosition(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
