// Package filtergraph compiles an ordered list of overlay specifications,
// plus an optional trailing watermark, into a single ffmpeg filter-complex
// description. Building is a pure function of its inputs: no shared state,
// identical input always yields byte-identical output.
package filtergraph

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/clipstack/video-editor-backend/internal/models"
)

const (
	defaultFontSize         = 32
	defaultFontColor        = "white"
	defaultCoord            = "20"
	defaultWatermarkX       = "W-w-20"
	defaultWatermarkY       = "H-h-20"
	defaultWatermarkOpacity = 0.5
	primaryVideoStream      = "0:v"
)

// Options carry tool-environment settings that are not part of the overlay
// specs themselves.
type Options struct {
	FontsDir    string
	DefaultFont string
}

// Graph is an immutable compiled pipeline: the stage chain, the auxiliary
// input files it references (1-indexed after the primary input), and the
// terminal stream label.
type Graph struct {
	stages []stage
	inputs []string
	output string
}

// Empty reports whether no stages were produced; callers must then map the
// primary video stream through unmodified.
func (g *Graph) Empty() bool {
	return len(g.stages) == 0
}

// FilterComplex renders the full semicolon-joined pipeline description.
func (g *Graph) FilterComplex() string {
	var sb strings.Builder
	for i, s := range g.stages {
		if i > 0 {
			sb.WriteByte(';')
		}
		s.render(&sb)
	}
	return sb.String()
}

// Inputs returns the auxiliary input files in reference order.
func (g *Graph) Inputs() []string {
	return g.inputs
}

// OutputLabel is the terminal stream label, empty for an empty graph.
func (g *Graph) OutputLabel() string {
	return g.output
}

type builder struct {
	opts         Options
	graph        Graph
	currentLabel string
	nextIndex    int
}

// Build compiles the overlay chain in input order. The watermark, when
// present, is always appended last regardless of overlay order.
func Build(overlays []models.OverlaySpec, watermark *models.WatermarkSpec, opts Options) *Graph {
	b := &builder{
		opts:         opts,
		currentLabel: primaryVideoStream,
		nextIndex:    1,
	}

	for i := range overlays {
		o := &overlays[i]
		switch o.Type {
		case models.OverlayTypeText:
			b.addText(o)
		case models.OverlayTypeImage:
			b.addImage(o)
		case models.OverlayTypeVideo:
			b.addVideo(o)
		}
	}

	if watermark != nil {
		b.addWatermark(watermark)
	}

	if len(b.graph.stages) > 0 {
		b.graph.output = b.currentLabel
	}
	return &b.graph
}

func (b *builder) nextLabel() string {
	label := "v" + strconv.Itoa(b.nextIndex)
	b.nextIndex++
	return label
}

func (b *builder) push(s stage, out string) {
	b.graph.stages = append(b.graph.stages, s)
	b.currentLabel = out
}

// addInput registers an auxiliary input file and returns its input index,
// 1-based since index 0 is the primary input.
func (b *builder) addInput(p string) int {
	b.graph.inputs = append(b.graph.inputs, p)
	return len(b.graph.inputs)
}

func (b *builder) addText(o *models.OverlaySpec) {
	font := o.Font
	if font == "" {
		font = b.opts.DefaultFont
	}
	fontSize := o.FontSize
	if fontSize == 0 {
		fontSize = defaultFontSize
	}
	color := o.Color
	if color == "" {
		color = defaultFontColor
	}

	out := b.nextLabel()
	b.push(&drawTextStage{
		in:       b.currentLabel,
		out:      out,
		text:     o.Text,
		fontFile: path.Join(b.opts.FontsDir, font),
		fontSize: fontSize,
		color:    color,
		x:        normalizePosition(o.X, axisX, defaultCoord),
		y:        normalizePosition(o.Y, axisY, defaultCoord),
		enable:   enableExpr(o.Start, o.End),
	}, out)
}

func (b *builder) addImage(o *models.OverlaySpec) {
	idx := b.addInput(o.ImagePath)
	over := strconv.Itoa(idx)

	if o.Opacity != nil {
		prepared := fmt.Sprintf("img%d", idx)
		b.graph.stages = append(b.graph.stages, &alphaStage{
			inputIndex: idx,
			opacity:    *o.Opacity,
			out:        prepared,
		})
		over = prepared
	}

	out := b.nextLabel()
	b.push(&overlayStage{
		base:   b.currentLabel,
		over:   over,
		x:      normalizePosition(o.X, axisX, defaultCoord),
		y:      normalizePosition(o.Y, axisY, defaultCoord),
		enable: enableExpr(o.Start, o.End),
		out:    out,
	}, out)
}

func (b *builder) addVideo(o *models.OverlaySpec) {
	idx := b.addInput(o.VideoPath)
	over := strconv.Itoa(idx)

	if o.Scale != nil && *o.Scale != 1.0 {
		prepared := fmt.Sprintf("vid%d", idx)
		b.graph.stages = append(b.graph.stages, &scaleStage{
			inputIndex: idx,
			factor:     *o.Scale,
			out:        prepared,
		})
		over = prepared
	}

	out := b.nextLabel()
	b.push(&overlayStage{
		base:   b.currentLabel,
		over:   over,
		x:      normalizePosition(o.X, axisX, defaultCoord),
		y:      normalizePosition(o.Y, axisY, defaultCoord),
		enable: enableExpr(o.Start, o.End),
		out:    out,
	}, out)
}

// The watermark is always alpha-adjusted and always visible.
func (b *builder) addWatermark(w *models.WatermarkSpec) {
	idx := b.addInput(w.ImagePath)
	opacity := defaultWatermarkOpacity
	if w.Opacity != nil {
		opacity = *w.Opacity
	}

	prepared := fmt.Sprintf("wm%d", idx)
	b.graph.stages = append(b.graph.stages, &alphaStage{
		inputIndex: idx,
		opacity:    opacity,
		out:        prepared,
	})

	out := b.nextLabel()
	b.push(&overlayStage{
		base:   b.currentLabel,
		over:   prepared,
		x:      normalizePosition(w.X, axisX, defaultWatermarkX),
		y:      normalizePosition(w.Y, axisY, defaultWatermarkY),
		enable: enableExpr(0, nil),
		out:    out,
	}, out)
}
