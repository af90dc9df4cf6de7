package filtergraph

import (
	"fmt"
	"strconv"
	"strings"
)

// A stage is one semicolon-joined segment of the filter-complex string.
// Stages hold parsed parameters; the ffmpeg text form is produced only in
// render.
type stage interface {
	render(sb *strings.Builder)
}

const unboundedEnd = "1e9"

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// An omitted or zero end means "visible until the end of output".
func enableExpr(start float64, end *float64) string {
	endStr := unboundedEnd
	if end != nil && *end != 0 {
		endStr = formatNum(*end)
	}
	return fmt.Sprintf("enable='between(t,%s,%s)'", formatNum(start), endStr)
}

var textEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)

type drawTextStage struct {
	in, out  string
	text     string
	fontFile string
	fontSize int
	color    string
	x, y     string
	enable   string
}

func (s *drawTextStage) render(sb *strings.Builder) {
	// text_shaping keeps complex scripts (Indic, Arabic) rendering correctly.
	fmt.Fprintf(sb, "[%s]drawtext=text='%s':fontfile=%s:fontsize=%d:fontcolor=%s:x=%s:y=%s:%s:text_shaping=1[%s]",
		s.in, textEscaper.Replace(s.text), s.fontFile, s.fontSize, s.color, s.x, s.y, s.enable, s.out)
}

// alphaStage multiplies an auxiliary input's alpha channel before it is
// composited.
type alphaStage struct {
	inputIndex int
	opacity    float64
	out        string
}

func (s *alphaStage) render(sb *strings.Builder) {
	fmt.Fprintf(sb, "[%d]format=rgba,colorchannelmixer=aa=%s[%s]", s.inputIndex, formatNum(s.opacity), s.out)
}

type scaleStage struct {
	inputIndex int
	factor     float64
	out        string
}

func (s *scaleStage) render(sb *strings.Builder) {
	f := formatNum(s.factor)
	fmt.Fprintf(sb, "[%d]scale=iw*%s:ih*%s[%s]", s.inputIndex, f, f, s.out)
}

// overlayStage composites an auxiliary input (or a prepared intermediate
// label) onto the current chain.
type overlayStage struct {
	base   string
	over   string
	x, y   string
	enable string
	out    string
}

func (s *overlayStage) render(sb *strings.Builder) {
	fmt.Fprintf(sb, "[%s][%s]overlay=%s:%s:%s[%s]", s.base, s.over, s.x, s.y, s.enable, s.out)
}
