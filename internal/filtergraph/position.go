package filtergraph

import (
	"strconv"
	"strings"

	"github.com/clipstack/video-editor-backend/internal/models"
)

type axis int

const (
	axisX axis = iota
	axisY
)

// Position-expression tokens follow ffmpeg's overlay convention: uppercase
// W/H are the base (output) dimensions, lowercase w/h the overlaid element's
// own dimensions. Clients routinely mix these up, so known aliases and
// casing mistakes are corrected here to keep expressions composable.
func normalizePosition(c models.Coord, ax axis, def string) string {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return def
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	switch strings.ToLower(s) {
	case "center", "centre", "middle":
		if ax == axisX {
			return "(W-w)/2"
		}
		return "(H-h)/2"
	}
	s = strings.ReplaceAll(s, "w_i", "w")
	s = strings.ReplaceAll(s, "h_i", "h")
	s = strings.ReplaceAll(s, "(w-", "(W-")
	s = strings.ReplaceAll(s, "(h-", "(H-")
	return s
}
