package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type OverlayType string

const (
	OverlayTypeText      OverlayType = "text"
	OverlayTypeImage     OverlayType = "image"
	OverlayTypeVideo     OverlayType = "video"
	OverlayTypeWatermark OverlayType = "watermark"
)

// Coord is an overlay coordinate: either a plain number or an expression
// such as "center" or "W-w-20". Numbers arrive as JSON numbers, expressions
// as strings; both are kept in textual form.
type Coord string

func (c *Coord) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Coord(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Coord(n.String())
	return nil
}

func (c Coord) IsZero() bool {
	return c == ""
}

// OverlaySpec is one element of the overlay chain. Type discriminates which
// payload fields apply.
type OverlaySpec struct {
	Type      OverlayType `json:"type" validate:"required,oneof=text image video"`
	Text      string      `json:"text,omitempty"`
	Font      string      `json:"font,omitempty"`
	FontSize  int         `json:"font_size,omitempty" validate:"omitempty,gt=0"`
	Color     string      `json:"color,omitempty"`
	ImagePath string      `json:"image_path,omitempty"`
	VideoPath string      `json:"video_path,omitempty"`
	X         Coord       `json:"x,omitempty"`
	Y         Coord       `json:"y,omitempty"`
	Start     float64     `json:"start,omitempty" validate:"omitempty,gte=0"`
	End       *float64    `json:"end,omitempty" validate:"omitempty,gte=0"`
	Opacity   *float64    `json:"opacity,omitempty" validate:"omitempty,gte=0,lte=1"`
	Scale     *float64    `json:"scale,omitempty" validate:"omitempty,gt=0"`
}

// WatermarkSpec is a single image composited last, visible for the whole
// duration of the output.
type WatermarkSpec struct {
	ImagePath string   `json:"image_path" validate:"required"`
	X         Coord    `json:"x,omitempty"`
	Y         Coord    `json:"y,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Overlay is the persisted record of an overlay applied to a variant.
type Overlay struct {
	OverlayID uuid.UUID      `json:"overlay_id" db:"overlay_id"`
	VideoID   uuid.UUID      `json:"video_id" db:"video_id"`
	VariantID uuid.NullUUID  `json:"-" db:"variant_id"`
	Type      OverlayType    `json:"type" db:"type"`
	Payload   types.JSONText `json:"payload_json" db:"payload_json"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
