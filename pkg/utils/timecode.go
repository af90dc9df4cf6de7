package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var timecodePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2}(?:\.\d+)?)$`)

// Timecode holds a client-supplied time value, either plain seconds or the
// textual HH:MM:SS[.fff] form. The raw text is kept until Seconds is called.
type Timecode string

func (t *Timecode) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Timecode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Timecode(n.String())
	return nil
}

func (t Timecode) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Seconds parses the timecode into fractional seconds.
func (t Timecode) Seconds() (float64, error) {
	s := strings.TrimSpace(string(t))
	if s == "" {
		return 0, fmt.Errorf("empty timecode")
	}
	if m := timecodePattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds, _ := strconv.ParseFloat(m[3], 64)
		return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timecode format: %s", s)
	}
	return sec, nil
}

// ClampTimecode clamps a parsed timecode into [0, duration].
func ClampTimecode(timeSeconds, durationSeconds float64) float64 {
	if timeSeconds < 0 {
		return 0
	}
	if timeSeconds > durationSeconds {
		return durationSeconds
	}
	return timeSeconds
}

// ValidateTimeRange parses both bounds, clamps them into [0, duration] and
// requires start to stay strictly below end afterwards.
func ValidateTimeRange(start, end Timecode, duration float64) (float64, float64, error) {
	startSec, err := start.Seconds()
	if err != nil {
		return 0, 0, err
	}
	endSec, err := end.Seconds()
	if err != nil {
		return 0, 0, err
	}

	startSec = ClampTimecode(startSec, duration)
	endSec = ClampTimecode(endSec, duration)

	if startSec >= endSec {
		return 0, 0, fmt.Errorf("start time must be less than end time")
	}
	return startSec, endSec, nil
}

// FormatTimecode renders seconds as HH:MM:SS.fff.
func FormatTimecode(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600+minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}
