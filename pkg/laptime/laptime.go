// Package laptime parses the lap and finish times found in results tables,
// lineup sheets and OCR output.
package laptime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time is a lap or finish time measured from the start of the race.
type Time struct {
	d time.Duration
}

// New builds a Time from its components.
func New(minutes, seconds, micros int) Time {
	return Time{d: time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(micros)*time.Microsecond}
}

// Duration returns the elapsed time.
func (t Time) Duration() time.Duration { return t.d }

// Hours returns the hour component.
func (t Time) Hours() int { return int(t.d / time.Hour) }

// Minutes returns the minute component.
func (t Time) Minutes() int { return int(t.d % time.Hour / time.Minute) }

// Seconds returns the second component.
func (t Time) Seconds() int { return int(t.d % time.Minute / time.Second) }

// Microseconds returns the sub-second component.
func (t Time) Microseconds() int { return int(t.d % time.Second / time.Microsecond) }

// IsZero reports whether t is the zero time.
func (t Time) IsZero() bool { return t.d == 0 }

// String formats t as HH:MM:SS.ffffff.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%06d", t.Hours(), t.Minutes(), t.Seconds(), t.Microseconds())
}

// LapString formats t as MM:SS.ffffff.
func (t Time) LapString() string {
	return fmt.Sprintf("%02d:%02d.%06d", t.Minutes(), t.Seconds(), t.Microseconds())
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts anything
// Normalize accepts plus the HH:MM:SS.ffffff form produced by String.
func (t *Time) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err == nil {
			parsed, ok := Normalize(parts[1] + ":" + parts[2])
			if ok {
				t.d = time.Duration(h)*time.Hour + parsed.d
				return nil
			}
		}
	}
	parsed, ok := Normalize(s)
	if !ok {
		return fmt.Errorf("invalid lap time %q", text)
	}
	*t = parsed
	return nil
}

var digitRuns = regexp.MustCompile(`\d+`)

// Normalize parses a noisy time token into a Time. The second return value
// is false when nothing sensible can be recovered.
//
// Accepted shapes, all seen in real results:
//
//	":18,62"   leading colon, minutes missing      -> 00:18.62
//	"2102:48"  MMSS fused, fraction after colon    -> 21:02.48
//	"19:522"   stray trailing digit in fraction    -> 19:52
//	"952:48"   missing leading zero, fused         -> 09:52.48
//	"21:0248"  SS and fraction fused               -> 21:02.48
//	"26:16.00" MM:SS,ff                            -> 26:16.00
func Normalize(raw string) (Time, bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, ":") {
		raw = "00" + raw
	}

	runs := digitRuns.FindAllString(raw, -1)
	if allZero(runs) {
		return Time{}, false
	}

	var minutes, seconds, fraction string
	switch len(runs) {
	case 2:
		first, second := runs[0], runs[1]
		if len(first) == 3 {
			first = "0" + first
		}
		if len(second) == 3 {
			second = second[:2]
		}
		switch {
		case len(first) == 4:
			minutes, seconds, fraction = first[:2], first[2:], second
		case len(second) == 4:
			minutes, seconds, fraction = first, second[:2], second[2:]
		default:
			minutes, seconds = first, second
		}
	case 3:
		minutes, seconds, fraction = runs[0], runs[1], runs[2]
	default:
		return Time{}, false
	}

	return build(minutes, seconds, fraction)
}

func build(minutes, seconds, fraction string) (Time, bool) {
	m, err := strconv.Atoi(minutes)
	if err != nil || m > 59 {
		return Time{}, false
	}
	s, err := strconv.Atoi(seconds)
	if err != nil || s > 59 {
		return Time{}, false
	}

	// Fractions are at most microseconds.
	if len(fraction) > 6 {
		return Time{}, false
	}
	micros := 0
	if fraction != "" {
		fraction += strings.Repeat("0", 6-len(fraction))
		if micros, err = strconv.Atoi(fraction); err != nil {
			return Time{}, false
		}
	}
	return New(m, s, micros), true
}

func allZero(runs []string) bool {
	for _, r := range runs {
		if strings.Trim(r, "0") != "" {
			return false
		}
	}
	return true
}
