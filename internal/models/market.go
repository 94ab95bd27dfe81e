package models

import (
	"fmt"
	"strings"
	"time"
)

// Window selects the historical range of a valuation request.
type Window string

const (
	WindowDay   Window = "1d"
	WindowWeek  Window = "1w"
	WindowMonth Window = "1m"
	WindowYear  Window = "1y"
	WindowAll   Window = "all"
)

// ParseWindow validates a caller-supplied window token.
func ParseWindow(s string) (Window, error) {
	switch Window(strings.ToLower(strings.TrimSpace(s))) {
	case WindowDay:
		return WindowDay, nil
	case WindowWeek:
		return WindowWeek, nil
	case WindowMonth:
		return WindowMonth, nil
	case WindowYear:
		return WindowYear, nil
	case WindowAll, "":
		return WindowAll, nil
	}
	return "", fmt.Errorf("invalid window %q (want 1d, 1w, 1m, 1y or all)", s)
}

// Days returns the provider range parameter for the window. "max" requests
// the full history; the provider chooses coarser sampling as the range grows.
func (w Window) Days() string {
	switch w {
	case WindowDay:
		return "1"
	case WindowWeek:
		return "7"
	case WindowMonth:
		return "30"
	case WindowYear:
		return "365"
	default:
		return "max"
	}
}

// LabelFormat returns the timestamp layout used for chart labels at this
// window's granularity.
func (w Window) LabelFormat() string {
	switch w {
	case WindowDay:
		return "15:04"
	case WindowWeek, WindowMonth:
		return "Jan 2 15:04"
	default:
		return "Jan 2 2006"
	}
}

// PriceSample is one provider price observation for an asset.
type PriceSample struct {
	Timestamp int64   `json:"timestamp"` // epoch millis
	Price     float64 `json:"price"`
}

// Time returns the sample's timestamp as a time.Time.
func (s PriceSample) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}
