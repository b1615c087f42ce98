package monitor

// Trend is the direction of the player count between the two most recent samples.
type Trend int

const (
	TrendNeutral Trend = iota
	TrendUp
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "neutral"
	}
}

// Arrow returns the marker shown next to the player count.
func (t Trend) Arrow() string {
	switch t {
	case TrendUp:
		return "▲"
	case TrendDown:
		return "▼"
	default:
		return "•"
	}
}

// CompareTrend compares the newest sample against the one before it.
// Fewer than two samples is neutral.
func CompareTrend(samples []int) Trend {
	if len(samples) < 2 {
		return TrendNeutral
	}
	prev, cur := samples[len(samples)-2], samples[len(samples)-1]
	switch {
	case cur > prev:
		return TrendUp
	case cur < prev:
		return TrendDown
	default:
		return TrendNeutral
	}
}
