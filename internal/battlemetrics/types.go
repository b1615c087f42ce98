package battlemetrics

import "fmt"

// TimeUnavailable is reported when the server doesn't publish its in-game time.
const TimeUnavailable = "N/A"

// Server is the subset of a server resource the dashboard displays.
type Server struct {
	ID         string
	Name       string
	Players    int
	MaxPlayers int    // 0 when not reported
	Status     string // API-reported status ("online", "offline", ...), may be empty

	// Time is the server-reported in-game time, or TimeUnavailable.
	Time string
}

// serverResponse mirrors GET /servers/{id}.
type serverResponse struct {
	Data *struct {
		ID         string `json:"id"`
		Attributes *struct {
			Name       *string        `json:"name"`
			Players    *int           `json:"players"`
			MaxPlayers int            `json:"maxPlayers"`
			Status     string         `json:"status"`
			Details    map[string]any `json:"details"`
		} `json:"attributes"`
	} `json:"data"`
}

// detailString renders a details value for display.
func detailString(details map[string]any, key string) string {
	v, ok := details[key]
	if !ok || v == nil {
		return TimeUnavailable
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return TimeUnavailable
		}
		return s
	}
	return fmt.Sprint(v)
}
