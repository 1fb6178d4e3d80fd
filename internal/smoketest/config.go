// Package smoketest drives a running recommender over HTTP and checks
// that every playlist it returns is well formed.
package smoketest

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Requests  int           // Number of recommendation requests to send
	Workers   int           // Number of concurrent workers
	PoolSize  int           // Titles sampled for building selections
	Selection int           // Titles per request
	K         int           // Tracks requested per playlist
	Timeout   time.Duration // HTTP request timeout
	ReadyWait time.Duration // How long to wait for /readyz
	Seed      uint64        // Seed for building selections
	Verbose   bool          // Log each failure
}

// Stats holds run statistics.
type Stats struct {
	Submitted  int
	Successful int
	Rejected   int // 4xx responses
	Failed     int // transport errors and 5xx responses
	Violations int // 200 responses that break a playlist invariant
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// Playlist is the recommendation response body.
type Playlist struct {
	RequestID     string   `json:"request_id"`
	ProfileGenres []string `json:"profile_genres"`
	Results       []Track  `json:"results"`
}

// Track is one playlist entry.
type Track struct {
	Rank      int     `json:"rank"`
	TrackName string  `json:"track_name"`
	Artist    string  `json:"artist"`
	Tags      string  `json:"tags"`
	Score     float64 `json:"score"`
}

type recommendRequest struct {
	Titles []string `json:"titles"`
	K      int      `json:"k"`
}

type sampleResponse struct {
	Titles []string `json:"titles"`
}
