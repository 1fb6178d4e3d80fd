// Package types contains common types used across the application
package types

// Recommendation is one ranked track in a playlist.
type Recommendation struct {
	Rank      int     `json:"rank"`
	TrackName string  `json:"track_name"`
	Artist    string  `json:"artist"`
	Tags      string  `json:"tags"`
	Score     float64 `json:"score"`
}

// Playlist is the response to a recommendation request.
type Playlist struct {
	ProfileGenres []string         `json:"profile_genres"`
	Results       []Recommendation `json:"results"`
}

// Movie is the public view of a catalog movie.
type Movie struct {
	Title  string   `json:"title"`
	Year   *int     `json:"year,omitempty"`
	Genres []string `json:"genres"`
}
