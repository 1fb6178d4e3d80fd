package repository

import (
	"context"
	"fmt"

	"github.com/okian/crosstune/internal/domain/model"
)

// movieText is the text a movie row is vectorized from. A precomputed
// genre_text or genres_expanded column wins over the raw genres.
func movieText(row Row) string {
	if text := firstNonEmpty(row, colGenreText, colGenresExpanded); text != "" {
		return text
	}
	return model.GenreText(row[colGenres])
}

// trackText is the text a track row is vectorized from.
func trackText(row Row) string {
	if text := firstNonEmpty(row, colTagsClean); text != "" {
		return text
	}
	return model.CleanTags(row[colTags])
}

// Corpus returns the movie texts followed by the track texts, derived the
// same way Load derives them. It is the input for fitting a vector space.
func Corpus(ctx context.Context, movieSource, trackSource Source) ([]string, error) {
	movieRows, err := movieSource.Rows(ctx, TableMovies)
	if err != nil {
		return nil, fmt.Errorf("%w: movies: %w", ErrLoad, err)
	}
	if err := requireColumns(movieRows, colTitle, colGenres); err != nil {
		return nil, fmt.Errorf("%w: movies: %w", ErrLoad, err)
	}
	trackRows, err := trackSource.Rows(ctx, TableTracks)
	if err != nil {
		return nil, fmt.Errorf("%w: tracks: %w", ErrLoad, err)
	}
	if err := requireColumns(trackRows, colName, colArtist, colTags); err != nil {
		return nil, fmt.Errorf("%w: tracks: %w", ErrLoad, err)
	}

	corpus := make([]string, 0, len(movieRows)+len(trackRows))
	for _, row := range movieRows {
		corpus = append(corpus, movieText(row))
	}
	for _, row := range trackRows {
		corpus = append(corpus, trackText(row))
	}
	return corpus, nil
}
