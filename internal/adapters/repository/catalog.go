package repository

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/crosstune/internal/domain/model"
	"github.com/okian/crosstune/internal/domain/vector"
	"github.com/okian/crosstune/internal/domain/vectorizer"
	"github.com/okian/crosstune/pkg/logger"
	"github.com/okian/crosstune/pkg/metrics"
)

// vectorizeChunk is the number of rows one goroutine vectorizes at a time.
const vectorizeChunk = 256

// Required and derived columns.
const (
	colTitle          = "title"
	colGenres         = "genres"
	colGenreText      = "genre_text"
	colGenresExpanded = "genres_expanded"
	colName           = "name"
	colArtist         = "artist"
	colTags           = "tags"
	colTagsClean      = "tags_clean"
)

// Catalog is the immutable, index-aligned set of movies and tracks with
// their vectors. It is safe for concurrent reads.
type Catalog struct {
	space      *vectorizer.Space
	movies     []model.Movie
	tracks     []model.Track
	titleIndex map[string]int
	titles     []string // distinct titles in first-seen order
	duplicates int
	movieVecs  *vector.Matrix
	trackVecs  *vector.Matrix
}

// Load reads both tables, vectorizes their text in space and returns the
// catalog. Every failure wraps ErrLoad.
func Load(ctx context.Context, movieSource, trackSource Source, space *vectorizer.Space, opts ...Option) (*Catalog, error) {
	o := loadOptions{workers: runtime.NumCPU(), log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if space == nil {
		return nil, fmt.Errorf("%w: nil vector space", ErrLoad)
	}

	start := time.Now()

	movieRows, err := movieSource.Rows(ctx, TableMovies)
	if err != nil {
		return nil, fmt.Errorf("%w: movies: %w", ErrLoad, err)
	}
	trackRows, err := trackSource.Rows(ctx, TableTracks)
	if err != nil {
		return nil, fmt.Errorf("%w: tracks: %w", ErrLoad, err)
	}

	c := &Catalog{space: space}
	if err := c.addMovies(ctx, movieRows, o); err != nil {
		return nil, fmt.Errorf("%w: movies: %w", ErrLoad, err)
	}
	if err := c.addTracks(trackRows); err != nil {
		return nil, fmt.Errorf("%w: tracks: %w", ErrLoad, err)
	}
	if err := c.vectorize(ctx, o.workers); err != nil {
		return nil, fmt.Errorf("%w: vectorize: %w", ErrLoad, err)
	}

	elapsed := time.Since(start)
	metrics.UpdateCatalogMovies(len(c.movies))
	metrics.UpdateCatalogTracks(len(c.tracks))
	metrics.UpdateVocabularySize(space.Dim())
	metrics.UpdateDuplicateTitles(c.duplicates)
	metrics.RecordCatalogLoadDuration(elapsed.Seconds())

	o.log.Info(ctx, "catalog loaded",
		logger.Int("movies", len(c.movies)),
		logger.Int("tracks", len(c.tracks)),
		logger.Int("dim", space.Dim()),
		logger.Int("duplicate_titles", c.duplicates),
		logger.Duration("elapsed", elapsed),
	)
	return c, nil
}

func requireColumns(rows []Row, cols ...string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no rows", ErrInsufficientCatalog)
	}
	for _, col := range cols {
		if _, ok := rows[0][col]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}

// firstNonEmpty returns the first non-blank value among cols.
func firstNonEmpty(row Row, cols ...string) string {
	for _, col := range cols {
		if v := strings.TrimSpace(row[col]); v != "" {
			return v
		}
	}
	return ""
}

func (c *Catalog) addMovies(ctx context.Context, rows []Row, o loadOptions) error {
	if err := requireColumns(rows, colTitle, colGenres); err != nil {
		return err
	}

	c.movies = make([]model.Movie, 0, len(rows))
	c.titleIndex = make(map[string]int, len(rows))
	c.titles = make([]string, 0, len(rows))

	for i, row := range rows {
		title := strings.TrimSpace(row[colTitle])
		if title == "" {
			o.log.Warn(ctx, "skipping movie without title", logger.Int("row", i))
			continue
		}
		raw := row[colGenres]
		text := movieText(row)
		year, _ := model.ParseYear(title)

		idx := len(c.movies)
		c.movies = append(c.movies, model.Movie{
			Title:     title,
			Year:      year,
			RawGenres: raw,
			Genres:    model.SplitGenres(raw),
			GenreText: text,
		})

		if first, dup := c.titleIndex[title]; dup {
			if o.strictTitles {
				return fmt.Errorf("%w: %q at rows %d and %d", ErrDuplicateTitle, title, first, idx)
			}
			c.duplicates++
			o.log.Warn(ctx, "duplicate movie title, keeping first row",
				logger.String("title", title),
				logger.Int("first", first),
				logger.Int("shadowed", idx),
			)
			continue
		}
		c.titleIndex[title] = idx
		c.titles = append(c.titles, title)
	}
	if len(c.movies) == 0 {
		return fmt.Errorf("%w: no titled movies", ErrInsufficientCatalog)
	}
	return nil
}

func (c *Catalog) addTracks(rows []Row) error {
	if err := requireColumns(rows, colName, colArtist, colTags); err != nil {
		return err
	}

	c.tracks = make([]model.Track, 0, len(rows))
	for _, row := range rows {
		tags := row[colTags]
		clean := trackText(row)
		c.tracks = append(c.tracks, model.Track{
			Name:      strings.TrimSpace(row[colName]),
			Artist:    strings.TrimSpace(row[colArtist]),
			Tags:      tags,
			TagsClean: clean,
		})
	}
	return nil
}

// vectorize fills every row vector in parallel. Each goroutine owns a
// disjoint range, so the result does not depend on scheduling.
func (c *Catalog) vectorize(ctx context.Context, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < len(c.movies); lo += vectorizeChunk {
		hi := min(lo+vectorizeChunk, len(c.movies))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				c.movies[i].Vector = c.space.TransformOne(c.movies[i].GenreText)
			}
			return nil
		})
	}
	for lo := 0; lo < len(c.tracks); lo += vectorizeChunk {
		hi := min(lo+vectorizeChunk, len(c.tracks))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				c.tracks[i].Vector = c.space.TransformOne(c.tracks[i].TagsClean)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	movieRows := make([]vector.Sparse, len(c.movies))
	for i := range c.movies {
		movieRows[i] = c.movies[i].Vector
	}
	trackRows := make([]vector.Sparse, len(c.tracks))
	for i := range c.tracks {
		trackRows[i] = c.tracks[i].Vector
	}

	var err error
	if c.movieVecs, err = vector.NewMatrix(c.space.Dim(), movieRows); err != nil {
		return err
	}
	if c.trackVecs, err = vector.NewMatrix(c.space.Dim(), trackRows); err != nil {
		return err
	}
	return nil
}

// LookupMovie returns the movie for title. With duplicate titles the first
// row wins.
func (c *Catalog) LookupMovie(title string) (model.Movie, error) {
	i, err := c.MovieIndex(title)
	if err != nil {
		return model.Movie{}, err
	}
	return c.movies[i], nil
}

// MovieIndex returns the row index of title.
func (c *Catalog) MovieIndex(title string) (int, error) {
	i, ok := c.titleIndex[title]
	if !ok {
		return 0, fmt.Errorf("%w: movie %q", ErrNotFound, title)
	}
	return i, nil
}

// Movie returns the movie at row i.
func (c *Catalog) Movie(i int) (model.Movie, error) {
	if i < 0 || i >= len(c.movies) {
		return model.Movie{}, fmt.Errorf("%w: movie row %d", ErrNotFound, i)
	}
	return c.movies[i], nil
}

// Track returns the track at row i.
func (c *Catalog) Track(i int) (model.Track, error) {
	if i < 0 || i >= len(c.tracks) {
		return model.Track{}, fmt.Errorf("%w: track row %d", ErrNotFound, i)
	}
	return c.tracks[i], nil
}

// MovieVectors returns the movie matrix, row-aligned with Movie(i).
func (c *Catalog) MovieVectors() *vector.Matrix { return c.movieVecs }

// TrackVectors returns the track matrix, row-aligned with Track(i).
func (c *Catalog) TrackVectors() *vector.Matrix { return c.trackVecs }

// Movies returns the number of movie rows, duplicates included.
func (c *Catalog) Movies() int { return len(c.movies) }

// Tracks returns the number of track rows.
func (c *Catalog) Tracks() int { return len(c.tracks) }

// Titles returns the number of distinct movie titles.
func (c *Catalog) Titles() int { return len(c.titles) }

// Duplicates returns how many movie rows were shadowed by an earlier title.
func (c *Catalog) Duplicates() int { return c.duplicates }

// Dim returns the vector dimension.
func (c *Catalog) Dim() int { return c.space.Dim() }

// Space returns the vector space the catalog was built in.
func (c *Catalog) Space() *vectorizer.Space { return c.space }
