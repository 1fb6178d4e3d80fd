// Command fit-vocab fits the vector space over the movie and track
// catalogs and writes it as a vocabulary artifact.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/okian/crosstune/internal/adapters/repository"
	"github.com/okian/crosstune/internal/config"
	"github.com/okian/crosstune/internal/domain/vectorizer"
	"github.com/okian/crosstune/pkg/logger"
)

const defaultTimeout = 10 * time.Minute

func main() {
	defaults := config.New()
	var (
		movies  = flag.String("movies", defaults.MoviesPath, "Movie catalog: CSV path, SQLite file or postgres:// DSN")
		tracks  = flag.String("tracks", defaults.TracksPath, "Track catalog: CSV path, SQLite file or postgres:// DSN")
		out     = flag.String("out", defaults.VocabularyPath, "Output path for the vocabulary artifact")
		timeout = flag.Duration("timeout", defaultTimeout, "Overall timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	space, err := fit(ctx, *movies, *tracks)
	if err != nil {
		os.Stderr.WriteString("Fit failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := space.SaveFile(*out); err != nil {
		os.Stderr.WriteString("Write failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Get().Info(ctx, "vocabulary written",
		logger.String("path", *out),
		logger.Int("terms", space.Dim()),
	)
}

// fit reads both sources and fits a space over their combined text.
func fit(ctx context.Context, moviesDSN, tracksDSN string) (*vectorizer.Space, error) {
	movies, err := repository.OpenSource(ctx, moviesDSN)
	if err != nil {
		return nil, err
	}
	defer func() { _ = movies.Close() }()

	tracks := movies
	if tracksDSN != moviesDSN {
		tracks, err = repository.OpenSource(ctx, tracksDSN)
		if err != nil {
			return nil, err
		}
		defer func() { _ = tracks.Close() }()
	}

	corpus, err := repository.Corpus(ctx, movies, tracks)
	if err != nil {
		return nil, err
	}
	space, err := vectorizer.Fit(corpus)
	if err != nil {
		return nil, errors.New("fit over " + strconv.Itoa(len(corpus)) + " documents: " + err.Error())
	}
	return space, nil
}
