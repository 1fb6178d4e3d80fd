package recommend_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/okian/crosstune/internal/adapters/repository"
	"github.com/okian/crosstune/internal/domain/profile"
	"github.com/okian/crosstune/internal/domain/ranking"
	"github.com/okian/crosstune/internal/domain/recommend"
	"github.com/okian/crosstune/internal/domain/vector"
	"github.com/okian/crosstune/internal/domain/vectorizer"
	. "github.com/smartystreets/goconvey/convey"
)

var movieRows = []repository.Row{
	{"title": "Alpha (2001)", "genres": "Action|Adventure", "genre_text": "action action adventure"},
	{"title": "Beta (2002)", "genres": "Comedy", "genre_text": "comedy"},
	{"title": "Inception (2010)", "genres": "Action|Crime|Drama|Mystery|Sci-Fi|Thriller|IMAX", "genre_text": ""},
	{"title": "Gamma (2003)", "genres": "Drama|Romance", "genre_text": ""},
}

var trackTags = []string{
	"action rock", "comedy pop", "drama piano", "action", "adventure soundtrack",
	"thriller dark", "romance ballad", "mystery ambient", "crime hip_hop", "comedy",
	"sci fi synth", "jazz",
}

func fixture() *repository.Catalog {
	tracks := make([]repository.Row, len(trackTags))
	corpus := []string{"action action adventure", "comedy", "action crime drama mystery sci-fi thriller imax", "drama romance"}
	for i, tags := range trackTags {
		tracks[i] = repository.Row{"name": fmt.Sprintf("T%d", i+1), "artist": "Artist", "tags": tags}
		corpus = append(corpus, tags)
	}
	space, err := vectorizer.Fit(corpus)
	if err != nil {
		panic(err)
	}
	c, err := repository.Load(context.Background(),
		repository.StaticSource{repository.TableMovies: movieRows},
		repository.StaticSource{repository.TableTracks: tracks},
		space)
	if err != nil {
		panic(err)
	}
	return c
}

// countingRanker records calls before delegating.
type countingRanker struct {
	calls int
	next  ranking.Ranker
}

func (r *countingRanker) Rank(p vector.Sparse, m *vector.Matrix, k int) ([]ranking.Scored, error) {
	r.calls++
	return r.next.Rank(p, m, k)
}

func TestRecommend(t *testing.T) {
	Convey("Given a recommendation service over a small catalog", t, func() {
		ctx := context.Background()
		catalog := fixture()
		ranker := &countingRanker{next: ranking.NewBruteForce()}
		svc, err := recommend.New(catalog, recommend.WithRanker(ranker))
		So(err, ShouldBeNil)

		Convey("It returns k ranked tracks with non-increasing scores", func() {
			res, err := svc.Recommend(ctx, []string{"Alpha (2001)", "Beta (2002)"}, 10)
			So(err, ShouldBeNil)
			So(len(res), ShouldEqual, 10)
			for i, r := range res {
				So(r.Rank, ShouldEqual, i+1)
				if i > 0 {
					So(res[i-1].Score, ShouldBeGreaterThanOrEqualTo, r.Score)
				}
			}
			// The comedy half of the profile outweighs either action term.
			So(res[0].Track.Name, ShouldEqual, "T10")
		})

		Convey("Repeated calls return identical results", func() {
			a, err := svc.Recommend(ctx, []string{"Inception (2010)"}, 10)
			So(err, ShouldBeNil)
			b, err := svc.Recommend(ctx, []string{"Inception (2010)"}, 10)
			So(err, ShouldBeNil)
			So(a, ShouldResemble, b)
		})

		Convey("Selection order does not change the result", func() {
			a, err := svc.Recommend(ctx, []string{"Alpha (2001)", "Gamma (2003)", "Beta (2002)"}, 12)
			So(err, ShouldBeNil)
			b, err := svc.Recommend(ctx, []string{"Beta (2002)", "Alpha (2001)", "Gamma (2003)"}, 12)
			So(err, ShouldBeNil)
			So(a, ShouldResemble, b)
		})

		Convey("Validation runs before any vector math", func() {
			_, err := svc.Recommend(ctx, []string{"a", "b", "c", "d", "e", "f"}, 0)
			So(errors.Is(err, recommend.ErrInvalidSelection), ShouldBeTrue)

			_, err = svc.Recommend(ctx, nil, 10)
			So(errors.Is(err, recommend.ErrInvalidSelection), ShouldBeTrue)

			_, err = svc.Recommend(ctx, []string{"Nope"}, 31)
			So(errors.Is(err, recommend.ErrInvalidK), ShouldBeTrue)

			_, err = svc.Recommend(ctx, []string{"Alpha (2001)"}, 20)
			So(errors.Is(err, recommend.ErrInvalidK), ShouldBeTrue)
			So(errors.Is(err, ranking.ErrInvalidK), ShouldBeTrue)

			_, err = svc.Recommend(ctx, []string{"Alpha (2001)", "Jaws (1975)"}, 10)
			So(errors.Is(err, recommend.ErrUnknownMovie), ShouldBeTrue)
			So(errors.Is(err, profile.ErrUnknownMovie), ShouldBeTrue)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Jaws (1975)")

			So(ranker.calls, ShouldEqual, 0)
		})

		Convey("A cancelled context is honored", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Recommend(cctx, []string{"Alpha (2001)"}, 10)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("Profile genres are the sorted union", func() {
			genres, err := svc.ProfileGenres([]string{"Alpha (2001)", "Inception (2010)"})
			So(err, ShouldBeNil)
			So(genres, ShouldResemble, []string{"Action", "Adventure", "Crime", "Drama", "IMAX", "Mystery", "Sci-Fi", "Thriller"})

			_, err = svc.ProfileGenres([]string{"Jaws (1975)"})
			So(errors.Is(err, recommend.ErrUnknownMovie), ShouldBeTrue)
		})
	})
}

func TestTwoMovieProfile(t *testing.T) {
	Convey("Given movies A (action action adventure) and B (comedy)", t, func() {
		space, err := vectorizer.Fit([]string{"action action adventure", "comedy"})
		So(err, ShouldBeNil)
		So(space.Terms(), ShouldResemble, []string{"action", "adventure", "comedy"})

		catalog, err := repository.Load(context.Background(),
			repository.StaticSource{repository.TableMovies: movieRows[:2]},
			repository.StaticSource{repository.TableTracks: {{"name": "x", "artist": "y", "tags": "comedy"}}},
			space)
		So(err, ShouldBeNil)

		p, err := profile.NewBuilder(catalog).Build([]string{"Alpha (2001)", "Beta (2002)"})
		So(err, ShouldBeNil)

		Convey("The profile weighs all three terms", func() {
			So(p.At(0), ShouldBeGreaterThan, 0)
			So(p.At(1), ShouldBeGreaterThan, 0)
			So(p.At(2), ShouldBeGreaterThan, 0)
		})

		Convey("Neither movie dominates", func() {
			aPart := math.Hypot(p.At(0), p.At(1))
			So(aPart, ShouldAlmostEqual, p.At(2), 1e-12)
			So(p.At(2), ShouldAlmostEqual, 0.5, 1e-12)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Invalid bounds are rejected", t, func() {
		_, err := recommend.New(fixture(), recommend.WithBounds(recommend.Bounds{MinSelection: 3, MaxSelection: 1, MinK: 1, MaxK: 2}))
		So(errors.Is(err, recommend.ErrInvalidBounds), ShouldBeTrue)

		_, err = recommend.New(fixture(), recommend.WithBounds(recommend.Bounds{MinSelection: 1, MaxSelection: 1, MinK: 0, MaxK: 2}))
		So(errors.Is(err, recommend.ErrInvalidBounds), ShouldBeTrue)
	})

	Convey("Custom bounds are applied", t, func() {
		svc, err := recommend.New(fixture(), recommend.WithBounds(recommend.Bounds{MinSelection: 1, MaxSelection: 2, MinK: 1, MaxK: 3}))
		So(err, ShouldBeNil)
		So(svc.Bounds().MaxK, ShouldEqual, 3)

		res, err := svc.Recommend(context.Background(), []string{"Beta (2002)"}, 2)
		So(err, ShouldBeNil)
		So(len(res), ShouldEqual, 2)
		So(res[0].Track.Name, ShouldEqual, "T10")
	})
}
