package service_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	service "github.com/okian/crosstune/internal/app"
	"github.com/okian/crosstune/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	_ "modernc.org/sqlite"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := newService(writeFixture(t))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When many requests run concurrently", func() {
			const callers = 16
			results := make([]types.Playlist, callers)
			errs := make([]error, callers)

			var wg sync.WaitGroup
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = svc.Recommend(ctx, []string{"Inception (2010)"}, 10)
				}(i)
			}
			wg.Wait()

			Convey("Then every caller gets the identical playlist", func() {
				for i := 0; i < callers; i++ {
					So(errs[i], ShouldBeNil)
					So(results[i], ShouldResemble, results[0])
				}
			})
		})

		Convey("When the service is restarted", func() {
			before, err := svc.Recommend(ctx, []string{"Casino (1995)"}, 12)
			So(err, ShouldBeNil)

			svc.Stop()
			So(svc.Start(ctx), ShouldBeNil)

			after, err := svc.Recommend(ctx, []string{"Casino (1995)"}, 12)
			So(err, ShouldBeNil)

			Convey("Then results are unchanged", func() {
				So(after, ShouldResemble, before)
			})
		})
	})
}

func TestServiceIntegration_SQLite(t *testing.T) {
	Convey("Given a catalog stored in one SQLite database", t, func() {
		f := writeFixture(t)
		path := filepath.Join(t.TempDir(), "catalog.sqlite")

		db, err := sql.Open("sqlite", path)
		So(err, ShouldBeNil)
		_, err = db.Exec(`CREATE TABLE movies (title TEXT, genres TEXT)`)
		So(err, ShouldBeNil)
		_, err = db.Exec(`CREATE TABLE tracks (name TEXT, artist TEXT, tags TEXT)`)
		So(err, ShouldBeNil)
		for _, m := range fixtureMovies {
			_, err = db.Exec(`INSERT INTO movies VALUES (?, ?)`, m[0], m[1])
			So(err, ShouldBeNil)
		}
		for _, tags := range fixtureTracks {
			_, err = db.Exec(`INSERT INTO tracks VALUES (?, ?, ?)`, "Track", "Artist", tags)
			So(err, ShouldBeNil)
		}
		So(db.Close(), ShouldBeNil)

		svc := service.New(
			service.WithMoviesPath("sqlite://"+path),
			service.WithTracksPath("sqlite://"+path),
			service.WithVocabularyPath(f.vocabulary),
		)
		defer svc.Stop()

		Convey("When the service starts", func() {
			err := svc.Start(context.Background())

			Convey("Then it serves recommendations from the database", func() {
				So(err, ShouldBeNil)
				pl, err := svc.Recommend(context.Background(), []string{"Heat (1995)"}, 10)
				So(err, ShouldBeNil)
				So(len(pl.Results), ShouldEqual, 10)
			})
		})
	})
}
