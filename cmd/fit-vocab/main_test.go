package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/crosstune/internal/domain/vectorizer"
)

func TestFit(t *testing.T) {
	convey.Convey("Given movie and track CSV files", t, func() {
		dir := t.TempDir()
		moviesPath := filepath.Join(dir, "movies.csv")
		tracksPath := filepath.Join(dir, "tracks.csv")
		convey.So(os.WriteFile(moviesPath, []byte("title,genres\nHeat (1995),Action|Crime\nSabrina (1995),Comedy|Romance\n"), 0o600), convey.ShouldBeNil)
		convey.So(os.WriteFile(tracksPath, []byte("name,artist,tags\nHalo,Depeche Mode,\"synthpop, new wave\"\n"), 0o600), convey.ShouldBeNil)

		convey.Convey("When fitting and saving the space", func() {
			space, err := fit(context.Background(), moviesPath, tracksPath)
			convey.So(err, convey.ShouldBeNil)

			out := filepath.Join(dir, "vocab.json")
			convey.So(space.SaveFile(out), convey.ShouldBeNil)

			convey.Convey("Then the artifact round-trips with the combined vocabulary", func() {
				loaded, err := vectorizer.LoadFile(out)
				convey.So(err, convey.ShouldBeNil)
				convey.So(loaded.Terms(), convey.ShouldResemble, []string{
					"action", "comedy", "crime", "new", "romance", "synthpop", "wave",
				})
			})
		})

		convey.Convey("When a source is missing", func() {
			_, err := fit(context.Background(), filepath.Join(dir, "none.csv"), tracksPath)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
