package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	output = buf
	t.Cleanup(func() { output = os.Stdout })
	return buf
}

func TestLoggerInit(t *testing.T) {
	Convey("Init installs a usable global logger", t, func() {
		So(Init(), ShouldBeNil)
		So(Get(), ShouldNotBeNil)
		So(Sync(), ShouldBeNil)

		Convey("calling Init again keeps it usable", func() {
			So(Init(), ShouldBeNil)
			So(Get(), ShouldNotBeNil)
		})
	})
}

func TestLoggerFormat(t *testing.T) {
	Convey("Given a captured output", t, func() {
		buf := captureOutput(t)
		So(Init(), ShouldBeNil)

		Convey("text format writes key=value pairs", func() {
			Get().Info(context.Background(), "hello", String("k", "v"))
			So(buf.String(), ShouldContainSubstring, "msg=hello")
			So(buf.String(), ShouldContainSubstring, "k=v")
			So(buf.String(), ShouldContainSubstring, "source=")
		})

		Convey("json format writes JSON objects", func() {
			So(SetFormat("json"), ShouldBeNil)
			Get().Info(context.Background(), "hello", Int("n", 3))
			So(buf.String(), ShouldContainSubstring, `"msg":"hello"`)
			So(buf.String(), ShouldContainSubstring, `"n":3`)
		})

		Convey("an unknown format is rejected", func() {
			So(SetFormat("xml"), ShouldNotBeNil)
		})
	})
}

func TestLoggerLevels(t *testing.T) {
	Convey("Given a captured output at warn level", t, func() {
		buf := captureOutput(t)
		So(Init(), ShouldBeNil)
		So(SetLevelString("warn"), ShouldBeNil)
		defer SetLevel(slog.LevelInfo)

		ctx := context.Background()
		Get().Info(ctx, "quiet")
		Get().Debug(ctx, "quieter")
		Get().Error(ctx, "loud", Error(errors.New("boom")))

		So(buf.String(), ShouldNotContainSubstring, "quiet")
		So(buf.String(), ShouldContainSubstring, "loud")
		So(buf.String(), ShouldContainSubstring, "boom")
	})

	Convey("SetLevelString accepts the known levels", t, func() {
		for _, lvl := range []string{"debug", "INFO", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		SetLevel(slog.LevelInfo)
	})
}

func TestLoggerNamedAndWith(t *testing.T) {
	Convey("Named and With carry their context", t, func() {
		buf := captureOutput(t)
		So(Init(), ShouldBeNil)

		l := Named("catalog").With(String("source", "movies.csv"))
		l.Info(context.Background(), "loaded", Int("rows", 3))

		So(buf.String(), ShouldContainSubstring, "catalog.rows=3")
		So(buf.String(), ShouldContainSubstring, "movies.csv")
	})

	Convey("Nop discards everything", t, func() {
		So(func() { Nop().Info(context.Background(), "nothing") }, ShouldNotPanic)
	})
}
