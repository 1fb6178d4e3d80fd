package profile_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/crosstune/internal/domain/profile"
	"github.com/okian/crosstune/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

var errMissing = errors.New("missing")

// fakeCatalog is a hand-written Resolver over a fixed matrix.
type fakeCatalog struct {
	index   map[string]int
	vectors *vector.Matrix
	lookups int
}

func (f *fakeCatalog) MovieIndex(title string) (int, error) {
	f.lookups++
	i, ok := f.index[title]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissing, title)
	}
	return i, nil
}

func (f *fakeCatalog) MovieVectors() *vector.Matrix { return f.vectors }

func newFakeCatalog() *fakeCatalog {
	rows := []vector.Sparse{
		vector.FromDense([]float64{0.6, 0.8, 0, 0}),
		vector.FromDense([]float64{0, 0.6, 0.8, 0}),
		vector.FromDense([]float64{0.1, 0, 0.3, 0.9}),
		vector.FromDense([]float64{0.7, 0, 0, 0.7}),
	}
	m, err := vector.NewMatrix(4, rows)
	if err != nil {
		panic(err)
	}
	return &fakeCatalog{
		index:   map[string]int{"Heat": 0, "Alien": 1, "Clue": 2, "Big": 3},
		vectors: m,
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a profile builder", t, func() {
		catalog := newFakeCatalog()
		b := profile.NewBuilder(catalog)

		Convey("A single title yields that movie's vector", func() {
			p, err := b.Build([]string{"Clue"})
			So(err, ShouldBeNil)
			So(p, ShouldResemble, catalog.vectors.Row(2))
		})

		Convey("Every permutation of a selection yields the same profile", func() {
			base, err := b.Build([]string{"Heat", "Alien", "Clue", "Big"})
			So(err, ShouldBeNil)

			perms := [][]string{
				{"Big", "Clue", "Alien", "Heat"},
				{"Alien", "Heat", "Big", "Clue"},
				{"Clue", "Big", "Heat", "Alien"},
			}
			for _, perm := range perms {
				p, err := b.Build(perm)
				So(err, ShouldBeNil)
				So(p, ShouldResemble, base)
			}
		})

		Convey("The profile is the component-wise mean", func() {
			p, err := b.Build([]string{"Heat", "Alien"})
			So(err, ShouldBeNil)
			So(p.At(0), ShouldAlmostEqual, 0.3, 1e-12)
			So(p.At(1), ShouldAlmostEqual, 0.7, 1e-12)
			So(p.At(2), ShouldAlmostEqual, 0.4, 1e-12)
			So(p.At(3), ShouldEqual, 0)
		})

		Convey("A repeated title counts twice", func() {
			p, err := b.Build([]string{"Heat", "Heat", "Alien"})
			So(err, ShouldBeNil)
			So(p.At(0), ShouldAlmostEqual, 0.4, 1e-12)
		})

		Convey("An unknown title fails and is named", func() {
			_, err := b.Build([]string{"Heat", "Jaws", "Alien"})
			So(errors.Is(err, profile.ErrUnknownMovie), ShouldBeTrue)
			So(errors.Is(err, errMissing), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `"Jaws"`)
			So(catalog.lookups, ShouldEqual, 2)
		})

		Convey("An empty selection fails", func() {
			_, err := b.Build(nil)
			So(errors.Is(err, profile.ErrEmptySelection), ShouldBeTrue)

			_, err = b.FromRows(nil)
			So(errors.Is(err, profile.ErrEmptySelection), ShouldBeTrue)
		})
	})
}
