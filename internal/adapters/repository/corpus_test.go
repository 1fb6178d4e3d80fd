package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestCorpus(t *testing.T) {
	src := StaticSource{
		TableMovies: {
			{"title": "Heat (1995)", "genres": "Action|Crime|Thriller"},
			{"title": "Toy Story (1995)", "genres": "Animation", "genre_text": "animation kids"},
		},
		TableTracks: {
			{"name": "Halo", "artist": "Depeche Mode", "tags": "synthpop; New Wave"},
			{"name": "Happy", "artist": "Pharrell Williams", "tags": "pop", "tags_clean": "pop happy"},
		},
	}

	got, err := Corpus(context.Background(), src, src)
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}
	want := []string{"action crime thriller", "animation kids", "synthpop new wave", "pop happy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("corpus = %q, want %q", got, want)
	}
}

func TestCorpus_MissingColumn(t *testing.T) {
	src := StaticSource{
		TableMovies: {{"title": "Heat (1995)", "genres": "Action"}},
		TableTracks: {{"name": "Halo", "tags": "synthpop"}},
	}

	_, err := Corpus(context.Background(), src, src)
	if !errors.Is(err, ErrLoad) || !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrLoad and ErrMissingColumn", err)
	}
}
