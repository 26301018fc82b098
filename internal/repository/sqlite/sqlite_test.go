package sqlite

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"ipannotate/internal/domain"
)

// newTestRepo creates a repository backed by a database in a temp dir
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "manual.db"))
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func mustRecord(t *testing.T, ip string, p domain.Partial) domain.Record {
	t.Helper()
	rec, err := domain.NewRecord(ip, p)
	assertNoError(t, err)
	return rec
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	original := domain.NewAnnotations()
	original.Set("9.9.9.9", mustRecord(t, "9.9.9.9", domain.Partial{RiskScore: domain.Int(55)}))
	original.Set("1.0.0.1", mustRecord(t, "1.0.0.1", domain.Partial{LocationInfo: domain.String("中国 广东 深圳")}))
	original.Set("4.4.4.4", mustRecord(t, "4.4.4.4", domain.Partial{}))

	assertNoError(t, repo.Save(ctx, original))

	loaded, err := repo.Load(ctx)
	assertNoError(t, err)
	assertEqual(t, original.Keys(), loaded.Keys())

	original.Each(func(ip string, entry domain.Entry) {
		got, ok := loaded.Get(ip)
		if !ok {
			t.Fatalf("missing record %s", ip)
		}
		assertEqual(t, entry.Record(), got.Record())
	})
}

func TestSaveLoadKeepsUnknownFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	original := domain.NewAnnotations()
	original.Put("1.1.1.1", domain.NewEntry(
		domain.Field{Name: "locationInfo", Value: "x"},
		domain.Field{Name: "asnDomain", Value: "ipyard.com"},
		domain.Field{Name: "riskScore", Value: 95.5},
	))
	assertNoError(t, repo.Save(ctx, original))

	loaded, err := repo.Load(ctx)
	assertNoError(t, err)

	got, ok := loaded.Get("1.1.1.1")
	if !ok {
		t.Fatal("missing record 1.1.1.1")
	}
	data, err := got.MarshalJSON()
	assertNoError(t, err)
	assertEqual(t, `{"locationInfo":"x","asnDomain":"ipyard.com","riskScore":95.5}`, string(data))
}

func TestSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := domain.NewAnnotations()
	first.Set("1.1.1.1", mustRecord(t, "1.1.1.1", domain.Partial{}))
	first.Set("2.2.2.2", mustRecord(t, "2.2.2.2", domain.Partial{}))
	assertNoError(t, repo.Save(ctx, first))

	second := domain.NewAnnotations()
	second.Set("3.3.3.3", mustRecord(t, "3.3.3.3", domain.Partial{}))
	assertNoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	assertNoError(t, err)
	assertEqual(t, []string{"3.3.3.3"}, loaded.Keys())
}

func TestSaveEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assertNoError(t, repo.Save(ctx, domain.NewAnnotations()))

	loaded, err := repo.Load(ctx)
	assertNoError(t, err)
	assertEqual(t, 0, loaded.Len())
}

func TestLoadMissingDatabase(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if _, statErr := os.Stat(repo.Path()); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("Load should not create the database file")
	}
}

func TestLoadNotADatabase(t *testing.T) {
	repo := newTestRepo(t)
	assertNoError(t, os.WriteFile(repo.Path(), []byte("this is not sqlite"), 0644))

	_, err := repo.Load(context.Background())
	if err == nil {
		t.Fatal("expected error loading non-database file")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Error("corrupt database should not look like a missing one")
	}
}
