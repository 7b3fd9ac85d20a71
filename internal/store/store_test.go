package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

func exerciseRecordStore(t *testing.T, s RecordStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, league.KindClassification, CurrentKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, league.KindClassification, CurrentKey, []byte(`{"rows":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, league.KindClassification, CurrentKey, []byte(`{"rows":[1]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get(ctx, league.KindClassification, CurrentKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"rows":[1]}` && string(got) != `{"rows": [1]}` {
		t.Fatalf("unexpected payload %s", got)
	}

	for _, key := range []string{"3", "10", "1"} {
		if err := s.Put(ctx, league.KindMatchday, key, []byte(`{}`)); err != nil {
			t.Fatalf("put matchday %s: %v", key, err)
		}
	}
	keys, err := s.Keys(ctx, league.KindMatchday)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"1", "10", "3"}) {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := s.Delete(ctx, league.KindMatchday, "10"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, league.KindMatchday, "10"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if keys, _ := s.Keys(ctx, league.KindResults); len(keys) != 0 {
		t.Fatalf("expected no results keys, got %v", keys)
	}
}

func exerciseUploads(t *testing.T, a UploadArchive) {
	t.Helper()
	ctx := context.Background()

	first := &Upload{Kind: league.KindMatchday, Filename: "j1.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1")}
	second := &Upload{Kind: league.KindCalendar, Filename: "cal.pdf", ContentType: "application/pdf", Data: []byte("%PDF-22")}
	for _, u := range []*Upload{first, second} {
		if err := a.SaveUpload(ctx, u); err != nil {
			t.Fatalf("save upload: %v", err)
		}
	}
	if first.ID == "" || first.Size != 6 || first.CreatedAt.IsZero() {
		t.Fatalf("expected id, size and timestamp to be filled, got %+v", first)
	}

	all, err := a.Uploads(ctx, "")
	if err != nil {
		t.Fatalf("uploads: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(all))
	}

	matchdays, err := a.Uploads(ctx, league.KindMatchday)
	if err != nil {
		t.Fatalf("uploads by kind: %v", err)
	}
	if len(matchdays) != 1 || string(matchdays[0].Data) != "%PDF-1" || matchdays[0].Filename != "j1.pdf" {
		t.Fatalf("unexpected uploads %+v", matchdays)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	exerciseRecordStore(t, s)
	exerciseUploads(t, s)
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()
	if err := s.Put(ctx, league.KindMatchday, "4", []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, league.KindCalendar, CurrentKey, []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	for _, name := range []string{"matchday_4.json", "calendar.json"} {
		if matches, _ := filepath.Glob(filepath.Join(dir, name)); len(matches) != 1 {
			t.Fatalf("expected %s to exist", name)
		}
	}
	if err := s.Put(ctx, league.KindMatchday, "../x", []byte(`{}`)); err == nil {
		t.Fatal("expected a path-like key to be rejected")
	}
}

func TestSQLiteStore(t *testing.T) {
	backend, err := Open(DriverSQLite, "", t.TempDir())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer backend.Close()

	if err := backend.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	exerciseRecordStore(t, backend)
	exerciseUploads(t, backend)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "m.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	for i := 0; i < 2; i++ {
		if err := db.RunMigrations(); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	var n int
	if err := db.DB().QueryRow("SELECT COUNT(1) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", n)
	}
}

func TestRebind(t *testing.T) {
	pg := &Database{driver: DriverPostgres}
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Fatalf("unexpected rebind %q", got)
	}
	lite := &Database{driver: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("unexpected rebind %q", got)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("mongo", "", t.TempDir()); err == nil {
		t.Fatal("expected an error")
	}
}
