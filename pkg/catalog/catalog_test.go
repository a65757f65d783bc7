package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "catalog-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Logf("Error removing temp dir: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "catalog.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	testStoreBasic(t, store)
	testStoreSeed(t, store)
	testStoreResolveArc(t, store)

	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	testStorePersistence(t, dbPath)
}

func testStoreBasic(t *testing.T, store *Store) {
	if err := store.Put("Tokyo", "JP", 35.6762, 139.6503); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	lat, lng, ok := store.Resolve("Tokyo", "JP")
	if !ok {
		t.Fatal("Resolve(Tokyo, JP) not found")
	}
	if lat != 35.6762 || lng != 139.6503 {
		t.Errorf("Resolve(Tokyo, JP) = (%v, %v); want (35.6762, 139.6503)", lat, lng)
	}

	// Lookup is case-insensitive on the city, like the CSV keys.
	if _, _, ok := store.Resolve("tokyo", "jp"); !ok {
		t.Error("Resolve should be case-insensitive")
	}

	if _, _, ok := store.Resolve("Nowhere", "XX"); ok {
		t.Error("Resolve(Nowhere, XX) should miss")
	}
	// Second miss exercises the negative cache path.
	if _, _, ok := store.Resolve("Nowhere", "XX"); ok {
		t.Error("cached Resolve(Nowhere, XX) should still miss")
	}
}

func testStoreSeed(t *testing.T, store *Store) {
	csv := strings.Join([]string{
		"id,name,state_id,state_code,state_name,country_id,country_code,country_name,latitude,longitude,wikiDataId",
		`1,Paris,1,IDF,Ile-de-France,75,FR,France,48.8566,2.3522,Q90`,
		`2,Broken,1,XX,Nowhere,0,XX,Nowhere,not-a-number,0,Q0`,
		`3,Nairobi,2,30,Nairobi,110,KE,Kenya,-1.303396,36.852443,Q3870`,
	}, "\n")

	n, err := store.SeedFromCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("SeedFromCSV failed: %v", err)
	}
	if n != 2 {
		t.Errorf("seeded %d cities; want 2 (bad row skipped)", n)
	}

	lat, lng, ok := store.Resolve("Nairobi", "KE")
	if !ok || lat != -1.303396 || lng != 36.852443 {
		t.Errorf("Resolve(Nairobi, KE) = (%v, %v, %v); want seeded coordinates", lat, lng, ok)
	}
	if _, _, ok := store.Resolve("Broken", "XX"); ok {
		t.Error("unparseable row should not be stored")
	}
}

func testStoreResolveArc(t *testing.T, store *Store) {
	sLat, sLng, eLat, eLng, ok := store.ResolveArc("Tokyo", "JP", "Paris", "FR")
	if !ok {
		t.Fatal("ResolveArc(Tokyo, Paris) failed")
	}
	if sLat != 35.6762 || sLng != 139.6503 || eLat != 48.8566 || eLng != 2.3522 {
		t.Errorf("ResolveArc = (%v, %v, %v, %v); want Tokyo and Paris", sLat, sLng, eLat, eLng)
	}

	if _, _, _, _, ok := store.ResolveArc("Tokyo", "JP", "Atlantis", "??"); ok {
		t.Error("ResolveArc with unknown endpoint should fail")
	}
}

func testStorePersistence(t *testing.T, dbPath string) {
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close reopened store: %v", err)
		}
	}()

	lat, lng, ok := store.Resolve("Paris", "FR")
	if !ok || lat != 48.8566 || lng != 2.3522 {
		t.Errorf("Resolve(Paris, FR) after reopen = (%v, %v, %v); want persisted coordinates", lat, lng, ok)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d; want 3", n)
	}
}
