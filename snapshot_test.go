package lonja

import (
	"path/filepath"
	"testing"
)

func setupSnapshotStore(t *testing.T) *BoltSnapshotStore {
	t.Helper()
	s, err := OpenSnapshotStore(filepath.Join(t.TempDir(), "stock.db"))
	if err != nil {
		t.Fatalf("failed to open snapshot store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotEmptyLoad(t *testing.T) {
	s := setupSnapshotStore(t)
	entries, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Load before any save should report ok=false")
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none", entries)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := setupSnapshotStore(t)

	first := []StockSnapshotEntry{
		{Category: "Pescado", Subcategory: "Blanco", Product: "Merluza", Presentation: "Filete", Unit: "kg", Price: "14.50"},
		{Category: "Marisco", Product: "Gamba Roja", Presentation: "Fresca", Unit: "kg", Price: "35.00"},
	}
	if err := s.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Load after save should report ok=true")
	}
	if len(got) != 2 || got[0] != first[0] || got[1] != first[1] {
		t.Errorf("loaded = %+v", got)
	}
}

func TestSnapshotOverwritesWholesale(t *testing.T) {
	s := setupSnapshotStore(t)

	if err := s.Save([]StockSnapshotEntry{
		{Category: "Pescado", Product: "Merluza", Presentation: "Filete", Unit: "kg", Price: "14.50"},
		{Category: "Pescado", Product: "Lubina", Presentation: "Entera", Unit: "unidad", Price: "9.00"},
	}); err != nil {
		t.Fatal(err)
	}

	// A later save replaces the slot completely: no merge, no history.
	if err := s.Save([]StockSnapshotEntry{
		{Category: "Marisco", Product: "Mejillon", Presentation: "Malla", Unit: "kg", Price: "4.20"},
	}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load = %v, ok=%v", err, ok)
	}
	if len(got) != 1 || got[0].Product != "Mejillon" {
		t.Errorf("loaded = %+v, want only the second save", got)
	}

	// Saving an empty list clears the slot but stays "saved".
	if err := s.Save(nil); err != nil {
		t.Fatal(err)
	}
	got, ok, _ = s.Load()
	if !ok || len(got) != 0 {
		t.Errorf("after empty save: ok=%v entries=%v", ok, got)
	}
}
