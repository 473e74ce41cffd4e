package record

import (
	"os"
	"path/filepath"
	"testing"
)

func testCollection(t *testing.T) (*Collection[Contact], *[]error) {
	t.Helper()
	var errs []error
	path := filepath.Join(t.TempDir(), "contacts.json")
	c := NewCollection[Contact](path, func(err error) { errs = append(errs, err) })
	return c, &errs
}

func TestCollectionEmpty(t *testing.T) {
	c, errs := testCollection(t)
	if got := c.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %d records", len(got))
	}
	if len(*errs) != 0 {
		t.Fatalf("missing file must not report errors, got %v", *errs)
	}
}

func TestCollectionSaveListDelete(t *testing.T) {
	c, _ := testCollection(t)

	a := Contact{ID: NewID(), Name: "Asha", Number: "555-0101"}
	b := Contact{ID: NewID(), Name: "Ravi", Number: "555-0102"}
	for _, rec := range []Contact{a, b} {
		if err := c.Save(rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got := c.List()
	if len(got) != 2 || got[0].Name != "Asha" || got[1].Name != "Ravi" {
		t.Fatalf("unexpected list: %+v", got)
	}

	if err := c.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got = c.List()
	if len(got) != 1 || got[0].Name != "Ravi" {
		t.Fatalf("unexpected list after delete: %+v", got)
	}

	// Deleting an unknown ID is a no-op.
	if err := c.Delete("missing"); err != nil {
		t.Fatalf("Delete(missing): %v", err)
	}
}

func TestCollectionSaveReplacesByID(t *testing.T) {
	c, _ := testCollection(t)

	rec := Contact{ID: "c1", Name: "Asha", Number: "555-0101"}
	if err := c.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec.Number = "555-0199"
	if err := c.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := c.List()
	if len(got) != 1 {
		t.Fatalf("expected last write to win, got %d records", len(got))
	}
	if got[0].Number != "555-0199" {
		t.Fatalf("expected updated number, got %q", got[0].Number)
	}
}

func TestCollectionGet(t *testing.T) {
	c, _ := testCollection(t)
	c.Save(Contact{ID: "c1", Name: "Asha"})

	got, ok := c.Get("c1")
	if !ok || got.Name != "Asha" {
		t.Fatalf("Get(c1) = %+v, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get(missing) should report absence")
	}
}

func TestCollectionCorruptedFileReadsEmpty(t *testing.T) {
	var errs []error
	path := filepath.Join(t.TempDir(), "contacts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	c := NewCollection[Contact](path, func(err error) { errs = append(errs, err) })

	if got := c.List(); len(got) != 0 {
		t.Fatalf("corrupted file must read as empty, got %+v", got)
	}
	if len(errs) != 1 {
		t.Fatalf("decode error should be reported once, got %v", errs)
	}
}

func TestMedicineIDIsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medicines.json")
	c := NewCollection[Medicine](path, nil)

	c.Save(Medicine{Name: "Metformin", Dosage: "500 mg", TimeOfDay: "08:00", Frequency: "daily"})
	c.Save(Medicine{Name: "Metformin", Dosage: "850 mg", TimeOfDay: "08:00", Frequency: "daily"})

	got := c.List()
	if len(got) != 1 || got[0].Dosage != "850 mg" {
		t.Fatalf("saving the same medicine name must update in place: %+v", got)
	}
}

func TestOpenRemembersDir(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)
	if s.Dir() != dir {
		t.Fatalf("Dir() = %q, want %q", s.Dir(), dir)
	}
}
