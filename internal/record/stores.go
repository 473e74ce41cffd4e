package record

import (
	"log"
	"os"
	"path/filepath"
)

// Stores bundles the four record collections every surface works with.
type Stores struct {
	Stores    *Collection[Store]
	Contacts  *Collection[Contact]
	Plans     *Collection[Plan]
	Medicines *Collection[Medicine]

	dir string
}

// Dir returns the data directory the bundle was opened at.
func (s *Stores) Dir() string { return s.dir }

// DefaultDir returns the base data directory (~/.elmora).
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".elmora")
}

// Open creates the collection bundle rooted at dir. Decode errors are logged
// and otherwise invisible to callers: a corrupted file reads as empty.
func Open(dir string) *Stores {
	onError := func(err error) {
		log.Printf("[record] %v", err)
	}
	return &Stores{
		Stores:    NewCollection[Store](filepath.Join(dir, "stores.json"), onError),
		Contacts:  NewCollection[Contact](filepath.Join(dir, "contacts.json"), onError),
		Plans:     NewCollection[Plan](filepath.Join(dir, "plans.json"), onError),
		Medicines: NewCollection[Medicine](filepath.Join(dir, "medicines.json"), onError),
		dir:       dir,
	}
}
