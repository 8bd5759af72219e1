// Package memory implements the repository interfaces on top of plain Go slices.
//
// WHY IN MEMORY?
// Pastes and users only need to live as long as the process. A slice plus a
// mutex is all the "database" this API needs, and it keeps tests fast and
// isolated: every test builds its own store from its own seed.
//
// CONCURRENCY:
// net/http runs every request on its own goroutine, so two requests can touch
// a store at the same time. Each store guards its slice with a sync.RWMutex:
//   - readers (List, GetByID) take the read lock and may run in parallel
//   - writers (Create, Update, Delete) take the write lock and run alone
//
// Stores hand out copies, never pointers into the slice, so a record encoded
// to JSON by one request cannot change underneath it because another request
// updated it.
//
// SEED DATA:
// The seed/ directory is compiled into the binary with go:embed. LoadSeed
// decodes it; callers pass the result to NewPasteStore / NewUserStore.
package memory

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/sakif/pastebin/internal/model"
)

//go:embed seed/*.json
var seedFS embed.FS

// Seed is the startup data for both stores.
type Seed struct {
	Pastes []model.Paste
	Users  []model.User
}

// LoadSeed decodes the embedded seed files.
func LoadSeed() (*Seed, error) {
	var s Seed
	if err := readSeedFile("seed/pastes.json", &s.Pastes); err != nil {
		return nil, err
	}
	if err := readSeedFile("seed/users.json", &s.Users); err != nil {
		return nil, err
	}
	return &s, nil
}

func readSeedFile(name string, v any) error {
	raw, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("memory: reading %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("memory: decoding %s: %w", name, err)
	}
	return nil
}
