package membership

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed holds the initial contents of the like and used stores.
type Seed struct {
	Liked []string `yaml:"liked"`
	Used  []string `yaml:"used"`
}

// LoadSeed reads a YAML seed file. An empty path yields an empty Seed.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return Seed{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file %q: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %q: %w", path, err)
	}
	return seed, nil
}

// Stores builds the like and used stores from the seed.
func (s Seed) Stores() (likes, used *MemoryStore) {
	return NewMemoryStore(KindLike, s.Liked), NewMemoryStore(KindUsed, s.Used)
}
