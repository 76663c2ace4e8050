package options

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
)

// pcgStream is mixed into the seed hash to form the second PCG word.
const pcgStream = 0x9e3779b97f4a7c15

// Generator draws unique phrases from a fixed pool.
type Generator struct {
	pool []string
}

func NewGenerator(pool []string) *Generator {
	return &Generator{pool: append([]string(nil), pool...)}
}

// Default returns a generator over DefaultPhrases.
func Default() *Generator {
	return NewGenerator(DefaultPhrases)
}

// LoadPool reads a YAML phrase list, either a bare sequence or a
// document with a "phrases" key.
func LoadPool(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrase pool: %w", err)
	}

	var doc struct {
		Phrases []string `yaml:"phrases"`
	}
	if err = yaml.Unmarshal(data, &doc); err == nil && len(doc.Phrases) > 0 {
		return dedupe(doc.Phrases), nil
	}

	var list []string
	if err = yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal phrase pool: %w", err)
	}

	return dedupe(list), nil
}

func (that *Generator) PoolSize() int {
	return len(that.pool)
}

// SelectOptions returns count unique phrases. An empty seed shuffles with
// the process random source; any other seed always yields the same order.
func (that *Generator) SelectOptions(count int, seed string) ([]string, error) {
	if count < 0 || count > len(that.pool) {
		return nil, fmt.Errorf("%w: requested %d, pool has %d", apperror.ErrInsufficientPoolSize, count, len(that.pool))
	}

	shuffled := append([]string(nil), that.pool...)
	shuffle(shuffled, source(seed))

	return shuffled[:count], nil
}

// Grid draws a full card.
func (that *Generator) Grid(seed string) (entity.Grid, error) {
	options, err := that.SelectOptions(entity.CellCount, seed)
	if err != nil {
		return entity.Grid{}, err
	}

	return entity.GridFromOptions(options)
}

// SelectOptions draws from DefaultPhrases.
func SelectOptions(count int, seed string) ([]string, error) {
	return Default().SelectOptions(count, seed)
}

func RandomTeamName() string {
	return TeamNames[rand.IntN(len(TeamNames))] //nolint: gosec // it's ok
}

func RandomAdvisor() entity.Advisor {
	return entity.Advisors[rand.IntN(len(entity.Advisors))] //nolint: gosec // it's ok
}

// NewTeamID - generates a unique team identifier.
func NewTeamID() string {
	return "team-" + uuid.NewString()
}

// NewGameCode - generates a short code that is easy to read out, e.g. bingo-4821.
func NewGameCode() string {
	return "bingo-" + strconv.Itoa(1000+rand.IntN(9000)) //nolint: gosec // it's ok
}

// NewSeed - generates a seed for a reproducible card.
func NewSeed() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

func source(seed string) *rand.Rand {
	if seed == "" {
		return nil
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	sum := h.Sum64()

	return rand.New(rand.NewPCG(sum, sum^pcgStream)) //nolint: gosec // reproducibility, not secrecy
}

// shuffle is Fisher-Yates; a nil rng uses the global source.
func shuffle(items []string, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	for i := len(items) - 1; i > 0; i-- {
		j := intN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}

	return out
}
