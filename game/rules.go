package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/plus3/blockfall/tetromino"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is wrapped by every Validate failure.
var ErrInvalidRules = errors.New("game: invalid rules")

// Rules holds every tunable of a session.
type Rules struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// Lookahead is how many upcoming shapes are visible.
	Lookahead int `yaml:"lookahead"`
	// BagCopies is how many copies of every shape go into one bag refill.
	BagCopies int `yaml:"bag_copies"`
	// HistoryLength caps the rolling lines-per-lock history.
	HistoryLength int `yaml:"history_length"`

	BaseLineScore float64 `yaml:"base_line_score"`
	// LineMultipliers is indexed by the number of lines a lock removed.
	LineMultipliers   []float64 `yaml:"line_multipliers"`
	LevelBonus        float64   `yaml:"level_bonus"`
	LevelUpMultiplier float64   `yaml:"level_up_multiplier"`
	BreaksPerLevel    int       `yaml:"breaks_per_level"`

	BaseInterval  time.Duration `yaml:"base_interval"`
	IntervalDecay float64       `yaml:"interval_decay"`
	MinInterval   time.Duration `yaml:"min_interval"`

	// StartPaused holds the first session until any command arrives.
	StartPaused bool `yaml:"start_paused"`
	// Seed drives the bag randomizer. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultRules returns the classic 20x10 configuration.
func DefaultRules() Rules {
	return Rules{
		Rows:              20,
		Cols:              10,
		Lookahead:         3,
		BagCopies:         3,
		HistoryLength:     64,
		BaseLineScore:     100,
		LineMultipliers:   []float64{1, 4, 8, 16, 32},
		LevelBonus:        0.5,
		LevelUpMultiplier: 250,
		BreaksPerLevel:    5,
		BaseInterval:      2 * time.Second,
		IntervalDecay:     0.2,
		MinInterval:       50 * time.Millisecond,
		StartPaused:       true,
	}
}

// Validate reports the first problem with r.
func (r Rules) Validate() error {
	switch {
	case r.Rows < 4 || r.Cols < 4:
		return fmt.Errorf("%w: board must be at least 4x4, got %dx%d", ErrInvalidRules, r.Rows, r.Cols)
	case r.Lookahead < 1:
		return fmt.Errorf("%w: lookahead must be positive, got %d", ErrInvalidRules, r.Lookahead)
	case r.BagCopies < 1:
		return fmt.Errorf("%w: bag copies must be positive, got %d", ErrInvalidRules, r.BagCopies)
	case r.HistoryLength < 1:
		return fmt.Errorf("%w: history length must be positive, got %d", ErrInvalidRules, r.HistoryLength)
	case len(r.LineMultipliers) <= tetromino.CellCount:
		return fmt.Errorf("%w: need %d line multipliers, got %d", ErrInvalidRules, tetromino.CellCount+1, len(r.LineMultipliers))
	case r.BaseLineScore < 0 || r.LevelBonus < 0 || r.LevelUpMultiplier < 0:
		return fmt.Errorf("%w: scoring constants must not be negative", ErrInvalidRules)
	case r.BreaksPerLevel < 1:
		return fmt.Errorf("%w: breaks per level must be positive, got %d", ErrInvalidRules, r.BreaksPerLevel)
	case r.MinInterval <= 0:
		return fmt.Errorf("%w: min interval must be positive, got %s", ErrInvalidRules, r.MinInterval)
	case r.BaseInterval < r.MinInterval:
		return fmt.Errorf("%w: base interval %s is below min interval %s", ErrInvalidRules, r.BaseInterval, r.MinInterval)
	case r.IntervalDecay < 0:
		return fmt.Errorf("%w: interval decay must not be negative", ErrInvalidRules)
	}
	for i, m := range r.LineMultipliers {
		if m < 0 {
			return fmt.Errorf("%w: line multiplier %d is negative", ErrInvalidRules, i)
		}
	}
	return nil
}

// FallInterval is the gravity period at the given level, never shorter than
// MinInterval.
func (r Rules) FallInterval(level int) time.Duration {
	decay := time.Duration(float64(r.BaseInterval) * r.IntervalDecay * float64(level-1))
	return max(r.BaseInterval-decay, r.MinInterval)
}

// LoadRules reads a YAML file and overlays it onto DefaultRules. Keys that
// are absent keep their default.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("game: read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("game: parse rules %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return rules, fmt.Errorf("game: rules %s: %w", path, err)
	}
	return rules, nil
}
