package planet

import (
	"errors"
	"fmt"
)

// ErrInvalidCompoundLevel is returned for levels absent from the ladder.
var ErrInvalidCompoundLevel = errors.New("planet: invalid compound level")

// Tier is one rung of the compounding ladder.
type Tier struct {
	Level       int    `json:"level" yaml:"level"`
	DailyReward int64  `json:"daily_reward" yaml:"daily_reward"`
	Name        string `json:"name" yaml:"name"`
}

// The ladder skips level 9: compounding a Neptune planet fails.
var ladder = []Tier{
	{0, 4, "Earth"},
	{1, 5, "Moon"},
	{2, 6, "Mercury"},
	{3, 7, "Venus"},
	{4, 8, "Mars"},
	{5, 9, "Jupiter"},
	{6, 10, "Saturn"},
	{7, 11, "Uranus"},
	{8, 12, "Neptune"},
	{10, 14, "Sun"},
}

// TierFor looks up the ladder entry for level.
func TierFor(level int) (Tier, error) {
	for _, t := range ladder {
		if t.Level == level {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("%w: %d", ErrInvalidCompoundLevel, level)
}

// Ladder returns a copy of every defined tier in level order.
func Ladder() []Tier {
	out := make([]Tier, len(ladder))
	copy(out, ladder)
	return out
}
