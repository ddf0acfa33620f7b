package campaign

import (
	"fmt"

	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

// MissionKey names a progress counter fed by simulation events.
type MissionKey uint8

const (
	Kills MissionKey = iota
	DemonKills
	WoodGot
	StoneGot
	HerbGot
	CampPlaced
	Crafted
	ArmorMade
	SwordMade
	Survived
	keyCount
)

var missionKeys = [keyCount]string{
	"kills", "demon_kills", "wood_got", "stone_got", "herb_got",
	"camp_placed", "crafted", "armor_made", "sword_made", "survived",
}

// String returns the config key.
func (k MissionKey) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return missionKeys[k]
}

// ParseMissionKey resolves a config key.
func ParseMissionKey(s string) (MissionKey, error) {
	for i, k := range missionKeys {
		if k == s {
			return MissionKey(i), nil
		}
	}
	return 0, fmt.Errorf("campaign: unknown mission key %q", s)
}

// Mission is one stage objective.
type Mission struct {
	Key         MissionKey
	Name        string
	Goal        int
	RewardXP    int
	RewardItems []items.Stack
}

// MissionStatus pairs a mission with its current counter.
type MissionStatus struct {
	Mission
	Value int
	Done  bool
}
