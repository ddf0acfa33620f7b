package config

import (
	_ "embed"
)

//go:embed defaults/forest.yaml
var defaultForestYAML []byte

// GetDefaultYAML returns the embedded default configuration.
func GetDefaultYAML() []byte {
	return defaultForestYAML
}

func items(item string, qty int) []ItemCount {
	return []ItemCount{{Item: item, Qty: qty}}
}

// DefaultForestConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed. It mirrors defaults/forest.yaml.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Sim: SimConfig{
			MaxDeltaMS:      50,
			FirstSpawnDelay: 5,
			SpawnInterval:   10,
			SpawnMinRadius:  310,
			SpawnMaxRadius:  640,
			CullRadius:      1400,
			CameraRate:      8,
			NotifyMax:       5,
			NotifySeconds:   2.5,
			IntroSeconds:    4,
		},
		Difficulties: []DifficultyTier{
			{ID: DifficultyEasy, Name: "Easy", NM: 0.7, EM: 0.8, EC: -1, StartHP: 100},
			{ID: DifficultyNormal, Name: "Normal", NM: 1.0, EM: 1.0, EC: 0, StartHP: 100},
			{ID: DifficultyHard, Name: "Hard", NM: 1.3, EM: 1.25, EC: 1, StartHP: 100},
			{ID: DifficultyHell, Name: "Hell", NM: 1.6, EM: 1.6, EC: 2, StartHP: 50},
		},
		Stages: []StageConfig{
			{
				ID: 1, Name: "Forest Edge", Subtitle: "Where the trees begin",
				Description: "Gather wood and light your first fire.", Color: "green",
				Enemies: []SpawnWeight{{"wolf", 3}, {"snake", 2}},
				Missions: []MissionConfig{
					{Key: "wood_got", Name: "Gather wood", Goal: 15, RewardXP: 40, RewardItems: items("bandage", 1)},
					{Key: "camp_placed", Name: "Light a campfire", Goal: 1, RewardXP: 30},
					{Key: "kills", Name: "Drive off predators", Goal: 3, RewardXP: 50, RewardItems: items("meat", 2)},
				},
				Intro:      []string{"Stage 1: Forest Edge", "Gather wood and survive the first nights."},
				SeedOffset: 0, NMMult: 1.0, EMMult: 0.9, EC: 4,
			},
			{
				ID: 2, Name: "Deep Woods", Subtitle: "The canopy closes in",
				Description: "Boars roam between the old trees.", Color: "bright_green",
				Enemies: []SpawnWeight{{"wolf", 3}, {"boar", 2}, {"snake", 2}},
				Missions: []MissionConfig{
					{Key: "stone_got", Name: "Quarry stone", Goal: 12, RewardXP: 50},
					{Key: "crafted", Name: "Craft tools", Goal: 3, RewardXP: 60, RewardItems: items("torch", 2)},
					{Key: "kills", Name: "Hunt", Goal: 6, RewardXP: 70},
				},
				Intro:      []string{"Stage 2: Deep Woods", "Stone and tools will keep you alive."},
				SeedOffset: 1000, NMMult: 1.0, EMMult: 1.0, EC: 5,
			},
			{
				ID: 3, Name: "Misty Marsh", Subtitle: "Reeds and poison",
				Description: "Snakes hide in the mud, bandits watch the paths.", Color: "cyan",
				Enemies: []SpawnWeight{{"boar", 2}, {"snake", 3}, {"bandit", 1}},
				Missions: []MissionConfig{
					{Key: "herb_got", Name: "Pick herbs", Goal: 3, RewardXP: 60, RewardItems: items("bandage", 2)},
					{Key: "survived", Name: "Survive days", Goal: 2, RewardXP: 80},
					{Key: "kills", Name: "Clear the marsh", Goal: 8, RewardXP: 90},
				},
				Intro:      []string{"Stage 3: Misty Marsh", "Herbs heal. Mud hides what bites."},
				SeedOffset: 2000, NMMult: 1.1, EMMult: 1.05, EC: 6,
			},
			{
				ID: 4, Name: "Bandit Hills", Subtitle: "Iron and steel",
				Description: "Raiders carry iron worth taking.", Color: "yellow",
				Enemies: []SpawnWeight{{"bandit", 3}, {"wolf", 2}, {"boar", 1}},
				Missions: []MissionConfig{
					{Key: "armor_made", Name: "Forge armor", Goal: 1, RewardXP: 80},
					{Key: "kills", Name: "Break the raiders", Goal: 10, RewardXP: 110, RewardItems: items("iron", 2)},
					{Key: "camp_placed", Name: "Hold two camps", Goal: 2, RewardXP: 40},
				},
				Intro:      []string{"Stage 4: Bandit Hills", "Armor up before the raiders find you."},
				SeedOffset: 3000, NMMult: 1.1, EMMult: 1.15, EC: 6,
			},
			{
				ID: 5, Name: "Bear Mountain", Subtitle: "Cold stone, long nights",
				Description: "The bears here do not retreat.", Color: "orange",
				Enemies: []SpawnWeight{{"bear", 3}, {"boar", 2}, {"bandit", 2}},
				Missions: []MissionConfig{
					{Key: "sword_made", Name: "Forge an iron sword", Goal: 1, RewardXP: 100},
					{Key: "survived", Name: "Endure", Goal: 3, RewardXP: 120},
					{Key: "kills", Name: "Claim the mountain", Goal: 12, RewardXP: 140, RewardItems: items("meat", 3)},
				},
				Intro:      []string{"Stage 5: Bear Mountain", "Only iron bites through bear hide."},
				SeedOffset: 4000, NMMult: 1.2, EMMult: 1.25, EC: 7,
			},
			{
				ID: 6, Name: "Demon Night", Subtitle: "The last dark",
				Description: "Something old walks when the fires die.", Color: "magenta",
				Enemies: []SpawnWeight{{"demon", 2}, {"bear", 2}, {"bandit", 2}, {"wolf", 1}},
				Missions: []MissionConfig{
					{Key: "demon_kills", Name: "Banish demons", Goal: 3, RewardXP: 200},
					{Key: "kills", Name: "Hold the line", Goal: 15, RewardXP: 200},
					{Key: "survived", Name: "See the dawn", Goal: 2, RewardXP: 150},
				},
				Intro:      []string{"Stage 6: Demon Night", "Keep the fires burning."},
				SeedOffset: 5000, NMMult: 1.25, EMMult: 1.35, EC: 8,
			},
		},
	}
}
