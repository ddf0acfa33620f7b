package campaign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/enemy"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/player"
)

type recordingSaver struct {
	saved []Progress
	err   error
}

func (r *recordingSaver) SaveProgress(p Progress) error {
	r.saved = append(r.saved, p)
	return r.err
}

func defaultStages(t *testing.T) []Stage {
	t.Helper()
	stages, err := StagesFromConfig(config.DefaultForestConfig().Stages)
	require.NoError(t, err)
	require.Len(t, stages, 6)
	return stages
}

func newPlayer() *player.Player {
	return player.New("T", core.ColorWhite, core.Vec{}, 100, items.Fists)
}

func satisfy(c *Campaign) {
	for _, m := range c.Current().Missions {
		c.Record(m.Key, m.Goal)
	}
}

func TestCheckCompletionIsIdempotent(t *testing.T) {
	saver := &recordingSaver{}
	c := New(defaultStages(t), Progress{}, saver)
	require.NoError(t, c.Start(1))
	p := newPlayer()

	done, err := c.CheckCompletion(p)
	require.NoError(t, err)
	assert.False(t, done, "missions not met yet")

	satisfy(c)
	done, err = c.CheckCompletion(p)
	require.NoError(t, err)
	require.True(t, done)

	xp, level, bandages := p.XP, p.Level, p.Inv.Count(items.Bandage)
	assert.Equal(t, 1, bandages)
	assert.Equal(t, 2, p.Inv.Count(items.Meat))

	for i := 0; i < 5; i++ {
		done, err = c.CheckCompletion(p)
		require.NoError(t, err)
		assert.False(t, done)
	}
	assert.Equal(t, xp, p.XP, "rewards granted once")
	assert.Equal(t, level, p.Level)
	assert.Equal(t, bandages, p.Inv.Count(items.Bandage))
	assert.Equal(t, []int{1}, c.Progress().CompletedStageIDs)
	assert.Len(t, saver.saved, 1, "persisted exactly once")
}

func TestReplayingClearedStageDoesNotDuplicate(t *testing.T) {
	saver := &recordingSaver{}
	c := New(defaultStages(t), Progress{CompletedStageIDs: []int{1}, CurrentStageID: 2}, saver)
	require.NoError(t, c.Start(1))
	satisfy(c)

	done, err := c.CheckCompletion(newPlayer())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []int{1}, c.Progress().CompletedStageIDs)
	assert.Empty(t, saver.saved)
}

func TestRewardXPCanLevelMultipleTimes(t *testing.T) {
	c := New(defaultStages(t), Progress{}, nil)
	p := newPlayer()
	satisfy(c)
	_, err := c.CheckCompletion(p)
	require.NoError(t, err)
	// 40 + 30 + 50 = 120 xp: one level at 100.
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 20, p.XP)
}

func TestUnlockRule(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want int
	}{
		{"fresh", Progress{}, 1},
		{"one done", Progress{CompletedStageIDs: []int{1}, CurrentStageID: 1}, 2},
		{"current ahead", Progress{CompletedStageIDs: []int{1}, CurrentStageID: 4}, 4},
		{"gaps", Progress{CompletedStageIDs: []int{3, 1}}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.MaxUnlocked())
		})
	}

	c := New(defaultStages(t), Progress{CompletedStageIDs: []int{6}}, nil)
	assert.Equal(t, 6, c.MaxUnlocked(), "bounded by the last stage")
}

func TestStartLockedStage(t *testing.T) {
	c := New(defaultStages(t), Progress{}, nil)
	assert.True(t, c.Unlocked(1))
	assert.False(t, c.Unlocked(2))
	assert.Error(t, c.Start(2))
	assert.Error(t, c.Start(42))
}

func TestAdvance(t *testing.T) {
	saver := &recordingSaver{}
	c := New(defaultStages(t), Progress{}, saver)
	_, err := c.Advance()
	assert.Error(t, err, "stage 2 is locked until stage 1 clears")

	satisfy(c)
	_, err = c.CheckCompletion(newPlayer())
	require.NoError(t, err)

	next, err := c.Advance()
	require.NoError(t, err)
	assert.Equal(t, 2, next.ID)
	assert.Equal(t, 2, c.Current().ID)
	assert.Zero(t, c.Stat(Kills), "counters reset per stage")
	assert.False(t, c.Cleared())
	assert.Equal(t, 2, saver.saved[len(saver.saved)-1].CurrentStageID)
}

func TestLastStageHasNoNext(t *testing.T) {
	c := New(defaultStages(t), Progress{CompletedStageIDs: []int{1, 2, 3, 4, 5}}, nil)
	require.NoError(t, c.Start(6))
	_, ok := c.Next()
	assert.False(t, ok)
}

func TestPersistErrorSurfaces(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	c := New(defaultStages(t), Progress{}, saver)
	satisfy(c)
	done, err := c.CheckCompletion(newPlayer())
	assert.True(t, done)
	assert.ErrorContains(t, err, "disk full")
	assert.True(t, c.Cleared(), "clearing stands even when the write fails")
}

func TestStagesFromConfig(t *testing.T) {
	stages := defaultStages(t)
	assert.Equal(t, enemy.Wolf, stages[0].Pool[0].Kind)
	assert.Equal(t, WoodGot, stages[0].Missions[0].Key)
	assert.Equal(t, core.ColorGreen, stages[0].Color)
	assert.Equal(t, int64(5000), stages[5].SeedOffset)

	bad := config.DefaultForestConfig().Stages
	bad[0].Enemies = []config.SpawnWeight{{Kind: "dragon", Weight: 1}}
	_, err := StagesFromConfig(bad)
	assert.Error(t, err)

	bad = config.DefaultForestConfig().Stages
	bad[1].Missions[0].Key = "fish_caught"
	_, err = StagesFromConfig(bad)
	assert.Error(t, err)

	bad = config.DefaultForestConfig().Stages
	bad[0].Missions[0].RewardItems = []config.ItemCount{{Item: "gold", Qty: 1}}
	_, err = StagesFromConfig(bad)
	assert.Error(t, err)
}
