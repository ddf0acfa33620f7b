// Package campaign tracks per-stage mission counters, stage clearing,
// reward issuance and the persisted unlock record.
package campaign

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/forest-survival/internal/survival/player"
)

// Progress is the persisted unlock record.
type Progress struct {
	CompletedStageIDs []int `json:"completedStageIds"`
	CurrentStageID    int   `json:"currentStageId"`
}

// MaxUnlocked returns the highest playable stage id: one past the best
// completed stage, or the current stage if that is higher.
func (p Progress) MaxUnlocked() int {
	best := 0
	for _, id := range p.CompletedStageIDs {
		best = max(best, id)
	}
	return max(best+1, p.CurrentStageID, 1)
}

// Completed reports whether id was already cleared.
func (p Progress) Completed(id int) bool {
	return slices.Contains(p.CompletedStageIDs, id)
}

// ProgressSaver persists the unlock record.
type ProgressSaver interface {
	SaveProgress(Progress) error
}

// Campaign is the mission bookkeeping of the active run.
type Campaign struct {
	stages   []Stage
	progress Progress
	saver    ProgressSaver

	current int
	stats   map[MissionKey]int
	cleared bool
}

// New creates a campaign over stages with a previously loaded unlock record.
// saver may be nil, in which case progress lives only in memory.
func New(stages []Stage, progress Progress, saver ProgressSaver) *Campaign {
	c := &Campaign{
		stages:   stages,
		progress: progress,
		saver:    saver,
		stats:    make(map[MissionKey]int),
	}
	c.current = 1
	if len(stages) > 0 {
		c.current = stages[0].ID
	}
	return c
}

// Stages returns every stage in order.
func (c *Campaign) Stages() []Stage {
	return c.stages
}

// Stage returns the stage with id.
func (c *Campaign) Stage(id int) (Stage, bool) {
	for _, s := range c.stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// Current returns the active stage.
func (c *Campaign) Current() Stage {
	s, _ := c.Stage(c.current)
	return s
}

// Progress returns a copy of the unlock record.
func (c *Campaign) Progress() Progress {
	p := c.progress
	p.CompletedStageIDs = slices.Clone(p.CompletedStageIDs)
	return p
}

// MaxUnlocked returns the highest playable stage id, bounded by the last stage.
func (c *Campaign) MaxUnlocked() int {
	m := c.progress.MaxUnlocked()
	if n := len(c.stages); n > 0 && m > c.stages[n-1].ID {
		m = c.stages[n-1].ID
	}
	return m
}

// Unlocked reports whether id may be started.
func (c *Campaign) Unlocked(id int) bool {
	_, ok := c.Stage(id)
	return ok && id <= c.MaxUnlocked()
}

// Start activates a stage and resets its counters.
func (c *Campaign) Start(id int) error {
	if _, ok := c.Stage(id); !ok {
		return fmt.Errorf("campaign: no stage %d", id)
	}
	if !c.Unlocked(id) {
		return fmt.Errorf("campaign: stage %d is locked", id)
	}
	c.current = id
	c.stats = make(map[MissionKey]int)
	c.cleared = false
	return nil
}

// Restore sets counters from a save without re-running rewards.
func (c *Campaign) Restore(id int, stats map[MissionKey]int, cleared bool) {
	if _, ok := c.Stage(id); ok {
		c.current = id
	}
	c.stats = make(map[MissionKey]int, len(stats))
	for k, v := range stats {
		c.stats[k] = v
	}
	c.cleared = cleared
}

// Record adds n to a mission counter.
func (c *Campaign) Record(key MissionKey, n int) {
	if n > 0 {
		c.stats[key] += n
	}
}

// Stat returns a counter value.
func (c *Campaign) Stat(key MissionKey) int {
	return c.stats[key]
}

// Stats returns a copy of all counters.
func (c *Campaign) Stats() map[MissionKey]int {
	out := make(map[MissionKey]int, len(c.stats))
	for k, v := range c.stats {
		out[k] = v
	}
	return out
}

// Cleared reports whether the active stage has been cleared.
func (c *Campaign) Cleared() bool {
	return c.cleared
}

// Status lists the active stage's missions with their counters.
func (c *Campaign) Status() []MissionStatus {
	ms := c.Current().Missions
	out := make([]MissionStatus, len(ms))
	for i, m := range ms {
		v := c.stats[m.Key]
		out[i] = MissionStatus{Mission: m, Value: v, Done: v >= m.Goal}
	}
	return out
}

// CheckCompletion clears the active stage once every mission is met. Rewards
// are granted and the unlock record persisted only on the clearing call;
// later calls return false. A persistence error is returned after the
// in-memory state has been updated.
func (c *Campaign) CheckCompletion(p *player.Player) (bool, error) {
	if c.cleared {
		return false, nil
	}
	status := c.Status()
	if len(status) == 0 {
		return false, nil
	}
	for _, s := range status {
		if !s.Done {
			return false, nil
		}
	}

	c.cleared = true
	for _, s := range status {
		p.GainXP(s.RewardXP)
		for _, st := range s.RewardItems {
			p.Inv.Add(st.ID, st.Qty)
		}
	}

	if c.progress.Completed(c.current) {
		return true, nil
	}
	c.progress.CompletedStageIDs = append(c.progress.CompletedStageIDs, c.current)
	c.progress.CurrentStageID = max(c.progress.CurrentStageID, c.current)
	return true, c.persist()
}

// Next returns the stage after the active one.
func (c *Campaign) Next() (Stage, bool) {
	for i, s := range c.stages {
		if s.ID == c.current && i+1 < len(c.stages) {
			return c.stages[i+1], true
		}
	}
	return Stage{}, false
}

// Advance starts the following stage and records it as current.
func (c *Campaign) Advance() (Stage, error) {
	next, ok := c.Next()
	if !ok {
		return Stage{}, fmt.Errorf("campaign: stage %d is the last", c.current)
	}
	if err := c.Start(next.ID); err != nil {
		return Stage{}, err
	}
	c.progress.CurrentStageID = next.ID
	return next, c.persist()
}

func (c *Campaign) persist() error {
	if c.saver == nil {
		return nil
	}
	if err := c.saver.SaveProgress(c.Progress()); err != nil {
		return fmt.Errorf("campaign: save progress: %w", err)
	}
	return nil
}
