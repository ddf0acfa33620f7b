package savegame

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/player"
)

func samplePlayer() *player.Player {
	p := player.New("Ann", core.ColorCyan, core.Vec{X: 412, Y: 980}, 100, items.StoneKnife)
	p.HP = 61.5
	p.Hunger = 40
	p.Level = 3
	p.XP = 17
	p.XPNext = 210
	p.Armor = 5
	p.PoisonStacks = 2
	p.Inv.Add(items.Wood, 12)
	p.Inv.Add(items.VeggieSeed, 3)
	p.Structures[items.Campfire] = []core.Vec{{X: 400, Y: 960}}
	p.Plots[core.Vec{X: 420, Y: 1020}] = &player.Plot{Crop: items.Carrot, Stage: 0.4, Water: 30, Fertilized: true}
	p.GameTime = 23.5
	p.Day = 3
	p.Survived = 2
	p.Kills = 7
	return p
}

func TestRoundTrip(t *testing.T) {
	rec := Default()
	rec.BaseSeed = 1234
	rec.WorldSeed = 2234
	rec.StageID = 2
	rec.Missions = map[string]int{"kills": 4}
	rec.Player = FromPlayer(samplePlayer())
	rec.Progress = campaign.Progress{CompletedStageIDs: []int{1}, CurrentStageID: 2}

	data, err := Encode(rec)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, rec.WorldSeed, got.WorldSeed)
	assert.Equal(t, rec.Progress, got.Progress)
	assert.Equal(t, 4, got.Missions["kills"])

	p, skipped := got.Player.Player()
	assert.Empty(t, skipped)
	orig := samplePlayer()
	assert.Equal(t, orig.Pos, p.Pos)
	assert.Equal(t, orig.HP, p.HP)
	assert.Equal(t, orig.Level, p.Level)
	assert.Equal(t, orig.XPNext, p.XPNext)
	assert.Equal(t, items.StoneKnife, p.Weapon)
	assert.Equal(t, orig.Inv, p.Inv)
	assert.Equal(t, orig.Structures[items.Campfire], p.Structures[items.Campfire])
	require.Contains(t, p.Plots, core.Vec{X: 420, Y: 1020})
	assert.Equal(t, *orig.Plots[core.Vec{X: 420, Y: 1020}], *p.Plots[core.Vec{X: 420, Y: 1020}])
	assert.Equal(t, orig.Day, p.Day)
	assert.Equal(t, orig.Kills, p.Kills)
}

func wrap(t *testing.T, payload string) []byte {
	t.Helper()
	sum, err := checksum([]byte(payload))
	require.NoError(t, err)
	data, err := json.Marshal(envelope{Checksum: sum, Payload: json.RawMessage(payload)})
	require.NoError(t, err)
	return data
}

func TestMissingFieldsFallBackToDefaults(t *testing.T) {
	got, err := Decode(wrap(t, `{"worldSeed": 99, "player": {"name": "Bo", "x": 10}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(99), got.WorldSeed)
	assert.Equal(t, 1, got.StageID)
	assert.Equal(t, "Bo", got.Player.Name)
	assert.Equal(t, 100.0, got.Player.Hunger)
	assert.Equal(t, 1, got.Player.Level)
	assert.Equal(t, "fists", got.Player.Weapon)
}

func TestUnknownFieldsAndItemsIgnored(t *testing.T) {
	got, err := Decode(wrap(t, `{"future": true, "player": {"weapon": "laser", "inventory": {"wood": 2, "gold": 9}, "arrows": 4}}`))
	require.NoError(t, err)
	p, skipped := got.Player.Player()
	assert.ElementsMatch(t, []string{"laser", "gold"}, skipped)
	assert.Equal(t, items.Fists, p.Weapon)
	assert.Equal(t, 2, p.Inv.Count(items.Wood))
}

func TestTamperedPayloadRejected(t *testing.T) {
	data, err := Encode(Default())
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	env.Payload = json.RawMessage(`{"stageId": 6}`)
	bad, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestReformattedSaveStillLoads(t *testing.T) {
	rec := Default()
	rec.WorldSeed = 77
	data, err := Encode(rec)
	require.NoError(t, err)

	var pretty bytes.Buffer
	require.NoError(t, json.Indent(&pretty, data, "", "    "))
	got, err := Decode(pretty.Bytes())
	require.NoError(t, err)
	assert.Equal(t, int64(77), got.WorldSeed)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
	_, err = Decode([]byte(`{"checksum": "0"}`))
	assert.Error(t, err)
	_, err = Decode(wrap(t, `{"player": "wrong type"}`))
	assert.Error(t, err)
}

func TestVitalsClampedOnLoad(t *testing.T) {
	got, err := Decode(wrap(t, `{"player": {"hp": 500, "maxHp": 120, "thirst": -4}}`))
	require.NoError(t, err)
	p, _ := got.Player.Player()
	assert.Equal(t, 120.0, p.HP)
	assert.Zero(t, p.Thirst)
}
