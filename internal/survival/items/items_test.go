package items

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, id := range All() {
		got, err := Parse(id.Key())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
	_, err := Parse("unobtainium")
	assert.Error(t, err)
	_, err = Parse("none")
	assert.Error(t, err)
}

func TestInventoryRemoveAtZero(t *testing.T) {
	inv := Inventory{}
	inv.Add(Wood, 3)
	inv.Add(Wood, 0)
	inv.Add(None, 4)

	assert.False(t, inv.Remove(Wood, 4), "short remove must fail")
	assert.Equal(t, 3, inv.Count(Wood))

	assert.True(t, inv.Remove(Wood, 3))
	_, present := inv[Wood]
	assert.False(t, present, "zero entries are deleted")
	assert.Len(t, inv, 0)
}

func TestTakeAllIsAtomic(t *testing.T) {
	inv := Inventory{Wood: 10, Stone: 1}
	needs := []Stack{{Wood, 5}, {Stone, 3}}

	assert.False(t, inv.TakeAll(needs))
	assert.Equal(t, Inventory{Wood: 10, Stone: 1}, inv)

	inv.Add(Stone, 2)
	assert.True(t, inv.TakeAll(needs))
	assert.Equal(t, Inventory{Wood: 5}, inv)
}

func TestInventoryJSONUsesKeys(t *testing.T) {
	inv := Inventory{Wood: 2, VeggieSeed: 1}
	data, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"wood":2,"veggie_seed":1}`, string(data))

	var back Inventory
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, inv, back)
}

func TestRecipesReferenceValidItems(t *testing.T) {
	for _, r := range Recipes {
		assert.True(t, r.Output.Valid(), "recipe output %v", r.Output)
		assert.Positive(t, r.Qty)
		for _, n := range r.Needs {
			assert.True(t, n.ID.Valid())
			assert.Positive(t, n.Qty)
		}
	}
}

func TestEveryFoodAndCropDefined(t *testing.T) {
	for _, id := range EatOrder {
		_, ok := FoodValue(id)
		assert.True(t, ok, "%v missing food value", id)
	}
	for _, c := range CropRotation {
		_, ok := CropGrowTime(c)
		assert.True(t, ok)
		_, ok = FoodValue(c)
		assert.True(t, ok, "crops are edible")
	}
	for _, w := range StartWeapons {
		assert.True(t, IsWeapon(w))
	}
}
