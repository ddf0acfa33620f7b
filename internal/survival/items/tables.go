package items

// Food is the restoration granted by eating one unit of an item.
type Food struct {
	Hunger float64
	Thirst float64
}

var foods = map[ID]Food{
	Berry:    {18, 6},
	Mushroom: {22, 0},
	Fruit:    {28, 12},
	Meat:     {48, 0},
	Herb:     {10, 8},
	Carrot:   {32, 8},
	Potato:   {45, 5},
	Cabbage:  {28, 10},
}

// FoodValue returns the food entry for id.
func FoodValue(id ID) (Food, bool) {
	f, ok := foods[id]
	return f, ok
}

// EatOrder is the preference used by the quick-eat action.
var EatOrder = []ID{Meat, Fruit, Mushroom, Berry, Herb, Potato, Carrot, Cabbage}

// Weapon holds combat stats for an equippable weapon.
type Weapon struct {
	Damage   int
	Range    float64 // world units
	Cooldown float64 // seconds
}

var weapons = map[ID]Weapon{
	Fists:       {5, 52, 0.45},
	StoneKnife:  {9, 58, 0.40},
	WoodenSpear: {12, 82, 0.60},
	Club:        {15, 58, 0.70},
	Axe:         {13, 60, 0.55},
	Pickaxe:     {11, 56, 0.60},
	IronSword:   {20, 66, 0.50},
	Bow:         {14, 170, 0.90},
}

// WeaponStats returns the stats of a weapon item.
func WeaponStats(id ID) (Weapon, bool) {
	w, ok := weapons[id]
	return w, ok
}

// IsWeapon reports whether id can be equipped as a weapon.
func IsWeapon(id ID) bool {
	_, ok := weapons[id]
	return ok
}

// StartWeapons lists the weapons offered at character creation.
var StartWeapons = []ID{Fists, StoneKnife, WoodenSpear, Club}

// CropGrowTime returns the seconds a crop needs to mature.
func CropGrowTime(id ID) (float64, bool) {
	switch id {
	case Carrot:
		return 40, true
	case Potato:
		return 55, true
	case Cabbage:
		return 35, true
	}
	return 0, false
}

// CropRotation is the order in which planted crops cycle.
var CropRotation = []ID{Carrot, Potato, Cabbage}

// PlaceOrder is the order the place action tries owned structures.
var PlaceOrder = []ID{Campfire, Shelter, Trap, Torch, House, FarmPlot}

// IsStructure reports whether id is placed into the world rather than used.
func IsStructure(id ID) bool {
	for _, s := range PlaceOrder {
		if s == id {
			return true
		}
	}
	return false
}

// Recipe turns a set of ingredients into Qty units of Output.
type Recipe struct {
	Output ID
	Qty    int
	Needs  []Stack
}

// Recipes is the crafting list in menu order.
var Recipes = []Recipe{
	{Campfire, 1, []Stack{{Wood, 5}, {Stone, 3}}},
	{Torch, 2, []Stack{{Wood, 2}, {Leaf, 2}}},
	{Shelter, 1, []Stack{{Wood, 10}, {Leaf, 8}}},
	{Trap, 1, []Stack{{Wood, 4}, {Fiber, 2}}},
	{House, 1, []Stack{{Wood, 30}, {Stone, 15}, {Leaf, 10}}},
	{FarmPlot, 1, []Stack{{Wood, 4}, {Leaf, 2}}},
	{WateringCan, 1, []Stack{{Wood, 3}, {Iron, 1}}},
	{Fertilizer, 1, []Stack{{Leaf, 4}, {Mushroom, 1}}},
	{VeggieSeed, 2, []Stack{{Seed, 1}, {Berry, 2}}},
	{Fiber, 2, []Stack{{Reed, 3}}},
	{StoneKnife, 1, []Stack{{Wood, 1}, {Stone, 2}}},
	{WoodenSpear, 1, []Stack{{Wood, 5}, {Stone, 1}}},
	{Club, 1, []Stack{{Wood, 6}}},
	{Axe, 1, []Stack{{Wood, 3}, {Stone, 3}}},
	{Pickaxe, 1, []Stack{{Wood, 3}, {Stone, 4}}},
	{IronSword, 1, []Stack{{Wood, 2}, {Iron, 3}}},
	{Bow, 1, []Stack{{Wood, 4}, {Fiber, 3}}},
	{Bandage, 1, []Stack{{Leaf, 3}, {Herb, 1}}},
	{Armor, 1, []Stack{{Wood, 6}, {Leaf, 6}, {Fiber, 2}}},
	{IronArmor, 1, []Stack{{Iron, 5}, {Leather, 1}}},
	{Poison, 1, []Stack{{Mushroom, 2}, {Herb, 1}}},
}
