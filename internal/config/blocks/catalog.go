package blocks

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Catalog resolves material names to numeric block ids and back.
type Catalog struct {
	byName map[string]int
	byID   map[int]string
}

// NewCatalog creates a catalog from a name -> id table.
// Names are matched case-insensitively.
func NewCatalog(materials map[string]int) *Catalog {
	c := &Catalog{
		byName: make(map[string]int, len(materials)),
		byID:   make(map[int]string, len(materials)),
	}
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	// First name in sorted order wins for ids with aliases.
	sort.Strings(names)
	for _, name := range names {
		id := materials[name]
		upper := strings.ToUpper(name)
		c.byName[upper] = id
		if _, exists := c.byID[id]; !exists {
			c.byID[id] = upper
		}
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the catalog of legacy block and item ids.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog(legacyMaterials)
	})
	return defaultCatalog
}

// ID returns the block id for a material name or a numeric id string.
func (c *Catalog) ID(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	if id, ok := c.byName[strings.ToUpper(name)]; ok {
		return id, true
	}
	id, err := strconv.Atoi(name)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// Name returns the canonical name for a block id.
// Ids without a catalog entry are rendered as numbers.
func (c *Catalog) Name(id int) string {
	if name, ok := c.byID[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}

// Len returns the number of known names.
func (c *Catalog) Len() int {
	return len(c.byName)
}

var legacyMaterials = map[string]int{
	"AIR":                  0,
	"STONE":                1,
	"GRASS":                2,
	"DIRT":                 3,
	"COBBLESTONE":          4,
	"WOOD":                 5,
	"SAPLING":              6,
	"BEDROCK":              7,
	"WATER":                8,
	"STATIONARY_WATER":     9,
	"LAVA":                 10,
	"STATIONARY_LAVA":      11,
	"SAND":                 12,
	"GRAVEL":               13,
	"GOLD_ORE":             14,
	"IRON_ORE":             15,
	"COAL_ORE":             16,
	"LOG":                  17,
	"LEAVES":               18,
	"SPONGE":               19,
	"GLASS":                20,
	"LAPIS_ORE":            21,
	"LAPIS_BLOCK":          22,
	"SANDSTONE":            24,
	"LONG_GRASS":           31,
	"DEAD_BUSH":            32,
	"WOOL":                 35,
	"YELLOW_FLOWER":        37,
	"RED_ROSE":             38,
	"BROWN_MUSHROOM":       39,
	"RED_MUSHROOM":         40,
	"GOLD_BLOCK":           41,
	"IRON_BLOCK":           42,
	"DOUBLE_STEP":          43,
	"STEP":                 44,
	"BRICK":                45,
	"TNT":                  46,
	"BOOKSHELF":            47,
	"MOSSY_COBBLESTONE":    48,
	"OBSIDIAN":             49,
	"TORCH":                50,
	"FIRE":                 51,
	"MOB_SPAWNER":          52,
	"WOOD_STAIRS":          53,
	"CHEST":                54,
	"REDSTONE_WIRE":        55,
	"DIAMOND_ORE":          56,
	"DIAMOND_BLOCK":        57,
	"WORKBENCH":            58,
	"CROPS":                59,
	"SOIL":                 60,
	"FURNACE":              61,
	"LADDER":               65,
	"RAILS":                66,
	"COBBLESTONE_STAIRS":   67,
	"REDSTONE_ORE":         73,
	"GLOWING_REDSTONE_ORE": 74,
	"REDSTONE_TORCH_OFF":   75,
	"REDSTONE_TORCH_ON":    76,
	"SNOW":                 78,
	"ICE":                  79,
	"SNOW_BLOCK":           80,
	"CACTUS":               81,
	"CLAY":                 82,
	"SUGAR_CANE_BLOCK":     83,
	"FENCE":                85,
	"PUMPKIN":              86,
	"NETHERRACK":           87,
	"SOUL_SAND":            88,
	"GLOWSTONE":            89,
	"MONSTER_EGGS":         97,
	"SMOOTH_BRICK":         98,
	"MELON_BLOCK":          103,
	"VINE":                 106,
	"MYCEL":                110,
	"NETHER_BRICK":         112,
	"NETHER_WARTS":         115,
	"ENDER_STONE":          121,
	"EMERALD_ORE":          129,
	"EMERALD_BLOCK":        133,
	"QUARTZ_ORE":           153,
	"IRON_SPADE":           256,
	"IRON_PICKAXE":         257,
	"IRON_AXE":             258,
	"WOOD_SPADE":           269,
	"WOOD_PICKAXE":         270,
	"WOOD_AXE":             271,
	"STONE_SPADE":          273,
	"STONE_PICKAXE":        274,
	"STONE_AXE":            275,
	"DIAMOND_SPADE":        277,
	"DIAMOND_PICKAXE":      278,
	"DIAMOND_AXE":          279,
	"GOLD_SPADE":           284,
	"GOLD_PICKAXE":         285,
	"GOLD_AXE":             286,
}
