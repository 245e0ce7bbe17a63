package registry

// Base is the root key every node path lives under.
const Base = "ExtraHardMode"

// Paths of nodes the resolver treats specially.
const (
	// PathMode holds the document's declared mode.
	PathMode   = Base + ".Config Type"
	// PathScopes lists the scopes (world names) a document applies to.
	PathScopes = Base + ".Enabled Worlds"

	PathSuperHardStoneTools      = Base + ".World Rules.Mining.Inhibit Tunneling.Amount of Stone Tool Can Mine (Tool@Blocks)"
	PathSoftenStoneBlocks        = Base + ".World Rules.Mining.Breaking Blocks Softens Surrounding Stone.Blocks (Block@id,id2)"
	PathFallingBlocks            = Base + ".Additional Falling Blocks.Enabled Blocks"
	PathBreakableByFallingBlocks = Base + ".Additional Falling Blocks.Breakable Blocks"
)

// builtinNodes returns the node table in canonical document order.
// Keep the grouping, it mirrors the layout of the generated config.yml.
func builtinNodes() []Node {
	return []Node{
		mode(),
		scopes(),

		boolean("Bypassing.Check For Permission", true),
		boolean("Bypassing.Creative Mode Bypasses", true),
		boolean("Bypassing.Operators Bypass", false),

		boolean("World Rules.Mining.Inhibit Tunneling.Enable", true),
		blocks(PathSuperHardStoneTools, "IRON_PICKAXE@32", "DIAMOND_PICKAXE@64"),
		boolean("World Rules.Mining.Breaking Blocks Softens Surrounding Stone.Enable", true),
		blocks(PathSoftenStoneBlocks, "COAL_ORE", "IRON_ORE", "GOLD_ORE", "LAPIS_ORE", "REDSTONE_ORE", "GLOWING_REDSTONE_ORE", "EMERALD_ORE", "DIAMOND_ORE"),
		disabled("World Rules.Torches.No Placement Under Y", SubYValue, 0, 30),
		boolean("World Rules.Torches.No Placement On Soft Materials", true),
		boolean("World Rules.Torches.Rain Breaks Torches", true),
		boolean("World Rules.Play Sounds.Torch Fizzing", true),
		boolean("World Rules.Play Sounds.Creeper Tnt Warning", true),
		bounded("World Rules.Breaking Netherrack Starts Fire Percent", SubPercentage, 20),
		boolean("World Rules.Limited Block Placement", true),
		boolean("World Rules.Better Tree Felling", true),

		boolean("Player.Enhanced Environmental Injuries", true),
		boolean("Player.Extinguishing Fires Ignites Player", true),
		bounded("Player.Death.Item Stacks Forfeit Percent", SubPercentage, 10),
		boolean("Player.Death.Override Respawn Health.Enable", true),
		disabled("Player.Death.Override Respawn Health.Percentage", SubPercentage, 100, 75),
		bounded("Player.Death.Respawn Foodlevel", SubHealth, 15),
		boolean("Player.No Swimming When Too Heavy.Enable", true),
		boolean("Player.No Swimming When Too Heavy.Block Elevators/Waterfalls", true),
		double("Player.No Swimming When Too Heavy.Max Points", 18.0),
		double("Player.No Swimming When Too Heavy.One Piece Of Worn Armor Adds", 2.0),
		double("Player.No Swimming When Too Heavy.One Stack Adds", 1.0),
		double("Player.No Swimming When Too Heavy.One Tool Adds", 0.5),
		bounded("Player.No Swimming When Too Heavy.Drown Rate", SubNaturalNumber, 35),
		bounded("Player.No Swimming When Too Heavy.Overencumbrance Adds To Drown Rate", SubNaturalNumber, 2),

		boolean("General Monster Rules.Inhibit Monster Grinders", true),
		disabled("General Monster Rules.More Monsters.Max Y", SubYValue, 0, 55),
		disabled("General Monster Rules.More Monsters.Multiplier", SubNaturalNumber, 1, 2),
		disabled("General Monster Rules.Monsters Spawn In Light Max Y", SubYValue, 0, 50),

		disabled("Horses.Block Usage Of Chest Below", SubYValue, 0, 55),

		boolean("Zombies.Slow Players", true),
		bounded("Zombies.Reanimate Percent", SubPercentage, 50),

		boolean("Skeletons.Shoot Snowballs.Enable", true),
		bounded("Skeletons.Shoot Snowballs.Percent", SubPercentage, 20),
		bounded("Skeletons.Shoot Snowballs.Blind Player (ticks)", SubNaturalNumber, 100),
		boolean("Skeletons.Shoot Fireworks.Enable", true),
		bounded("Skeletons.Shoot Fireworks.Percent", SubPercentage, 30),
		double("Skeletons.Shoot Fireworks.Knockback Player Velocity", 1.0),
		boolean("Skeletons.Shoot Fireballs.Enable", true),
		bounded("Skeletons.Shoot Fireballs.Percentage", SubPercentage, 10),
		bounded("Skeletons.Shoot Fireballs.Player Fireticks", SubNaturalNumber, 40),
		boolean("Skeletons.Shoot Silverfish.Enable", true),
		bounded("Skeletons.Shoot Silverfish.Percent", SubPercentage, 20),
		boolean("Skeletons.Shoot Silverfish.Kill Silverfish After Skeleton Died", true),
		bounded("Skeletons.Shoot Silverfish.Limit To X Spawned At A Time", SubNaturalNumber, 5),
		bounded("Skeletons.Shoot Silverfish.Limit To X Spawned In Total", SubNaturalNumber, 15),
		bounded("Skeletons.Deflect Arrows Percent", SubPercentage, 100),

		boolean("Silverfish.Cant enter blocks", true),
		boolean("Silverfish.Drop Cobble", true),
		boolean("Silverfish.Show Particles To Make Better Visible", true),

		bounded("Spiders.Bonus Underground Spawn Percent", SubPercentage, 20),
		boolean("Spiders.Drop Web On Death", true),

		bounded("Creepers.Charged Creeper Spawn Percent", SubPercentage, 10),
		bounded("Creepers.Drop Tnt On Death.Percent", SubPercentage, 20),
		disabled("Creepers.Drop Tnt On Death.Max Y", SubYValue, 0, 50),
		boolean("Creepers.Charged Creepers Explode On Damage", true),
		boolean("Creepers.Fire Triggers Explosion.Enable", true),
		integer("Creepers.Fire Triggers Explosion.Firework Count", 3),
		double("Creepers.Fire Triggers Explosion.Launch In Air Speed", 0.5),

		bounded("Blazes.Near Bedrock Spawn Percent", SubPercentage, 50),
		boolean("Blazes.Block Drops In Overworld", true),
		bounded("Blazes.Bonus Nether Spawn Percent", SubPercentage, 20),
		boolean("Blazes.Drop Fire On Damage", true),
		boolean("Blazes.Bonus Loot", true),
		bounded("Blazes.Nether Split On Death Percent", SubPercentage, 25),

		bounded("MagmaCubes.Spawn With Nether Blaze Percent", SubPercentage, 100),
		boolean("MagmaCubes.Grow Into Blazes On Damage", true),

		boolean("PigZombies.Always Angry", true),
		boolean("PigZombies.Always Drop Netherwart In Fortresses", true),
		bounded("PigZombies.Percent Chance to Drop Netherwart Elsewhere In Nether", SubPercentage, 25),
		boolean("PigZombies.Spawn on Lighting Strikes.Enable", true),

		disabled("Ghasts.Arrows Do % Damage", SubPercentage, 100, 20),
		disabled("Ghasts.Exp Multiplier", SubNaturalNumber, 1, 10),
		disabled("Ghasts.Drops Multiplier", SubNaturalNumber, 1, 5),

		boolean("Endermen.May Teleport Players", true),

		boolean("Witches.Additional Attacks", true),
		bounded("Witches.Bonus Spawn Percent", SubPercentage, 5),

		boolean("EnderDragon.Respawns", true),
		boolean("EnderDragon.Drops Dragonegg", true),
		boolean("EnderDragon.Drops 2 Villager Eggs", true),
		boolean("EnderDragon.Harder Battle", true),
		boolean("EnderDragon.Battle Announcements", true),
		boolean("EnderDragon.No Building Allowed", true),

		boolean("Farming.Weak Crops.Enable", true),
		disabled("Farming.Weak Crops.Loss Rate", SubPercentage, 0, 25),
		boolean("Farming.Weak Crops.Infertile Deserts", true),
		boolean("Farming.Weak Crops.Snow Breaks Crops", true),
		boolean("Farming.Cant Craft Melonseeds", true),
		boolean("Farming.No Bonemeal On Mushrooms", true),
		boolean("Farming.No Farming Nether Wart", true),
		boolean("Farming.Sheep Grow Only White Wool", true),
		boolean("Farming.Buckets Dont Move Water Sources", true),
		boolean("Farming.Animal Experience Nerf", true),
		boolean("Farming.Iron Golem Nerf", true),

		boolean("Additional Falling Blocks.Enable", true),
		boolean("Additional Falling Blocks.Break Blocks", true),
		boolean("Additional Falling Blocks.Landed Blocks Can Cause Blocks To Fall", true),
		integer("Additional Falling Blocks.Dmg Amount When Hitting Players", 2),
		boolean("Additional Falling Blocks.Turn Mycel/Grass To Dirt", true),
		blocks(PathFallingBlocks, "DIRT", "GRASS", "COBBLESTONE", "MOSSY_COBBLESTONE", "DOUBLE_STEP@3", "STEP@3", "STEP@11", "MYCEL"),
		blocks(PathBreakableByFallingBlocks, "SAPLING", "TORCH", "FIRE"),

		boolean("Explosions.Turn Stone To Cobble", true),
		boolean("Explosions.Physics.Enable", true),
		boolean("Explosions.Physics.Enable For Plugin Created Explosions", false),
		bounded("Explosions.Physics.Blocks Affected Percentage", SubPercentage, 20),
		double("Explosions.Physics.Up Velocity", 2.0),
		double("Explosions.Physics.Spread Velocity", 3.0),
		integer("Explosions.Physics.Exceed Radius Autoremove", 10),
		integer("Explosions.Border Y", 55),
		boolean("Explosions.Creeper.Enable Custom Explosion", true),
		bounded("Explosions.Creeper.Below Border.Explosion Power", SubNaturalNumber, 3),
		boolean("Explosions.Creeper.Below Border.Set Fire", false),
		boolean("Explosions.Creeper.Below Border.World Damage", true),
		bounded("Explosions.Creeper.Above Border.Explosion Power", SubNaturalNumber, 3),
		boolean("Explosions.Creeper.Above Border.Set Fire", false),
		boolean("Explosions.Creeper.Above Border.World Damage", true),
		boolean("Explosions.Charged Creeper.Enable Custom Explosion", true),
		bounded("Explosions.Charged Creeper.Below Border.Explosion Power", SubNaturalNumber, 4),
		boolean("Explosions.Charged Creeper.Below Border.Set Fire", false),
		boolean("Explosions.Charged Creeper.Below Border.World Damage", true),
		bounded("Explosions.Charged Creeper.Above Border.Explosion Power", SubNaturalNumber, 4),
		boolean("Explosions.Charged Creeper.Above Border.Set Fire", false),
		boolean("Explosions.Charged Creeper.Above Border.World Damage", true),
		boolean("Explosions.Tnt.Enable Custom Explosion", true),
		boolean("Explosions.Tnt.Enable Multiple Explosions", true),
		disabled("Explosions.Tnt.Tnt Per Recipe", SubNaturalNumber, 1, 3),
		bounded("Explosions.Tnt.Below Border.Explosion Power", SubNaturalNumber, 5),
		boolean("Explosions.Tnt.Below Border.Set Fire", false),
		boolean("Explosions.Tnt.Below Border.World Damage", true),
		bounded("Explosions.Tnt.Above Border.Explosion Power", SubNaturalNumber, 3),
		boolean("Explosions.Tnt.Above Border.Set Fire", false),
		boolean("Explosions.Tnt.Above Border.World Damage", true),
		boolean("Explosions.Blazes Explode On Death.Enable", true),
		bounded("Explosions.Blazes Explode On Death.Below Border.Explosion Power", SubNaturalNumber, 4),
		boolean("Explosions.Blazes Explode On Death.Below Border.Set Fire", true),
		boolean("Explosions.Blazes Explode On Death.Below Border.World Damage", true),
		bounded("Explosions.Blazes Explode On Death.Above Border.Explosion Power", SubNaturalNumber, 4),
		boolean("Explosions.Blazes Explode On Death.Above Border.Set Fire", true),
		boolean("Explosions.Blazes Explode On Death.Above Border.World Damage", true),
		boolean("Explosions.Ghasts.Enable Custom Explosion", true),
		bounded("Explosions.Ghasts.Below Border.Explosion Power", SubNaturalNumber, 2),
		boolean("Explosions.Ghasts.Below Border.Set Fire", true),
		boolean("Explosions.Ghasts.Below Border.World Damage", true),
		bounded("Explosions.Ghasts.Above Border.Explosion Power", SubNaturalNumber, 2),
		boolean("Explosions.Ghasts.Above Border.Set Fire", true),
		boolean("Explosions.Ghasts.Above Border.World Damage", true),
	}
}

func mode() Node {
	return Node{Path: PathMode, Type: TypeString, Default: "MAIN", Description: "How this file is handled: MAIN, INHERIT or DISABLE"}
}

func scopes() Node {
	return Node{Path: PathScopes, Type: TypeList, Default: []string{}, Description: "Worlds this file applies to, * for all"}
}

func boolean(path string, def bool) Node {
	return Node{Path: Base + "." + path, Type: TypeBoolean, Default: def}
}

func integer(path string, def int) Node {
	return Node{Path: Base + "." + path, Type: TypeInteger, Default: def}
}

func bounded(path string, sub SubType, def int) Node {
	return Node{Path: Base + "." + path, Type: TypeInteger, SubType: sub, Default: def}
}

func disabled(path string, sub SubType, disable, def int) Node {
	return Node{Path: Base + "." + path, Type: TypeInteger, SubType: sub, Disable: disable, Default: def}
}

func double(path string, def float64) Node {
	return Node{Path: Base + "." + path, Type: TypeDouble, Default: def}
}

func blocks(path string, def ...string) Node {
	return Node{Path: path, Type: TypeList, Blocks: true, Default: def}
}
