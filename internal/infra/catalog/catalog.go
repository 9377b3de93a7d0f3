// Package catalog is the built-in game data: the monster book, environment
// effects, race skill trees, quest templates and preset food/exercise items.
// It is NutriQuest's "bestiary and cookbook" — read-only lookups; all
// mutable state lives elsewhere.
package catalog

import "github.com/nutriquest-app/nutriquest/internal/domain"

// ─── Monster Book ───────────────────────────────────────────────────────────

// Bosses is the pool of daily bosses. The almanac narrows the pool by
// weakness type before the date hash picks one.
var Bosses = []domain.Monster{
	{ID: "noodle-wyrm", Name: "Noodle Wyrm", Icon: "🐉", Weakness: domain.WeaknessLowCarb, Boss: true, EnragedName: "Ravenous Noodle Wyrm"},
	{ID: "rice-colossus", Name: "Rice Colossus", Icon: "🍚", Weakness: domain.WeaknessLowCarb, Boss: true, EnragedName: "Overstuffed Rice Colossus"},
	{ID: "sugar-lich", Name: "Sugar Lich", Icon: "🍬", Weakness: domain.WeaknessLowCarb, Boss: true, EnragedName: "Glazed Sugar Lich"},
	{ID: "butter-behemoth", Name: "Butter Behemoth", Icon: "🧈", Weakness: domain.WeaknessLowFat, Boss: true, EnragedName: "Molten Butter Behemoth"},
	{ID: "fry-fiend", Name: "Fry Fiend", Icon: "🍟", Weakness: domain.WeaknessLowFat, Boss: true, EnragedName: "Double-Fried Fiend"},
	{ID: "lard-leviathan", Name: "Lard Leviathan", Icon: "🐋", Weakness: domain.WeaknessLowFat, Boss: true, EnragedName: "Churning Lard Leviathan"},
	{ID: "couch-troll", Name: "Couch Troll", Icon: "🛋️", Weakness: domain.WeaknessHighProtein, Boss: true, EnragedName: "Immovable Couch Troll"},
	{ID: "sloth-demon", Name: "Sloth Demon", Icon: "🦥", Weakness: domain.WeaknessHighProtein, Boss: true, EnragedName: "Awakened Sloth Demon"},
}

// Minions rotate through the day's pre-boss stages.
var Minions = []domain.Monster{
	{ID: "snack-imp", Name: "Snack Imp", Icon: "👿", Weakness: domain.WeaknessNone},
	{ID: "soda-slime", Name: "Soda Slime", Icon: "🥤", Weakness: domain.WeaknessLowCarb},
	{ID: "crumb-rat", Name: "Crumb Rat", Icon: "🐀", Weakness: domain.WeaknessNone},
	{ID: "grease-goblin", Name: "Grease Goblin", Icon: "👺", Weakness: domain.WeaknessLowFat},
	{ID: "candy-bat", Name: "Candy Bat", Icon: "🦇", Weakness: domain.WeaknessLowCarb},
}

// Environments are the daily global modifiers, all within ±5–10%.
var Environments = []domain.Environment{
	{ID: "calm", Name: "Calm Skies", Multiplier: 1.0},
	{ID: "tailwind", Name: "Tailwind", Multiplier: 1.1},
	{ID: "sunny", Name: "Sunny Morning", Multiplier: 1.05},
	{ID: "fog", Name: "Heavy Fog", Multiplier: 0.95},
	{ID: "storm", Name: "Thunderstorm", Multiplier: 0.9},
}

// ─── Skill Trees ────────────────────────────────────────────────────────────

// SkillTree returns the skill nodes of a race's tree, roots first.
func SkillTree(race domain.Race) []domain.SkillNode {
	var out []domain.SkillNode
	for _, n := range allSkills {
		if n.Race == race {
			out = append(out, n)
		}
	}
	return out
}

// SkillByID looks up a node across all trees; nil if unknown.
func SkillByID(id string) *domain.SkillNode {
	for i := range allSkills {
		if allSkills[i].ID == id {
			return &allSkills[i]
		}
	}
	return nil
}

var allSkills = []domain.SkillNode{
	// Human — faith and fast learning.
	{ID: "human_prayer", Race: domain.RaceHuman, Name: "Prayer", Effect: domain.EffectPrayer, MaxLevel: 1, Cost: 1, RequiredLevel: 2},
	{ID: "human_study", Race: domain.RaceHuman, Name: "Diligent Study", Effect: domain.EffectExpRate, ValuePerLevel: 0.02, MaxLevel: 5, Cost: 1, RequiredLevel: 3, Parent: "human_prayer"},
	{ID: "human_fortitude", Race: domain.RaceHuman, Name: "Fortitude", Effect: domain.EffectMaxHPMult, ValuePerLevel: 0.05, MaxLevel: 5, Cost: 1, RequiredLevel: 5, RequiredPower: 300, Parent: "human_study"},

	// Orc — raw power.
	{ID: "orc_rage", Race: domain.RaceOrc, Name: "Blood Rage", Effect: domain.EffectRage, MaxLevel: 1, Cost: 1, RequiredLevel: 2},
	{ID: "orc_might", Race: domain.RaceOrc, Name: "Savage Might", Effect: domain.EffectStrengthMult, ValuePerLevel: 0.05, MaxLevel: 5, Cost: 1, RequiredLevel: 3, Parent: "orc_rage"},
	{ID: "orc_hide", Race: domain.RaceOrc, Name: "Iron Hide", Effect: domain.EffectBlock, ValuePerLevel: 5, MaxLevel: 5, Cost: 1, RequiredLevel: 5, RequiredPower: 300, Parent: "orc_might"},

	// Elf — precision.
	{ID: "elf_focus", Race: domain.RaceElf, Name: "Keen Focus", Effect: domain.EffectFocus, MaxLevel: 1, Cost: 1, RequiredLevel: 2},
	{ID: "elf_grace", Race: domain.RaceElf, Name: "Woodland Grace", Effect: domain.EffectAgilityMult, ValuePerLevel: 0.05, MaxLevel: 5, Cost: 1, RequiredLevel: 3, Parent: "elf_focus"},
	{ID: "elf_ward", Race: domain.RaceElf, Name: "Leaf Ward", Effect: domain.EffectBlock, ValuePerLevel: 3, MaxLevel: 5, Cost: 1, RequiredLevel: 5, RequiredPower: 250, Parent: "elf_grace"},

	// Undead — hunger.
	{ID: "undead_feast", Race: domain.RaceUndead, Name: "Midnight Feast", Effect: domain.EffectDoubleExp, MaxLevel: 1, Cost: 1, RequiredLevel: 2},
	{ID: "undead_drain", Race: domain.RaceUndead, Name: "Life Drain", Effect: domain.EffectLifesteal, ValuePerLevel: 0.05, MaxLevel: 5, Cost: 1, RequiredLevel: 3, Parent: "undead_feast"},
	{ID: "undead_husk", Race: domain.RaceUndead, Name: "Hollow Husk", Effect: domain.EffectMaxHPMult, ValuePerLevel: 0.04, MaxLevel: 5, Cost: 1, RequiredLevel: 5, RequiredPower: 300, Parent: "undead_drain"},
}

// ─── Quest Templates ────────────────────────────────────────────────────────

// QuestTemplates is the pool the daily quest board is drawn from.
var QuestTemplates = []domain.QuestTemplate{
	{Slug: "log_3", Title: "Keep the Journal", Type: domain.QuestCount, Rarity: domain.RarityD, Target: 3},
	{Slug: "log_5", Title: "Faithful Scribe", Type: domain.QuestCount, Rarity: domain.RarityC, Target: 5},
	{Slug: "protein_60", Title: "Iron Rations", Type: domain.QuestProtein, Rarity: domain.RarityC, Target: 60},
	{Slug: "protein_100", Title: "Titan's Table", Type: domain.QuestProtein, Rarity: domain.RarityB, Target: 100},
	{Slug: "veg_3", Title: "Forest Forager", Type: domain.QuestVegetable, Rarity: domain.RarityC, Target: 3},
	{Slug: "water_2000", Title: "River Pilgrim", Type: domain.QuestWater, Rarity: domain.RarityD, Target: 2000},
	{Slug: "ceiling_1800", Title: "Light Step", Type: domain.QuestCalorieCeiling, Rarity: domain.RarityB, Target: 1800},
	{Slug: "lowcarb_4", Title: "Grain Ascetic", Type: domain.QuestLowCarb, Rarity: domain.RarityA, Target: 4},
	{Slug: "lowfat_4", Title: "Lean Path", Type: domain.QuestLowFat, Rarity: domain.RarityA, Target: 4},
	{Slug: "lowsugar_5", Title: "Unsweetened Oath", Type: domain.QuestLowSugar, Rarity: domain.RarityS, Target: 5},
	{Slug: "lowsugar_10", Title: "Sworn Unsweetened", Type: domain.QuestLowSugar, Rarity: domain.RaritySS, Target: 10},
}

// TemplateBySlug looks up a quest template; nil if unknown.
func TemplateBySlug(slug string) *domain.QuestTemplate {
	for i := range QuestTemplates {
		if QuestTemplates[i].Slug == slug {
			return &QuestTemplates[i]
		}
	}
	return nil
}

// ─── Achievements ───────────────────────────────────────────────────────────

// Achievements is the full achievement catalog with equipment rewards.
func Achievements() []domain.AchievementDef {
	return []domain.AchievementDef{
		{
			ID: "first_bite", Name: "First Bite", Icon: "🍽️",
			Reward:    domain.Equipment{Slot: domain.SlotWeapon, Stat: domain.EquipStrength, Bonus: 1, Power: 10},
			Predicate: func(s domain.HeroStats) bool { return s.TotalFoodLogs >= 1 },
		},
		{
			ID: "hundred_meals", Name: "Seasoned Adventurer", Icon: "🍱",
			Reward:    domain.Equipment{Slot: domain.SlotWeapon, Stat: domain.EquipStrength, Bonus: 3, Power: 50},
			Predicate: func(s domain.HeroStats) bool { return s.TotalFoodLogs >= 100 },
		},
		{
			ID: "streak_7", Name: "Week Warrior", Icon: "🔥",
			Reward:    domain.Equipment{Slot: domain.SlotAccessory, Stat: domain.EquipVitality, Bonus: 2, Power: 30, BMRBonus: 50},
			Predicate: func(s domain.HeroStats) bool { return s.LoginStreak >= 7 },
		},
		{
			ID: "streak_30", Name: "Monthly Machine", Icon: "📅",
			Reward:    domain.Equipment{Slot: domain.SlotAccessory, Stat: domain.EquipVitality, Bonus: 5, Power: 120, BMRBonus: 100},
			Predicate: func(s domain.HeroStats) bool { return s.LoginStreak >= 30 },
		},
		{
			ID: "protein_5k", Name: "Protein Paragon", Icon: "🥩",
			Reward:    domain.Equipment{Slot: domain.SlotWeapon, Stat: domain.EquipStrength, Bonus: 5, Power: 100},
			Predicate: func(s domain.HeroStats) bool { return s.LifetimeProtein >= 5000 },
		},
		{
			ID: "boss_10", Name: "Bossbreaker", Icon: "⚔️",
			Reward:    domain.Equipment{Slot: domain.SlotWeapon, Stat: domain.EquipStrength, Bonus: 4, Power: 150},
			Predicate: func(s domain.HeroStats) bool { return s.BossesCleared >= 10 },
		},
		{
			ID: "combo_10", Name: "Unbroken Chain", Icon: "⛓️",
			Reward:    domain.Equipment{Slot: domain.SlotAccessory, Stat: domain.EquipAgility, Bonus: 3, Power: 60},
			Predicate: func(s domain.HeroStats) bool { return s.MaxCombo >= 10 },
		},
		{
			ID: "water_50l", Name: "Wellspring", Icon: "💧",
			Reward:    domain.Equipment{Slot: domain.SlotArmor, Stat: domain.EquipBlock, Bonus: 5, Power: 40},
			Predicate: func(s domain.HeroStats) bool { return s.TotalWaterML >= 50000 },
		},
		{
			ID: "exercise_30", Name: "Road Warrior", Icon: "🏃",
			Reward:    domain.Equipment{Slot: domain.SlotArmor, Stat: domain.EquipAgility, Bonus: 4, Power: 80},
			Predicate: func(s domain.HeroStats) bool { return s.TotalExercise >= 30 },
		},
		{
			ID: "quests_20", Name: "Guild Favorite", Icon: "📜",
			Reward:    domain.Equipment{Slot: domain.SlotAccessory, Stat: domain.EquipVitality, Bonus: 3, Power: 70, BMRBonus: 50},
			Predicate: func(s domain.HeroStats) bool { return s.QuestsClaimed >= 20 },
		},
		{
			ID: "gold_1000", Name: "Dragon's Hoard", Icon: "💰",
			Reward:    domain.Equipment{Slot: domain.SlotArmor, Stat: domain.EquipBlock, Bonus: 8, Power: 90},
			Predicate: func(s domain.HeroStats) bool { return s.Gold >= 1000 },
		},
		{
			ID: "level_50", Name: "Halfway Legend", Icon: "🌟",
			Reward:    domain.Equipment{Slot: domain.SlotWeapon, Stat: domain.EquipStrength, Bonus: 8, Power: 300, BMRBonus: 100},
			Predicate: func(s domain.HeroStats) bool { return s.Level >= 50 },
		},
	}
}

// ─── Preset Items ───────────────────────────────────────────────────────────

// Preset is a catalog food or exercise entry resolvable by name.
type Preset struct {
	Name     string
	Icon     string
	Kind     domain.LogKind
	Category string
	Grams    float64
	Macros   domain.Macros
	Duration float64 // minutes, exercise only
	Clean    bool    // curated "clean" flag
}

// Presets is the built-in food/exercise lookup. Kept deliberately small —
// the host app ships its own food database; these cover tests and the CLI.
var Presets = []Preset{
	{Name: "oatmeal", Icon: "🥣", Kind: domain.LogFood, Category: "breakfast", Grams: 200, Clean: true,
		Macros: domain.Macros{Calories: 190, Protein: 7, Carbs: 32, Fat: 3.5, Sugar: 1}},
	{Name: "chicken breast", Icon: "🍗", Kind: domain.LogFood, Category: "lunch", Grams: 150, Clean: true,
		Macros: domain.Macros{Calories: 248, Protein: 46, Carbs: 0, Fat: 5.4}},
	{Name: "white rice", Icon: "🍚", Kind: domain.LogFood, Category: "lunch", Grams: 200,
		Macros: domain.Macros{Calories: 260, Protein: 5, Carbs: 56, Fat: 0.6}},
	{Name: "fried chicken", Icon: "🍗", Kind: domain.LogFood, Category: "dinner", Grams: 200,
		Macros: domain.Macros{Calories: 530, Protein: 34, Carbs: 18, Fat: 36, SodiumMg: 1100}},
	{Name: "chocolate cake", Icon: "🍰", Kind: domain.LogFood, Category: "snack", Grams: 120,
		Macros: domain.Macros{Calories: 440, Protein: 5, Carbs: 60, Fat: 20, Sugar: 42}},
	{Name: "garden salad", Icon: "🥗", Kind: domain.LogFood, Category: "vegetable", Grams: 180, Clean: true,
		Macros: domain.Macros{Calories: 60, Protein: 3, Carbs: 9, Fat: 1, Sugar: 4}},
	{Name: "broccoli", Icon: "🥦", Kind: domain.LogFood, Category: "vegetable", Grams: 150, Clean: true,
		Macros: domain.Macros{Calories: 51, Protein: 4.2, Carbs: 10, Fat: 0.6, Sugar: 2.5}},
	{Name: "cola", Icon: "🥤", Kind: domain.LogFood, Category: "snack", Grams: 330,
		Macros: domain.Macros{Calories: 139, Protein: 0, Carbs: 35, Sugar: 35}},
	{Name: "running", Icon: "🏃", Kind: domain.LogExercise, Category: "cardio", Duration: 30,
		Macros: domain.Macros{Calories: 300}},
	{Name: "strength training", Icon: "🏋️", Kind: domain.LogExercise, Category: "strength", Duration: 45,
		Macros: domain.Macros{Calories: 270}},
}

// PresetByName resolves a preset by case-exact name; nil if unknown.
func PresetByName(name string) *Preset {
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}

// ─── Shop ───────────────────────────────────────────────────────────────────

// ItemPrices is the gold cost of each purchasable consumable.
var ItemPrices = map[string]int64{
	domain.ItemRebirthPotion: 500,
	domain.ItemStreakFreeze:  200,
}
