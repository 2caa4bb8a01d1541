// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package recon

// Catalog is the final aggregate produced by a reconstruction run: one
// list per record kind, the FormID->editor-ID and FormID->display-name
// indexes, and coverage counts (spec §3 "Catalog").
type Catalog struct {
	Actors       []*Actor         `json:"actors,omitempty"`
	Weapons      []*Weapon        `json:"weapons,omitempty"`
	Armors       []*Armor         `json:"armors,omitempty"`
	Ammo         []*Ammo          `json:"ammo,omitempty"`
	Consumables  []*Consumable    `json:"consumables,omitempty"`
	MiscItems    []*MiscItem      `json:"misc_items,omitempty"`
	Keys         []*Key           `json:"keys,omitempty"`
	Containers   []*Container     `json:"containers,omitempty"`
	Factions     []*Faction       `json:"factions,omitempty"`
	Races        []*Race          `json:"races,omitempty"`
	Quests       []*Quest         `json:"quests,omitempty"`
	DialogTopics []*DialogTopic   `json:"dialog_topics,omitempty"`
	DialogInfos  []*DialogInfo    `json:"dialog_infos,omitempty"`
	Notes        []*Note          `json:"notes,omitempty"`
	Books        []*Book          `json:"books,omitempty"`
	Terminals    []*Terminal      `json:"terminals,omitempty"`
	Scripts      []*Script        `json:"scripts,omitempty"`
	Perks        []*Perk          `json:"perks,omitempty"`
	Spells       []*Spell         `json:"spells,omitempty"`
	Enchantments []*Enchantment   `json:"enchantments,omitempty"`
	BaseEffects  []*BaseEffect    `json:"base_effects,omitempty"`
	Projectiles  []*Projectile    `json:"projectiles,omitempty"`
	Explosions   []*Explosion     `json:"explosions,omitempty"`
	Messages     []*Message       `json:"messages,omitempty"`
	Classes      []*Class         `json:"classes,omitempty"`
	Globals      []*Global        `json:"globals,omitempty"`
	GameSettings []*GameSetting   `json:"game_settings,omitempty"`
	WeaponMods   []*WeaponMod     `json:"weapon_mods,omitempty"`
	Recipes      []*Recipe        `json:"recipes,omitempty"`
	Challenges   []*Challenge     `json:"challenges,omitempty"`
	Reputations  []*Reputation    `json:"reputations,omitempty"`
	FormLists    []*FormList      `json:"form_lists,omitempty"`
	Activators   []*Activator     `json:"activators,omitempty"`
	Lights       []*Light         `json:"lights,omitempty"`
	Doors        []*Door          `json:"doors,omitempty"`
	Statics      []*Static        `json:"statics,omitempty"`
	Furniture    []*Furniture     `json:"furniture,omitempty"`
	Packages     []*Package       `json:"packages,omitempty"`
	Cells        []*Cell          `json:"cells,omitempty"`
	Worldspaces  []*Worldspace    `json:"worldspaces,omitempty"`
	PlacedRefs   []*PlacedRef     `json:"placed_refs,omitempty"`
	LeveledLists []*LeveledList   `json:"leveled_lists,omitempty"`
	MapMarkers   []*MapMarker     `json:"map_markers,omitempty"`
	Generic      []*GenericRecord `json:"generic,omitempty"`

	Identity *IdentityIndex `json:"-"`

	// RecognizedCount and UnrecognizedCount track how many scanned main
	// records ended up as a typed kind versus falling back to a
	// GenericRecord holder (spec §3, §7 "counts of unreconstructed
	// record types are exposed").
	RecognizedCount   int `json:"recognized_count"`
	UnrecognizedCount int `json:"unrecognized_count"`

	// formIDSeen enforces invariant 1 (each FormID appears at most once
	// per record kind) without making every Add* method re-scan its list.
	formIDSeen map[RecordKind]map[FormID]bool
}

// NewCatalog returns an empty catalog backed by a fresh identity index.
func NewCatalog() *Catalog {
	return &Catalog{
		Identity:   NewIdentityIndex(),
		formIDSeen: make(map[RecordKind]map[FormID]bool),
	}
}

// seen reports whether id has already been added under kind, and marks it
// seen if not. Callers use this to enforce §3 invariant 1 before
// appending to a list.
func (c *Catalog) seen(kind RecordKind, id FormID) bool {
	m, ok := c.formIDSeen[kind]
	if !ok {
		m = make(map[FormID]bool)
		c.formIDSeen[kind] = m
	}
	if m[id] {
		return true
	}
	m[id] = true
	return false
}

// AddActor appends an actor record if its FormID hasn't been added yet.
func (c *Catalog) AddActor(r *Actor) {
	if c.seen(KindActor, r.FormID) {
		return
	}
	c.Actors = append(c.Actors, r)
}

// AddWeapon appends a weapon record if its FormID hasn't been added yet.
func (c *Catalog) AddWeapon(r *Weapon) {
	if c.seen(KindWeapon, r.FormID) {
		return
	}
	c.Weapons = append(c.Weapons, r)
}

// AddArmor appends an armor record if its FormID hasn't been added yet.
func (c *Catalog) AddArmor(r *Armor) {
	if c.seen(KindArmor, r.FormID) {
		return
	}
	c.Armors = append(c.Armors, r)
}

// AddAmmo appends an ammo record if its FormID hasn't been added yet.
func (c *Catalog) AddAmmo(r *Ammo) {
	if c.seen(KindAmmo, r.FormID) {
		return
	}
	c.Ammo = append(c.Ammo, r)
}

// AddConsumable appends a consumable record if its FormID hasn't been
// added yet.
func (c *Catalog) AddConsumable(r *Consumable) {
	if c.seen(KindConsumable, r.FormID) {
		return
	}
	c.Consumables = append(c.Consumables, r)
}

// AddMiscItem appends a misc item record if its FormID hasn't been added
// yet.
func (c *Catalog) AddMiscItem(r *MiscItem) {
	if c.seen(KindMiscItem, r.FormID) {
		return
	}
	c.MiscItems = append(c.MiscItems, r)
}

// AddKey appends a key record if its FormID hasn't been added yet.
func (c *Catalog) AddKey(r *Key) {
	if c.seen(KindKey, r.FormID) {
		return
	}
	c.Keys = append(c.Keys, r)
}

// AddContainer appends a container record if its FormID hasn't been added
// yet.
func (c *Catalog) AddContainer(r *Container) {
	if c.seen(KindContainer, r.FormID) {
		return
	}
	c.Containers = append(c.Containers, r)
}

// AddFaction appends a faction record if its FormID hasn't been added yet.
func (c *Catalog) AddFaction(r *Faction) {
	if c.seen(KindFaction, r.FormID) {
		return
	}
	c.Factions = append(c.Factions, r)
}

// AddRace appends a race record if its FormID hasn't been added yet.
func (c *Catalog) AddRace(r *Race) {
	if c.seen(KindRace, r.FormID) {
		return
	}
	c.Races = append(c.Races, r)
}

// AddQuest appends a quest record if its FormID hasn't been added yet.
func (c *Catalog) AddQuest(r *Quest) {
	if c.seen(KindQuest, r.FormID) {
		return
	}
	c.Quests = append(c.Quests, r)
}

// FindQuest returns the quest with the given FormID, if present.
func (c *Catalog) FindQuest(id FormID) *Quest {
	for _, q := range c.Quests {
		if q.FormID == id {
			return q
		}
	}
	return nil
}

// AddDialogTopic appends a dialog topic record if its FormID hasn't been
// added yet.
func (c *Catalog) AddDialogTopic(r *DialogTopic) {
	if c.seen(KindDialogTopic, r.FormID) {
		return
	}
	c.DialogTopics = append(c.DialogTopics, r)
}

// FindDialogTopic returns the topic with the given FormID, if present.
func (c *Catalog) FindDialogTopic(id FormID) *DialogTopic {
	for _, t := range c.DialogTopics {
		if t.FormID == id {
			return t
		}
	}
	return nil
}

// AddDialogInfo appends a dialog info record if its FormID hasn't been
// added yet.
func (c *Catalog) AddDialogInfo(r *DialogInfo) {
	if c.seen(KindDialogInfo, r.FormID) {
		return
	}
	c.DialogInfos = append(c.DialogInfos, r)
}

// FindDialogInfo returns the info with the given FormID, if present.
func (c *Catalog) FindDialogInfo(id FormID) *DialogInfo {
	for _, i := range c.DialogInfos {
		if i.FormID == id {
			return i
		}
	}
	return nil
}

// AddNote appends a note record if its FormID hasn't been added yet.
func (c *Catalog) AddNote(r *Note) {
	if c.seen(KindNote, r.FormID) {
		return
	}
	c.Notes = append(c.Notes, r)
}

// AddBook appends a book record if its FormID hasn't been added yet.
func (c *Catalog) AddBook(r *Book) {
	if c.seen(KindBook, r.FormID) {
		return
	}
	c.Books = append(c.Books, r)
}

// AddTerminal appends a terminal record if its FormID hasn't been added
// yet.
func (c *Catalog) AddTerminal(r *Terminal) {
	if c.seen(KindTerminal, r.FormID) {
		return
	}
	c.Terminals = append(c.Terminals, r)
}

// AddScript appends a script record if its FormID hasn't been added yet.
func (c *Catalog) AddScript(r *Script) {
	if c.seen(KindScript, r.FormID) {
		return
	}
	c.Scripts = append(c.Scripts, r)
}

// AddPerk appends a perk record if its FormID hasn't been added yet.
func (c *Catalog) AddPerk(r *Perk) {
	if c.seen(KindPerk, r.FormID) {
		return
	}
	c.Perks = append(c.Perks, r)
}

// AddSpell appends a spell record if its FormID hasn't been added yet.
func (c *Catalog) AddSpell(r *Spell) {
	if c.seen(KindSpell, r.FormID) {
		return
	}
	c.Spells = append(c.Spells, r)
}

// AddEnchantment appends an enchantment record if its FormID hasn't been
// added yet.
func (c *Catalog) AddEnchantment(r *Enchantment) {
	if c.seen(KindEnchantment, r.FormID) {
		return
	}
	c.Enchantments = append(c.Enchantments, r)
}

// AddBaseEffect appends a base-effect record if its FormID hasn't been
// added yet.
func (c *Catalog) AddBaseEffect(r *BaseEffect) {
	if c.seen(KindBaseEffect, r.FormID) {
		return
	}
	c.BaseEffects = append(c.BaseEffects, r)
}

// AddProjectile appends a projectile record if its FormID hasn't been
// added yet.
func (c *Catalog) AddProjectile(r *Projectile) {
	if c.seen(KindProjectile, r.FormID) {
		return
	}
	c.Projectiles = append(c.Projectiles, r)
}

// FindProjectile returns the projectile with the given FormID, if present.
func (c *Catalog) FindProjectile(id FormID) *Projectile {
	for _, p := range c.Projectiles {
		if p.FormID == id {
			return p
		}
	}
	return nil
}

// AddExplosion appends an explosion record if its FormID hasn't been added
// yet.
func (c *Catalog) AddExplosion(r *Explosion) {
	if c.seen(KindExplosion, r.FormID) {
		return
	}
	c.Explosions = append(c.Explosions, r)
}

// AddMessage appends a message record if its FormID hasn't been added yet.
func (c *Catalog) AddMessage(r *Message) {
	if c.seen(KindMessage, r.FormID) {
		return
	}
	c.Messages = append(c.Messages, r)
}

// AddClass appends a class record if its FormID hasn't been added yet.
func (c *Catalog) AddClass(r *Class) {
	if c.seen(KindClass, r.FormID) {
		return
	}
	c.Classes = append(c.Classes, r)
}

// AddGlobal appends a global record if its FormID hasn't been added yet.
func (c *Catalog) AddGlobal(r *Global) {
	if c.seen(KindGlobal, r.FormID) {
		return
	}
	c.Globals = append(c.Globals, r)
}

// AddGameSetting appends a game-setting record if its FormID hasn't been
// added yet.
func (c *Catalog) AddGameSetting(r *GameSetting) {
	if c.seen(KindGameSetting, r.FormID) {
		return
	}
	c.GameSettings = append(c.GameSettings, r)
}

// AddWeaponMod appends a weapon-mod record if its FormID hasn't been
// added yet.
func (c *Catalog) AddWeaponMod(r *WeaponMod) {
	if c.seen(KindWeaponMod, r.FormID) {
		return
	}
	c.WeaponMods = append(c.WeaponMods, r)
}

// AddRecipe appends a recipe record if its FormID hasn't been added yet.
func (c *Catalog) AddRecipe(r *Recipe) {
	if c.seen(KindRecipe, r.FormID) {
		return
	}
	c.Recipes = append(c.Recipes, r)
}

// AddChallenge appends a challenge record if its FormID hasn't been added
// yet.
func (c *Catalog) AddChallenge(r *Challenge) {
	if c.seen(KindChallenge, r.FormID) {
		return
	}
	c.Challenges = append(c.Challenges, r)
}

// AddReputation appends a reputation record if its FormID hasn't been
// added yet.
func (c *Catalog) AddReputation(r *Reputation) {
	if c.seen(KindReputation, r.FormID) {
		return
	}
	c.Reputations = append(c.Reputations, r)
}

// AddFormList appends a form-list record if its FormID hasn't been added
// yet.
func (c *Catalog) AddFormList(r *FormList) {
	if c.seen(KindFormList, r.FormID) {
		return
	}
	c.FormLists = append(c.FormLists, r)
}

// AddActivator appends an activator record if its FormID hasn't been
// added yet.
func (c *Catalog) AddActivator(r *Activator) {
	if c.seen(KindActivator, r.FormID) {
		return
	}
	c.Activators = append(c.Activators, r)
}

// AddLight appends a light record if its FormID hasn't been added yet.
func (c *Catalog) AddLight(r *Light) {
	if c.seen(KindLight, r.FormID) {
		return
	}
	c.Lights = append(c.Lights, r)
}

// AddDoor appends a door record if its FormID hasn't been added yet.
func (c *Catalog) AddDoor(r *Door) {
	if c.seen(KindDoor, r.FormID) {
		return
	}
	c.Doors = append(c.Doors, r)
}

// AddStatic appends a static record if its FormID hasn't been added yet.
func (c *Catalog) AddStatic(r *Static) {
	if c.seen(KindStatic, r.FormID) {
		return
	}
	c.Statics = append(c.Statics, r)
}

// AddFurniture appends a furniture record if its FormID hasn't been
// added yet.
func (c *Catalog) AddFurniture(r *Furniture) {
	if c.seen(KindFurniture, r.FormID) {
		return
	}
	c.Furniture = append(c.Furniture, r)
}

// AddPackage appends a package record if its FormID hasn't been added
// yet.
func (c *Catalog) AddPackage(r *Package) {
	if c.seen(KindPackage, r.FormID) {
		return
	}
	c.Packages = append(c.Packages, r)
}

// AddCell appends a cell record if its FormID hasn't been added yet.
func (c *Catalog) AddCell(r *Cell) {
	if c.seen(KindCell, r.FormID) {
		return
	}
	c.Cells = append(c.Cells, r)
}

// FindCell returns the cell with the given FormID, if present.
func (c *Catalog) FindCell(id FormID) *Cell {
	for _, cell := range c.Cells {
		if cell.FormID == id {
			return cell
		}
	}
	return nil
}

// AddWorldspace appends a worldspace record if its FormID hasn't been
// added yet.
func (c *Catalog) AddWorldspace(r *Worldspace) {
	if c.seen(KindWorldspace, r.FormID) {
		return
	}
	c.Worldspaces = append(c.Worldspaces, r)
}

// FindWorldspace returns the worldspace with the given FormID, if
// present.
func (c *Catalog) FindWorldspace(id FormID) *Worldspace {
	for _, w := range c.Worldspaces {
		if w.FormID == id {
			return w
		}
	}
	return nil
}

// AddPlacedRef appends a placed-reference record if its FormID hasn't
// been added yet.
func (c *Catalog) AddPlacedRef(r *PlacedRef) {
	if c.seen(KindPlacedRef, r.FormID) {
		return
	}
	c.PlacedRefs = append(c.PlacedRefs, r)
}

// AddLeveledList appends a leveled-list record if its FormID hasn't been
// added yet.
func (c *Catalog) AddLeveledList(r *LeveledList) {
	if c.seen(KindLeveledList, r.FormID) {
		return
	}
	c.LeveledLists = append(c.LeveledLists, r)
}

// AddMapMarker appends a map-marker record if its FormID hasn't been
// added yet.
func (c *Catalog) AddMapMarker(r *MapMarker) {
	if c.seen(KindMapMarker, r.FormID) {
		return
	}
	c.MapMarkers = append(c.MapMarkers, r)
}

// AddGeneric appends a generic holder record (an unrecognized record
// type) and increments the unrecognized-type counter.
func (c *Catalog) AddGeneric(r *GenericRecord) {
	if c.seen(KindGeneric, r.FormID) {
		return
	}
	c.Generic = append(c.Generic, r)
	c.UnrecognizedCount++
}

// BoundsAndModelIndex returns a lookup of FormID to (object bounds, model
// path) gathered across every record kind that exposes either, used by
// the placed-reference enrichment linker pass (spec §4.7 rule 6, §9
// "Placed-reference enrichment is driven by uniformly indexing bounds and
// model paths ahead of time to avoid a dispatch surface").
func (c *Catalog) BoundsAndModelIndex() map[FormID]BoundsModel {
	idx := make(map[FormID]BoundsModel)
	add := func(id FormID, bm BoundsModel) {
		// All-zero extents count as no bounds.
		bm.HasBounds = bm.Bounds != (ObjectBounds{})
		if bm.HasBounds || bm.ModelPath != "" {
			idx[id] = bm
		}
	}
	for _, r := range c.Weapons {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Armors {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Ammo {
		add(r.FormID, BoundsModel{ModelPath: r.ModelPath})
	}
	for _, r := range c.Consumables {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.MiscItems {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Keys {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Containers {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Activators {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Lights {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Doors {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Statics {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Furniture {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Books {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	for _, r := range c.Notes {
		add(r.FormID, BoundsModel{Bounds: r.Bounds, ModelPath: r.ModelPath})
	}
	return idx
}

// BoundsModel is the (object bounds, model path) pair one record kind may
// expose, used uniformly by placed-reference enrichment regardless of
// the base record's concrete kind.
type BoundsModel struct {
	Bounds    ObjectBounds
	HasBounds bool
	ModelPath string
}

// Counts returns the per-kind record count of every list in the catalog,
// keyed the same as the lists' JSON tags, plus the recognized and
// unrecognized record counters under "recognized" and "unrecognized", for
// a CLI summary that doesn't need the whole catalog dumped.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		"actors":            len(c.Actors),
		"weapons":           len(c.Weapons),
		"armors":            len(c.Armors),
		"ammo":              len(c.Ammo),
		"consumables":       len(c.Consumables),
		"misc_items":        len(c.MiscItems),
		"keys":              len(c.Keys),
		"containers":        len(c.Containers),
		"factions":          len(c.Factions),
		"races":             len(c.Races),
		"quests":            len(c.Quests),
		"dialog_topics":     len(c.DialogTopics),
		"dialog_infos":      len(c.DialogInfos),
		"notes":             len(c.Notes),
		"books":             len(c.Books),
		"terminals":         len(c.Terminals),
		"scripts":           len(c.Scripts),
		"perks":             len(c.Perks),
		"spells":            len(c.Spells),
		"enchantments":      len(c.Enchantments),
		"base_effects":      len(c.BaseEffects),
		"projectiles":       len(c.Projectiles),
		"explosions":        len(c.Explosions),
		"messages":          len(c.Messages),
		"classes":           len(c.Classes),
		"globals":           len(c.Globals),
		"game_settings":     len(c.GameSettings),
		"weapon_mods":       len(c.WeaponMods),
		"recipes":           len(c.Recipes),
		"challenges":        len(c.Challenges),
		"reputations":       len(c.Reputations),
		"form_lists":        len(c.FormLists),
		"activators":        len(c.Activators),
		"lights":            len(c.Lights),
		"doors":             len(c.Doors),
		"statics":           len(c.Statics),
		"furniture":         len(c.Furniture),
		"packages":          len(c.Packages),
		"cells":             len(c.Cells),
		"worldspaces":       len(c.Worldspaces),
		"placed_refs":       len(c.PlacedRefs),
		"leveled_lists":     len(c.LeveledLists),
		"map_markers":       len(c.MapMarkers),
		"generic":           len(c.Generic),
		"recognized":        c.RecognizedCount,
		"unrecognized":      c.UnrecognizedCount,
	}
}
