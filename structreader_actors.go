package recon

// actorFieldOffsets is the runtime ActorCharacter/TESNPC layout shared by
// NPC_ and creature records.
var actorFieldOffsets = struct {
	Race, Class, CombatStyle, Script, DefaultOutfit                 uint32
	Level, HealthBase, AttackDamage, Aggression, Confidence, Health uint32
	DeathItem                                                       uint32
	FactionsHead, FactionNext, FactionID, FactionRank                uint32
	ItemsHead, ItemNext, ItemFormID, ItemCount                       uint32
}{
	Race: 0xC8, Class: 0xCC, CombatStyle: 0xD0, Script: 0xD4, DefaultOutfit: 0xD8,
	Level: 0xDC, HealthBase: 0xE0, AttackDamage: 0xE4, Aggression: 0xE6,
	Confidence: 0xE7, Health: 0xE8, DeathItem: 0xEC,
	FactionsHead: 0xF0, FactionNext: 0x04, FactionID: 0x08, FactionRank: 0x0C,
	ItemsHead: 0xF4, ItemNext: 0x04, ItemFormID: 0x08, ItemCount: 0x0C,
}

// readActorStruct reads the runtime-only fields of an Actor, including
// its two bounded linked lists (factions, inventory), per spec §4.4
// rules 6 and 8.
func readActorStruct(view *DumpView, form tesForm, e endian) Actor {
	data := dumpBytes(view)
	a := Actor{}

	a.Race = readPointerField(view, data, form.Offset+actorFieldOffsets.Race, e)
	a.Class = readPointerField(view, data, form.Offset+actorFieldOffsets.Class, e)
	a.CombatStyle = readPointerField(view, data, form.Offset+actorFieldOffsets.CombatStyle, e)
	a.Script = readPointerField(view, data, form.Offset+actorFieldOffsets.Script, e)
	a.DefaultOutfit = readPointerField(view, data, form.Offset+actorFieldOffsets.DefaultOutfit, e)

	if v, err := readInt16(data, form.Offset+actorFieldOffsets.Level, e); err == nil && validRange(int64(v), 0, 100) {
		a.Level = v
	}
	if v, err := readInt32(data, form.Offset+actorFieldOffsets.HealthBase, e); err == nil && validRange(int64(v), 0, 100_000) {
		a.HealthBase = v
	}
	if v, err := readInt16(data, form.Offset+actorFieldOffsets.AttackDamage, e); err == nil && validRange(int64(v), 0, 10_000) {
		a.AttackDamage = v
	}
	if v, err := readUint8(data, form.Offset+actorFieldOffsets.Aggression); err == nil {
		a.Aggression = v
	}
	if v, err := readUint8(data, form.Offset+actorFieldOffsets.Confidence); err == nil {
		a.Confidence = v
	}
	if v, err := readInt32(data, form.Offset+actorFieldOffsets.Health, e); err == nil && validRange(int64(v), 0, 100_000) {
		a.Health = v
	}
	a.DeathItem = readPointerField(view, data, form.Offset+actorFieldOffsets.DeathItem, e)

	if head, err := readUint32(data, form.Offset+actorFieldOffsets.FactionsHead, e); err == nil {
		linkedListWalker(view, head, actorFieldOffsets.FactionNext, func(nodeOffset uint32) bool {
			factionID, err := readUint32(data, nodeOffset+actorFieldOffsets.FactionID, bigEndian)
			if err != nil {
				return false
			}
			rank, err := readInt8(data, nodeOffset+actorFieldOffsets.FactionRank)
			if err != nil {
				rank = 0
			}
			a.Factions = append(a.Factions, FactionMembership{Faction: FormID(factionID), Rank: rank})
			return true
		})
	}

	if head, err := readUint32(data, form.Offset+actorFieldOffsets.ItemsHead, e); err == nil {
		linkedListWalker(view, head, actorFieldOffsets.ItemNext, func(nodeOffset uint32) bool {
			itemID, err := readUint32(data, nodeOffset+actorFieldOffsets.ItemFormID, bigEndian)
			if err != nil {
				return false
			}
			count, err := readInt32(data, nodeOffset+actorFieldOffsets.ItemCount, bigEndian)
			if err != nil {
				count = 1
			}
			a.Items = append(a.Items, InventoryEntry{Item: FormID(itemID), Count: count})
			return true
		})
	}

	return a
}

// creatureTypeOffset is the single field that distinguishes a Creature
// struct read from a plain Actor read at the runtime layer.
const creatureTypeOffset uint32 = 0xF8

func readCreatureStruct(view *DumpView, form tesForm, e endian) Creature {
	c := Creature{Actor: readActorStruct(view, form, e)}
	if v, err := readUint8(dumpBytes(view), form.Offset+creatureTypeOffset); err == nil {
		c.CreatureType = v
	}
	return c
}

// factionFieldOffsets is the runtime TESFaction layout; Relations is the
// head-of-list pointer for the bounded linked-list walk over XNAM
// relation entries.
var factionFieldOffsets = struct {
	Flags, CrimeGoldPersonal, CrimeGoldGroup                    uint32
	RelationsHead, RelationNext, RelationFaction, RelationMod, RelationGroup uint32
}{
	Flags: 0x54, CrimeGoldPersonal: 0x58, CrimeGoldGroup: 0x5C,
	RelationsHead: 0x60, RelationNext: 0x04, RelationFaction: 0x08,
	RelationMod: 0x0C, RelationGroup: 0x10,
}

func readFactionStruct(view *DumpView, form tesForm, e endian) Faction {
	data := dumpBytes(view)
	f := Faction{}
	if v, err := readUint32(data, form.Offset+factionFieldOffsets.Flags, e); err == nil {
		f.Flags = v
	}
	if v, err := readInt32(data, form.Offset+factionFieldOffsets.CrimeGoldPersonal, e); err == nil && validRange(int64(v), -1_000_000, 1_000_000) {
		f.CrimeGoldPersonal = v
	}
	if v, err := readInt32(data, form.Offset+factionFieldOffsets.CrimeGoldGroup, e); err == nil && validRange(int64(v), -1_000_000, 1_000_000) {
		f.CrimeGoldGroup = v
	}

	if head, err := readUint32(data, form.Offset+factionFieldOffsets.RelationsHead, e); err == nil {
		linkedListWalker(view, head, factionFieldOffsets.RelationNext, func(nodeOffset uint32) bool {
			otherID, err := readUint32(data, nodeOffset+factionFieldOffsets.RelationFaction, bigEndian)
			if err != nil {
				return false
			}
			modifier, _ := readInt32(data, nodeOffset+factionFieldOffsets.RelationMod, bigEndian)
			group, _ := readUint32(data, nodeOffset+factionFieldOffsets.RelationGroup, bigEndian)
			f.Relations = append(f.Relations, FactionRelation{Faction: FormID(otherID), Modifier: modifier, GroupFlag: group})
			return true
		})
	}
	return f
}
