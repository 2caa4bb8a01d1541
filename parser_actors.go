package recon

var (
	tagActorRace        = Tag{'R', 'N', 'A', 'M'}
	tagActorClass       = Tag{'C', 'N', 'A', 'M'}
	tagActorCombatStyle = Tag{'Z', 'N', 'A', 'M'}
	tagActorOutfit      = Tag{'O', 'N', 'A', 'M'}
	tagActorFaction     = Tag{'S', 'N', 'A', 'M'}
	tagActorItem        = Tag{'C', 'N', 'T', 'O'}
	tagActorDeathItem   = Tag{'I', 'N', 'A', 'M'}

	tagRaceSkin      = Tag{'N', 'A', 'M', '2'}
	tagRaceSpell     = Tag{'S', 'P', 'L', 'O'}
	tagRaceFaction   = Tag{'S', 'N', 'A', 'M'}

	tagFactionRelation = Tag{'X', 'N', 'A', 'M'}

	tagPerkEffect = Tag{'P', 'R', 'K', 'E'}
	tagPerkFlags  = Tag{'D', 'N', 'A', 'M'}

	tagSpellEffectID   = Tag{'E', 'F', 'I', 'D'}
	tagSpellEffectData = Tag{'E', 'F', 'I', 'T'}

	tagEnchantEffectID   = Tag{'E', 'F', 'I', 'D'}
	tagEnchantEffectData = Tag{'E', 'F', 'I', 'T'}

	tagMgefAssocItem = Tag{'A', 'S', 'P', 'C'}
)

var actorDataSchema = []dataField{
	{"level", fieldInt16, 0},
	{"healthBase", fieldInt32, 4},
	{"attackDamage", fieldInt16, 8},
	{"aggression", fieldUint8, 10},
	{"confidence", fieldUint8, 11},
	{"health", fieldInt32, 12},
}

// ParseActor reconstructs an NPC_ record.
func ParseActor(header RecordHeader, data []byte) *Actor {
	r := parseRawRecord(header, data)
	common := commonFields{}
	a := &Actor{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, actorDataSchema, header.Endian())
			a.Level = int16(f["level"])
			a.HealthBase = int32(f["healthBase"])
			a.AttackDamage = int16(f["attackDamage"])
			a.Aggression = uint8(f["aggression"])
			a.Confidence = uint8(f["confidence"])
			a.Health = int32(f["health"])
		case tagActorRace:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				a.Race = normalizeFormIDZero(FormID(v))
			}
		case tagActorClass:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				a.Class = normalizeFormIDZero(FormID(v))
			}
		case tagActorCombatStyle:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				a.CombatStyle = normalizeFormIDZero(FormID(v))
			}
		case tagActorOutfit:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				a.DefaultOutfit = normalizeFormIDZero(FormID(v))
			}
		case tagActorDeathItem:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				a.DeathItem = normalizeFormIDZero(FormID(v))
			}
		case tagActorFaction:
			if len(payload) >= 5 {
				if fid, err := readUint32(payload, 0, header.Endian()); err == nil {
					rank, _ := readInt8(payload, 4)
					a.Factions = append(a.Factions, FactionMembership{Faction: FormID(fid), Rank: rank})
				}
			}
		case tagActorItem:
			if entry, ok := decodeInventoryEntry(payload, header.Endian()); ok {
				a.Items = append(a.Items, entry)
			}
		}
	}

	a.EditorID = common.EditorID
	a.DisplayName = common.DisplayName
	a.Script = common.Script
	return a
}

// ParseCreature reconstructs a creature record by layering a creature
// type byte onto an actor parse (spec §4.4: creature shares most of the
// actor schema but is modeled separately).
func ParseCreature(header RecordHeader, data []byte, creatureType uint8) *Creature {
	return &Creature{Actor: *ParseActor(header, data), CreatureType: creatureType}
}

// ParseRace reconstructs a RACE record.
func ParseRace(header RecordHeader, data []byte) *Race {
	r := parseRawRecord(header, data)
	common := commonFields{}
	race := &Race{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagRaceSkin:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				race.DefaultSkin = normalizeFormIDZero(FormID(v))
			}
		case tagRaceSpell:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				race.StartingSpells = append(race.StartingSpells, FormID(v))
			}
		case tagRaceFaction:
			if len(payload) >= 5 {
				if fid, err := readUint32(payload, 0, header.Endian()); err == nil {
					rank, _ := readInt8(payload, 4)
					race.Factions = append(race.Factions, FactionMembership{Faction: FormID(fid), Rank: rank})
				}
			}
		case tagDATA:
			if len(payload) >= 16 {
				if v, err := readFloat32(payload, 0, header.Endian()); err == nil && validFloat(v) {
					race.HeightMale = v
				}
				if v, err := readFloat32(payload, 4, header.Endian()); err == nil && validFloat(v) {
					race.HeightFemale = v
				}
				if v, err := readFloat32(payload, 8, header.Endian()); err == nil && validFloat(v) {
					race.WeightMale = v
				}
				if v, err := readFloat32(payload, 12, header.Endian()); err == nil && validFloat(v) {
					race.WeightFemale = v
				}
			}
		}
	}

	race.EditorID = common.EditorID
	race.Description = common.Description
	return race
}

var factionDataSchema = []dataField{
	{"flags", fieldUint32, 0},
	{"crimeGoldPersonal", fieldInt32, 4},
	{"crimeGoldGroup", fieldInt32, 8},
}

// ParseFaction reconstructs a FACT record, including its ordered XNAM
// relation entries.
func ParseFaction(header RecordHeader, data []byte) *Faction {
	r := parseRawRecord(header, data)
	common := commonFields{}
	f := &Faction{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			fields := decodeDataFields(payload, factionDataSchema, header.Endian())
			f.Flags = uint32(fields["flags"])
			f.CrimeGoldPersonal = int32(fields["crimeGoldPersonal"])
			f.CrimeGoldGroup = int32(fields["crimeGoldGroup"])
		case tagFactionRelation:
			if len(payload) >= 12 {
				other, err := readUint32(payload, 0, header.Endian())
				if err != nil {
					continue
				}
				modifier, _ := readInt32(payload, 4, header.Endian())
				group, _ := readUint32(payload, 8, header.Endian())
				f.Relations = append(f.Relations, FactionRelation{Faction: FormID(other), Modifier: modifier, GroupFlag: group})
			}
		}
	}

	f.EditorID = common.EditorID
	return f
}

var classDataSchema = []dataField{
	{"flags", fieldUint32, 4},
	{"teachesSkill", fieldInt8, 8},
	{"maxTrainingLevel", fieldUint8, 9},
}

// ParseClass reconstructs a CLAS record.
func ParseClass(header RecordHeader, data []byte) *Class {
	r := parseRawRecord(header, data)
	common := commonFields{}
	c := &Class{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagDATA {
			fields := decodeDataFields(payload, classDataSchema, header.Endian())
			c.Flags = uint32(fields["flags"])
			c.TeachesSkill = int8(fields["teachesSkill"])
			c.MaxTrainingLevel = uint8(fields["maxTrainingLevel"])
		}
	}

	c.EditorID = common.EditorID
	c.Description = common.Description
	c.Icon = common.Icon
	return c
}

// ParsePerk reconstructs a PERK record, including its ordered PRKE/EPFT
// effect entries.
func ParsePerk(header RecordHeader, data []byte) *Perk {
	r := parseRawRecord(header, data)
	common := commonFields{}
	p := &Perk{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagPerkFlags:
			if len(payload) >= 5 {
				p.TraitFlag = payload[0] != 0
				v, _ := readUint8(payload, 1)
				p.MinLevel = v
				v2, _ := readUint8(payload, 2)
				p.Ranks = v2
				p.Playable = payload[3] != 0
				p.Hidden = payload[4] != 0
			}
		case tagPerkEffect:
			if len(payload) >= 3 {
				p.Effects = append(p.Effects, PerkEffect{Type: payload[0], Rank: payload[1], Priority: payload[2]})
			}
		}
	}

	p.EditorID = common.EditorID
	p.Description = common.Description
	p.Icon = common.Icon
	return p
}

var spellDataSchema = []dataField{
	{"spellType", fieldUint32, 0},
	{"cost", fieldInt32, 4},
	{"level", fieldUint32, 8},
	{"flags", fieldUint32, 12},
}

// ParseSpell reconstructs a SPEL record, including its ordered EFID/EFIT
// effect entries.
func ParseSpell(header RecordHeader, data []byte) *Spell {
	r := parseRawRecord(header, data)
	common := commonFields{}
	s2 := &Spell{RecordHeader: header}
	var current *MagicEffectEntry

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, spellDataSchema, header.Endian())
			s2.SpellType = uint32(f["spellType"])
			s2.Cost = int32(f["cost"])
			s2.Level = uint32(f["level"])
			s2.Flags = uint32(f["flags"])
		case tagSpellEffectID:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				s2.Effects = append(s2.Effects, MagicEffectEntry{BaseEffect: FormID(v)})
				current = &s2.Effects[len(s2.Effects)-1]
			}
		case tagSpellEffectData:
			if current == nil || len(payload) < 12 {
				continue
			}
			mag, _ := readInt32(payload, 0, header.Endian())
			area, _ := readInt32(payload, 4, header.Endian())
			dur, _ := readInt32(payload, 8, header.Endian())
			current.Magnitude, current.Area, current.Duration = mag, area, dur
		}
	}

	s2.EditorID = common.EditorID
	s2.Description = common.Description
	return s2
}

var enchantDataSchema = []dataField{
	{"enchantType", fieldUint32, 0},
	{"chargeAmount", fieldInt32, 4},
	{"flags", fieldUint32, 8},
}

// ParseEnchantment reconstructs an ENCH record.
func ParseEnchantment(header RecordHeader, data []byte) *Enchantment {
	r := parseRawRecord(header, data)
	common := commonFields{}
	en := &Enchantment{RecordHeader: header}
	var current *MagicEffectEntry

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, enchantDataSchema, header.Endian())
			en.EnchantType = uint32(f["enchantType"])
			en.ChargeAmount = int32(f["chargeAmount"])
			en.Flags = uint32(f["flags"])
		case tagEnchantEffectID:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				en.Effects = append(en.Effects, MagicEffectEntry{BaseEffect: FormID(v)})
				current = &en.Effects[len(en.Effects)-1]
			}
		case tagEnchantEffectData:
			if current == nil || len(payload) < 12 {
				continue
			}
			mag, _ := readInt32(payload, 0, header.Endian())
			area, _ := readInt32(payload, 4, header.Endian())
			dur, _ := readInt32(payload, 8, header.Endian())
			current.Magnitude, current.Area, current.Duration = mag, area, dur
		}
	}

	en.EditorID = common.EditorID
	return en
}

var baseEffectDataSchema = []dataField{
	{"flags", fieldUint32, 0},
	{"baseCost", fieldFloat32, 4},
	{"school", fieldInt32, 8},
	{"resistType", fieldInt32, 12},
}

// ParseBaseEffect reconstructs an MGEF record.
func ParseBaseEffect(header RecordHeader, data []byte) *BaseEffect {
	r := parseRawRecord(header, data)
	common := commonFields{}
	be := &BaseEffect{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, baseEffectDataSchema, header.Endian())
			be.Flags = uint32(f["flags"])
			be.BaseCost = float32(f["baseCost"])
			be.School = int32(f["school"])
			be.ResistType = int32(f["resistType"])
		case tagMgefAssocItem:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				be.AssocItem = normalizeFormIDZero(FormID(v))
			}
		}
	}

	be.EditorID = common.EditorID
	be.Description = common.Description
	be.Icon = common.Icon
	return be
}
