package recon

// Tags specific to item-kind subrecord parsers. Several share the same
// four-byte wire tag as tags used elsewhere (the format reuses tags
// across record types); each gets its own Go identifier here so the
// reuse is visible at the call site instead of hidden behind a shared
// name with two meanings.
var (
	tagWeapEnch      = Tag{'E', 'N', 'A', 'M'}
	tagWeapAmmo      = Tag{'A', 'N', 'A', 'M'}
	tagWeapProj      = Tag{'P', 'N', 'A', 'M'}
	tagWeapSndFire   = Tag{'S', 'N', 'A', 'M'}
	tagWeapSndReload = Tag{'X', 'N', 'A', 'M'}

	tagArmorEnch = Tag{'E', 'N', 'A', 'M'}

	tagAmmoProj = Tag{'P', 'N', 'A', 'M'}

	tagEffectID       = Tag{'E', 'F', 'I', 'D'}
	tagEffectData     = Tag{'E', 'F', 'I', 'T'}
	tagAddiction      = Tag{'Z', 'N', 'A', 'M'}
	tagAddictChance   = Tag{'C', 'N', 'A', 'M'}

	tagContainerItem   = Tag{'C', 'N', 'T', 'O'}
	tagContainerOpen   = Tag{'Q', 'N', 'A', 'M'}
	tagContainerClose  = Tag{'R', 'N', 'A', 'M'}

	tagRecipeIngredient = Tag{'C', 'N', 'T', 'O'}
	tagRecipeCreated    = Tag{'C', 'N', 'A', 'M'}
	tagRecipeCreatedCnt = Tag{'N', 'A', 'M', '1'}
	tagRecipeCategory   = Tag{'B', 'N', 'A', 'M'}
)

var weaponDataSchema = []dataField{
	{"value", fieldInt32, 0},
	{"weight", fieldFloat32, 4},
	{"damage", fieldInt16, 8},
	{"clipSize", fieldUint8, 10},
	{"animType", fieldUint8, 11},
	{"skill", fieldUint8, 12},
	{"fireRate", fieldFloat32, 16},
	{"critChance", fieldFloat32, 20},
	{"critDamage", fieldInt16, 24},
}

// ParseWeapon reconstructs a WEAP record from its subrecords.
func ParseWeapon(header RecordHeader, data []byte) *Weapon {
	r := parseRawRecord(header, data)
	common := commonFields{}
	w := &Weapon{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, weaponDataSchema, header.Endian())
			w.Value = int32(f["value"])
			w.Weight = float32(f["weight"])
			w.Damage = int16(f["damage"])
			w.ClipSize = uint8(f["clipSize"])
			w.AnimType = uint8(f["animType"])
			w.Skill = uint8(f["skill"])
			w.FireRate = float32(f["fireRate"])
			w.CritChance = float32(f["critChance"])
			w.CritDamage = int16(f["critDamage"])
		case tagWeapEnch:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.Enchantment = normalizeFormIDZero(FormID(v))
			}
		case tagWeapAmmo:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.Ammo = normalizeFormIDZero(FormID(v))
			}
		case tagWeapProj:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.Projectile = normalizeFormIDZero(FormID(v))
			}
		case tagWeapSndFire:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.SoundFire = normalizeFormIDZero(FormID(v))
			}
		case tagWeapSndReload:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.SoundReload = normalizeFormIDZero(FormID(v))
			}
		}
	}

	w.EditorID = common.EditorID
	w.DisplayName = common.DisplayName
	w.Description = common.Description
	w.ModelPath = common.ModelPath
	w.Icon = common.Icon
	w.Bounds = common.Bounds
	w.Script = common.Script
	return w
}

var armorDataSchema = []dataField{
	{"value", fieldInt32, 0},
	{"weight", fieldFloat32, 4},
	{"damageRes", fieldInt16, 8},
	{"bipedSlots", fieldUint32, 12},
}

// ParseArmor reconstructs an ARMO record from its subrecords.
func ParseArmor(header RecordHeader, data []byte) *Armor {
	r := parseRawRecord(header, data)
	common := commonFields{}
	a := &Armor{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, armorDataSchema, header.Endian())
			a.Value = int32(f["value"])
			a.Weight = float32(f["weight"])
			a.DamageRes = int16(f["damageRes"])
			a.BipedSlots = uint32(f["bipedSlots"])
		case tagArmorEnch:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				a.Enchantment = normalizeFormIDZero(FormID(v))
			}
		}
	}

	a.EditorID = common.EditorID
	a.DisplayName = common.DisplayName
	a.Description = common.Description
	a.ModelPath = common.ModelPath
	a.Icon = common.Icon
	a.Bounds = common.Bounds
	a.Script = common.Script
	return a
}

var ammoDataSchema = []dataField{
	{"value", fieldInt32, 0},
	{"weight", fieldFloat32, 4},
	{"damage", fieldInt16, 8},
	{"clipRounds", fieldUint8, 10},
	{"flags", fieldUint8, 11},
}

// ParseAmmo reconstructs an AMMO record from its subrecords.
func ParseAmmo(header RecordHeader, data []byte) *Ammo {
	r := parseRawRecord(header, data)
	common := commonFields{}
	a := &Ammo{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, ammoDataSchema, header.Endian())
			a.Value = int32(f["value"])
			a.Weight = float32(f["weight"])
			a.Damage = int16(f["damage"])
			a.ClipRounds = uint8(f["clipRounds"])
			a.Flags = uint8(f["flags"])
		case tagAmmoProj:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				a.Projectile = normalizeFormIDZero(FormID(v))
			}
		}
	}

	a.EditorID = common.EditorID
	a.DisplayName = common.DisplayName
	a.Description = common.Description
	a.ModelPath = common.ModelPath
	a.Icon = common.Icon
	return a
}

var consumableDataSchema = []dataField{
	{"value", fieldInt32, 0},
	{"weight", fieldFloat32, 4},
	{"flags", fieldUint8, 8},
}

// ParseConsumable reconstructs an ALCH record, including its ordered
// EFID/EFIT effect entries.
func ParseConsumable(header RecordHeader, data []byte) *Consumable {
	r := parseRawRecord(header, data)
	common := commonFields{}
	c := &Consumable{RecordHeader: header}
	var current *MagicEffectEntry

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, consumableDataSchema, header.Endian())
			c.Value = int32(f["value"])
			c.Weight = float32(f["weight"])
			c.Flags = uint8(f["flags"])
		case tagAddiction:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				c.Addiction = normalizeFormIDZero(FormID(v))
			}
		case tagAddictChance:
			if v, err := readFloat32(payload, 0, header.Endian()); err == nil && validFraction(v) {
				c.AddictChance = v
			}
		case tagEffectID:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				c.Effects = append(c.Effects, MagicEffectEntry{BaseEffect: FormID(v)})
				current = &c.Effects[len(c.Effects)-1]
			}
		case tagEffectData:
			if current == nil {
				continue
			}
			if mag, err := readInt32(payload, 0, header.Endian()); err == nil {
				current.Magnitude = mag
			}
			if area, err := readInt32(payload, 4, header.Endian()); err == nil {
				current.Area = area
			}
			if dur, err := readInt32(payload, 8, header.Endian()); err == nil {
				current.Duration = dur
			}
		}
	}

	c.EditorID = common.EditorID
	c.DisplayName = common.DisplayName
	c.Description = common.Description
	c.ModelPath = common.ModelPath
	c.Icon = common.Icon
	c.Bounds = common.Bounds
	c.Script = common.Script
	return c
}

var miscDataSchema = []dataField{
	{"value", fieldInt32, 0},
	{"weight", fieldFloat32, 4},
}

// ParseMiscItem reconstructs a MISC record.
func ParseMiscItem(header RecordHeader, data []byte) *MiscItem {
	r := parseRawRecord(header, data)
	common := commonFields{}
	m := &MiscItem{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagDATA {
			f := decodeDataFields(payload, miscDataSchema, header.Endian())
			m.Value = int32(f["value"])
			m.Weight = float32(f["weight"])
		}
	}

	m.EditorID = common.EditorID
	m.ModelPath = common.ModelPath
	m.Icon = common.Icon
	m.Bounds = common.Bounds
	m.Script = common.Script
	return m
}

// ParseKey reconstructs a KEYM record; identical wire shape to MISC.
func ParseKey(header RecordHeader, data []byte) *Key {
	r := parseRawRecord(header, data)
	common := commonFields{}
	k := &Key{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagDATA {
			f := decodeDataFields(payload, miscDataSchema, header.Endian())
			k.Value = int32(f["value"])
			k.Weight = float32(f["weight"])
		}
	}

	k.EditorID = common.EditorID
	k.ModelPath = common.ModelPath
	k.Icon = common.Icon
	k.Bounds = common.Bounds
	k.Script = common.Script
	return k
}

var containerDataSchema = []dataField{
	{"flags", fieldUint8, 0},
	{"weight", fieldFloat32, 1},
}

// ParseContainer reconstructs a CONT record, including its ordered CNTO
// inventory entries.
func ParseContainer(header RecordHeader, data []byte) *Container {
	r := parseRawRecord(header, data)
	common := commonFields{}
	c := &Container{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, containerDataSchema, header.Endian())
			c.Flags = uint8(f["flags"])
			c.Weight = float32(f["weight"])
		case tagContainerOpen:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				c.OpenSound = normalizeFormIDZero(FormID(v))
			}
		case tagContainerClose:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				c.CloseSound = normalizeFormIDZero(FormID(v))
			}
		case tagContainerItem:
			if entry, ok := decodeInventoryEntry(payload, header.Endian()); ok {
				c.Items = append(c.Items, entry)
			}
		}
	}

	c.EditorID = common.EditorID
	c.ModelPath = common.ModelPath
	c.Bounds = common.Bounds
	c.Script = common.Script
	return c
}

// decodeInventoryEntry decodes a CNTO subrecord: FormID followed by an
// int32 count.
func decodeInventoryEntry(payload []byte, e endian) (InventoryEntry, bool) {
	if len(payload) < 8 {
		return InventoryEntry{}, false
	}
	itemID, err := readUint32(payload, 0, e)
	if err != nil {
		return InventoryEntry{}, false
	}
	count, err := readInt32(payload, 4, e)
	if err != nil {
		count = 1
	}
	return InventoryEntry{Item: FormID(itemID), Count: count}, true
}

var weaponModDataSchema = []dataField{
	{"value", fieldInt32, 0},
	{"weight", fieldFloat32, 4},
}

// ParseWeaponMod reconstructs an IMOD record.
func ParseWeaponMod(header RecordHeader, data []byte) *WeaponMod {
	r := parseRawRecord(header, data)
	common := commonFields{}
	wm := &WeaponMod{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagDATA {
			f := decodeDataFields(payload, weaponModDataSchema, header.Endian())
			wm.Value = int32(f["value"])
			wm.Weight = float32(f["weight"])
		}
	}

	wm.EditorID = common.EditorID
	wm.DisplayName = common.DisplayName
	wm.Description = common.Description
	wm.ModelPath = common.ModelPath
	wm.Icon = common.Icon
	return wm
}

var recipeDataSchema = []dataField{
	{"level", fieldUint32, 0},
}

// ParseRecipe reconstructs an RCPE record, including its ordered
// ingredient list and the item it produces.
func ParseRecipe(header RecordHeader, data []byte) *Recipe {
	r := parseRawRecord(header, data)
	common := commonFields{}
	rec := &Recipe{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, recipeDataSchema, header.Endian())
			rec.Level = uint32(f["level"])
		case tagRecipeCategory:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				rec.Category = normalizeFormIDZero(FormID(v))
			}
		case tagRecipeCreated:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				rec.Created = normalizeFormIDZero(FormID(v))
			}
		case tagRecipeCreatedCnt:
			if v, err := readUint16(payload, 0, header.Endian()); err == nil {
				rec.CreatedCount = v
			}
		case tagRecipeIngredient:
			if entry, ok := decodeInventoryEntry(payload, header.Endian()); ok {
				rec.Ingredients = append(rec.Ingredients, entry)
			}
		}
	}

	rec.EditorID = common.EditorID
	return rec
}
