package recon

// weaponFieldOffsets is the empirically-mapped field layout for a runtime
// TESObjectWEAP instance on the console target. Kept as a tunable table,
// not inlined constants, because unfamiliar builds may shift these (spec
// §9 "weapon struct offsets... empirically mapped from a small sample;
// validation predicates are the backstop").
var weaponFieldOffsets = struct {
	Value, Weight, Damage, ClipSize, AnimType, Skill, FireRate, CritChance, CritDamage, Enchantment, Ammo, Projectile, Script, SoundFire, SoundReload uint32
}{
	Value: 0x88, Weight: 0x8C, Damage: 0x90, ClipSize: 0x94,
	AnimType: 0x95, Skill: 0x96, FireRate: 0x98, CritChance: 0x9C,
	CritDamage: 0xA0, Enchantment: 0xA4, Ammo: 0xA8, Projectile: 0xAC,
	Script: 0xB0, SoundFire: 0xB4, SoundReload: 0xB8,
}

// readWeaponStruct reads the runtime-only fields of a Weapon from the
// struct at form.Offset, applying a range/float validity predicate to
// every numeric field per spec §4.4 rule 6: a failing field is left at
// its zero value rather than aborting the whole record.
func readWeaponStruct(view *DumpView, form tesForm, e endian) Weapon {
	data := dumpBytes(view)
	w := Weapon{}

	if v, err := readInt32(data, form.Offset+weaponFieldOffsets.Value, e); err == nil && validRange(int64(v), 0, 1_000_000) {
		w.Value = v
	}
	if v, err := readFloat32(data, form.Offset+weaponFieldOffsets.Weight, e); err == nil && validFloat(v) {
		w.Weight = v
	}
	if v, err := readInt16(data, form.Offset+weaponFieldOffsets.Damage, e); err == nil && validRange(int64(v), 0, 10_000) {
		w.Damage = v
	}
	if v, err := readUint8(data, form.Offset+weaponFieldOffsets.ClipSize); err == nil {
		w.ClipSize = v
	}
	if v, err := readUint8(data, form.Offset+weaponFieldOffsets.AnimType); err == nil {
		w.AnimType = v
	}
	if v, err := readUint8(data, form.Offset+weaponFieldOffsets.Skill); err == nil {
		w.Skill = v
	}
	if v, err := readFloat32(data, form.Offset+weaponFieldOffsets.FireRate, e); err == nil && validFloat(v) {
		w.FireRate = v
	}
	if v, err := readFloat32(data, form.Offset+weaponFieldOffsets.CritChance, e); err == nil && validFraction(v) {
		w.CritChance = v
	}
	if v, err := readInt16(data, form.Offset+weaponFieldOffsets.CritDamage, e); err == nil && validRange(int64(v), 0, 10_000) {
		w.CritDamage = v
	}

	w.Enchantment = readPointerField(view, data, form.Offset+weaponFieldOffsets.Enchantment, e)
	w.Ammo = readPointerField(view, data, form.Offset+weaponFieldOffsets.Ammo, e)
	w.Projectile = readPointerField(view, data, form.Offset+weaponFieldOffsets.Projectile, e)
	w.Script = readPointerField(view, data, form.Offset+weaponFieldOffsets.Script, e)
	w.SoundFire = readPointerField(view, data, form.Offset+weaponFieldOffsets.SoundFire, e)
	w.SoundReload = readPointerField(view, data, form.Offset+weaponFieldOffsets.SoundReload, e)
	return w
}

// readPointerField reads a pointer-valued struct field and resolves it to
// the FormID of the TESForm it targets, normalizing a zero pointer to
// NoFormID (spec §9 open question: "a consistent zero ⇒ none rule").
func readPointerField(view *DumpView, data []byte, offset uint32, e endian) FormID {
	va, err := readUint32(data, offset, e)
	if err != nil || va == 0 {
		return NoFormID
	}
	return followFormPointer(view, va)
}

// armorFieldOffsets is the runtime TESObjectARMO layout.
var armorFieldOffsets = struct {
	Value, Weight, DamageRes, BipedSlots, Enchantment, Script uint32
}{
	Value: 0x7C, Weight: 0x80, DamageRes: 0x84, BipedSlots: 0x88,
	Enchantment: 0x8C, Script: 0x90,
}

func readArmorStruct(view *DumpView, form tesForm, e endian) Armor {
	data := dumpBytes(view)
	a := Armor{}
	if v, err := readInt32(data, form.Offset+armorFieldOffsets.Value, e); err == nil && validRange(int64(v), 0, 1_000_000) {
		a.Value = v
	}
	if v, err := readFloat32(data, form.Offset+armorFieldOffsets.Weight, e); err == nil && validFloat(v) {
		a.Weight = v
	}
	if v, err := readInt16(data, form.Offset+armorFieldOffsets.DamageRes, e); err == nil && validRange(int64(v), 0, 1_000) {
		a.DamageRes = v
	}
	if v, err := readUint32(data, form.Offset+armorFieldOffsets.BipedSlots, e); err == nil {
		a.BipedSlots = v
	}
	a.Enchantment = readPointerField(view, data, form.Offset+armorFieldOffsets.Enchantment, e)
	a.Script = readPointerField(view, data, form.Offset+armorFieldOffsets.Script, e)
	return a
}

// ammoFieldOffsets is the runtime TESAmmo layout.
var ammoFieldOffsets = struct {
	Value, Weight, Damage, ClipRounds, Flags, Projectile uint32
}{
	Value: 0x60, Weight: 0x64, Damage: 0x68, ClipRounds: 0x6A,
	Flags: 0x6B, Projectile: 0x6C,
}

func readAmmoStruct(view *DumpView, form tesForm, e endian) Ammo {
	data := dumpBytes(view)
	a := Ammo{}
	if v, err := readInt32(data, form.Offset+ammoFieldOffsets.Value, e); err == nil && validRange(int64(v), 0, 1_000_000) {
		a.Value = v
	}
	if v, err := readFloat32(data, form.Offset+ammoFieldOffsets.Weight, e); err == nil && validFloat(v) {
		a.Weight = v
	}
	if v, err := readInt16(data, form.Offset+ammoFieldOffsets.Damage, e); err == nil && validRange(int64(v), 0, 10_000) {
		a.Damage = v
	}
	if v, err := readUint8(data, form.Offset+ammoFieldOffsets.ClipRounds); err == nil {
		a.ClipRounds = v
	}
	if v, err := readUint8(data, form.Offset+ammoFieldOffsets.Flags); err == nil {
		a.Flags = v
	}
	a.Projectile = readPointerField(view, data, form.Offset+ammoFieldOffsets.Projectile, e)
	return a
}

// consumableFieldOffsets is the runtime TESAlchemy (ALCH) layout.
var consumableFieldOffsets = struct {
	Value, Weight, Flags, Addiction, AddictChance uint32
}{
	Value: 0x58, Weight: 0x5C, Flags: 0x60, Addiction: 0x64, AddictChance: 0x68,
}

func readConsumableStruct(view *DumpView, form tesForm, e endian) Consumable {
	data := dumpBytes(view)
	c := Consumable{}
	if v, err := readInt32(data, form.Offset+consumableFieldOffsets.Value, e); err == nil && validRange(int64(v), 0, 1_000_000) {
		c.Value = v
	}
	if v, err := readFloat32(data, form.Offset+consumableFieldOffsets.Weight, e); err == nil && validFloat(v) {
		c.Weight = v
	}
	if v, err := readUint8(data, form.Offset+consumableFieldOffsets.Flags); err == nil {
		c.Flags = v
	}
	c.Addiction = readPointerField(view, data, form.Offset+consumableFieldOffsets.Addiction, e)
	if v, err := readFloat32(data, form.Offset+consumableFieldOffsets.AddictChance, e); err == nil && validFraction(v) {
		c.AddictChance = v
	}
	return c
}

// miscAndKeyValueOffset and miscAndKeyWeightOffset cover both MISC and
// KEYM, whose runtime layouts coincide for the fields this engine
// reconstructs.
const (
	miscAndKeyValueOffset  uint32 = 0x50
	miscAndKeyWeightOffset uint32 = 0x54
)

func readMiscItemStruct(data []byte, form tesForm, e endian) MiscItem {
	m := MiscItem{}
	if v, err := readInt32(data, form.Offset+miscAndKeyValueOffset, e); err == nil && validRange(int64(v), 0, 1_000_000) {
		m.Value = v
	}
	if v, err := readFloat32(data, form.Offset+miscAndKeyWeightOffset, e); err == nil && validFloat(v) {
		m.Weight = v
	}
	return m
}

func readKeyStruct(data []byte, form tesForm, e endian) Key {
	k := Key{}
	if v, err := readInt32(data, form.Offset+miscAndKeyValueOffset, e); err == nil && validRange(int64(v), 0, 1_000_000) {
		k.Value = v
	}
	if v, err := readFloat32(data, form.Offset+miscAndKeyWeightOffset, e); err == nil && validFloat(v) {
		k.Weight = v
	}
	return k
}

// containerFieldOffsets is the runtime TESObjectCONT layout; Items is the
// head-of-list pointer for the bounded linked-list walk.
var containerFieldOffsets = struct {
	Flags, Weight, OpenSound, CloseSound, ItemsHead, ItemNext, ItemFormID, ItemCount uint32
}{
	Flags: 0x54, Weight: 0x58, OpenSound: 0x5C, CloseSound: 0x60,
	ItemsHead: 0x64, ItemNext: 0x04, ItemFormID: 0x08, ItemCount: 0x0C,
}

func readContainerStruct(view *DumpView, form tesForm, e endian) Container {
	data := dumpBytes(view)
	c := Container{}
	if v, err := readUint8(data, form.Offset+containerFieldOffsets.Flags); err == nil {
		c.Flags = v
	}
	if v, err := readFloat32(data, form.Offset+containerFieldOffsets.Weight, e); err == nil && validFloat(v) {
		c.Weight = v
	}
	c.OpenSound = readPointerField(view, data, form.Offset+containerFieldOffsets.OpenSound, e)
	c.CloseSound = readPointerField(view, data, form.Offset+containerFieldOffsets.CloseSound, e)

	head, err := readUint32(data, form.Offset+containerFieldOffsets.ItemsHead, e)
	if err != nil {
		return c
	}
	linkedListWalker(view, head, containerFieldOffsets.ItemNext, func(nodeOffset uint32) bool {
		itemID, err := readUint32(data, nodeOffset+containerFieldOffsets.ItemFormID, bigEndian)
		if err != nil {
			return false
		}
		count, err := readInt32(data, nodeOffset+containerFieldOffsets.ItemCount, bigEndian)
		if err != nil {
			count = 1
		}
		c.Items = append(c.Items, InventoryEntry{Item: FormID(itemID), Count: count})
		return true
	})
	return c
}
