package recon

// Weapon is a reconstructed WEAP record.
type Weapon struct {
	RecordHeader
	Description  string
	ModelPath    string
	Icon         string
	Bounds       ObjectBounds
	Script       FormID
	Enchantment  FormID
	Ammo         FormID
	Projectile   FormID
	Value        int32
	Weight       float32
	Damage       int16
	ClipSize     uint8
	AnimType     uint8
	Skill        uint8
	Condition    float32
	FireRate     float32
	CritChance   float32
	CritDamage   int16
	SoundFire    FormID
	SoundReload  FormID
}

// Armor is a reconstructed ARMO record.
type Armor struct {
	RecordHeader
	Description string
	ModelPath   string
	Icon        string
	Bounds      ObjectBounds
	Script      FormID
	Enchantment FormID
	Value       int32
	Weight      float32
	DamageRes   int16
	BipedSlots  uint32
	Condition   float32
}

// Ammo is a reconstructed AMMO record.
type Ammo struct {
	RecordHeader
	Description string
	ModelPath   string
	Icon        string
	Projectile  FormID
	Value       int32
	Weight      float32
	Damage      int16
	ClipRounds  uint8
	Flags       uint8
}

// Consumable is a reconstructed ALCH record (food, chems, drinks).
type Consumable struct {
	RecordHeader
	Description string
	ModelPath   string
	Icon        string
	Bounds      ObjectBounds
	Script      FormID
	Value       int32
	Weight      float32
	Flags       uint8
	Addiction   FormID
	AddictChance float32
	Effects     []MagicEffectEntry
}

// MagicEffectEntry is one applied-effect entry on a consumable or
// enchantment (an EFID/EFIT subrecord pair).
type MagicEffectEntry struct {
	BaseEffect FormID
	Magnitude  int32
	Area       int32
	Duration   int32
}

// MiscItem is a reconstructed MISC record.
type MiscItem struct {
	RecordHeader
	ModelPath string
	Icon      string
	Bounds    ObjectBounds
	Script    FormID
	Value     int32
	Weight    float32
}

// Key is a reconstructed KEYM record.
type Key struct {
	RecordHeader
	ModelPath string
	Icon      string
	Bounds    ObjectBounds
	Script    FormID
	Value     int32
	Weight    float32
}

// Container is a reconstructed CONT record.
type Container struct {
	RecordHeader
	ModelPath string
	Bounds    ObjectBounds
	Script    FormID
	Flags     uint8
	Weight    float32
	OpenSound FormID
	CloseSound FormID
	Items     []InventoryEntry
}

// WeaponMod is a reconstructed IMOD record (weapon modification item).
type WeaponMod struct {
	RecordHeader
	Description string
	ModelPath   string
	Icon        string
	Value       int32
	Weight      float32
}

// Recipe is a reconstructed RCPE record (crafting recipe).
type Recipe struct {
	RecordHeader
	Category  FormID
	Level     uint32
	Created   FormID
	CreatedCount uint16
	Ingredients []InventoryEntry
}
