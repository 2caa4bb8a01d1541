package recon

// Activator is a reconstructed ACTI record.
type Activator struct {
	RecordHeader
	ModelPath string
	Bounds    ObjectBounds
	Script    FormID
	Sound     FormID
}

// Light is a reconstructed LIGH record.
type Light struct {
	RecordHeader
	ModelPath string
	Icon      string
	Bounds    ObjectBounds
	Script    FormID
	Value     int32
	Weight    float32
	Radius    int32
	Color     uint32
	Flags     uint32
	FadeValue float32
}

// Door is a reconstructed DOOR record.
type Door struct {
	RecordHeader
	ModelPath  string
	Bounds     ObjectBounds
	Script     FormID
	OpenSound  FormID
	CloseSound FormID
	Flags      uint8
}

// Static is a reconstructed STAT record.
type Static struct {
	RecordHeader
	ModelPath string
	Bounds    ObjectBounds
}

// Furniture is a reconstructed FURN record.
type Furniture struct {
	RecordHeader
	ModelPath string
	Bounds    ObjectBounds
	Script    FormID
	Flags     uint32
}

// Schedule is the decoded, human-summarized form of a PSDT subrecord
// (spec §4.5.1, §8 scenario 3).
type Schedule struct {
	Month    int8 // -1 = any
	DayOfWeek int8 // -1 = any
	Date     uint8
	Time     uint8
	DurationHours int32
}

// PackageTarget is a decoded PTDT subrecord: the object or location a
// package step targets.
type PackageTarget struct {
	TargetType   uint8 // 0=reference, 2=object type, ...
	FormIDOrType uint32
	CountOrDistance int32
	AcquireRadius float32
}

// PackageFlags is a decoded PKPT subrecord.
type PackageFlags struct {
	Repeatable    bool
	LinkedReference bool
}

// PackageData is the decoded PKDT subrecord (spec §4.5.1).
type PackageData struct {
	GeneralFlags  uint32
	PackageType   uint8
	FalloutFlags  uint16
	TypeSpecific  uint16
}

// Package is a reconstructed PACK record (AI package).
type Package struct {
	RecordHeader
	Data     PackageData
	Schedule Schedule
	Target   PackageTarget
	Flags    PackageFlags
}

// Land is the dump/ESM-resident heightmap/texture record for one cell.
// It is not a top-level catalog entity; it records the FormID of the
// cell it belongs to.
type Land struct {
	RecordHeader
	Cell FormID
}

// Cell is a reconstructed CELL record.
type Cell struct {
	RecordHeader
	IsInterior   bool
	Worldspace   FormID
	GridX, GridY int32
	Flags        uint32
	// Virtual marks a cell materialized by the linker because placed
	// references existed with no cell grouping to contain them (spec
	// §4.7 rule 5).
	Virtual bool
}

// Worldspace is a reconstructed WRLD record.
type Worldspace struct {
	RecordHeader
	ParentWorldspace FormID
	Climate          FormID
	Water            FormID
}

// PlacedRef is a reconstructed REFR record: an instance of a base record
// positioned within a cell.
type PlacedRef struct {
	RecordHeader
	Base     FormID
	Cell     FormID
	Position Position
	Rotation Rotation
	Scale    float32
	Owner    FormID
	// Bounds/ModelPath are filled in by the placed-reference enrichment
	// linker pass from the base-record index (spec §4.7 rule 6), not
	// read directly from this record's own subrecords.
	Bounds    ObjectBounds
	HasBounds bool
	ModelPath string
}

// LeveledList is a reconstructed LVLI (or LVLN/LVLC) record.
type LeveledList struct {
	RecordHeader
	ChanceNone uint8
	Flags      uint8
	Entries    []LeveledListEntry
}

// LeveledListEntry is one LVLO entry.
type LeveledListEntry struct {
	Level  uint16
	FormID FormID
	Count  uint16
}

// MapMarker is a reconstructed map-marker placed reference (a REFR onto
// the generic map-marker base, enriched with its own marker metadata).
type MapMarker struct {
	RecordHeader
	Position Position
	MarkerType uint8
	Name       string
	Visible    bool
}
