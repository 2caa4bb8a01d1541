package recon

import "fmt"

var (
	tagPKDT = Tag{'P', 'K', 'D', 'T'}
	tagPSDT = Tag{'P', 'S', 'D', 'T'}
	tagPTDT = Tag{'P', 'T', 'D', 'T'}
	tagPKPT = Tag{'P', 'K', 'P', 'T'}
)

// packageTypeNames names the package-type codes observed in the PKDT
// package-type byte; codes with no entry are reported numerically (spec §8 scenario 2
// names code 12 "Sandbox").
var packageTypeNames = map[uint8]string{
	12: "Sandbox",
}

// PackageTypeName returns the human name for a package-type code, or its
// numeric form if unknown.
func PackageTypeName(code uint8) string {
	if name, ok := packageTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Type%d", code)
}

// decodePackageData decodes a 12-byte PKDT subrecord (spec §4.5.1).
func decodePackageData(payload []byte, e endian) (PackageData, bool) {
	if len(payload) < 10 {
		return PackageData{}, false
	}
	var d PackageData
	var err error
	if d.GeneralFlags, err = readUint32(payload, 0, e); err != nil {
		return PackageData{}, false
	}
	if d.PackageType, err = readUint8(payload, 4); err != nil {
		return PackageData{}, false
	}
	// payload[5] is reserved.
	if d.FalloutFlags, err = readUint16(payload, 6, e); err != nil {
		return PackageData{}, false
	}
	if d.TypeSpecific, err = readUint16(payload, 8, e); err != nil {
		return PackageData{}, false
	}
	return d, true
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// decodeSchedule decodes an 8-byte PSDT subrecord (spec §4.5.1, §8
// scenario 3). A month or day-of-week of −1 means "any".
func decodeSchedule(payload []byte, e endian) (Schedule, bool) {
	if len(payload) < 8 {
		return Schedule{}, false
	}
	var s Schedule
	var err error
	if s.Month, err = readInt8(payload, 0); err != nil {
		return Schedule{}, false
	}
	if s.DayOfWeek, err = readInt8(payload, 1); err != nil {
		return Schedule{}, false
	}
	if s.Date, err = readUint8(payload, 2); err != nil {
		return Schedule{}, false
	}
	if s.Time, err = readUint8(payload, 3); err != nil {
		return Schedule{}, false
	}
	if s.DurationHours, err = readInt32(payload, 4, e); err != nil {
		return Schedule{}, false
	}
	return s, true
}

// Summary renders a human-readable description of the schedule, e.g.
// "Every day, 8:00 AM for 8 hours" (spec §8 scenario 3).
func (s Schedule) Summary() string {
	day := "Every day"
	if s.DayOfWeek >= 0 && int(s.DayOfWeek) < len(weekdayNames) {
		day = weekdayNames[s.DayOfWeek]
	}

	hour := int(s.Time)
	period := "AM"
	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		displayHour = hour - 12
		period = "PM"
	}

	return fmt.Sprintf("%s, %d:00 %s for %d hours", day, displayHour, period, s.DurationHours)
}

// decodePackageTarget decodes a 16-byte PTDT subrecord (spec §4.5.1).
func decodePackageTarget(payload []byte, e endian) (PackageTarget, bool) {
	if len(payload) < 16 {
		return PackageTarget{}, false
	}
	var t PackageTarget
	var err error
	if t.TargetType, err = readUint8(payload, 0); err != nil {
		return PackageTarget{}, false
	}
	if t.FormIDOrType, err = readUint32(payload, 4, e); err != nil {
		return PackageTarget{}, false
	}
	if t.CountOrDistance, err = readInt32(payload, 8, e); err != nil {
		return PackageTarget{}, false
	}
	if t.AcquireRadius, err = readFloat32(payload, 12, e); err != nil || !validFloat(t.AcquireRadius) {
		t.AcquireRadius = 0
	}
	return t, true
}

// decodePackageFlags decodes a 2-byte PKPT subrecord.
func decodePackageFlags(payload []byte) (PackageFlags, bool) {
	if len(payload) < 2 {
		return PackageFlags{}, false
	}
	return PackageFlags{Repeatable: payload[0] != 0, LinkedReference: payload[1] != 0}, true
}

// ParsePackage reconstructs a PACK (AI package) record.
func ParsePackage(header RecordHeader, data []byte) *Package {
	r := parseRawRecord(header, data)
	common := commonFields{}
	p := &Package{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagPKDT:
			if d, ok := decodePackageData(payload, header.Endian()); ok {
				p.Data = d
			}
		case tagPSDT:
			if sch, ok := decodeSchedule(payload, header.Endian()); ok {
				p.Schedule = sch
			}
		case tagPTDT:
			if t, ok := decodePackageTarget(payload, header.Endian()); ok {
				p.Target = t
			}
		case tagPKPT:
			if fl, ok := decodePackageFlags(payload); ok {
				p.Flags = fl
			}
		}
	}

	p.EditorID = common.EditorID
	return p
}
