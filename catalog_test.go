package recon

import "testing"

func TestAddActorDedupesByFormID(t *testing.T) {
	cat := NewCatalog()
	a1 := &Actor{RecordHeader: RecordHeader{FormID: 0x100, EditorID: "first"}}
	a2 := &Actor{RecordHeader: RecordHeader{FormID: 0x100, EditorID: "second"}}

	cat.AddActor(a1)
	cat.AddActor(a2)

	if len(cat.Actors) != 1 {
		t.Fatalf("got %d actors, want 1 (second add should be deduped)", len(cat.Actors))
	}
	if cat.Actors[0].EditorID != "first" {
		t.Errorf("kept editor id %q, want %q (first add wins)", cat.Actors[0].EditorID, "first")
	}
}

func TestAddActorDistinctFormIDsBothKept(t *testing.T) {
	cat := NewCatalog()
	cat.AddActor(&Actor{RecordHeader: RecordHeader{FormID: 0x1}})
	cat.AddActor(&Actor{RecordHeader: RecordHeader{FormID: 0x2}})
	if len(cat.Actors) != 2 {
		t.Fatalf("got %d actors, want 2", len(cat.Actors))
	}
}

func TestAddGenericIncrementsUnrecognizedCount(t *testing.T) {
	cat := NewCatalog()
	cat.AddGeneric(&GenericRecord{RecordHeader: RecordHeader{FormID: 0x1}, Type: KindGeneric})
	cat.AddGeneric(&GenericRecord{RecordHeader: RecordHeader{FormID: 0x1}, Type: KindGeneric})
	cat.AddGeneric(&GenericRecord{RecordHeader: RecordHeader{FormID: 0x2}, Type: KindGeneric})

	if cat.UnrecognizedCount != 2 {
		t.Errorf("UnrecognizedCount = %d, want 2", cat.UnrecognizedCount)
	}
	if len(cat.Generic) != 2 {
		t.Errorf("len(Generic) = %d, want 2", len(cat.Generic))
	}
}

func TestCatalogCounts(t *testing.T) {
	cat := NewCatalog()
	cat.AddActor(&Actor{RecordHeader: RecordHeader{FormID: 1}})
	cat.AddWeapon(&Weapon{RecordHeader: RecordHeader{FormID: 2}})
	cat.AddWeapon(&Weapon{RecordHeader: RecordHeader{FormID: 3}})

	counts := cat.Counts()
	if counts["actors"] != 1 {
		t.Errorf("counts[actors] = %d, want 1", counts["actors"])
	}
	if counts["weapons"] != 2 {
		t.Errorf("counts[weapons] = %d, want 2", counts["weapons"])
	}
	if counts["quests"] != 0 {
		t.Errorf("counts[quests] = %d, want 0", counts["quests"])
	}
}

func TestBoundsAndModelIndex(t *testing.T) {
	cat := NewCatalog()
	cat.AddWeapon(&Weapon{
		RecordHeader: RecordHeader{FormID: 0x10},
		ModelPath:    "meshes/weapon.nif",
	})
	cat.AddMiscItem(&MiscItem{
		RecordHeader: RecordHeader{FormID: 0x11},
	})

	idx := cat.BoundsAndModelIndex()
	if bm, ok := idx[0x10]; !ok || bm.ModelPath != "meshes/weapon.nif" {
		t.Errorf("weapon not indexed with its model path: %+v", bm)
	}
	if _, ok := idx[0x11]; ok {
		t.Error("misc item with no bounds/model should not be indexed")
	}
}
