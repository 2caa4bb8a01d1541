package recon

import "testing"

// TestLinkerBackfillOrphanQuests is spec §8 scenario 6: a catalog with
// zero QUST records but an info referencing a quest via QSTI gets a
// synthetic stub quest.
func TestLinkerBackfillOrphanQuests(t *testing.T) {
	cat := NewCatalog()
	cat.Identity.BindEditorID(0x00B, "MS01", sourceESM)
	cat.AddDialogInfo(&DialogInfo{
		RecordHeader: RecordHeader{FormID: 0x500},
		Quest:        0x00B,
	})

	l := &Linker{Catalog: cat}
	l.backfillOrphanQuests()

	q := cat.FindQuest(0x00B)
	if q == nil {
		t.Fatal("expected synthetic stub quest for 0x00B")
	}
	if !q.Synthetic {
		t.Error("backfilled quest should be marked Synthetic")
	}
	if q.EditorID != "MS01" {
		t.Errorf("EditorID = %q, want MS01 (looked up from identity index)", q.EditorID)
	}
}

func TestLinkerBackfillOrphanQuestsSkipsExisting(t *testing.T) {
	cat := NewCatalog()
	cat.AddQuest(&Quest{RecordHeader: RecordHeader{FormID: 0x00B, EditorID: "Real"}})
	cat.AddDialogInfo(&DialogInfo{RecordHeader: RecordHeader{FormID: 0x500}, Quest: 0x00B})

	l := &Linker{Catalog: cat}
	l.backfillOrphanQuests()

	if len(cat.Quests) != 1 {
		t.Fatalf("len(Quests) = %d, want 1 (no duplicate stub for a real quest)", len(cat.Quests))
	}
	if cat.Quests[0].Synthetic {
		t.Error("real quest should not be marked Synthetic")
	}
}

// TestLinkerIdempotent is spec §8: running linker passes twice on a
// completed catalog produces the same catalog.
func TestLinkerIdempotent(t *testing.T) {
	cat := NewCatalog()
	cat.AddDialogInfo(&DialogInfo{RecordHeader: RecordHeader{FormID: 0x500}, Quest: 0x00B})

	l := &Linker{Catalog: cat}
	l.RunAll()
	firstCount := len(cat.Quests)

	l.RunAll()
	if len(cat.Quests) != firstCount {
		t.Errorf("second RunAll changed quest count: %d -> %d", firstCount, len(cat.Quests))
	}
}

// TestLinkerLinkDialogTreeRuntimePointers is spec §8 scenario 5: a
// runtime topic's quest-info list updates an existing info and
// materializes a missing one from its VA-addressed struct.
func TestLinkerLinkDialogTreeRuntimePointers(t *testing.T) {
	cat := NewCatalog()
	cat.AddDialogTopic(&DialogTopic{
		RecordHeader: RecordHeader{FormID: 0x10},
		Quest:        0x00A,
		Infos:        []FormID{0x100, 0x101},
	})
	cat.AddDialogInfo(&DialogInfo{RecordHeader: RecordHeader{FormID: 0x100}})

	resolved := 0
	l := &Linker{
		Catalog: cat,
		RuntimeInfoResolver: func(id FormID) *DialogInfo {
			resolved++
			if id != 0x101 {
				return nil
			}
			return &DialogInfo{RecordHeader: RecordHeader{FormID: id}}
		},
	}
	l.linkDialogTree()

	info100 := cat.FindDialogInfo(0x100)
	if info100.Topic != 0x10 || info100.Quest != 0x00A {
		t.Errorf("existing info not linked: %+v", info100)
	}
	info101 := cat.FindDialogInfo(0x101)
	if info101 == nil {
		t.Fatal("expected materialized info 0x101")
	}
	if info101.Topic != 0x10 || info101.Quest != 0x00A {
		t.Errorf("materialized info not linked: %+v", info101)
	}
	if l.NewInfoCount != 1 {
		t.Errorf("NewInfoCount = %d, want 1", l.NewInfoCount)
	}
}
