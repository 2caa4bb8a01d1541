package recon

// virtualCellFormID is the fixed synthetic FormID assigned to the single
// cell materialized to hold placed references with no grouping (spec
// §4.7 pass 5). Fixed rather than counter-allocated so the pass stays
// idempotent across repeated runs on the same catalog.
const virtualCellFormID FormID = 0xFE000000

// Linker runs the deterministic late-phase cross-reference passes of
// spec §4.7 over a completed catalog. Every pass is idempotent: running
// the full set twice leaves the catalog unchanged (spec §8 round-trip
// property).
type Linker struct {
	Catalog *Catalog

	// RuntimeInfoResolver materializes a DialogInfo stub from its
	// VA-addressed runtime struct when pass 1 discovers an info pointer
	// with no matching catalog entry. Nil when no runtime reader is
	// present, in which case pass 1 falls back to file-offset-group
	// ordering.
	RuntimeInfoResolver func(id FormID) *DialogInfo

	// CellWorldspaceHints is the scan-time cell->worldspace mapping, when
	// the scanner could derive it from group structure. Pass 4 only fires
	// when this is present; true cell-grid geometric inference is out of
	// scope (no grid geometry is modeled here, only grid coordinates).
	CellWorldspaceHints map[FormID]FormID

	// Counters surfaced for tests and host diagnostics.
	NewInfoCount int
}

// RunAll executes every pass in the order spec §4.7 lists them. Phase
// order matters: speaker propagation assumes topic linking has already
// run, virtual-cell materialization must precede nothing downstream here
// but is itself order-independent of enrichment.
func (l *Linker) RunAll() {
	l.linkDialogTree()
	l.propagateSpeakers()
	l.backfillOrphanQuests()
	l.inferCellWorldspace()
	l.materializeVirtualCells()
	l.enrichPlacedReferences()
	l.enrichWeaponProjectiles()
}

// linkDialogTree implements spec §4.7 pass 1.
func (l *Linker) linkDialogTree() {
	c := l.Catalog

	hasRuntimeTopics := false
	for _, t := range c.DialogTopics {
		if len(t.Infos) > 0 {
			hasRuntimeTopics = true
			break
		}
	}

	if hasRuntimeTopics {
		for _, topic := range c.DialogTopics {
			for _, infoID := range topic.Infos {
				if info := c.FindDialogInfo(infoID); info != nil {
					info.Topic = topic.FormID
					if info.Quest.IsNone() {
						info.Quest = topic.Quest
					}
					continue
				}
				if l.RuntimeInfoResolver == nil {
					continue
				}
				if stub := l.RuntimeInfoResolver(infoID); stub != nil {
					stub.Topic = topic.FormID
					stub.Quest = topic.Quest
					c.AddDialogInfo(stub)
					l.NewInfoCount++
				}
			}
		}
		return
	}

	// No runtime topic/info lists: link by file-offset group ordering.
	// Each info record appears immediately after its owning topic in the
	// ESM's own group layout, so the nearest preceding topic (by file
	// offset, among topics and infos merged into one ordered walk) owns
	// every info until the next topic.
	type anchor struct {
		offset uint32
		topic  *DialogTopic
		info   *DialogInfo
	}
	anchors := make([]anchor, 0, len(c.DialogTopics)+len(c.DialogInfos))
	for _, t := range c.DialogTopics {
		anchors = append(anchors, anchor{offset: t.FileOffset, topic: t})
	}
	for _, i := range c.DialogInfos {
		anchors = append(anchors, anchor{offset: i.FileOffset, info: i})
	}
	for i := 1; i < len(anchors); i++ {
		for j := i; j > 0 && anchors[j-1].offset > anchors[j].offset; j-- {
			anchors[j-1], anchors[j] = anchors[j], anchors[j-1]
		}
	}

	var current *DialogTopic
	for _, a := range anchors {
		if a.topic != nil {
			current = a.topic
			continue
		}
		if current == nil || !a.info.Topic.IsNone() {
			continue
		}
		a.info.Topic = current.FormID
		if a.info.Quest.IsNone() {
			a.info.Quest = current.Quest
		}
		if !containsFormID(current.Infos, a.info.FormID) {
			current.Infos = append(current.Infos, a.info.FormID)
		}
	}
}

func containsFormID(list []FormID, id FormID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// propagateSpeakers implements spec §4.7 pass 2: four short-circuiting
// sub-passes, each only applied to infos still lacking a speaker.
func (l *Linker) propagateSpeakers() {
	c := l.Catalog

	for _, info := range c.DialogInfos {
		if !info.Speaker.IsNone() {
			continue
		}
		if topic := c.FindDialogTopic(info.Topic); topic != nil && !topic.Speaker.IsNone() {
			info.Speaker = topic.Speaker
		}
	}

	for _, info := range c.DialogInfos {
		if !info.Speaker.IsNone() {
			continue
		}
		for _, sibling := range c.DialogInfos {
			if sibling.Topic == info.Topic && !sibling.Speaker.IsNone() {
				info.Speaker = sibling.Speaker
				break
			}
		}
	}

	for _, info := range c.DialogInfos {
		if !info.Speaker.IsNone() || info.Quest.IsNone() {
			continue
		}
		var consistent FormID
		for _, other := range c.DialogInfos {
			if other.Quest != info.Quest || other.Speaker.IsNone() {
				continue
			}
			if consistent.IsNone() {
				consistent = other.Speaker
			} else if consistent != other.Speaker {
				consistent = NoFormID
				break
			}
		}
		if !consistent.IsNone() {
			info.Speaker = consistent
		}
	}

	for _, info := range c.DialogInfos {
		if !info.Speaker.IsNone() {
			continue
		}
		editorID, ok := c.Identity.EditorID(info.FormID)
		if !ok {
			continue
		}
		var best *Quest
		bestLen := -1
		for _, q := range c.Quests {
			if q.EditorID == "" || len(q.EditorID) <= bestLen {
				continue
			}
			if hasPrefix(editorID, q.EditorID) {
				best = q
				bestLen = len(q.EditorID)
			}
		}
		if best != nil {
			if speaker, ok := c.Identity.EditorID(best.FormID); ok {
				if id, ok := c.Identity.FormIDFor(speaker); ok {
					info.Speaker = id
				}
			}
		}
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// backfillOrphanQuests implements spec §4.7 pass 3.
func (l *Linker) backfillOrphanQuests() {
	c := l.Catalog
	referenced := map[FormID]bool{}
	for _, info := range c.DialogInfos {
		if !info.Quest.IsNone() {
			referenced[info.Quest] = true
		}
	}
	for id := range referenced {
		if c.FindQuest(id) != nil {
			continue
		}
		editorID, _ := c.Identity.EditorID(id)
		c.AddQuest(&Quest{
			RecordHeader: RecordHeader{FormID: id, EditorID: editorID},
			Synthetic:    true,
		})
	}
}

// inferCellWorldspace implements spec §4.7 pass 4, limited to the
// scan-time hint map: true grid-geometry inference needs polygon data
// this engine does not model.
func (l *Linker) inferCellWorldspace() {
	if l.CellWorldspaceHints == nil {
		return
	}
	for _, cell := range l.Catalog.Cells {
		if !cell.Worldspace.IsNone() {
			continue
		}
		if ws, ok := l.CellWorldspaceHints[cell.FormID]; ok {
			cell.Worldspace = ws
		}
	}
}

// materializeVirtualCells implements spec §4.7 pass 5: placed references
// with no owning cell are grouped under one synthetic virtual cell.
func (l *Linker) materializeVirtualCells() {
	c := l.Catalog
	var orphans []*PlacedRef
	for _, ref := range c.PlacedRefs {
		if ref.Cell.IsNone() {
			orphans = append(orphans, ref)
		}
	}
	if len(orphans) == 0 {
		return
	}
	if c.FindCell(virtualCellFormID) == nil {
		c.AddCell(&Cell{
			RecordHeader: RecordHeader{FormID: virtualCellFormID, EditorID: "VirtualCell"},
			Virtual:      true,
		})
	}
	for _, ref := range orphans {
		ref.Cell = virtualCellFormID
	}
}

// enrichPlacedReferences implements spec §4.7 pass 6.
func (l *Linker) enrichPlacedReferences() {
	idx := l.Catalog.BoundsAndModelIndex()
	for _, ref := range l.Catalog.PlacedRefs {
		if bm, ok := idx[ref.Base]; ok {
			ref.Bounds = bm.Bounds
			ref.HasBounds = bm.HasBounds
			ref.ModelPath = bm.ModelPath
		}
	}
}

// enrichWeaponProjectiles implements spec §4.7 pass 7.
func (l *Linker) enrichWeaponProjectiles() {
	c := l.Catalog
	ammoByID := make(map[FormID]*Ammo, len(c.Ammo))
	for _, a := range c.Ammo {
		ammoByID[a.FormID] = a
	}
	for _, w := range c.Weapons {
		if !w.Projectile.IsNone() || w.Ammo.IsNone() {
			continue
		}
		if ammo, ok := ammoByID[w.Ammo]; ok && !ammo.Projectile.IsNone() {
			w.Projectile = ammo.Projectile
		}
	}
}
