// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package recon

import "sort"

// Region is one entry of the minidump's region table: a contiguous range
// of 32-bit virtual address space backed by bytes at a known file offset
// (spec §4.3, §6 "Region table").
type Region struct {
	VirtualAddress uint32
	Size           uint32
	FileOffset     uint32
}

// contains reports whether va lies within this region.
func (r Region) contains(va uint32) bool {
	return va >= r.VirtualAddress && va < r.VirtualAddress+r.Size
}

// MemoryResolver maps 32-bit virtual addresses from a captured Xbox 360
// dump into file offsets via an ordered region table (spec §4.3). No
// caching is required; the table is small and reads are independent.
type MemoryResolver struct {
	regions []Region
}

// NewMemoryResolver builds a resolver over the given region table. The
// table is sorted by virtual address so VaToFileOffset can binary search
// it; the input order itself carries no meaning.
func NewMemoryResolver(regions []Region) *MemoryResolver {
	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].VirtualAddress < sorted[j].VirtualAddress
	})
	return &MemoryResolver{regions: sorted}
}

// VaToFileOffset returns the file offset backing virtual address va, and
// true, if va falls inside some region; otherwise ok is false.
func (m *MemoryResolver) VaToFileOffset(va uint32) (offset uint32, ok bool) {
	// Binary search for the last region whose VirtualAddress <= va.
	lo, hi := 0, len(m.regions)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.regions[mid].VirtualAddress <= va {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0, false
	}
	r := m.regions[lo-1]
	if !r.contains(va) {
		return 0, false
	}
	return r.FileOffset + (va - r.VirtualAddress), true
}

// IsValidPointer reports whether va is a pointer worth following: nonzero
// and resolvable to a file offset (spec §4.3, §8 "A pointer of value 0 is
// never followed; a pointer outside all regions is rejected").
func (m *MemoryResolver) IsValidPointer(va uint32) bool {
	if va == 0 {
		return false
	}
	_, ok := m.VaToFileOffset(va)
	return ok
}

// DumpView is read-only, mmap-backed access to the captured dump image
// plus the region table needed to translate pointers found inside it.
// Shared by every struct reader; reads carry their own offsets and
// require no synchronization (spec §5).
type DumpView struct {
	data     []byte
	resolver *MemoryResolver
}

// NewDumpView wraps raw dump bytes (already memory-mapped by the host,
// spec §6 "a mapped byte view") with its region table.
func NewDumpView(data []byte, regions []Region) *DumpView {
	return &DumpView{data: data, resolver: NewMemoryResolver(regions)}
}

// Len returns the size of the underlying dump image.
func (d *DumpView) Len() uint32 {
	return uint32(len(d.data))
}

// ReadAt returns size bytes from the dump at file offset offset.
func (d *DumpView) ReadAt(offset, size uint32) ([]byte, error) {
	return readBytes(d.data, offset, size)
}

// ResolvePointer follows a 32-bit virtual-address pointer to its file
// offset, rejecting null or out-of-region pointers (spec §4.4 rule 7,
// §4.3). Pointers are always 32-bit on the console target even though the
// host process may be 64-bit.
func (d *DumpView) ResolvePointer(va uint32) (offset uint32, ok bool) {
	return d.resolver.VaToFileOffset(va)
}

// IsValidPointer exposes the resolver's validity check directly on the
// view, since struct readers hold a *DumpView rather than the resolver.
func (d *DumpView) IsValidPointer(va uint32) bool {
	return d.resolver.IsValidPointer(va)
}
