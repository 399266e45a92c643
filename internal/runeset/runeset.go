// Package runeset provides membership testing for fixed sets of runes.
//
// The representation adapts to the set size: a single-rune comparison for
// one-member sets, a linear scan for small sets, and an open-addressed hash
// table (xxHash64-probed) once the set grows past ScanThreshold. All three
// representations are behaviorally identical; the split exists purely for
// matcher throughput.
package runeset

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// ScanThreshold is the largest member count served by the linear-scan
// representation. Above it the hashed representation wins.
const ScanThreshold = 20

const emptySlot rune = -1

type setKind uint8

const (
	kindEmpty setKind = iota
	kindSingle
	kindScan
	kindHashed
)

// Set is an immutable set of runes. The zero value is an empty set.
type Set struct {
	kind    setKind
	single  rune
	members []rune
	table   []rune
	mask    uint64
}

// New builds a Set from the runes of chars. Duplicate runes collapse.
func New(chars string) Set {
	seen := make(map[rune]struct{}, len(chars))
	members := make([]rune, 0, len(chars))
	for _, r := range chars {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		members = append(members, r)
	}

	switch {
	case len(members) == 0:
		return Set{kind: kindEmpty}
	case len(members) == 1:
		return Set{kind: kindSingle, single: members[0]}
	case len(members) <= ScanThreshold:
		return Set{kind: kindScan, members: members}
	default:
		return newHashed(members)
	}
}

func newHashed(members []rune) Set {
	// Keep the table at most half full so probe chains stay short.
	size := 1 << bits.Len(uint(len(members)*2-1))
	table := make([]rune, size)
	for i := range table {
		table[i] = emptySlot
	}

	mask := uint64(size - 1)
	for _, r := range members {
		slot := hashRune(r) & mask
		for table[slot] != emptySlot {
			slot = (slot + 1) & mask
		}
		table[slot] = r
	}

	return Set{kind: kindHashed, table: table, mask: mask}
}

func hashRune(r rune) uint64 {
	var b [4]byte
	b[0] = byte(r)
	b[1] = byte(r >> 8)
	b[2] = byte(r >> 16)
	b[3] = byte(r >> 24)

	return xxhash.Sum64(b[:])
}

// Len returns the number of members.
func (s Set) Len() int {
	switch s.kind {
	case kindSingle:
		return 1
	case kindScan:
		return len(s.members)
	case kindHashed:
		n := 0
		for _, r := range s.table {
			if r != emptySlot {
				n++
			}
		}

		return n
	default:
		return 0
	}
}

// Contains reports whether r is a member of the set.
func (s Set) Contains(r rune) bool {
	switch s.kind {
	case kindSingle:
		return r == s.single
	case kindScan:
		for _, m := range s.members {
			if m == r {
				return true
			}
		}

		return false
	case kindHashed:
		slot := hashRune(r) & s.mask
		for {
			switch s.table[slot] {
			case r:
				return true
			case emptySlot:
				return false
			}
			slot = (slot + 1) & s.mask
		}
	default:
		return false
	}
}
