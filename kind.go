package checkbm

import (
	"strings"
)

// RegionKind identifies the structural role of a run of blocks in the
// device image.
type RegionKind int

const (
	Super RegionKind = iota
	InodeMap
	DataMap
	InodeTable
)

// AllKinds lists every kind in classification priority order.
var AllKinds = []RegionKind{Super, InodeMap, DataMap, InodeTable}

var kindTokens = map[RegionKind][]string{
	Super:      {"super"},
	InodeMap:   {"inode", "map"},
	DataMap:    {"data", "map"},
	InodeTable: {"inode"},
}

func (k RegionKind) String() string {
	switch k {
	case Super:
		return "super"
	case InodeMap:
		return "inode_map"
	case DataMap:
		return "data_map"
	case InodeTable:
		return "inode"
	}
	return "unknown"
}

// Tokens returns the substrings that must all be present in a label for it
// to be classified as k.
func (k RegionKind) Tokens() []string {
	return kindTokens[k]
}

// Matches reports whether text contains every token of k, ignoring case.
func (k RegionKind) Matches(text string) bool {
	tokens := k.Tokens()
	if len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, token := range tokens {
		if !strings.Contains(lower, token) {
			return false
		}
	}
	return true
}

// Classify returns the first kind in AllKinds whose tokens all appear in
// text. The ordering matters: "inode map" must be tested before "inode".
func Classify(text string) (RegionKind, bool) {
	for _, kind := range AllKinds {
		if kind.Matches(text) {
			return kind, true
		}
	}
	return 0, false
}

// ContainsKind reports whether kind appears in kinds.
func ContainsKind(kinds []RegionKind, kind RegionKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
