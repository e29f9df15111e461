// Package layout parses the textual layout description of a device image
// into a block size and an ordered list of regions.
//
// A layout file looks like:
//
//	| BSIZE = 512 B |
//	| Super(1) | Inode Map(1) | Data Map(1) | Inode(585) | Data(*) |
package layout

import (
	"github.com/rstms/checkbm"
	"math"
	"strconv"
	"strings"
)

const (
	BlockSizeMarker = "BSIZE"
	Delimiter       = "|"
	Wildcard        = "*"
)

// Region is a run of blocks with a structural role. Offset and Size are
// in blocks.
type Region struct {
	Kind   checkbm.RegionKind
	Offset uint64
	Size   uint64
}

type Layout struct {
	BlockSize uint64
	Regions   []Region
}

// Region returns the region of the given kind. When a kind appears more
// than once the last one parsed is returned.
func (l *Layout) Region(kind checkbm.RegionKind) (Region, bool) {
	for i := len(l.Regions) - 1; i >= 0; i-- {
		if l.Regions[i].Kind == kind {
			return l.Regions[i], true
		}
	}
	return Region{}, false
}

// Kinds returns the kinds of all parsed regions in order.
func (l *Layout) Kinds() []checkbm.RegionKind {
	kinds := make([]checkbm.RegionKind, 0, len(l.Regions))
	for _, region := range l.Regions {
		kinds = append(kinds, region.Kind)
	}
	return kinds
}

// Parse parses layout text. required is the rule set's required kind list;
// its length gates where a wildcard size may appear.
func Parse(text string, required []checkbm.RegionKind) (*Layout, error) {
	lines := strings.Split(text, "\n")
	blockSize, err := ExtractBlockSize(lines)
	if err != nil {
		return nil, err
	}
	row, ok := ExtractRegionRow(lines)
	if !ok {
		return nil, &checkbm.LayoutFileError{Reason: "no region row found"}
	}
	regions, err := BuildRegions(strings.Split(row, Delimiter), len(required))
	if err != nil {
		return nil, err
	}
	return &Layout{BlockSize: blockSize, Regions: regions}, nil
}

// ExtractBlockSize returns the first numeric token of the first line
// carrying the block size marker.
func ExtractBlockSize(lines []string) (uint64, error) {
	for _, line := range lines {
		if !strings.Contains(line, BlockSizeMarker) {
			continue
		}
		for _, token := range strings.Fields(line) {
			if !isDigits(token) {
				continue
			}
			size, err := strconv.ParseUint(token, 10, 64)
			if err != nil {
				return 0, &checkbm.LayoutFileError{Cell: token, Reason: "block size out of range"}
			}
			if size == 0 {
				return 0, &checkbm.LayoutFileError{Cell: token, Reason: "block size must be positive"}
			}
			return size, nil
		}
	}
	return 0, &checkbm.LayoutFileError{Reason: "no " + BlockSizeMarker + " line with a numeric block size"}
}

// ExtractRegionRow returns the first line starting with the delimiter that
// is not the block size line.
func ExtractRegionRow(lines []string) (string, bool) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, Delimiter) && !strings.Contains(line, BlockSizeMarker) {
			return line, true
		}
	}
	return "", false
}

// ParseCell returns the block count of a cell. parsed is the number of
// classified regions preceding the cell and required the number of
// required kinds; a wildcard is only accepted once parsed >= required, and
// then counts as zero blocks.
func ParseCell(cell string, parsed, required int) (uint64, error) {
	start := strings.Index(cell, "(")
	end := strings.Index(cell, ")")
	if start == -1 || end == -1 || end < start {
		return 0, &checkbm.LayoutFileError{Cell: cell, Reason: "no block count found"}
	}
	content := strings.TrimSpace(cell[start+1 : end])
	if isDigits(content) {
		blocks, err := strconv.ParseUint(content, 10, 64)
		if err != nil {
			return 0, &checkbm.LayoutFileError{Cell: cell, Reason: "block count out of range"}
		}
		return blocks, nil
	}
	if content != Wildcard {
		return 0, &checkbm.LayoutFileError{Cell: cell, Reason: "use " + Wildcard + " instead of " + strconv.Quote(content)}
	}
	if parsed < required {
		return 0, &checkbm.LayoutFileError{Cell: cell, Reason: Wildcard + " may not be used before all required regions are defined"}
	}
	return 0, nil
}

// BuildRegions walks cells left to right, accumulating offsets over every
// non-empty cell and recording a region for each classified one.
func BuildRegions(cells []string, required int) ([]Region, error) {
	regions := []Region{}
	var offset uint64
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		blocks, err := ParseCell(cell, len(regions), required)
		if err != nil {
			return nil, err
		}
		if kind, ok := checkbm.Classify(cell); ok {
			regions = append(regions, Region{Kind: kind, Offset: offset, Size: blocks})
		}
		if blocks > math.MaxUint64-offset {
			return nil, &checkbm.LayoutFileError{Cell: cell, Reason: "region offset out of range"}
		}
		offset += blocks
	}
	return regions, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
