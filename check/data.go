package check

import (
	"github.com/rstms/checkbm"
	"github.com/rstms/checkbm/layout"
	"golang.org/x/text/encoding/unicode"
	"strings"
)

// BlockState describes the content of a data block.
type BlockState struct {
	NonEmpty       bool
	ContainsMarker bool
	// Replaced counts invalid UTF-8 sequences swapped for U+FFFD.
	Replaced int
}

// DataBlockIndex returns the block holding data position pos: the data
// region starts right after the inode table.
func DataBlockIndex(inodeTable layout.Region, pos uint64) uint64 {
	return inodeTable.Offset + inodeTable.Size + pos
}

// InspectBlock reports whether buf has a nonzero byte and whether its text
// contains marker. Invalid UTF-8 is replaced before matching, so it never
// forms part of a match.
func InspectBlock(buf []byte, marker string) BlockState {
	state := BlockState{}
	for _, b := range buf {
		if b != 0 {
			state.NonEmpty = true
			break
		}
	}
	text, err := unicode.UTF8.NewDecoder().String(string(buf))
	if err != nil {
		return state
	}
	state.ContainsMarker = strings.Contains(text, marker)
	state.Replaced = strings.Count(text, "\uFFFD") - strings.Count(string(buf), "\uFFFD")
	return state
}

// VerifyData reads the data block for position pos and checks that it was
// written and holds marker.
func VerifyData(dev checkbm.BlockDevice, inodeTable layout.Region, pos uint64, marker string) (BlockState, error) {
	index := DataBlockIndex(inodeTable, pos)
	buf, err := dev.ReadBlocks(index, 1)
	if err != nil {
		return BlockState{}, Fatal(err)
	}
	state := InspectBlock(buf, marker)
	if !state.NonEmpty {
		return state, &checkbm.DataError{Block: index, Reason: checkbm.ReasonNotWritten}
	}
	if !state.ContainsMarker {
		return state, &checkbm.DataError{Block: index, Reason: checkbm.ReasonNotFound}
	}
	return state, nil
}
