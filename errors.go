package checkbm

import (
	"fmt"
)

// LayoutFileError reports malformed layout text.
type LayoutFileError struct {
	Cell   string
	Reason string
}

func (e *LayoutFileError) Error() string {
	if e.Cell == "" {
		return "layout file error: " + e.Reason
	}
	return fmt.Sprintf("layout file error: %s - %s", e.Cell, e.Reason)
}

// GoldenLayoutMismatch reports a region required by the rule set that the
// layout does not define. Kind may be implied rather than listed: the data
// block check needs the data map region.
type GoldenLayoutMismatch struct {
	Kind RegionKind
}

func (e *GoldenLayoutMismatch) Error() string {
	return fmt.Sprintf("rules require %s, but the layout does not define it", e.Kind)
}

// InodeMapError reports an inode bitmap population that differs from the
// expected count.
type InodeMapError struct {
	Expected uint64
	Actual   uint64
}

func (e *InodeMapError) Error() string {
	return fmt.Sprintf("inode bitmap error, expected: %d valid bits, actual: %d valid bits", e.Expected, e.Actual)
}

// DataMapError reports a data bitmap population that differs from the
// expected count, or a data bitmap with no set bit when the data block
// check needs one.
type DataMapError struct {
	Expected uint64
	Actual   uint64
	NoBlocks bool
}

func (e *DataMapError) Error() string {
	if e.NoBlocks {
		return "data bitmap error, no allocated data block to check"
	}
	return fmt.Sprintf("data bitmap error, expected: %d valid bits, actual: %d valid bits", e.Expected, e.Actual)
}

const (
	ReasonNotWritten = "not written to designated region"
	ReasonNotFound   = "content not found"
)

// DataError reports that the first allocated data block is empty or lacks
// the expected marker.
type DataError struct {
	Block  uint64
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data write back error, block %d: %s", e.Block, e.Reason)
}
