package check

import (
	"github.com/rstms/checkbm"
	"github.com/rstms/checkbm/layout"
)

// Checks records which optional verifications are active.
type Checks struct {
	InodeMap bool
	DataMap  bool
	Data     bool
}

// Reconcile verifies that every required kind has a region in the layout.
// The first missing kind, in required order, is reported.
func Reconcile(required []checkbm.RegionKind, l *layout.Layout) (Checks, error) {
	for _, kind := range required {
		if _, ok := l.Region(kind); !ok {
			return Checks{}, &checkbm.GoldenLayoutMismatch{Kind: kind}
		}
	}
	checks := Checks{
		InodeMap: checkbm.ContainsKind(required, checkbm.InodeMap),
		DataMap:  checkbm.ContainsKind(required, checkbm.DataMap),
		Data:     checkbm.ContainsKind(required, checkbm.InodeTable),
	}
	// the data block is located through the data bitmap
	if checks.Data {
		if _, ok := l.Region(checkbm.DataMap); !ok {
			return Checks{}, &checkbm.GoldenLayoutMismatch{Kind: checkbm.DataMap}
		}
	}
	return checks, nil
}
