// Package check reconciles a parsed layout with a rule set and verifies the
// bitmaps and the first allocated data block of a device image.
package check

import (
	"github.com/rstms/checkbm"
	"github.com/rstms/checkbm/bitmap"
	"github.com/rstms/checkbm/layout"
	"github.com/sirupsen/logrus"
)

// Report collects what a verification run observed, for diagnostics. It
// is filled as far as the run got before the first failure.
type Report struct {
	Layout         *layout.Layout
	Checks         Checks
	InodeCount     uint64
	DataCount      uint64
	DataPositions  []uint64
	DataBlock      uint64
	DataBlockState BlockState
}

// Verifier runs the active checks against a device image.
type Verifier struct {
	Rules  *checkbm.RuleSet
	Marker string
	Log    logrus.FieldLogger
}

func NewVerifier(rules *checkbm.RuleSet, marker string) *Verifier {
	return &Verifier{Rules: rules, Marker: marker, Log: logrus.StandardLogger()}
}

// ParseLayout parses layout text against the verifier's rule set and
// reconciles the result.
func (v *Verifier) ParseLayout(text string) (*layout.Layout, Checks, error) {
	l, err := layout.Parse(text, v.Rules.Required)
	if err != nil {
		return nil, Checks{}, err
	}
	checks, err := Reconcile(v.Rules.Required, l)
	if err != nil {
		return l, Checks{}, err
	}
	v.Log.WithFields(logrus.Fields{
		"block_size": l.BlockSize,
		"regions":    l.Kinds(),
	}).Debug("layout parsed")
	for _, region := range l.Regions {
		v.Log.WithFields(logrus.Fields{
			"kind":   region.Kind.String(),
			"offset": region.Offset,
			"blocks": region.Size,
		}).Debug("region")
	}
	return l, checks, nil
}

// Verify runs inode map, data map and data block checks in that order,
// stopping at the first failure. A nil error means every active check
// passed.
func (v *Verifier) Verify(dev checkbm.BlockDevice, l *layout.Layout, checks Checks) (*Report, error) {
	report := &Report{Layout: l, Checks: checks}
	if dev.BlockSize() != l.BlockSize {
		return report, Fatalf("device block size %d does not match layout block size %d", dev.BlockSize(), l.BlockSize)
	}

	if checks.InodeMap {
		region, _ := l.Region(checkbm.InodeMap)
		buf, err := v.read(dev, region)
		if err != nil {
			return report, err
		}
		count := bitmap.Count(buf)
		report.InodeCount = count
		v.Log.WithFields(logrus.Fields{"expected": v.Rules.ValidInode, "actual": count}).Debug("inode map decoded")
		if count != v.Rules.ValidInode {
			return report, &checkbm.InodeMapError{Expected: v.Rules.ValidInode, Actual: count}
		}
	}

	if checks.DataMap || checks.Data {
		region, _ := l.Region(checkbm.DataMap)
		buf, err := v.read(dev, region)
		if err != nil {
			return report, err
		}
		count, positions := bitmap.Decode(buf)
		report.DataCount = count
		report.DataPositions = positions
		v.Log.WithFields(logrus.Fields{"expected": v.Rules.ValidData, "actual": count}).Debug("data map decoded")
		v.Log.WithField("positions", positions).Debug("data map positions")
		if checks.DataMap && count != v.Rules.ValidData {
			return report, &checkbm.DataMapError{Expected: v.Rules.ValidData, Actual: count}
		}
	}

	if checks.Data {
		if len(report.DataPositions) == 0 {
			return report, &checkbm.DataMapError{Expected: v.Rules.ValidData, Actual: report.DataCount, NoBlocks: true}
		}
		table, _ := l.Region(checkbm.InodeTable)
		// only the lowest allocated block is expected to hold the test write
		report.DataBlock = DataBlockIndex(table, report.DataPositions[0])
		state, err := VerifyData(dev, table, report.DataPositions[0], v.Marker)
		report.DataBlockState = state
		v.Log.WithFields(logrus.Fields{
			"block":     report.DataBlock,
			"non_empty": state.NonEmpty,
			"marker":    state.ContainsMarker,
			"replaced":  state.Replaced,
		}).Debug("data block read")
		if err != nil {
			return report, err
		}
		v.Log.WithField("block", report.DataBlock).Debug("data block verified")
	}

	return report, nil
}

// Run parses and reconciles the layout, then verifies dev.
func (v *Verifier) Run(dev checkbm.BlockDevice, layoutText string) (*Report, error) {
	l, checks, err := v.ParseLayout(layoutText)
	if err != nil {
		return &Report{Layout: l}, err
	}
	return v.Verify(dev, l, checks)
}

func (v *Verifier) read(dev checkbm.BlockDevice, region layout.Region) ([]byte, error) {
	buf, err := dev.ReadBlocks(region.Offset, region.Size)
	if err != nil {
		return nil, Fatal(err)
	}
	return buf, nil
}
