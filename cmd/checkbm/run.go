package main

import (
	"errors"
	"github.com/rstms/checkbm"
	"github.com/rstms/checkbm/check"
	"github.com/rstms/checkbm/config"
	"github.com/rstms/checkbm/image"
	"github.com/rstms/checkbm/rules"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"strings"
)

const (
	ExitOK             = 0
	ExitInodeMap       = 1
	ExitDataMap        = 2
	ExitLayoutFile     = 3
	ExitLayoutMismatch = 4
	ExitData           = 5
	ExitAbort          = 255
)

// ExitCode maps a verification outcome to the process exit status.
func ExitCode(err error) int {
	var (
		layoutErr   *checkbm.LayoutFileError
		mismatchErr *checkbm.GoldenLayoutMismatch
		inodeErr    *checkbm.InodeMapError
		dataMapErr  *checkbm.DataMapError
		dataErr     *checkbm.DataError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &inodeErr):
		return ExitInodeMap
	case errors.As(err, &dataMapErr):
		return ExitDataMap
	case errors.As(err, &layoutErr):
		return ExitLayoutFile
	case errors.As(err, &mismatchErr):
		return ExitLayoutMismatch
	case errors.As(err, &dataErr):
		return ExitData
	}
	return ExitAbort
}

func run(fs afero.Fs, cfg *config.Config) error {
	ruleSet, err := rules.Load(fs, cfg.Rules)
	if err != nil {
		return err
	}
	kinds := []string{}
	for _, kind := range ruleSet.Required {
		kinds = append(kinds, kind.String())
	}
	fields := logrus.Fields{"rules": cfg.Rules, "checks": "[" + strings.Join(kinds, " ") + "]"}
	if ruleSet.Requires(checkbm.InodeMap) {
		fields["valid_inode"] = ruleSet.ValidInode
	}
	if ruleSet.Requires(checkbm.DataMap) {
		fields["valid_data"] = ruleSet.ValidData
	}
	logrus.WithFields(fields).Info("golden rules parsed")

	text, err := afero.ReadFile(fs, cfg.Layout)
	if err != nil {
		return err
	}
	v := check.NewVerifier(ruleSet, cfg.Name)
	l, checks, err := v.ParseLayout(string(text))
	if err != nil {
		return err
	}
	fields = logrus.Fields{"layout": cfg.Layout, "block_size": l.BlockSize}
	for _, region := range l.Regions {
		fields[region.Kind.String()+"_ofs"] = region.Offset
		fields[region.Kind.String()+"_blks"] = region.Size
	}
	logrus.WithFields(fields).Info("layout parsed")

	img, err := image.OpenImage(fs, cfg.Device, l.BlockSize)
	if err != nil {
		return err
	}
	defer img.Close()

	report, err := v.Verify(img, l, checks)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"inode_count": report.InodeCount,
		"data_count":  report.DataCount,
		"data_block":  report.DataBlock,
	}).Info("device image verified")
	return nil
}
