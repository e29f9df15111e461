// checkbm verifies the device image left behind by a student file system:
// the layout file must match the golden rules, the inode and data bitmaps
// must have the expected number of valid bits, and the first allocated data
// block must hold the named content.
//
// Usage:
//
//	checkbm -n file0 [-l fs.layout] [-r golden.json] [-d ~/ddriver] [-v]
package main

import (
	"fmt"
	"github.com/rstms/checkbm/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"os"
)

func newRootCommand(fs afero.Fs, exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "checkbm",
		Short:         "verify a student file system device image against its layout and golden rules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewFromEnvironment()
			if err != nil {
				return err
			}
			err = config.BindFlags(v, cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			err = cfg.Validate(fs)
			if err != nil {
				return err
			}
			err = run(fs, cfg)
			*exitCode = ExitCode(err)
			return err
		},
	}
	cmd.Flags().StringP(config.KeyLayout, "l", "", "path of the .layout file")
	cmd.Flags().StringP(config.KeyRules, "r", "", "path of the golden rule json file")
	cmd.Flags().StringP(config.KeyName, "n", "", "file or directory name expected in the written data block")
	cmd.Flags().StringP(config.KeyDevice, "d", "", "path of the device image")
	cmd.Flags().BoolP(config.KeyVerbose, "v", false, "log parsed layout and bitmap details")
	return cmd
}

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	exitCode := ExitAbort
	cmd := newRootCommand(afero.NewOsFs(), &exitCode)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode)
	}
}
