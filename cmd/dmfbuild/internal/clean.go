package internal

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sci-bots/dmfbuild/x/scons"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove artifacts built by the SCons sub-build",
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	return scons.New(resolvePath(dir, cfg.Source), "").Clean()
}
