package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/sci-bots/dmfbuild/internal/archive"
	"github.com/sci-bots/dmfbuild/internal/build"
	"github.com/sci-bots/dmfbuild/internal/libres"
	"github.com/sci-bots/dmfbuild/internal/target"
	"github.com/sci-bots/dmfbuild/internal/vcs"
)

var docsArchive bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Build the documentation",
	Long: `Docs runs the Sphinx sub-build, stamped with the derived software version,
and optionally bundles the generated tree into a distributable tarball.`,
	RunE: runDocs,
}

func init() {
	docsCmd.Flags().BoolVar(&docsArchive, "archive", false, "Bundle the built docs into a .tar.xz")
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	b := build.NewBuilder(cfg, vcs.NewGitVCS(), dir, libres.Host(runtime.GOOS))
	bc, err := b.Prepare(cmd.Context())
	if err != nil {
		return err
	}
	if err := b.RunTargets(bc, target.Docs); err != nil {
		return err
	}

	if docsArchive {
		name := fmt.Sprintf("dmf-control-board-docs-%s.tar.xz", bc.SoftwareVersion)
		dest := filepath.Join(dir, name)
		if err := archive.Create(b.Docs.OutputDir(), dest); err != nil {
			return err
		}
		log.Infof("wrote %s", dest)
	}
	return nil
}
