package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sci-bots/dmfbuild/internal/buildinfo"
	"github.com/sci-bots/dmfbuild/internal/vcs"
	"github.com/sci-bots/dmfbuild/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the derived software version",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dmfbuild %s\n", buildinfo.String())

	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	g := vcs.NewGitVCS()
	describe, err := g.Describe(ctx, dir)
	if err != nil {
		return fmt.Errorf("query describe: %w", err)
	}
	branch, err := g.Branch(ctx, dir)
	if err != nil {
		return fmt.Errorf("query branch: %w", err)
	}
	software, err := version.Derive(describe, branch, cfg.PrimaryBranch)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "software version %s\n", software)

	commit, err := g.Commit(ctx, dir)
	if err != nil {
		return fmt.Errorf("query commit: %w", err)
	}
	fmt.Fprintf(out, "commit %s\n", commit)

	tags, err := g.Tags(ctx, dir)
	if err != nil {
		return fmt.Errorf("query tags: %w", err)
	}
	if latest := version.Latest(tags); latest != "" {
		fmt.Fprintf(out, "latest release %s\n", latest)
	}
	return nil
}
