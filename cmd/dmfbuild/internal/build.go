package internal

import (
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/sci-bots/dmfbuild/internal/build"
	"github.com/sci-bots/dmfbuild/internal/libres"
	"github.com/sci-bots/dmfbuild/internal/target"
	"github.com/sci-bots/dmfbuild/internal/vcs"
	"github.com/sci-bots/dmfbuild/internal/watch"
)

var (
	buildHWMajor int
	buildHWMinor int
	buildJobs    int
	buildWatch   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the native extension",
	Long: `Build derives the software version, resolves native dependencies and runs
the SCons sub-build. Resolved shared artifacts are deployed when the project
configures a deploy directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().IntVar(&buildHWMajor, "hw-major", 2, "Hardware major version")
	buildCmd.Flags().IntVar(&buildHWMinor, "hw-minor", 0, "Hardware minor version")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Sub-build parallelism (0 leaves it to the tool)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild when the source tree changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("hw-major") {
		cfg.Hardware.Major = buildHWMajor
	}
	if cmd.Flags().Changed("hw-minor") {
		cfg.Hardware.Minor = buildHWMinor
	}

	b := build.NewBuilder(cfg, vcs.NewGitVCS(), dir, libres.Host(runtime.GOOS))
	b.Jobs = buildJobs

	targets := []string{target.Ext}
	if cfg.Deploy != "" {
		targets = append(targets, target.Deploy)
	}

	ctx := cmd.Context()
	if !buildWatch {
		return b.Run(ctx, targets...)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := b.Run(ctx, targets...); err != nil {
		// Watch mode keeps going: fix the source, save, rebuild.
		log.Error(err)
	}
	return watch.Watch(ctx, resolvePath(dir, cfg.Source), 500*time.Millisecond, func() {
		if err := b.Run(ctx, targets...); err != nil {
			log.Error(err)
		}
	})
}
