package internal

import (
	"path/filepath"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/sci-bots/dmfbuild/internal/config"
)

var (
	verbose bool
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "dmfbuild",
	Short: "dmfbuild builds the DMF control board host extension",
	Long: `dmfbuild orchestrates the DMF control board host driver build: it derives
the software version from git metadata, resolves the Boost and Python
libraries the native extension links against, and dispatches the SCons and
Sphinx sub-builds.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutputLevel(log.Ldebug)
		} else {
			log.SetOutputLevel(log.Linfo)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultFileName, "Project configuration file")
}

// loadConfig reads the project configuration relative to the repo root.
func loadConfig(dir string) (*config.File, error) {
	return config.Load(resolvePath(dir, cfgPath))
}

// resolvePath resolves a configured path against the repo root. Absolute
// paths are taken as-is.
func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
