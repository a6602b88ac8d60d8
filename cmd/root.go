package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TFMV/fw/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	version = "0.1.0"
)

// ErrArgument marks a bad command line or a starting path that cannot be
// resolved. No traversal is attempted.
var ErrArgument = errors.New("invalid argument")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fw [options] <path>",
	Short: "Walk a directory tree without recursion",
	Long: `fw prints every entry below a starting directory exactly once, in
pre-order, using an explicit stack of open directory handles instead of
recursion.

Examples:
  fw /var/log
  fw --format=tag --resolve=false ./src
  fw --format=json --error-mode=skip /`,
	Version:       version,
	Args:          exactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWalker(cmd.Context(), args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.fw.yaml)")
	rootCmd.PersistentFlags().Bool("resolve", true, "Resolve the path to an absolute, symlink-free form first")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "Disable logging")

	rootCmd.Flags().String("format", "text", "Output format (text|tag|json)")
	rootCmd.Flags().Int("indent", 4, "Spaces of indentation per depth level in text format")
	rootCmd.Flags().String("error-mode", "continue", "Error handling mode (continue|stop|skip)")
	rootCmd.Flags().Bool("summary", true, "Print a summary to stderr when done")

	// Bind flags to viper
	viper.BindPFlag("resolve", rootCmd.PersistentFlags().Lookup("resolve"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.PersistentFlags().Lookup("silent"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("indent", rootCmd.Flags().Lookup("indent"))
	viper.BindPFlag("error-mode", rootCmd.Flags().Lookup("error-mode"))
	viper.BindPFlag("summary", rootCmd.Flags().Lookup("summary"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in home directory with name ".fw" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fw")
	}

	viper.SetEnvPrefix("fw")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// exactArgs is cobra.ExactArgs reporting ErrArgument.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrArgument, err)
		}
		return nil
	}
}

// newLogger builds the logger shared by the command and its walkers.
func newLogger() *zap.Logger {
	if viper.GetBool("silent") {
		return zap.NewNop()
	}
	if viper.GetBool("verbose") {
		return walk.NewLogger(walk.LogLevelDebug)
	}
	return walk.NewLogger(walk.LogLevelError)
}

func parseErrorMode(mode string) (walk.ErrorHandling, error) {
	switch mode {
	case "continue":
		return walk.ErrorHandlingContinue, nil
	case "stop":
		return walk.ErrorHandlingStop, nil
	case "skip":
		return walk.ErrorHandlingSkip, nil
	default:
		return 0, fmt.Errorf("invalid error-mode: %s", mode)
	}
}

func runWalker(ctx context.Context, path string, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	root := path
	if viper.GetBool("resolve") {
		resolved, err := resolvePath(path)
		if err != nil {
			return err
		}
		root = resolved
	}

	mode, err := parseErrorMode(viper.GetString("error-mode"))
	if err != nil {
		return err
	}
	p, err := newPrinter(out, viper.GetString("format"), viper.GetInt("indent"))
	if err != nil {
		return err
	}

	logger := newLogger()
	defer logger.Sync()

	w, err := walk.New(root, walk.WalkOptions{ErrorHandling: mode, Logger: logger})
	if err != nil {
		return err
	}
	defer w.Close()

	visit := walk.WalkFunc(p.print)
	if viper.GetBool("verbose") {
		visit = walk.Chain(visit, walk.LoggingMiddleware(logger))
	}

	var walkErrors []error
	for {
		if err := ctx.Err(); err != nil {
			walkErrors = append(walkErrors, err)
			break
		}

		entry, err := w.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if mode != walk.ErrorHandlingSkip || walk.IsFatal(err) {
				fmt.Fprintf(errOut, "error: %v\n", err)
				walkErrors = append(walkErrors, err)
			}
			if walk.IsFatal(err) || mode == walk.ErrorHandlingStop {
				break
			}
			if entry == (walk.Entry{}) {
				continue
			}
		}

		if err := visit(entry); err != nil {
			walkErrors = append(walkErrors, err)
			break
		}
	}

	if viper.GetBool("summary") {
		printSummary(errOut, w.Root(), w.Stats())
	}
	return errors.Join(walkErrors...)
}
