package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/TFMV/fw/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Watch command options
	watchEvents  []string
	watchTimeout time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Watch a tree for filesystem changes",
	Long: `Watch a tree for filesystem changes. The tree is walked once to register
every directory, and directories created later are walked and registered
as they appear.

Examples:
  fw watch /path/to/watch
  fw watch --events=create,delete /path/to/watch
  fw watch --timeout=30m /path/to/watch`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if viper.GetBool("resolve") {
			resolved, err := resolvePath(root)
			if err != nil {
				return err
			}
			root = resolved
		}

		events, err := parseEvents(watchEvents)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := newLogger()
		defer logger.Sync()

		opts := walk.WatchOptions{
			Events:  events,
			Timeout: watchTimeout,
			Walk:    walk.WalkOptions{ErrorHandling: walk.ErrorHandlingSkip, Logger: logger},
		}

		out := cmd.OutOrStdout()
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Watching %s for changes...\n", root)
		fmt.Fprintln(errOut, "Press Ctrl+C to exit.")

		return walk.Watch(ctx, root, opts, func(ctx context.Context, result walk.WatchResult) error {
			if result.Error != nil {
				fmt.Fprintf(errOut, "error: %v\n", result.Error)
				return nil
			}
			_, err := fmt.Fprintf(out, "%s: %s\n", strings.ToUpper(string(result.Message.Event)), result.Message.Path)
			return err
		})
	},
}

// parseEvents converts event names to WatchEvent values.
func parseEvents(names []string) ([]walk.WatchEvent, error) {
	var events []walk.WatchEvent
	for _, e := range names {
		switch strings.ToLower(e) {
		case "create":
			events = append(events, walk.EventCreate)
		case "write", "modify":
			events = append(events, walk.EventModify)
		case "remove", "delete":
			events = append(events, walk.EventDelete)
		case "rename":
			events = append(events, walk.EventRename)
		case "chmod":
			events = append(events, walk.EventChmod)
		default:
			return nil, fmt.Errorf("%w: unknown event type %q", ErrArgument, e)
		}
	}
	return events, nil
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVar(&watchEvents, "events", []string{}, "Events to watch for (create, modify, delete, rename, chmod)")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")
}
