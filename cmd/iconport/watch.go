package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gnana997/iconport/pkg/convert"
)

func newWatchCmd(global *globalOptions) *cobra.Command {
	o := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert the input directory, then reconvert icons as they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, global, o.apply(cmd))
			if err != nil {
				return err
			}

			conv, err := convert.New(a.cfg.ConvertOptions(), a.logger)
			if err != nil {
				return err
			}
			defer conv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := runBatch(ctx, cmd, conv, a.cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			watchOpts := a.cfg.WatchOptions()
			watchOpts.OnResult = func(r convert.Result) {
				switch {
				case !r.OK():
					fmt.Fprintf(out, "FAIL %s: %v\n", filepath.Base(r.Path), r.Err)
				case r.Unchanged:
				default:
					fmt.Fprintf(out, "converted %s\n", filepath.Base(r.Path))
				}
			}

			w, err := convert.NewWatcher(conv, watchOpts, a.logger)
			if err != nil {
				return err
			}
			w.Prime(summary.Results)
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "Input directory of React icons")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output directory for Solid icons")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "Fail icons whose actions fall back to default variants")
	return cmd
}
