package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gnana997/iconport/pkg/config"
	"github.com/gnana997/iconport/pkg/convert"
	"github.com/gnana997/iconport/pkg/util"
)

type convertOptions struct {
	file    string
	stdout  bool
	input   string
	output  string
	workers int
	strict  bool
}

func addConvertFlags(cmd *cobra.Command, o *convertOptions) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Convert a single source file")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "With --file, print the component instead of writing it")
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "Input directory of React icons")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output directory for Solid icons")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 0, "Parallel conversions (0 = auto)")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "Fail icons whose actions fall back to default variants")
}

func newConvertCmd(global *globalOptions) *cobra.Command {
	o := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the icons in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, global, o)
		},
	}
	addConvertFlags(cmd, o)
	return cmd
}

// apply overrides cfg with the flags the user set.
func (o *convertOptions) apply(cmd *cobra.Command) func(*config.Config) error {
	return func(cfg *config.Config) error {
		flags := cmd.Flags()
		if flags.Changed("input") {
			p, err := absFlag("input", o.input)
			if err != nil {
				return err
			}
			cfg.InputDir = p
		}
		if flags.Changed("output") {
			p, err := absFlag("output", o.output)
			if err != nil {
				return err
			}
			cfg.OutputDir = p
		}
		if flags.Changed("workers") {
			cfg.Workers = o.workers
		}
		if flags.Changed("strict") {
			cfg.Strict = o.strict
		}
		return nil
	}
}

func runConvert(cmd *cobra.Command, global *globalOptions, o *convertOptions) error {
	if o.stdout && o.file == "" {
		return fmt.Errorf("--stdout requires --file")
	}

	a, err := loadApp(cmd, global, o.apply(cmd))
	if err != nil {
		return err
	}

	conv, err := convert.New(a.cfg.ConvertOptions(), a.logger)
	if err != nil {
		return err
	}
	defer conv.Close()

	if o.file != "" {
		return convertOne(cmd, conv, a, o)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = runBatch(ctx, cmd, conv, a.cfg)
	return err
}

func convertOne(cmd *cobra.Command, conv *convert.Converter, a *app, o *convertOptions) error {
	out := cmd.OutOrStdout()

	if o.stdout {
		source, err := util.ReadSource(o.file)
		if err != nil {
			return err
		}
		result, err := conv.ConvertSource(o.file, source)
		if err != nil {
			return err
		}
		_, err = out.Write(result.Text)
		return err
	}

	result := conv.ConvertFile(o.file, a.cfg.OutputDir)
	if !result.OK() {
		return result.Err
	}
	state := "converted"
	if result.Unchanged {
		state = "unchanged"
	}
	fmt.Fprintf(out, "%s %s -> %s\n", state, filepath.Base(result.Path), result.OutputPath)
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	return nil
}

// runBatch converts the input directory and prints the console report:
// the file count, one line per failure and the summary. Failed files do
// not fail the command.
func runBatch(ctx context.Context, cmd *cobra.Command, conv *convert.Converter, cfg *config.Config) (*convert.Summary, error) {
	out := cmd.OutOrStdout()

	files, err := convert.Discover(cfg.InputDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "found %d icon(s) in %s\n", len(files), cfg.InputDir)

	summary, err := conv.RunFiles(ctx, files)
	for _, r := range summary.Failures() {
		fmt.Fprintf(out, "FAIL %s: %v\n", filepath.Base(r.Path), r.Err)
	}
	fmt.Fprintln(out, summary.String())
	return summary, err
}
