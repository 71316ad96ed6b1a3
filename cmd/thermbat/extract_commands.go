package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ukaji3/thermbat-go/pkg/thermbat"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/output"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/parser"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/validate"
)

func newConvertCommand() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		kindName   string
		sheet      string
	)

	cmd := &cobra.Command{
		Use:         "convert <input.xlsx>",
		Short:       "Extract data blocks from a spreadsheet as JSON",
		Args:        cobra.ExactArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}
			kind, err := thermbat.ParseKind(kindName)
			if err != nil {
				return err
			}

			opts := thermbat.DefaultOptions()
			opts.Sheet = sheet

			var data []byte
			if kind == thermbat.KindAuto {
				g, err := parser.OpenGrid(inputPath, sheet)
				if err != nil {
					return thermbat.NewExtractionError(inputPath, kind, err)
				}
				conv, err := thermbat.Convert(g, opts)
				if err != nil {
					return fmt.Errorf("extraction failed: %w", err)
				}
				if data, err = output.ToJSON(conv.Record, pretty); err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Detected layout: %s (used range %s)\n", conv.Layout, parser.DataRange(g))
			} else {
				blocks, err := thermbat.ExtractFile(inputPath, kind, opts)
				if err != nil {
					return fmt.Errorf("extraction failed: %w", err)
				}
				if data, err = output.BlocksToJSON(blocks, pretty); err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
			}
			return writeOutput(cmd.OutOrStdout(), outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&kindName, "kind", "k", "auto", "Sheet kind: "+kindNames())
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	var (
		kindName string
		sheet    string
	)

	cmd := &cobra.Command{
		Use:         "verify <input.xlsx>",
		Short:       "Check design rules for every build in a spreadsheet",
		Args:        cobra.ExactArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := thermbat.ParseKind(kindName)
			if err != nil {
				return err
			}
			opts := thermbat.DefaultOptions()
			opts.Sheet = sheet

			blocks, err := thermbat.ExtractFile(args[0], kind, opts)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			errs := validate.Validate(blocks)
			summary := validate.Summarize(blocks, errs)

			out := cmd.OutOrStdout()
			if len(errs) > 0 {
				fmt.Fprintln(out, renderViolations(errs))
			}
			fmt.Fprintf(out, "Checked %d builds: %d passed, %d failed\n", summary.Checked, summary.Passed, summary.Failed)
			if len(errs) > 0 {
				return fmt.Errorf("%d rule violations found", len(errs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", string(thermbat.KindDesign), "Sheet kind: "+kindNames())
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	return cmd
}

func newInspectCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:         "inspect <input.xlsx>",
		Short:       "Show the used range and detected layout of each sheet",
		Args:        cobra.ExactArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := parser.OpenSheets(args[0])
			if err != nil {
				return thermbat.NewExtractionError(args[0], thermbat.KindAuto, err)
			}

			opts := thermbat.DefaultOptions()
			var rows [][]string
			for _, s := range sheets {
				if sheet != "" && s.Name != sheet {
					continue
				}
				layout := "-"
				if conv, err := thermbat.Convert(s.Grid, opts); err == nil {
					layout = string(conv.Layout)
				}
				rows = append(rows, []string{
					s.Name,
					parser.DataRange(s.Grid),
					strconv.Itoa(parser.DropEmptyColumns(s.Grid).Cols()),
					fmt.Sprintf("%.2f", parser.Density(s.Grid)),
					layout,
				})
			}
			if len(rows) == 0 {
				return fmt.Errorf("sheet %q not found", sheet)
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Sheet", "Used Range", "Columns", "Density", "Layout"}, rows, aligns))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Only show this worksheet")
	return cmd
}

func renderViolations(errs []models.ValidationError) string {
	rows := make([][]string, 0, len(errs))
	for _, e := range errs {
		rows = append(rows, []string{e.BuildKey, e.Rule, e.Message})
	}
	return renderTable([]string{"Build", "Rule", "Problem"}, rows, nil)
}
