package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/ukaji3/thermbat-go/pkg/thermbat"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/output"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/workflow"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var (
		kindName string
		sheet    string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "upload <input.xlsx>",
		Short: "Publish new builds from a spreadsheet to the archive",
		Long: `Upload extracts every build from the spreadsheet and stores the ones the
archive does not hold yet. Builds already present are skipped.`,
		Args: cobra.ExactArgs(1),
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
			out := cmd.OutOrStdout()
			if len(blocks) == 0 {
				fmt.Fprintln(out, "No data blocks found; check the sheet kind.")
				return nil
			}
			fmt.Fprintf(out, "Found %d blocks\n", len(blocks))
			if dryRun {
				for _, b := range blocks {
					fmt.Fprintf(out, "  %s %s\n", b.Tag, b.Key)
				}
				return nil
			}

			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				report, err := svc.Upload(c, blocks)
				fmt.Fprintf(out, "Uploaded %d new files.\n", len(report.Uploaded))
				if len(report.Skipped) > 0 {
					fmt.Fprintf(out, "Skipped %d duplicates.\n", len(report.Skipped))
				}
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", string(thermbat.KindDesign), "Sheet kind: "+kindNames())
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the blocks without uploading")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "ls [battery]",
		Short: "List battery folders or the records stored for one battery",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					codes, err := svc.BatteryCodes(c)
					if err != nil {
						return err
					}
					if len(codes) == 0 {
						fmt.Fprintln(out, "No battery folders found.")
						return nil
					}
					for _, code := range codes {
						fmt.Fprintln(out, code)
					}
					return nil
				}

				tags := models.Tags()
				if typeName != "" {
					tag, err := parseTag(typeName)
					if err != nil {
						return err
					}
					tags = []models.Tag{tag}
				}
				var rows [][]string
				for _, tag := range tags {
					files, err := svc.Files(c, args[0], tag)
					if err != nil {
						return err
					}
					for _, f := range files {
						rows = append(rows, []string{string(tag), path.Base(f), f})
					}
				}
				if len(rows) == 0 {
					fmt.Fprintf(out, "No records found for battery %s.\n", args[0])
					return nil
				}
				fmt.Fprintln(out, renderTable([]string{"Type", "File", "Path"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Data type (e.g. TempData or temp)")
	return cmd
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		asTable    bool
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Print a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				rows, err := svc.Load(c, store.CleanPath(args[0]))
				if err != nil {
					return err
				}
				if asTable {
					fmt.Fprintln(cmd.OutOrStdout(), renderRecord(rows))
					return nil
				}
				data, err := output.ToJSON(rows, true)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), outputPath, data)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the record to a file for editing")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render as a table")
	return cmd
}

func readRecordFile(p string) (models.RowSet, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	rows, err := output.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return rows, nil
}
