package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/workflow"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <live-path> <edited.json>",
		Short: "Send an edited record for manager approval",
		Long: `Submit stores the edited record next to the original as a pending change
request. The live record is not modified until the request is approved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRecordFile(args[1])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				pending, err := svc.Submit(c, store.CleanPath(args[0]), rows)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Submitted for approval: %s\n", pending)
				return nil
			})
		},
	}
}

func newPendingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pending <battery>",
		Short: "List change requests awaiting approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				items, err := svc.Pending(c, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "No pending approvals for this battery.")
					return nil
				}
				fmt.Fprintf(out, "Found %d pending changes.\n", len(items))
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{string(item.Tag), item.Filename, item.Path})
				}
				fmt.Fprintln(out, renderTable([]string{"Type", "File", "Path"}, rows, nil))
				return nil
			})
		},
	}
}

func newReviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "review <pending-path>",
		Short: "Show a change request next to the current record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				r, err := svc.Review(c, store.CleanPath(args[0]))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Current (%s):\n", r.LivePath)
				if r.Live == nil {
					fmt.Fprintln(out, "Original file not found (new file?)")
				} else {
					fmt.Fprintln(out, renderRecord(r.Live))
				}
				fmt.Fprintf(out, "\nProposed (%s):\n", r.PendingPath)
				fmt.Fprintln(out, renderRecord(r.Pending))
				return nil
			})
		},
	}
}

func newApproveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <pending-path>",
		Short: "Apply a change request to the live record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				live, err := svc.Approve(c, store.CleanPath(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Approved: %s updated\n", live)
				return nil
			})
		},
	}
}

func newRejectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <pending-path>",
		Short: "Discard a change request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(c context.Context, svc *workflow.Service) error {
				if err := svc.Reject(c, store.CleanPath(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Request rejected")
				return nil
			})
		},
	}
}
