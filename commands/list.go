package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/cloudwatcher/internal/data/source"
	"github.com/penwyp/cloudwatcher/internal/presentation"
)

var listOutput string

// newSource builds the real client; swapped out in tests.
var newSource = func(ctx context.Context, region string) (source.Source, error) {
	return source.NewCloudWatchSource(ctx, region)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List CloudWatch log groups",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text",
		"Output format (text, json)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	src, err := newSource(ctx, cfg.Region)
	if err != nil {
		return err
	}

	groups, err := src.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("list log groups: %w", err)
	}

	out := cmd.OutOrStdout()
	if listOutput == "json" {
		data, err := presentation.MarshalGroups(groups)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, g := range groups {
		fmt.Fprintln(out, g.Name)
	}
	fmt.Fprintf(out, "Found %d log groups\n", len(groups))
	return nil
}
