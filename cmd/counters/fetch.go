package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llxisdsh/counters"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		start  uint16
		repeat int
	)
	cmd := &cobra.Command{
		Use:   "fetch ID [ID...]",
		Short: "Fetch-and-increment the counter of each id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repeat < 1 {
				return fmt.Errorf("repeat must be positive: %d", repeat)
			}
			c := counters.New(counters.WithNamespacer(a.namespacer()))
			out := cmd.OutOrStdout()
			for range repeat {
				for _, id := range args {
					prev, err := c.FetchAdd(id, start)
					if err != nil {
						return fmt.Errorf("fetch %s: %w", id, err)
					}
					a.logger.Debug("fetched", zap.String("id", id), zap.Uint16("previous", prev))
					fmt.Fprintf(out, "%s\t%d\n", id, prev)
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint16Var(&start, "start", 0, "value of a counter the first time it is used")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "number of passes over the ids")
	return cmd
}
