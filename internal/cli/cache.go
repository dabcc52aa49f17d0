package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowviz/pkg/cache"
)

// cacheCommand groups the subcommands that manage the on-disk artifact
// cache used by render.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}
	cmd.AddCommand(
		cacheSweepCommand("clear", "Remove all cached artifacts", "Cleared", (*cache.FileCache).Clear),
		cacheSweepCommand("prune", "Remove expired cached artifacts", "Pruned", (*cache.FileCache).Prune),
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

// cacheSweepCommand builds a subcommand that runs sweep over the cache
// directory and reports how many entries it removed.
func cacheSweepCommand(use, short, verb string, sweep func(*cache.FileCache) (int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := sweep(fc)
			if err != nil {
				return fmt.Errorf("%s cache: %w", use, err)
			}
			printSuccess("%s %d cached entries", verb, n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}
