package cmd

import (
	"github.com/mj1618/axbridge/internal/output"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <recording>",
	Short: "Replay a recording and print the resulting host tree",
	Long: `Replay a recording and print the consumer's final view of the host tree as a
flat list. Each element carries its role path and, when it is something a user
can operate or read, a stable ref such as "navigation-menu/settings".`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addFilterFlags(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	filter, err := getFilterFlags(cmd)
	if err != nil {
		return err
	}
	s, err := newReplay(args[0])
	if err != nil {
		return err
	}
	if err := s.run(nil); err != nil {
		return err
	}
	return output.Print(s.treeResult(filter))
}
