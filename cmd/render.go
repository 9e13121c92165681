package cmd

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mj1618/axbridge/internal/output"
	"github.com/mj1618/axbridge/internal/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <recording>",
	Short: "Replay a recording and draw the resulting host tree as a PNG",
	Long: `Replay a recording and draw every element of the final host tree as a box
labelled with its id. The focused element is highlighted.

Use -o - to write the PNG to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addFilterFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "", "Output PNG path, or - for stdout")
	renderCmd.Flags().Float64("scale", 1, "Scale factor applied to element bounds")
	renderCmd.Flags().Int("margin", 8, "Margin in pixels around the tree")
	renderCmd.Flags().String("labels", "ids", "Labels: ids, roles, none")
	_ = renderCmd.MarkFlagRequired("output")
}

func parseLabelMode(s string) (render.LabelMode, error) {
	switch s {
	case "ids":
		return render.LabelIDs, nil
	case "roles":
		return render.LabelRoles, nil
	case "none":
		return render.LabelNone, nil
	}
	return 0, errors.Newf("unsupported labels: %s (use ids, roles, or none)", s)
}

func runRender(cmd *cobra.Command, args []string) error {
	filter, err := getFilterFlags(cmd)
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("output")
	scale, _ := cmd.Flags().GetFloat64("scale")
	margin, _ := cmd.Flags().GetInt("margin")
	labels, _ := cmd.Flags().GetString("labels")

	mode, err := parseLabelMode(labels)
	if err != nil {
		return err
	}
	if scale < 0.1 || scale > 10 {
		return errors.Newf("scale must be between 0.1 and 10, got %g", scale)
	}

	s, err := newReplay(args[0])
	if err != nil {
		return err
	}
	if err := s.run(nil); err != nil {
		return err
	}
	elements := s.treeResult(filter).Elements

	var w io.Writer = output.Writer
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		w = f
	}
	return render.WritePNG(w, elements, render.Options{Scale: scale, Margin: margin, Labels: mode})
}
