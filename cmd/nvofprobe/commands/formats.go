package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/nvof/opticalflow"
)

var formatsWidth int

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List buffer formats and their WebGPU equivalents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatsWidth <= 0 {
			return fmt.Errorf("--width must be positive, got %d", formatsWidth)
		}
		return reportFormats(cmd.OutOrStdout(), formatsWidth)
	},
}

func init() {
	formatsCmd.Flags().IntVar(&formatsWidth, "width", 1920, "frame width used for the row size column")
	rootCmd.AddCommand(formatsCmd)
}

func reportFormats(w io.Writer, width int) error {
	p := printer()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "FORMAT\tBYTES/PIXEL\tROW BYTES\tTEXTURE")
	for f := opticalflow.BufferFormatGrayscale8; f <= opticalflow.BufferFormatUint8; f++ {
		texture := "-"
		if tf, ok := f.TextureFormat(); ok {
			texture = fmt.Sprint(tf)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f, f.BytesPerPixel(), p.Sprintf("%d", width*f.BytesPerPixel()), texture)
	}
	return tw.Flush()
}
