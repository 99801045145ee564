package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/nvof/dynload"
)

// defaultSymbols are checked when no names are given.
var defaultSymbols = []string{
	"nppGetStreamContext",
	"nppiNV12ToRGB_8u_P2C3R_Ctx",
	"nppiYCbCr420ToRGB_8u_P2C3R_Ctx",
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols [names...]",
	Short: "Check which NPP symbols are available",
	Long: `Open the NPP libraries (nppicc, then nppc) for the configured CUDA major
version and report whether each named symbol is exported.

Without arguments a small set of color conversion entry points is checked.`,
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = defaultSymbols
	}
	r := dynload.NewNPPResolver(viper.GetInt("cuda-major"))
	return reportSymbols(cmd.OutOrStdout(), r, names)
}

// reportSymbols writes one availability line per name followed by the files
// the libraries were loaded from.
func reportSymbols(w io.Writer, r *dynload.Resolver, names []string) error {
	p := printer()

	for _, name := range names {
		ok, err := r.IsAvailable(name)
		if err != nil {
			var loadErr *dynload.LoadError
			if errors.As(err, &loadErr) {
				fmt.Fprintf(w, "%s: not installed (tried %v)\n", loadErr.Library, loadErr.Tried)
			}
			return err
		}
		state := "missing"
		if ok {
			state = "available"
		}
		fmt.Fprintf(w, "%-40s %s\n", name, state)
	}

	fmt.Fprintln(w)
	for _, lib := range r.Libraries() {
		fmt.Fprintf(w, "%s => %s\n", lib.Name, r.LoadedFiles()[lib.Name])
	}

	s := r.Stats()
	p.Fprintf(w, "%d symbols checked, %d cached\n", s.Misses+s.Hits, s.Len)
	return nil
}
