package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gogpu/nvof/opticalflow"
)

var driverCmd = &cobra.Command{
	Use:   "driver",
	Short: "Check that the optical flow driver library can be bound",
	RunE: func(cmd *cobra.Command, args []string) error {
		return reportDriver(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(driverCmd)
}

func reportDriver(w io.Writer, opts ...opticalflow.LoadOption) error {
	lib := opticalflow.DriverLibrary()
	fmt.Fprintf(w, "Platform:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "Library:     %s %v\n", lib.Name, lib.Candidates)
	fmt.Fprintf(w, "API version: %d.%d\n", opticalflow.APIMajorVersion, opticalflow.APIMinorVersion)

	api, err := opticalflow.LoadCudaAPI(opts...)
	if err != nil {
		fmt.Fprintln(w, "Status:      unavailable")
		return err
	}
	if err := api.Validate(); err != nil {
		fmt.Fprintln(w, "Status:      incomplete")
		return err
	}
	fmt.Fprintln(w, "Status:      ok")
	return nil
}
