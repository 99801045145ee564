package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/nvof"
	"github.com/gogpu/nvof/dynload"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nvofprobe",
	Short: "Inspect optical flow and NPP support on this host",
	Long: `nvofprobe checks which parts of the NVIDIA Optical Flow stack are usable
on this machine: the driver library, the NPP libraries and the symbols
they export.

Every setting can also be given through the environment with the NVOF_
prefix, e.g. NVOF_CUDA_MAJOR=12.`,
	Version:       nvof.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			nvof.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nvofprobe.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log library loading to stderr")
	rootCmd.PersistentFlags().Int("cuda-major", dynload.DefaultCUDAMajor, "CUDA major version of the NPP libraries")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("cuda-major", rootCmd.PersistentFlags().Lookup("cuda-major"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("nvofprobe")
	}

	// cuda-major is read from NVOF_CUDA_MAJOR.
	viper.SetEnvPrefix("NVOF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// printer formats numbers with thousands separators.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}
