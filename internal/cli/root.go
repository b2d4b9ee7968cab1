/*
Copyright © 2025 Nathan Ollerenshaw <chrome@stupendous.net>
*/
package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matjam/lazyimg"
	"github.com/matjam/lazyimg/internal/cli/cmd"
	"github.com/matjam/lazyimg/internal/cli/cmd/utils"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lazyimg",
	Short: "Responsive, lazily loaded images",
	Long: `lazyimg renders responsive images that reserve their layout space,
show a blurred placeholder while loading, load only once visible and fade in
when ready. It can render single images, print source-sets and serve a
directory of images as a gallery.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if v, err := cmd.Flags().GetBool("installconfig"); err == nil && v {
			if _, err := utils.InstallDefaultConfig(); err != nil {
				log.Fatalf("Error installing config file: %v", err)
			}
			return
		}

		if v, err := cmd.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		if v, err := cmd.Flags().GetBool("version"); err == nil && v {
			printVersion()
			return
		}

		_ = cmd.Help()
	},
}

func printVersion() {
	babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))

	log.Infof("%v version %v © 2025 %v",
		babyBlue.Render("lazyimg "),
		green.Render(strings.Trim(lazyimg.Version, "\n\r ")),
		yellow.Render("Nathan Ollerenshaw"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cfgFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/lazyimg/lazyimg.toml)")
	rootCmd.PersistentFlags().BoolP("installconfig", "i", false, "Install a default config file")
	rootCmd.PersistentFlags().Bool("show-config", false, "Dump resolved config")
	rootCmd.PersistentFlags().BoolP("background", "b", false, "Run the server as a daemon")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print version")

	_ = viper.BindPFlag("background", rootCmd.PersistentFlags().Lookup("background"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(
		cmd.NewRenderCmd(),
		cmd.NewSrcSetCmd(),
		cmd.NewServeCmd(),
		cmd.NewStatusCmd(),
		cmd.NewRescanCmd(),
		cmd.NewGenManCmd(rootCmd),
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lazyimg")
		viper.SetConfigType("toml")
		viper.AddConfigPath(utils.ConfigDir())
		viper.AddConfigPath("/etc/xdg/lazyimg")
	}

	utils.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("lazyimg")
	viper.AutomaticEnv() // read environment variables that match

	// Running without a config file is fine; a broken one is not.
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		cobra.CheckErr(err)
	}
}
