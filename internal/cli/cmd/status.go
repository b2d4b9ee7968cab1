package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matjam/lazyimg/internal/cli/cmd/utils"
	"github.com/matjam/lazyimg/internal/gallery"
)

func NewStatusCmd() *cobra.Command {
	var url string

	c := &cobra.Command{
		Use:   "status",
		Short: "Get lazyimg server status",
		Long:  `Returns the current status of a running lazyimg server.`,
		Run: func(cmd *cobra.Command, args []string) {
			if url == "" {
				url = serverURL()
			}
			client := gallery.NewClient(url)
			defer client.Close()

			status, err := client.Status()
			if err != nil {
				log.Errorf("Error querying server: %v", err)
				return
			}

			utils.PrintJSONColored(status)
		},
	}

	c.Flags().StringVar(&url, "url", "", "server URL (default from the listen setting)")
	return c
}

func NewRescanCmd() *cobra.Command {
	var url string

	c := &cobra.Command{
		Use:   "rescan",
		Short: "Make a running server reread its image directory",
		Run: func(cmd *cobra.Command, args []string) {
			if url == "" {
				url = serverURL()
			}
			client := gallery.NewClient(url)
			defer client.Close()

			n, err := client.Rescan()
			if err != nil {
				log.Fatalf("Failed to send rescan: %v", err)
			}
			log.Infof("Server now has %d images", n)
		},
	}

	c.Flags().StringVar(&url, "url", "", "server URL (default from the listen setting)")
	return c
}
