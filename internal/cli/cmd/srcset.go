package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matjam/lazyimg/internal/cli/cmd/utils"
	"github.com/matjam/lazyimg/internal/gallery"
	"github.com/matjam/lazyimg/internal/respimg"
	"github.com/matjam/lazyimg/internal/srcset"
	"github.com/matjam/lazyimg/internal/types"
)

func NewSrcSetCmd() *cobra.Command {
	var (
		src      string
		maxWidth int
		remote   string
		asJSON   bool
	)

	c := &cobra.Command{
		Use:   "srcset [natural-width]",
		Short: "Print the source-set and sizes hint for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.Atoi(args[0])
			if err != nil || width <= 0 {
				return fmt.Errorf("natural width must be a positive integer, got %q", args[0])
			}
			if maxWidth == 0 {
				maxWidth = viper.GetInt("max_width")
			}

			var set *srcset.Set
			if remote != "" {
				client := gallery.NewClient(remote)
				defer client.Close()
				if set, err = client.SrcSet(src, width, maxWidth); err != nil {
					return err
				}
			} else {
				s := srcset.Build(width, maxWidth, func(w int) string {
					return respimg.QueryURL(src, w, types.FormatOriginal)
				})
				set = &s
			}

			if asJSON {
				utils.PrintJSONColored(set)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "srcset=\"%s\"\nsizes=\"%s\"\n", set.Markup, set.Sizes)
			return nil
		},
	}

	c.Flags().StringVar(&src, "src", "image.jpg", "image URL the candidates are derived from")
	c.Flags().IntVar(&maxWidth, "max-width", 0, "design-time display width (default from config)")
	c.Flags().StringVar(&remote, "remote", "", "ask a running server at this URL instead")
	c.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return c
}
