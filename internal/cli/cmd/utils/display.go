package utils

import (
	"time"

	"github.com/spf13/viper"

	"github.com/matjam/lazyimg/internal/respimg"
	"github.com/matjam/lazyimg/internal/types"
)

// SetDefaults registers the default value of every display setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("images", "~/Pictures")
	v.SetDefault("listen", "127.0.0.1:8420")
	v.SetDefault("shuffle", false)
	v.SetDefault("mode", "eager")

	v.SetDefault("max_width", respimg.DefaultMaxWidth)
	v.SetDefault("with_webp", true)
	v.SetDefault("blurry_placeholder", true)
	v.SetDefault("placeholder_width", respimg.DefaultPlaceholderWidth)
	v.SetDefault("background_color", "")
	v.SetDefault("fade_in", true)
	v.SetDefault("fade_duration", respimg.DefaultFadeDuration.Seconds())
	v.SetDefault("fade_delay", respimg.DefaultFadeDelay.Seconds())
	v.SetDefault("easing", string(types.EasingEaseInOut))
	v.SetDefault("fit", string(types.FitCover))
	v.SetDefault("debug", false)
}

// DisplayConfig builds the display settings from v. Durations are in
// seconds.
func DisplayConfig(v *viper.Viper) respimg.DisplayConfig {
	cfg := respimg.DefaultDisplayConfig()

	cfg.MaxWidth = v.GetInt("max_width")
	cfg.WithAlternateFormat = v.GetBool("with_webp")
	cfg.ShowBlurryPlaceholder = v.GetBool("blurry_placeholder")
	cfg.PlaceholderWidth = v.GetInt("placeholder_width")
	cfg.BackgroundColor = respimg.BackgroundColor(v.Get("background_color"))
	cfg.FadeIn = v.GetBool("fade_in")
	cfg.FadeDuration = seconds(v.GetFloat64("fade_duration"))
	cfg.FadeDelay = seconds(v.GetFloat64("fade_delay"))
	cfg.Easing = types.EasingMode(v.GetString("easing"))
	cfg.Fit = types.FitMode(v.GetString("fit"))

	return cfg.Normalize()
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
