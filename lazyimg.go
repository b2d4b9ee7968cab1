package lazyimg

import (
	_ "embed"
)

//go:embed VERSION
var Version string

//go:embed lazyimg.toml
var DefaultConfig string
