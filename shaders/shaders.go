// Package shaders holds the WGSL programs compiled at pipeline
// creation time.
package shaders

import (
	_ "embed"
)

//go:embed equirectangular.wgsl
var EquirectangularWGSL string

//go:embed light.wgsl
var LightWGSL string

//go:embed sky.wgsl
var SkyWGSL string
