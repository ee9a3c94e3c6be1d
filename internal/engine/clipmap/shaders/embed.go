// Package shaders provides the embedded clipmap GLSL sources.
package shaders

import _ "embed"

// TerrainVertexShader displaces the instanced clipmap grid by the
// elevation texture array.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades the displaced terrain with a single
// directional light.
//
//go:embed terrain.frag
var TerrainFragmentShader string
