package ui

// Color is a straight-alpha RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Palette used by the built-in panels.
var (
	ColorWhite = Color{1, 1, 1, 1}

	ColorPanelBg      = Color{0.08, 0.08, 0.12, 0.95}
	ColorPanelBorder  = Color{0.3, 0.3, 0.4, 1}
	ColorTitleBar     = Color{0.12, 0.14, 0.22, 1}
	ColorButtonNormal = Color{0.15, 0.15, 0.2, 1}
	ColorButtonHover  = Color{0.25, 0.25, 0.35, 1}
	ColorButtonActive = Color{0.1, 0.3, 0.5, 1}
	ColorDisabled     = Color{0.1, 0.1, 0.12, 1}
	ColorInputBg      = Color{0.05, 0.05, 0.08, 1}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.5, 0.5, 0.6, 1}
	ColorHighlight    = Color{0.2, 0.6, 0.9, 1}
	ColorHP           = Color{0.85, 0.2, 0.2, 1}
	ColorMP           = Color{0.2, 0.4, 1.0, 1}
	ColorEXP          = Color{0.9, 0.8, 0.2, 1}
)

// RGB creates an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Fade scales the alpha channel, used to apply the frame interpolation factor.
func (c Color) Fade(alpha float32) Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	return Color{c.R, c.G, c.B, c.A * alpha}
}
