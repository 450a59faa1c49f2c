// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"image/color"
	"strconv"

	sim "github.com/db47h/logicsim"
)

// Theme holds the colors and metrics used by Draw.
//
type Theme struct {
	Background color.Color
	Grid       color.Color
	GridStep   float64

	Hint   color.Color // empty circuit instructions
	Status color.Color

	Kinds         map[sim.Kind]color.Color
	Active        color.Color // High components and connections
	Inactive      color.Color // Low input state dot
	Border        color.Color
	Selected      color.Color
	Label         color.Color
	Connection    color.Color
	Hover         color.Color
	HoverHalo     color.Color
	Preview       color.Color
	TooltipBg     color.Color
	TooltipText   color.Color
	ArrowSize     float64
	StateDotSize  float64
	ActiveDotSize float64
}

// hex parses a "#rrggbb" color.
func hex(s string) color.Color {
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		panic(err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// rgba returns a non-premultiplied color with alpha a in [0, 1].
func rgba(r, g, b uint8, a float64) color.Color {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// DefaultTheme returns the default dark theme.
//
func DefaultTheme() Theme {
	return Theme{
		Background: hex("#111827"),
		Grid:       rgba(255, 255, 255, 0.05),
		GridStep:   20,
		Hint:       rgba(255, 255, 255, 0.3),
		Status:     color.White,
		Kinds: map[sim.Kind]color.Color{
			sim.Input:  hex("#10b981"),
			sim.Output: hex("#f59e0b"),
			sim.And:    hex("#3b82f6"),
			sim.Or:     hex("#a855f7"),
			sim.Not:    hex("#ef4444"),
			sim.Xor:    hex("#ec4899"),
		},
		Active:        hex("#10b981"),
		Inactive:      hex("#ef4444"),
		Border:        color.White,
		Selected:      hex("#fbbf24"),
		Label:         color.White,
		Connection:    hex("#a855f7"),
		Hover:         hex("#fbbf24"),
		HoverHalo:     rgba(251, 191, 36, 0.3),
		Preview:       hex("#a855f7"),
		TooltipBg:     rgba(0, 0, 0, 0.9),
		TooltipText:   color.White,
		ArrowSize:     12,
		StateDotSize:  6,
		ActiveDotSize: 4,
	}
}

func (th *Theme) kindColor(k sim.Kind) color.Color {
	if c, ok := th.Kinds[k]; ok {
		return c
	}
	return th.Connection
}
