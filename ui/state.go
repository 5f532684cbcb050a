package ui

import (
	"image/color"

	"github.com/calvinmclean/servoset/lever"
)

var (
	colorSignal = color.RGBA{R: 0xAA, A: 0xFF}
	colorPoint  = color.RGBA{A: 0xFF}
	colorFacing = color.RGBA{B: 0xAA, A: 0xFF}
	colorSpare  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorPanel  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	colorSelect = color.RGBA{R: 0xFF, G: 0xD7, A: 0xFF}
)

// kindColor is the colour a lever is painted in a real frame
func kindColor(k lever.Kind) color.Color {
	switch k {
	case lever.KindSignal:
		return colorSignal
	case lever.KindPoint:
		return colorPoint
	case lever.KindFacing:
		return colorFacing
	default:
		return colorSpare
	}
}

// modeLabel names the value a mode edits
func modeLabel(m lever.Mode) string {
	switch m {
	case lever.ModeNormal:
		return "Normal Position"
	case lever.ModeReversed:
		return "Reversed Position"
	case lever.ModeReturn:
		return "Return Speed"
	case lever.ModePull:
		return "Pull Speed"
	default:
		return "Idle"
	}
}
