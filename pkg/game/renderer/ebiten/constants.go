package ebiten

import "image/color"

// Color palette for the viewer chrome
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorSuperRare       = color.RGBA{197, 100, 119, 255} // Matches the super-rare card tint
	colorCard            = color.RGBA{255, 255, 255, 217} // Untinted reward card
	colorMissingIcon     = color.RGBA{160, 160, 160, 255}
	colorBadge           = color.RGBA{0, 0, 0, 255}
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 900

	statusBarHeight = 48
	baseFontSize    = 14.0
	badgeFontSize   = 11.0

	// messageLifetime is how long a status message stays visible (milliseconds)
	messageLifetime = 4000
)
