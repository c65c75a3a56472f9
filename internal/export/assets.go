package export

import (
	_ "embed"
)

//go:embed assets/player.js
var playerScript string

//go:embed assets/player.css
var playerStylesheet string

// PlayerScript returns the player script embedded in every generated page.
func PlayerScript() string {
	return playerScript
}

// Stylesheet returns the player stylesheet.
func Stylesheet() string {
	return playerStylesheet
}
