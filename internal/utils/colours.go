package utils

const (
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	// Inverse video colors
	RedInverse    = "\033[7;31m"
	GreenInverse  = "\033[7;32m"
	YellowInverse = "\033[7;33m"
	BlueInverse   = "\033[7;34m"

	ResetColor = "\033[0m" // Reset to default color
)

// Colourise wraps s in colour, or returns it untouched when colour is "".
func Colourise(colour, s string) string {
	if colour == "" {
		return s
	}
	return colour + s + ResetColor
}
