package util

// Color constants
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
)
