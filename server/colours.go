package server

// ANSI colours for the DEV route table and request log
const (
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m"

	ResetColor = "\033[0m"
)

var methodColors = map[string]string{
	"GET":    Green,
	"POST":   Blue,
	"PUT":    Cyan,
	"DELETE": Yellow,
	"PATCH":  Magenta,
}

// statusColour picks the colour a response status is logged in
func statusColour(status int) string {
	switch {
	case status >= 500:
		return Red
	case status >= 400:
		return Yellow
	case status >= 300:
		return Cyan
	default:
		return Green
	}
}
