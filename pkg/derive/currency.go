package derive

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// Grouped renders n with Japanese digit grouping: 47300 → "47,300".
func Grouped(n int64) string {
	return printer.Sprintf("%d", n)
}

// Yen renders n as a whole-yen amount: 69150 → "¥69,150".
func Yen(n int64) string {
	if n < 0 {
		return "-¥" + Grouped(-n)
	}
	return "¥" + Grouped(n)
}

// YenSuffix renders n the way slip tables print it: 47300 → "47,300円".
func YenSuffix(n int64) string {
	return Grouped(n) + "円"
}
