package theme

import "math"

// BlockBg derives a background shade from a block's accent color so
// the label stays readable on top of it. Dark themes darken the
// accent, light themes blend it toward the page background.
func BlockBg(accent, themeBg string) string {
	if !validHex(accent) {
		return themeBg
	}
	if isLight(themeBg) {
		return blend(accent, themeBg, 0.70)
	}
	return darken(accent, 0.45, 36)
}

// ContinuationBg is a more muted shade for the continuation segment of
// a block that wraps midnight.
func ContinuationBg(accent, themeBg string) string {
	if !validHex(accent) {
		return themeBg
	}
	if isLight(themeBg) {
		return blend(accent, themeBg, 0.86)
	}
	return darken(accent, 0.28, 26)
}

// TextOn picks the foreground with the better contrast ratio against
// a background color.
func TextOn(bg, light, dark string) string {
	if contrast(bg, light) >= contrast(bg, dark) {
		return light
	}
	return dark
}

func isLight(bg string) bool {
	return luminance(bg) > 0.55
}

func validHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := s[i]
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !ok {
			return false
		}
	}
	return true
}

func darken(hex string, factor float64, floor int) string {
	r, g, b := rgb(hex)
	r = maxInt(int(float64(r)*factor), floor)
	g = maxInt(int(float64(g)*factor), floor)
	b = maxInt(int(float64(b)*factor), floor)
	return formatHex(r, g, b)
}

func blend(a, b string, ratio float64) string {
	if !validHex(a) || !validHex(b) {
		return a
	}
	ar, ag, ab := rgb(a)
	br, bg, bb := rgb(b)
	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	v := int(float64(ab)*(1-ratio) + float64(bb)*ratio)
	return formatHex(r, g, v)
}

func contrast(a, b string) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func luminance(hex string) float64 {
	if !validHex(hex) {
		return 0
	}
	r, g, b := rgb(hex)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func rgb(hex string) (int, int, int) {
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	val := 0
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func formatHex(r, g, b int) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 7)
	out[0] = '#'
	out[1] = digits[r>>4]
	out[2] = digits[r&0xf]
	out[3] = digits[g>>4]
	out[4] = digits[g&0xf]
	out[5] = digits[b>>4]
	out[6] = digits[b&0xf]
	return string(out)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
