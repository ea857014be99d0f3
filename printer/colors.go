package printer

import "strconv"

// Escape sequence pieces.
const (
	Escape = "\033["
	Reset  = "\033[0m"
)

// FColor is a foreground color from the fixed palette.
type FColor int

// Foreground colors
const (
	FNone FColor = iota
	FBlack
	FRed
	FGreen
	FYellow
	FBlue
	FMagenta
	FCyan
	FWhite
)

// BColor is a background color from the fixed palette.
type BColor int

// Background colors
const (
	BNone BColor = iota
	BBlack
	BRed
	BGreen
	BYellow
	BBlue
	BMagenta
	BCyan
	BWhite
)

// Attribute is a text style applied before the colors.
type Attribute int

// Text attributes
const (
	AttrNone Attribute = iota
	AttrClear
	AttrBold
	AttrDim
	AttrUnderline
	AttrReverse
	AttrHidden
)

var colorNames = [...]string{"NONE", "BLACK", "RED", "GREEN", "YELLOW", "BLUE", "MAGENTA", "CYAN", "WHITE"}

var attributeNames = [...]string{"NONE", "CLEAR", "BOLD", "DIM", "UNDERLINE", "REVERSE", "HIDDEN"}
var attributeCodes = [...]string{"", "0", "1", "2", "4", "7", "8"}

// String returns the palette name.
func (c FColor) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "UNKNOWN"
	}
	return colorNames[c]
}

// Code returns the SGR parameter, 30..37, or "" for FNone.
func (c FColor) Code() string {
	if c <= FNone || int(c) >= len(colorNames) {
		return ""
	}
	return strconv.Itoa(29 + int(c))
}

// String returns the palette name.
func (c BColor) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "UNKNOWN"
	}
	return colorNames[c]
}

// Code returns the SGR parameter, 40..47, or "" for BNone.
func (c BColor) Code() string {
	if c <= BNone || int(c) >= len(colorNames) {
		return ""
	}
	return strconv.Itoa(39 + int(c))
}

// String returns the attribute name.
func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return "UNKNOWN"
	}
	return attributeNames[a]
}

// Code returns the SGR parameter for the attribute.
func (a Attribute) Code() string {
	if a < 0 || int(a) >= len(attributeCodes) {
		return ""
	}
	return attributeCodes[a]
}

// ParseFColor looks up a foreground color by its exact palette name.
func ParseFColor(name string) (FColor, bool) {
	for i, n := range colorNames {
		if n == name {
			return FColor(i), true
		}
	}
	return FNone, false
}

// ParseBColor looks up a background color by its exact palette name.
func ParseBColor(name string) (BColor, bool) {
	for i, n := range colorNames {
		if n == name {
			return BColor(i), true
		}
	}
	return BNone, false
}

// ParseAttribute looks up an attribute by its exact name.
func ParseAttribute(name string) (Attribute, bool) {
	for i, n := range attributeNames {
		if n == name {
			return Attribute(i), true
		}
	}
	return AttrNone, false
}

// GenerateCode builds the escape sequence for an attribute and color pair.
// Example: GenerateCode(AttrNone, FWhite, BRed) -> "\033[;37;41m".
func GenerateCode(attr Attribute, fg FColor, bg BColor) string {
	return Escape + attr.Code() + ";" + fg.Code() + ";" + bg.Code() + "m"
}

