package domain

// Currency is a supported holding currency.
type Currency string

const (
	USD Currency = "USD"
	KHR Currency = "KHR"
)

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	return c == USD || c == KHR
}

// MinorScale is the number of decimal places a balance in this currency may
// carry. KHR has no fractional minor unit.
func (c Currency) MinorScale() int32 {
	if c == KHR {
		return 0
	}
	return 2
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case KHR:
		return "៛"
	}
	return string(c)
}
