package currency

// Code is an ISO 4217 currency code.
type Code string

const (
	NGN Code = "NGN"
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
)

var rates = map[Code]float64{
	USD: 1595,
	EUR: 1800,
	GBP: 2170,
}

// Rate returns the fixed multiplier converting one unit of the given currency
// into naira. NGN and unrecognized codes convert 1:1.
func Rate(code Code) float64 {
	if rate, ok := rates[code]; ok {
		return rate
	}
	return 1
}

// Supported returns the currency codes the application offers for selection.
func Supported() []Code {
	return []Code{NGN, USD, EUR, GBP}
}
