package steam

import "strings"

// Steam Community Market currency identifiers.
type currencyInfo struct {
	ID     int
	Symbol string
}

var currencies = map[string]currencyInfo{
	"USD": {1, "$"},
	"GBP": {2, "£"},
	"EUR": {3, "€"},
	"CHF": {4, "CHF"},
	"RUB": {5, "₽"},
	"PLN": {6, "zł"},
	"BRL": {7, "R$"},
	"JPY": {8, "¥"},
	"NOK": {9, "kr"},
	"IDR": {10, "Rp"},
	"MYR": {11, "RM"},
	"PHP": {12, "₱"},
	"SGD": {13, "S$"},
	"THB": {14, "฿"},
	"VND": {15, "₫"},
	"KRW": {16, "₩"},
	"TRY": {17, "₺"},
	"UAH": {18, "₴"},
	"MXN": {19, "Mex$"},
	"CAD": {20, "CDN$"},
	"AUD": {21, "A$"},
	"NZD": {22, "NZ$"},
	"CNY": {23, "¥"},
	"INR": {24, "₹"},
}

const DefaultCurrency = "USD"

// CurrencyID resolves a currency code to Steam's numeric id; unknown codes
// fall back to USD.
func CurrencyID(code string) int {
	if info, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return info.ID
	}
	return currencies[DefaultCurrency].ID
}

func CurrencySymbol(code string) string {
	if info, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return info.Symbol
	}
	return currencies[DefaultCurrency].Symbol
}

func IsSupportedCurrency(code string) bool {
	_, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

func AvailableCurrencies() []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	return codes
}

// Supported game app ids; Counter-Strike 2 is the default.
var Games = map[string]int{
	"Counter-Strike 2": 730,
	"Dota 2":           570,
	"Team Fortress 2":  440,
	"Rust":             252490,
}

const DefaultAppID = 730
