// Package predict builds synthetic champion/role scenarios and scores them
// with the fitted classifier.
package predict

// roleNames maps the upstream position codes to the display names the
// dashboard shows. Codes without a mapping pass through unchanged.
var roleNames = map[string]string{
	"UTILITY": "Suporte",
	"BOTTOM":  "ADC",
	"TOP":     "TOP",
	"JUNGLE":  "Jungle",
	"MIDDLE":  "MID",
}

// RoleName returns the display name for a position code.
func RoleName(code string) string {
	if name, ok := roleNames[code]; ok {
		return name
	}
	return code
}
