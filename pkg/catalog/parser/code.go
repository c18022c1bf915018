package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
	"golang.org/x/text/width"
)

// CodeWidth is the minimum length of a numeric code after zero padding.
const CodeWidth = 6

// integerText matches an integer optionally written with a ".0" style suffix.
var integerText = regexp.MustCompile(`^\d+(\.0+)?$`)

// NormalizeCode maps a code cell to its canonical identifier. Numeric codes
// become zero-padded digit strings, other text is trimmed and kept, and a
// blank cell yields "<sheet>_<ordinal>" with the ordinal padded to four digits.
func NormalizeCode(v models.Value, sheetName string, ordinal int) string {
	var code string
	switch v.Kind {
	case models.KindNumber:
		code = formatNumber(v.Num)
	case models.KindString:
		code = normalizeCodeText(v.Str)
	case models.KindBool:
		code = strconv.FormatBool(v.Bool)
	}
	if code == "" {
		return SyntheticCode(sheetName, ordinal)
	}
	if isDigits(code) && len(code) < CodeWidth {
		code = strings.Repeat("0", CodeWidth-len(code)) + code
	}
	return code
}

// SyntheticCode returns the identifier used for rows without a code.
func SyntheticCode(sheetName string, ordinal int) string {
	return fmt.Sprintf("%s_%04d", sheetName, ordinal)
}

// formatNumber writes whole numbers without a fractional part and other
// numbers in their shortest decimal form.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// normalizeCodeText trims s and collapses integer text such as "00042.0"
// to "42". Full-width digits count as digits.
func normalizeCodeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	narrow := width.Narrow.String(s)
	if !integerText.MatchString(narrow) {
		return s
	}
	digits := narrow
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		digits = digits[:i]
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	return digits
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
