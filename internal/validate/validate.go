package validate

import (
	"regexp"
	"strconv"
	"strings"

	"emytrends/internal/domain"
)

const (
	MaxQty     = 50
	MaxPerPage = 100
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'"&.,/+#()\\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max
// length. Letters and digits in any script pass; markup does not.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 50 {
		s = strings.TrimSpace(string(r[:50]))
	}
	return s, reQ.MatchString(s)
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return QtyInt(n)
}

// QtyInt clamps n into 1..MaxQty.
func QtyInt(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxQty {
		return MaxQty
	}
	return n
}

// ID validates a simple resource identifier (product/order/address ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Slug validates a WordPress post or category slug.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 200 && reSlug.MatchString(s)
}

// PerPage parses a page size, defaulting to def and capping at MaxPerPage.
func PerPage(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > MaxPerPage {
		return MaxPerPage
	}
	return n
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Phone accepts an empty value or a loosely formatted number.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "" || rePhone.MatchString(s)
}

func Status(s string) (domain.OrderStatus, bool) {
	st := domain.OrderStatus(strings.TrimSpace(s))
	return st, st.Valid()
}

// PromoText requires a non-empty banner of at most MaxPromoWords words.
func PromoText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := len(strings.Fields(s))
	return s, n > 0 && n <= domain.MaxPromoWords
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
