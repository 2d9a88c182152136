package parse

import (
	"regexp"
	"strconv"
	"strings"

	"traderdesk/internal/catalog"
	"traderdesk/internal/models"
)

// Ordered matcher cascades. Within each cascade the first pattern that
// matches wins; the ordering is intentional and load-bearing (e.g.
// "buy 100 shares" resolves quantity from the shares pattern, not the
// buy pattern).
var (
	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*shares?`),
		regexp.MustCompile(`(\d+)\s*units?`),
		regexp.MustCompile(`buy\s+(\d+)`),
		regexp.MustCompile(`sell\s+(\d+)`),
		regexp.MustCompile(`(\d+)\s+of`),
	}

	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`at\s+\$?(\d+\.?\d*)`),
		regexp.MustCompile(`price\s+\$?(\d+\.?\d*)`),
		regexp.MustCompile(`limit\s+\$?(\d+\.?\d*)`),
	}
)

// ExtractOrder parses free text into an OrderForm using the rule-based
// matcher cascades. It is total: unmatched fields keep their documented
// defaults (nil quantity/price, DAY, phone).
func ExtractOrder(text string, cat *catalog.Catalog) models.OrderForm {
	lower := strings.ToLower(text)
	form := models.NewOrderForm()

	form.Security = cat.Match(lower)

	for _, re := range quantityPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			if qty, err := strconv.Atoi(m[1]); err == nil {
				form.Quantity = &qty
			}
			break
		}
	}

	for _, re := range pricePatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			if price, err := strconv.ParseFloat(m[1], 64); err == nil {
				form.Price = &price
			}
			break
		}
	}

	form.TimeInForce = extractTimeInForce(lower)
	form.ContactMethod = extractContactMethod(lower)

	return form
}

func extractTimeInForce(lower string) models.TimeInForce {
	switch {
	case strings.Contains(lower, "gtc"), strings.Contains(lower, "good til cancel"):
		return models.TIFGTC
	case strings.Contains(lower, "gtd"), strings.Contains(lower, "good til date"):
		return models.TIFGTD
	case strings.Contains(lower, "fok"), strings.Contains(lower, "fill or kill"):
		return models.TIFFOK
	default:
		return models.TIFDay
	}
}

func extractContactMethod(lower string) models.ContactMethod {
	switch {
	case strings.Contains(lower, "email"):
		return models.ContactEmail
	case strings.Contains(lower, "meeting"), strings.Contains(lower, "in person"):
		return models.ContactMeeting
	case strings.Contains(lower, "portal"), strings.Contains(lower, "online"):
		return models.ContactPortal
	default:
		return models.ContactPhone
	}
}
