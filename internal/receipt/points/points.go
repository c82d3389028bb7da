// Package points scores validated receipts. The rule set is fixed.
package points

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"receipts/internal/receipt/models"
)

// Rule names, used for breakdowns and metrics labels.
const (
	RuleRetailerAlphanumeric = "retailer_alphanumeric"
	RuleRoundDollar          = "round_dollar"
	RuleQuarterMultiple      = "quarter_multiple"
	RuleItemPairs            = "item_pairs"
	RuleItemDescription      = "item_description"
	RuleOddDay               = "odd_day"
	RuleAfternoonWindow      = "afternoon_window"
)

var (
	quarter         = decimal.RequireFromString("0.25")
	descriptionRate = decimal.RequireFromString("0.2")
)

// Contribution is the points one rule awarded.
type Contribution struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

type rule struct {
	name  string
	apply func(models.Record) int
}

var rules = []rule{
	{RuleRetailerAlphanumeric, retailerAlphanumeric},
	{RuleRoundDollar, roundDollar},
	{RuleQuarterMultiple, quarterMultiple},
	{RuleItemPairs, itemPairs},
	{RuleItemDescription, itemDescription},
	{RuleOddDay, oddDay},
	{RuleAfternoonWindow, afternoonWindow},
}

// Calculate returns the total score for a validated record. It is pure and
// never fails.
func Calculate(r models.Record) int {
	total := 0
	for _, rl := range rules {
		total += rl.apply(r)
	}
	return total
}

// Breakdown returns each rule's contribution in evaluation order. The
// contributions sum to Calculate(r).
func Breakdown(r models.Record) []Contribution {
	out := make([]Contribution, 0, len(rules))
	for _, rl := range rules {
		out = append(out, Contribution{Rule: rl.name, Points: rl.apply(r)})
	}
	return out
}

// One point per letter or digit in the retailer name.
func retailerAlphanumeric(r models.Record) int {
	n := 0
	for _, c := range r.Retailer {
		if unicode.IsLetter(c) || unicode.IsNumber(c) {
			n++
		}
	}
	return n
}

func roundDollar(r models.Record) int {
	_, cents, _ := strings.Cut(r.Total, ".")
	if cents == "00" {
		return 50
	}
	return 0
}

func quarterMultiple(r models.Record) int {
	if amount(r.Total).Mod(quarter).IsZero() {
		return 25
	}
	return 0
}

func itemPairs(r models.Record) int {
	return len(r.Items) / 2 * 5
}

// Each item whose trimmed description length is a multiple of 3 earns
// ceil(price * 0.2), rounded per item. A length of 0 counts.
func itemDescription(r models.Record) int {
	total := 0
	for _, item := range r.Items {
		if utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))%3 != 0 {
			continue
		}
		total += int(amount(item.Price).Mul(descriptionRate).Ceil().IntPart())
	}
	return total
}

// The day is taken from the digits alone; no calendar check is made.
func oddDay(r models.Record) int {
	if atoi(r.PurchaseDate[len(r.PurchaseDate)-2:])%2 == 1 {
		return 6
	}
	return 0
}

// 14:01 through 15:59. 14:00 itself does not qualify.
func afternoonWindow(r models.Record) int {
	h, m, _ := strings.Cut(r.PurchaseTime, ":")
	hour, minute := atoi(h), atoi(m)
	if hour == 15 || (hour == 14 && minute > 0) {
		return 10
	}
	return 0
}

// amount parses a validated money string. Validation guarantees the format.
func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
