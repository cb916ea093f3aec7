package parser

import "strings"

// CategoryKind is the closed set of header categories the financial parser
// routes on.
type CategoryKind int

const (
	Unknown CategoryKind = iota
	Income
	Expense
	NetIncome
	Investment
	Cash
	Wealth
	LostMoney
)

var categoryNames = [...]string{
	Unknown:    "unknown",
	Income:     "income",
	Expense:    "expense",
	NetIncome:  "net_income",
	Investment: "investment",
	Cash:       "cash",
	Wealth:     "wealth",
	LostMoney:  "lost_money",
}

func (k CategoryKind) String() string {
	if k < 0 || int(k) >= len(categoryNames) {
		return categoryNames[Unknown]
	}
	return categoryNames[k]
}

// classifyOrder lists the matchers in precedence order. "net income" has to
// be checked before "income".
var classifyOrder = []struct {
	needle string
	kind   CategoryKind
}{
	{"net income", NetIncome},
	{"income", Income},
	{"expense", Expense},
	{"investment", Investment},
	{"cash", Cash},
	{"wealth", Wealth},
	{"lost", LostMoney},
}

// Classify maps a header category to its kind by case-insensitive
// substring match, first match in classifyOrder wins.
func Classify(category string) CategoryKind {
	c := strings.ToLower(category)
	if strings.TrimSpace(c) == "" {
		return Unknown
	}
	for _, m := range classifyOrder {
		if strings.Contains(c, m.needle) {
			return m.kind
		}
	}
	return Unknown
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
