package categorize

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// VendorRule maps a lowercase substring of a merchant name to a category.
type VendorRule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// Vendors is an ordered pattern table. Patterns may overlap; the first match
// wins, so "credit" can claim merchants a later, more specific pattern would
// have matched.
type Vendors struct {
	rules []VendorRule
	exact map[string]string
}

func NewVendors(rules []VendorRule) *Vendors {
	v := &Vendors{exact: make(map[string]string, len(rules))}
	v.Append(rules...)

	return v
}

// DefaultVendors returns the built-in table.
func DefaultVendors() *Vendors {
	return NewVendors(defaultVendorRules)
}

// Append adds rules after the existing ones. Empty patterns are ignored.
func (v *Vendors) Append(rules ...VendorRule) {
	for _, r := range rules {
		p := strings.ToLower(strings.TrimSpace(r.Pattern))
		c := strings.TrimSpace(r.Category)

		if p == "" || c == "" {
			continue
		}

		v.rules = append(v.rules, VendorRule{Pattern: p, Category: c})

		if _, ok := v.exact[p]; !ok {
			v.exact[p] = c
		}
	}
}

// Match returns the category for merchant. A merchant equal to a pattern
// wins over substring matches.
func (v *Vendors) Match(merchant string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(merchant))
	if m == "" {
		return "", false
	}

	if c, ok := v.exact[m]; ok {
		return c, true
	}

	for _, r := range v.rules {
		if strings.Contains(m, r.Pattern) {
			return r.Category, true
		}
	}

	return "", false
}

// Categories lists the distinct categories of the table in first-seen order.
func (v *Vendors) Categories() []string {
	seen := make(map[string]struct{})

	var out []string

	for _, r := range v.rules {
		if _, ok := seen[r.Category]; ok {
			continue
		}

		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}

	return out
}

func (v *Vendors) Len() int {
	return len(v.rules)
}

// LoadVendorFile reads extra rules from a YAML list of pattern/category pairs.
func LoadVendorFile(path string) ([]VendorRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vendor file: %w", err)
	}

	var rules []VendorRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse vendor file %s: %w", path, err)
	}

	for i, r := range rules {
		if strings.TrimSpace(r.Pattern) == "" || strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("vendor file %s: entry %d needs both pattern and category", path, i+1)
		}
	}

	return rules, nil
}

var defaultVendorRules = []VendorRule{
	{"global bike", "Hobby"},
	{"mbo", "Hobby"},
	{"rapha", "Hobby"},
	{"specialized", "Hobby"},

	{"payment", "Payments"},
	{"paypal", "Payments"},
	{"venmo", "Payments"},
	{"stripe", "Payments"},
	{"square", "Payments"},

	{"whole foods", "Groceries"},
	{"trader joe", "Groceries"},
	{"safeway", "Groceries"},
	{"kroger", "Groceries"},
	{"sprouts", "Groceries"},
	{"costco whse", "Groceries"},
	{"costco.com", "Groceries"},
	{"grocery", "Groceries"},
	{"supermarket", "Groceries"},
	{"los altos ranch market", "Groceries"},

	{"restaurant", "Dining"},
	{"cafe", "Dining"},
	{"coffee", "Dining"},
	{"burger", "Dining"},
	{"pizza", "Dining"},
	{"sushi", "Dining"},
	{"bbq", "Dining"},
	{"diner", "Dining"},
	{"bar", "Dining"},
	{"pub", "Dining"},

	{"movie", "Entertainment"},
	{"cinema", "Entertainment"},
	{"theater", "Entertainment"},
	{"concert", "Entertainment"},
	{"game", "Entertainment"},

	{"electric", "Utilities"},
	{"water", "Utilities"},
	{"gas company", "Utilities"},
	{"internet", "Utilities"},
	{"phone", "Utilities"},
	{"comcast", "Utilities"},
	{"verizon", "Utilities"},
	{"at&t", "Utilities"},
	{"t-mobile", "Utilities"},
	{"visible 866", "Utilities"},
	{"city of chandler", "Utilities"},
	{"cox phoenix", "Utilities"},

	{"uber", "Transportation"},
	{"lyft", "Transportation"},
	{"taxi", "Transportation"},
	{"airline", "Transportation"},
	{"hotel", "Transportation"},
	{"parking", "Transportation"},
	{"transit", "Transportation"},
	{"costco gas", "Transportation"},

	{"amazon", "Shopping"},
	{"walmart", "Shopping"},
	{"target", "Shopping"},
	{"bestbuy", "Shopping"},
	{"mall", "Shopping"},
	{"store", "Shopping"},

	{"pharmacy", "Healthcare"},
	{"doctor", "Healthcare"},
	{"hospital", "Healthcare"},
	{"clinic", "Healthcare"},
	{"cvs", "Healthcare"},
	{"walgreens", "Healthcare"},
	{"gym", "Healthcare"},

	{"dog", "Dog Care"},
	{"vet", "Dog Care"},
	{"pet", "Dog Care"},
	{"petco", "Dog Care"},
	{"petsmart", "Dog Care"},

	{"subscription", "Subscriptions"},
	{"subscription service", "Subscriptions"},
	{"spotify", "Subscriptions"},
	{"youtubepremium", "Subscriptions"},
	{"openai *chatgpt", "Subscriptions"},
	{"claude.ai subscription", "Subscriptions"},
	{"netflix", "Subscriptions"},
	{"hulu", "Subscriptions"},
	{"disney", "Subscriptions"},

	{"refund", "Refunds & Returns"},
	{"return", "Refunds & Returns"},
	{"credit", "Refunds & Returns"},
}
