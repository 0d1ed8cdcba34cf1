package gifting

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CustomRules are gift rules loaded from an externally editable asset.
// Other tools may patch the asset at any time, so callers load a fresh
// snapshot for every evaluation instead of caching one.
type CustomRules struct {
	// Blacklist lists qualified item ids that can never be mailed as
	// gifts under any circumstances.
	Blacklist map[string]bool

	// IgnoreLimits lists qualified item ids that can be gifted regardless
	// of daily/weekly limits. Gifting one also does not count against the
	// limits for following days or weeks.
	IgnoreLimits map[string]bool
}

type customRulesFile struct {
	Blacklist    []string `yaml:"blacklist"`
	IgnoreLimits []string `yaml:"ignore_limits"`
}

// NewCustomRules returns an empty rule set.
func NewCustomRules() *CustomRules {
	return &CustomRules{
		Blacklist:    make(map[string]bool),
		IgnoreLimits: make(map[string]bool),
	}
}

// LoadCustomRules reads the rules asset from path. A missing file yields an
// empty rule set, not an error.
func LoadCustomRules(path string) (*CustomRules, error) {
	rules := NewCustomRules()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rules, nil
		}
		return rules, fmt.Errorf("failed to read rules asset: %w", err)
	}

	var file customRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return rules, fmt.Errorf("failed to parse rules asset: %w", err)
	}

	for _, id := range file.Blacklist {
		rules.Blacklist[id] = true
	}
	for _, id := range file.IgnoreLimits {
		rules.IgnoreLimits[id] = true
	}
	return rules, nil
}
