// Package catalog holds the fixed demo data the skills answer from: leave
// balances, intent keywords, tools, roles, onboarding steps and policy text.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

//go:embed default.yaml
var defaultYAML []byte

// DefaultBalanceKey is the leave_balances entry used for unknown users.
const DefaultBalanceKey = "default"

// IntentRule maps substrings to an intent.
type IntentRule struct {
	Intent   model.Intent `yaml:"intent"`
	Keywords []string     `yaml:"keywords"`
}

// Tool is a requestable tool and the keyword that names it in a message.
type Tool struct {
	Keyword string `yaml:"keyword"`
	Name    string `yaml:"name"`
}

// Tools lists requestable tools in match order.
type Tools struct {
	Default string `yaml:"default"`
	Items   []Tool `yaml:"items"`
}

// Roles lists onboarding roles in match order.
type Roles struct {
	Default  string   `yaml:"default"`
	Keywords []string `yaml:"keywords"`
}

// Policy is a canned policy summary.
type Policy struct {
	Topic  string   `yaml:"topic"`
	Points []string `yaml:"points"`
}

// Policies lists policy topics in match order.
type Policies struct {
	Default string   `yaml:"default"`
	Topics  []Policy `yaml:"topics"`
}

// Catalog is the full set of demo data.
type Catalog struct {
	Version         int                 `yaml:"version"`
	DefaultUser     string              `yaml:"default_user"`
	LeaveBalances   map[string]int      `yaml:"leave_balances"`
	Intents         []IntentRule        `yaml:"intents"`
	Tools           Tools               `yaml:"tools"`
	Roles           Roles               `yaml:"roles"`
	OnboardingSteps []string            `yaml:"onboarding_steps"`
	Policies        Policies            `yaml:"policies"`
	QuickActions    []model.QuickAction `yaml:"quick_actions"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path yields the embedded default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) normalize() {
	balances := make(map[string]int, len(c.LeaveBalances))
	for user, days := range c.LeaveBalances {
		balances[strings.ToLower(strings.TrimSpace(user))] = days
	}
	c.LeaveBalances = balances
	for i := range c.Intents {
		c.Intents[i].Keywords = lowerAll(c.Intents[i].Keywords)
	}
	for i := range c.Tools.Items {
		c.Tools.Items[i].Keyword = strings.ToLower(strings.TrimSpace(c.Tools.Items[i].Keyword))
	}
	c.Roles.Keywords = lowerAll(c.Roles.Keywords)
	for i := range c.Policies.Topics {
		c.Policies.Topics[i].Topic = strings.ToLower(strings.TrimSpace(c.Policies.Topics[i].Topic))
	}
	c.Policies.Default = strings.ToLower(strings.TrimSpace(c.Policies.Default))
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks that every section the skills rely on is present.
func (c *Catalog) Validate() error {
	var errs []error
	if c.DefaultUser == "" {
		errs = append(errs, errors.New("default_user is required"))
	}
	if _, ok := c.LeaveBalances[DefaultBalanceKey]; !ok {
		errs = append(errs, errors.New("leave_balances must include a default entry"))
	}
	if len(c.Intents) == 0 {
		errs = append(errs, errors.New("at least one intent rule is required"))
	}
	seen := make(map[model.Intent]bool)
	for _, rule := range c.Intents {
		switch {
		case !rule.Intent.Valid() || rule.Intent == model.IntentGeneral:
			errs = append(errs, fmt.Errorf("intent %q is not routable", rule.Intent))
		case seen[rule.Intent]:
			errs = append(errs, fmt.Errorf("intent %q listed twice", rule.Intent))
		case len(rule.Keywords) == 0:
			errs = append(errs, fmt.Errorf("intent %q has no keywords", rule.Intent))
		}
		seen[rule.Intent] = true
	}
	for i, tool := range c.Tools.Items {
		if tool.Keyword == "" {
			errs = append(errs, fmt.Errorf("tools.items[%d] has no keyword", i))
		}
	}
	if c.Tools.Default == "" {
		errs = append(errs, errors.New("tools.default is required"))
	}
	if c.Roles.Default == "" {
		errs = append(errs, errors.New("roles.default is required"))
	}
	for i, role := range c.Roles.Keywords {
		if role == "" {
			errs = append(errs, fmt.Errorf("roles.keywords[%d] is empty", i))
		}
	}
	if len(c.OnboardingSteps) == 0 {
		errs = append(errs, errors.New("onboarding_steps must not be empty"))
	}
	if _, ok := c.Policy(c.Policies.Default); !ok {
		errs = append(errs, fmt.Errorf("policies.default %q has no topic entry", c.Policies.Default))
	}
	return errors.Join(errs...)
}

// LeaveBalance returns the user's remaining casual leave, falling back to the
// default balance for unknown users.
func (c *Catalog) LeaveBalance(userID string) int {
	if balance, ok := c.LeaveBalances[strings.ToLower(userID)]; ok {
		return balance
	}
	return c.LeaveBalances[DefaultBalanceKey]
}

// Policy looks up a policy by topic.
func (c *Catalog) Policy(topic string) (Policy, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	for _, p := range c.Policies.Topics {
		if p.Topic == topic {
			return p, true
		}
	}
	return Policy{}, false
}
