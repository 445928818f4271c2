// Package intent assigns a coarse intent to a chat message by substring
// matching and pulls the few parameters the skills need out of the text.
package intent

import (
	"strings"

	"github.com/Akshaya1307/workbuddy/internal/catalog"
	"github.com/Akshaya1307/workbuddy/internal/model"
)

// Classifier matches messages against the catalog's ordered keyword rules.
type Classifier struct {
	catalog *catalog.Catalog
}

// NewClassifier creates a classifier over c.
func NewClassifier(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c}
}

// Detect returns the intent of the first rule with a keyword contained in the
// message, or general when nothing matches.
func (c *Classifier) Detect(message string) model.Intent {
	text := strings.ToLower(message)
	for _, rule := range c.catalog.Intents {
		if containsAny(text, rule.Keywords) {
			return rule.Intent
		}
	}
	return model.IntentGeneral
}

// ExtractTool returns the display name of the first tool named in the message.
func (c *Classifier) ExtractTool(message string) string {
	text := strings.ToLower(message)
	for _, tool := range c.catalog.Tools.Items {
		if strings.Contains(text, tool.Keyword) {
			if tool.Name != "" {
				return tool.Name
			}
			return titleCase(tool.Keyword)
		}
	}
	return c.catalog.Tools.Default
}

// ExtractRole returns the first onboarding role named in the message.
func (c *Classifier) ExtractRole(message string) string {
	text := strings.ToLower(message)
	for _, role := range c.catalog.Roles.Keywords {
		if strings.Contains(text, role) {
			return titleCase(role)
		}
	}
	return c.catalog.Roles.Default
}

// ExtractPolicyTopic returns the first policy topic named in the message.
func (c *Classifier) ExtractPolicyTopic(message string) string {
	text := strings.ToLower(message)
	for _, p := range c.catalog.Policies.Topics {
		if strings.Contains(text, p.Topic) {
			return p.Topic
		}
	}
	return c.catalog.Policies.Default
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter of each space separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
