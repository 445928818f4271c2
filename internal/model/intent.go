package model

// Intent is the coarse category assigned to a message by keyword matching.
type Intent string

const (
	IntentCheckLeave      Intent = "check_leave"
	IntentRequestAccess   Intent = "request_access"
	IntentStartOnboarding Intent = "start_onboarding"
	IntentHRPolicy        Intent = "hr_policy"
	IntentGeneral         Intent = "general"
)

// Intents lists every intent in routing order, general last.
var Intents = []Intent{
	IntentCheckLeave,
	IntentRequestAccess,
	IntentStartOnboarding,
	IntentHRPolicy,
	IntentGeneral,
}

// Valid reports whether i is a known intent.
func (i Intent) Valid() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}
