// Package model defines the core domain types for the Ignite quest site.
package model

import "time"

// QuestClass is the role label the profile generator assigns to a registrant.
type QuestClass string

const (
	TechTitan       QuestClass = "Tech Titan"
	PitchProphet    QuestClass = "Pitch Prophet"
	MarketingMage   QuestClass = "Marketing Mage"
	StrategyShaman  QuestClass = "Strategy Shaman"
	VentureVanguard QuestClass = "Venture Vanguard"
)

// QuestClasses lists every valid class in display order.
var QuestClasses = []QuestClass{
	TechTitan,
	PitchProphet,
	MarketingMage,
	StrategyShaman,
	VentureVanguard,
}

// Valid reports whether c is one of the five known classes.
func (c QuestClass) Valid() bool {
	for _, known := range QuestClasses {
		if c == known {
			return true
		}
	}
	return false
}

// Stat bounds shared by the generator schema, the validator and the radar chart.
const (
	StatMin = 0
	StatMax = 100
)

// PlayerStats are the four 0–100 scores of a profile.
type PlayerStats struct {
	Innovation float64 `json:"innovation"`
	Resilience float64 `json:"resilience"`
	Leadership float64 `json:"leadership"`
	RiskTaking float64 `json:"riskTaking"`
}

// QuestProfile is the structured result of one generation call.
type QuestProfile struct {
	QuestClass QuestClass  `json:"questClass"`
	Stats      PlayerStats `json:"stats"`
	Bio        string      `json:"bio"`
}

// RegistrationInput is what the registrant typed into the form.
type RegistrationInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Passion string `json:"passion"`
}

// RegistrationData merges the registrant's identity with the generated profile.
// It only exists while a quest session is showing a result.
type RegistrationData struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         string      `json:"role"`
	QuestClass   QuestClass  `json:"questClass"`
	Stats        PlayerStats `json:"stats"`
	CharacterBio string      `json:"characterBio"`
}

// Phase is one stage of the event schedule shown on the landing page.
type Phase struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Tag         string `json:"tag"`
	Reward      string `json:"reward"`
	Position    int    `json:"position"`
}

// Registration is a finalized quest profile stored for downstream contact.
type Registration struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	QuestClass QuestClass  `json:"questClass"`
	Stats      PlayerStats `json:"stats"`
	Bio        string      `json:"bio"`
	AvatarURL  string      `json:"avatarUrl"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Countdown is the time left until registrations close.
type Countdown struct {
	Deadline time.Time `json:"deadline"`
	Days     int       `json:"days"`
	Hours    int       `json:"hours"`
	Minutes  int       `json:"minutes"`
	Seconds  int       `json:"seconds"`
	Expired  bool      `json:"expired"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
