// Package profilegen builds, sends and validates quest profile generation
// requests against a hosted Gemini-style generateContent endpoint.
package profilegen

import (
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
)

// MaxBioWords is the bio length the model is asked to stay under.
const MaxBioWords = 40

// Schema is the subset of the OpenAPI schema object accepted as a structured
// output constraint.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// Request is everything needed for one generation call except the model and
// credentials, which belong to the Client.
type Request struct {
	Prompt string
	Schema *Schema
}

// ProfileSchema is the structured output shape of a QuestProfile.
func ProfileSchema() *Schema {
	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"questClass": {Type: "STRING"},
			"stats": {
				Type: "OBJECT",
				Properties: map[string]*Schema{
					"innovation": {Type: "NUMBER"},
					"resilience": {Type: "NUMBER"},
					"leadership": {Type: "NUMBER"},
					"riskTaking": {Type: "NUMBER"},
				},
				Required: []string{"innovation", "resilience", "leadership", "riskTaking"},
			},
			"bio": {Type: "STRING"},
		},
		Required: []string{"questClass", "stats", "bio"},
	}
}

// NewRequest builds the generation request for one registrant. name and passion
// are embedded verbatim; callers validate them before getting here.
func NewRequest(name, passion string) Request {
	classes := make([]string, len(model.QuestClasses))
	for i, c := range model.QuestClasses {
		classes[i] = string(c)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User Name: %s. User Passion: %s.\n", name, passion)
	b.WriteString("Generate a gaming-style entrepreneur profile for this user.\n")
	fmt.Fprintf(&b, "Assign them exactly one of these classes: %s.\n", strings.Join(classes, ", "))
	fmt.Fprintf(&b, "Give them stats (%d-%d) for Innovation, Resilience, Leadership, and Risk-Taking.\n", model.StatMin, model.StatMax)
	fmt.Fprintf(&b, "Write a short, cool, gaming-themed bio (max %d words).", MaxBioWords)

	return Request{
		Prompt: b.String(),
		Schema: ProfileSchema(),
	}
}
