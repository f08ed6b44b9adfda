package quest

import (
	"net/url"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/bottts-neutral/svg"

// Axis is one spoke of the radar chart.
type Axis struct {
	Subject  string  `json:"subject"`
	Value    float64 `json:"value"`
	FullMark float64 `json:"fullMark"`
}

// Presentation is everything the result view renders.
type Presentation struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	QuestClass model.QuestClass `json:"questClass"`
	Bio        string           `json:"bio"`
	Radar      []Axis           `json:"radar"`
	AvatarURL  string           `json:"avatarUrl"`
}

// Present derives the render contract from registration data.
func Present(d model.RegistrationData) Presentation {
	return Presentation{
		Name:       d.Name,
		Email:      d.Email,
		Role:       d.Role,
		QuestClass: d.QuestClass,
		Bio:        d.CharacterBio,
		Radar:      RadarAxes(d.Stats),
		AvatarURL:  AvatarURL(d.Name),
	}
}

// RadarAxes returns the stats in chart order: Innovation, Resilience,
// Leadership, Risk.
func RadarAxes(s model.PlayerStats) []Axis {
	return []Axis{
		{Subject: "Innovation", Value: s.Innovation, FullMark: model.StatMax},
		{Subject: "Resilience", Value: s.Resilience, FullMark: model.StatMax},
		{Subject: "Leadership", Value: s.Leadership, FullMark: model.StatMax},
		{Subject: "Risk", Value: s.RiskTaking, FullMark: model.StatMax},
	}
}

// AvatarURL is keyed on the name alone, so the same name always gets the same
// avatar.
func AvatarURL(name string) string {
	return avatarBaseURL + "?seed=" + url.QueryEscape(name) + "&backgroundColor=000000"
}
