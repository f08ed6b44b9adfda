package profilegen

import (
	"bytes"
	"encoding/json"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
)

// wireProfile mirrors QuestProfile with pointers so missing fields are visible.
type wireProfile struct {
	QuestClass *string    `json:"questClass"`
	Stats      *wireStats `json:"stats"`
	Bio        *string    `json:"bio"`
}

type wireStats struct {
	Innovation *float64 `json:"innovation"`
	Resilience *float64 `json:"resilience"`
	Leadership *float64 `json:"leadership"`
	RiskTaking *float64 `json:"riskTaking"`
}

// ParseProfile decodes and validates the model's JSON text. Out-of-range stats
// and unknown classes are rejected, never clamped.
func ParseProfile(text []byte) (model.QuestProfile, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		return model.QuestProfile{}, &Error{Kind: KindEmpty, Detail: "no profile text in response"}
	}
	if !json.Valid(text) {
		return model.QuestProfile{}, &Error{Kind: KindMalformed, Detail: "response text is not valid JSON"}
	}

	var wp wireProfile
	if err := json.Unmarshal(text, &wp); err != nil {
		return model.QuestProfile{}, &Error{Kind: KindSchema, Detail: "unexpected field type", Cause: err}
	}

	switch {
	case wp.QuestClass == nil:
		return model.QuestProfile{}, schemaError("missing questClass")
	case wp.Stats == nil:
		return model.QuestProfile{}, schemaError("missing stats")
	case wp.Bio == nil:
		return model.QuestProfile{}, schemaError("missing bio")
	}

	class := model.QuestClass(*wp.QuestClass)
	if !class.Valid() {
		return model.QuestProfile{}, schemaError("unknown questClass %q", *wp.QuestClass)
	}

	stats, err := wp.Stats.validate()
	if err != nil {
		return model.QuestProfile{}, err
	}

	return model.QuestProfile{
		QuestClass: class,
		Stats:      stats,
		Bio:        *wp.Bio,
	}, nil
}

func (s *wireStats) validate() (model.PlayerStats, error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"innovation", s.Innovation},
		{"resilience", s.Resilience},
		{"leadership", s.Leadership},
		{"riskTaking", s.RiskTaking},
	}
	for _, f := range fields {
		if f.value == nil {
			return model.PlayerStats{}, schemaError("missing stats.%s", f.name)
		}
		if *f.value < model.StatMin || *f.value > model.StatMax {
			return model.PlayerStats{}, schemaError("stats.%s=%v outside [%d,%d]", f.name, *f.value, model.StatMin, model.StatMax)
		}
	}
	return model.PlayerStats{
		Innovation: *s.Innovation,
		Resilience: *s.Resilience,
		Leadership: *s.Leadership,
		RiskTaking: *s.RiskTaking,
	}, nil
}
