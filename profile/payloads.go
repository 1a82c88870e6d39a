package profile

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Input is the create-or-update profile payload
type Input struct {
	Company        string    `json:"company"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	Bio            string    `json:"bio"`
	Status         string    `json:"status"`
	GithubUsername string    `json:"githubusername"`
	Skills         SkillList `json:"skills"`
	Youtube        string    `json:"youtube"`
	Twitter        string    `json:"twitter"`
	Facebook       string    `json:"facebook"`
	Linkedin       string    `json:"linkedin"`
	Instagram      string    `json:"instagram"`
}

// Validate will run validation rules
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Status, validation.Required.Error("Status is required")),
		validation.Field(&in.Skills, validation.Required.Error("Skills is required")),
		validation.Field(&in.Website, is.URL.Error("Website must be a valid URL")),
	)
}

// SkillList decodes either a comma separated string or a JSON array
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler
func (s *SkillList) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		*s = ParseSkills(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*s = ParseSkills(strings.Join(list, ","))
	return nil
}

// ParseSkills splits a comma separated list, trimming entries and dropping
// empty ones.
func ParseSkills(raw string) SkillList {
	out := SkillList{}
	for _, skill := range strings.Split(raw, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

// ExperienceInput is the add experience payload
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Validate will run validation rules
func (in ExperienceInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("Title is required")),
		validation.Field(&in.Company, validation.Required.Error("Company is required")),
		validation.Field(&in.From,
			validation.Required.Error("From date is required"),
			validation.By(pastDate("From date")),
		),
		validation.Field(&in.To, validation.By(validDate("To date"))),
	)
}

// Experience converts the validated payload into a model entry
func (in ExperienceInput) Experience() (Experience, error) {
	from, to, err := parseRange(in.From, in.To, in.Current)
	if err != nil {
		return Experience{}, err
	}
	return Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}, nil
}

// EducationInput is the add education payload
type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// Validate will run validation rules
func (in EducationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.School, validation.Required.Error("School is required")),
		validation.Field(&in.Degree, validation.Required.Error("Degree is required")),
		validation.Field(&in.FieldOfStudy, validation.Required.Error("Field of study is required")),
		validation.Field(&in.From,
			validation.Required.Error("From date is required"),
			validation.By(pastDate("From date")),
		),
		validation.Field(&in.To, validation.By(validDate("To date"))),
	)
}

// Education converts the validated payload into a model entry
func (in EducationInput) Education() (Education, error) {
	from, to, err := parseRange(in.From, in.To, in.Current)
	if err != nil {
		return Education{}, err
	}
	return Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}, nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate accepts a calendar date or an RFC3339 timestamp
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func validDate(label string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := ParseDate(s); err != nil {
			return validation.NewError("validation_date", label+" must be a valid date")
		}
		return nil
	}
}

func pastDate(label string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		t, err := ParseDate(s)
		if err != nil {
			return validation.NewError("validation_date", label+" must be a valid date")
		}
		if t.After(time.Now()) {
			return validation.NewError("validation_date_future", label+" cannot be in the future")
		}
		return nil
	}
}

func parseRange(fromRaw, toRaw string, current bool) (time.Time, *time.Time, error) {
	from, err := ParseDate(fromRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	if current || toRaw == "" {
		return from, nil, nil
	}
	to, err := ParseDate(toRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	return from, &to, nil
}
