package profile

import (
	"time"

	"github.com/goliatone/go-devconnect"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Profile is a developer profile, one per user
type Profile struct {
	bun.BaseModel  `bun:"table:profiles,alias:prf"`
	ID             uuid.UUID               `bun:"id,pk" json:"id"`
	UserID         uuid.UUID               `bun:"user_id,notnull,unique" json:"-"`
	User           *devconnect.UserSummary `bun:"-" json:"user,omitempty"`
	Company        string                  `bun:"company" json:"company,omitempty"`
	Website        string                  `bun:"website" json:"website,omitempty"`
	Location       string                  `bun:"location" json:"location,omitempty"`
	Status         string                  `bun:"status,notnull" json:"status"`
	Skills         []string                `bun:"skills,type:text" json:"skills"`
	Bio            string                  `bun:"bio" json:"bio,omitempty"`
	GithubUsername string                  `bun:"githubusername" json:"githubusername,omitempty"`
	Social         Social                  `bun:"social,type:text" json:"social"`
	Experience     []Experience            `bun:"experience,type:text" json:"experience"`
	Education      []Education             `bun:"education,type:text" json:"education"`
	Date           time.Time               `bun:"date,notnull" json:"date"`
}

// Social holds the profile's social network links
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a job entry
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a school entry
type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// New returns an empty profile owned by userID
func New(userID uuid.UUID, now time.Time) *Profile {
	return &Profile{
		ID:         uuid.New(),
		UserID:     userID,
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		Date:       now,
	}
}

// Apply copies the provided input fields onto the profile. Empty scalar
// fields keep their stored value; the social links are replaced as a whole.
func (p *Profile) Apply(in Input) {
	setIfPresent(&p.Company, in.Company)
	setIfPresent(&p.Website, in.Website)
	setIfPresent(&p.Location, in.Location)
	setIfPresent(&p.Bio, in.Bio)
	setIfPresent(&p.Status, in.Status)
	setIfPresent(&p.GithubUsername, in.GithubUsername)

	if len(in.Skills) > 0 {
		p.Skills = append([]string{}, in.Skills...)
	}

	p.Social = Social{
		Youtube:   in.Youtube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		Linkedin:  in.Linkedin,
		Instagram: in.Instagram,
	}
}

// AddExperience prepends an entry and returns its generated id
func (p *Profile) AddExperience(exp Experience) uuid.UUID {
	exp.ID = uuid.New()
	if exp.Current {
		exp.To = nil
	}
	p.Experience = append([]Experience{exp}, p.Experience...)
	return exp.ID
}

// RemoveExperience drops the entry with the given id. Unknown ids are a no-op.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i, exp := range p.Experience {
		if exp.ID == id {
			p.Experience = append(p.Experience[:i:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// AddEducation prepends an entry and returns its generated id
func (p *Profile) AddEducation(edu Education) uuid.UUID {
	edu.ID = uuid.New()
	if edu.Current {
		edu.To = nil
	}
	p.Education = append([]Education{edu}, p.Education...)
	return edu.ID
}

// RemoveEducation drops the entry with the given id. Unknown ids are a no-op.
func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i, edu := range p.Education {
		if edu.ID == id {
			p.Education = append(p.Education[:i:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
