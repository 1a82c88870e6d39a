package repository

import (
	"time"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/posts"
	"github.com/goliatone/go-devconnect/profile"
	"github.com/google/uuid"
)

// Mongo documents keep ids as strings so they stay readable from the shell.

type userDoc struct {
	ID           string     `bson:"_id"`
	Name         string     `bson:"name"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash"`
	Avatar       string     `bson:"avatar,omitempty"`
	CreatedAt    *time.Time `bson:"created_at,omitempty"`
}

func toUserDoc(u *devconnect.User) userDoc {
	return userDoc{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDoc) model() *devconnect.User {
	return &devconnect.User{
		ID:           parseDocID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt,
	}
}

type socialDoc struct {
	Youtube   string `bson:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type experienceDoc struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	Location    string     `bson:"location,omitempty"`
	From        time.Time  `bson:"from"`
	To          *time.Time `bson:"to,omitempty"`
	Current     bool       `bson:"current"`
	Description string     `bson:"description,omitempty"`
}

type educationDoc struct {
	ID           string     `bson:"_id"`
	School       string     `bson:"school"`
	Degree       string     `bson:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy"`
	From         time.Time  `bson:"from"`
	To           *time.Time `bson:"to,omitempty"`
	Current      bool       `bson:"current"`
	Description  string     `bson:"description,omitempty"`
}

type profileDoc struct {
	ID             string          `bson:"_id"`
	UserID         string          `bson:"user_id"`
	Company        string          `bson:"company,omitempty"`
	Website        string          `bson:"website,omitempty"`
	Location       string          `bson:"location,omitempty"`
	Status         string          `bson:"status"`
	Skills         []string        `bson:"skills"`
	Bio            string          `bson:"bio,omitempty"`
	GithubUsername string          `bson:"githubusername,omitempty"`
	Social         socialDoc       `bson:"social"`
	Experience     []experienceDoc `bson:"experience"`
	Education      []educationDoc  `bson:"education"`
	Date           time.Time       `bson:"date"`
}

func toProfileDoc(p *profile.Profile) profileDoc {
	doc := profileDoc{
		ID:             p.ID.String(),
		UserID:         p.UserID.String(),
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         p.Skills,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Social:         socialDoc(p.Social),
		Experience:     make([]experienceDoc, 0, len(p.Experience)),
		Education:      make([]educationDoc, 0, len(p.Education)),
		Date:           p.Date,
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}

	for _, exp := range p.Experience {
		doc.Experience = append(doc.Experience, experienceDoc{
			ID:          exp.ID.String(),
			Title:       exp.Title,
			Company:     exp.Company,
			Location:    exp.Location,
			From:        exp.From,
			To:          exp.To,
			Current:     exp.Current,
			Description: exp.Description,
		})
	}

	for _, edu := range p.Education {
		doc.Education = append(doc.Education, educationDoc{
			ID:           edu.ID.String(),
			School:       edu.School,
			Degree:       edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
			From:         edu.From,
			To:           edu.To,
			Current:      edu.Current,
			Description:  edu.Description,
		})
	}
	return doc
}

func (d profileDoc) model() *profile.Profile {
	p := &profile.Profile{
		ID:             parseDocID(d.ID),
		UserID:         parseDocID(d.UserID),
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Status:         d.Status,
		Skills:         d.Skills,
		Bio:            d.Bio,
		GithubUsername: d.GithubUsername,
		Social:         profile.Social(d.Social),
		Experience:     make([]profile.Experience, 0, len(d.Experience)),
		Education:      make([]profile.Education, 0, len(d.Education)),
		Date:           d.Date,
	}

	for _, exp := range d.Experience {
		p.Experience = append(p.Experience, profile.Experience{
			ID:          parseDocID(exp.ID),
			Title:       exp.Title,
			Company:     exp.Company,
			Location:    exp.Location,
			From:        exp.From,
			To:          exp.To,
			Current:     exp.Current,
			Description: exp.Description,
		})
	}

	for _, edu := range d.Education {
		p.Education = append(p.Education, profile.Education{
			ID:           parseDocID(edu.ID),
			School:       edu.School,
			Degree:       edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
			From:         edu.From,
			To:           edu.To,
			Current:      edu.Current,
			Description:  edu.Description,
		})
	}
	return normalizeProfile(p)
}

type likeDoc struct {
	User string `bson:"user"`
}

type commentDoc struct {
	ID     string    `bson:"_id"`
	User   string    `bson:"user"`
	Text   string    `bson:"text"`
	Name   string    `bson:"name"`
	Avatar string    `bson:"avatar,omitempty"`
	Date   time.Time `bson:"date"`
}

type postDoc struct {
	ID       string       `bson:"_id"`
	UserID   string       `bson:"user"`
	Text     string       `bson:"text"`
	Name     string       `bson:"name"`
	Avatar   string       `bson:"avatar,omitempty"`
	Likes    []likeDoc    `bson:"likes"`
	Comments []commentDoc `bson:"comments"`
	Date     time.Time    `bson:"date"`
}

func toPostDoc(p *posts.Post) postDoc {
	doc := postDoc{
		ID:       p.ID.String(),
		UserID:   p.UserID.String(),
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    make([]likeDoc, 0, len(p.Likes)),
		Comments: make([]commentDoc, 0, len(p.Comments)),
		Date:     p.Date,
	}
	for _, like := range p.Likes {
		doc.Likes = append(doc.Likes, likeDoc{User: like.User.String()})
	}
	for _, c := range p.Comments {
		doc.Comments = append(doc.Comments, commentDoc{
			ID:     c.ID.String(),
			User:   c.User.String(),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date,
		})
	}
	return doc
}

func (d postDoc) model() *posts.Post {
	p := &posts.Post{
		ID:       parseDocID(d.ID),
		UserID:   parseDocID(d.UserID),
		Text:     d.Text,
		Name:     d.Name,
		Avatar:   d.Avatar,
		Likes:    make([]posts.Like, 0, len(d.Likes)),
		Comments: make([]posts.Comment, 0, len(d.Comments)),
		Date:     d.Date,
	}
	for _, like := range d.Likes {
		p.Likes = append(p.Likes, posts.Like{User: parseDocID(like.User)})
	}
	for _, c := range d.Comments {
		p.Comments = append(p.Comments, posts.Comment{
			ID:     parseDocID(c.ID),
			User:   parseDocID(c.User),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date,
		})
	}
	return p
}

func parseDocID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
