package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is a user's wall post
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:pst"`
	ID            uuid.UUID `bun:"id,pk" json:"id"`
	UserID        uuid.UUID `bun:"user_id,notnull" json:"user"`
	Text          string    `bun:"text,notnull" json:"text"`
	Name          string    `bun:"name" json:"name"`
	Avatar        string    `bun:"avatar" json:"avatar,omitempty"`
	Likes         []Like    `bun:"likes,type:text" json:"likes"`
	Comments      []Comment `bun:"comments,type:text" json:"comments"`
	Date          time.Time `bun:"date,notnull" json:"date"`
}

// Like records a user liking a post
type Like struct {
	User uuid.UUID `json:"user"`
}

// Comment is a reply on a post
type Comment struct {
	ID     uuid.UUID `json:"id"`
	User   uuid.UUID `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
	Date   time.Time `json:"date"`
}

// LikedBy reports whether userID already liked the post
func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, like := range p.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}

// Like adds userID to the likes, newest first
func (p *Post) Like(userID uuid.UUID) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{User: userID}}, p.Likes...)
	return nil
}

// Unlike removes userID from the likes
func (p *Post) Unlike(userID uuid.UUID) error {
	for i, like := range p.Likes {
		if like.User == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

// AddComment prepends a comment and returns it with its generated id
func (p *Post) AddComment(c Comment) Comment {
	c.ID = uuid.New()
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// RemoveComment deletes a comment. Only its author may remove it.
func (p *Post) RemoveComment(commentID, userID uuid.UUID) error {
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.User != userID {
			return ErrNotAuthorized
		}
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrCommentNotFound
}
