package posts

import (
	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// Controller serves the /api/posts endpoints
type Controller struct {
	service *Service
}

// NewController returns a post controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// RegisterRoutes mounts the post routes. Every route is protected.
func RegisterRoutes[T any](r router.Router[T], protected router.MiddlewareFunc, controller *Controller) {
	grp := r.Group("/api/posts")
	grp.Use(protected)

	grp.Post("/", controller.Create).SetName("posts.create")
	grp.Get("/", controller.List).SetName("posts.list")
	grp.Get("/:id", controller.Get).SetName("posts.get")
	grp.Delete("/:id", controller.Delete).SetName("posts.delete")

	grp.Put("/like/:id", controller.Like).SetName("posts.like")
	grp.Put("/unlike/:id", controller.Unlike).SetName("posts.unlike")

	grp.Post("/comment/:id", controller.Comment).SetName("posts.comment")
	grp.Delete("/comment/:id/:comment_id", controller.Uncomment).SetName("posts.uncomment")
}

// Create handles POST /api/posts
func (pc *Controller) Create(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	in := new(Input)
	if err := c.Bind(in); err != nil {
		return devconnect.NewBadInput("Invalid request body", err)
	}

	post, err := pc.service.Create(c.Context(), userID, *in)
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, post)
}

// List handles GET /api/posts
func (pc *Controller) List(c router.Context) error {
	posts, err := pc.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, posts)
}

// Get handles GET /api/posts/:id
func (pc *Controller) Get(c router.Context) error {
	post, err := pc.service.Get(c.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, post)
}

// Delete handles DELETE /api/posts/:id
func (pc *Controller) Delete(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := pc.service.Delete(c.Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(router.StatusOK, devconnect.MessageResponse{Msg: "Post removed"})
}

// Like handles PUT /api/posts/like/:id
func (pc *Controller) Like(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	likes, err := pc.service.Like(c.Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, likes)
}

// Unlike handles PUT /api/posts/unlike/:id
func (pc *Controller) Unlike(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	likes, err := pc.service.Unlike(c.Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, likes)
}

// Comment handles POST /api/posts/comment/:id
func (pc *Controller) Comment(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	in := new(Input)
	if err := c.Bind(in); err != nil {
		return devconnect.NewBadInput("Invalid request body", err)
	}

	comments, err := pc.service.Comment(c.Context(), userID, c.Param("id"), *in)
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, comments)
}

// Uncomment handles DELETE /api/posts/comment/:id/:comment_id
func (pc *Controller) Uncomment(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	comments, err := pc.service.Uncomment(c.Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, comments)
}

func currentUser(c router.Context) (uuid.UUID, error) {
	id, err := devconnect.CurrentUserID(c)
	if err != nil {
		return uuid.Nil, err
	}
	return devconnect.ParseUserID(id)
}
