package profile

import (
	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// Controller serves the /api/profile endpoints
type Controller struct {
	service *Service
	logger  devconnect.Logger
}

// NewController returns a profile controller
func NewController(service *Service, logger devconnect.Logger) *Controller {
	if logger == nil {
		logger = devconnect.DefaultLogger()
	}
	return &Controller{service: service, logger: logger}
}

// RegisterRoutes mounts the profile routes under r. protected guards
// the routes that act on the current user.
func RegisterRoutes[T any](r router.Router[T], protected router.MiddlewareFunc, controller *Controller) {
	grp := r.Group("/api/profile")

	grp.Get("/me", controller.Me, protected).SetName("profile.me")
	grp.Post("/", controller.Upsert, protected).SetName("profile.upsert")
	grp.Get("/", controller.List).SetName("profile.list")
	grp.Get("/user/:id", controller.ByUser).SetName("profile.user")
	grp.Delete("/", controller.Delete, protected).SetName("profile.delete")

	grp.Put("/experience", controller.AddExperience, protected).SetName("profile.experience.add")
	grp.Delete("/experience/:exp_id", controller.RemoveExperience, protected).SetName("profile.experience.remove")

	grp.Put("/education", controller.AddEducation, protected).SetName("profile.education.add")
	grp.Delete("/education/:edu_id", controller.RemoveEducation, protected).SetName("profile.education.remove")

	grp.Get("/github/:username", controller.Github).SetName("profile.github")
}

// Me handles GET /api/profile/me
func (pc *Controller) Me(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	p, err := pc.service.Me(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, p)
}

// Upsert handles POST /api/profile
func (pc *Controller) Upsert(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	in := new(Input)
	if err := c.Bind(in); err != nil {
		return devconnect.NewBadInput("Invalid request body", err)
	}

	p, err := pc.service.Upsert(c.Context(), userID, *in)
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, p)
}

// List handles GET /api/profile
func (pc *Controller) List(c router.Context) error {
	profiles, err := pc.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, profiles)
}

// ByUser handles GET /api/profile/user/:id
func (pc *Controller) ByUser(c router.Context) error {
	p, err := pc.service.ByUserID(c.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, p)
}

// Delete handles DELETE /api/profile
func (pc *Controller) Delete(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := pc.service.DeleteAccount(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(router.StatusOK, devconnect.MessageResponse{Msg: "User deleted"})
}

// AddExperience handles PUT /api/profile/experience
func (pc *Controller) AddExperience(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	in := new(ExperienceInput)
	if err := c.Bind(in); err != nil {
		return devconnect.NewBadInput("Invalid request body", err)
	}

	p, err := pc.service.AddExperience(c.Context(), userID, *in)
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id
func (pc *Controller) RemoveExperience(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	p, err := pc.service.RemoveExperience(c.Context(), userID, c.Param("exp_id"))
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, p)
}

// AddEducation handles PUT /api/profile/education
func (pc *Controller) AddEducation(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	in := new(EducationInput)
	if err := c.Bind(in); err != nil {
		return devconnect.NewBadInput("Invalid request body", err)
	}

	p, err := pc.service.AddEducation(c.Context(), userID, *in)
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id
func (pc *Controller) RemoveEducation(c router.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	p, err := pc.service.RemoveEducation(c.Context(), userID, c.Param("edu_id"))
	if err != nil {
		return err
	}
	return c.JSON(router.StatusOK, p)
}

// Github handles GET /api/profile/github/:username
func (pc *Controller) Github(c router.Context) error {
	repos, err := pc.service.GithubRepos(c.Context(), c.Param("username"))
	if err != nil {
		pc.logger.Debug("github lookup failed", "username", c.Param("username"), "error", err)
		return err
	}
	return c.JSON(router.StatusOK, repos)
}

func currentUser(c router.Context) (uuid.UUID, error) {
	id, err := devconnect.CurrentUserID(c)
	if err != nil {
		return uuid.Nil, err
	}
	return devconnect.ParseUserID(id)
}
