package handler

import (
	"github.com/gofiber/fiber/v2"

	"pressroom/internal/model"
	"pressroom/internal/service"
)

// Register godoc
// @Summary Register an account
// @Tags users
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "account"
// @Success 200 {object} service.AuthResult
// @Router /users/register [post]
func Register(svc service.UserService, role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := bindJSON(c, &in); err != nil {
			return err
		}
		res, err := svc.Register(c.UserContext(), in, role)
		if err != nil {
			return err
		}
		return ok(c, res)
	}
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "credentials"
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} errorPayload
// @Router /users/login [post]
func Login(svc service.UserService, requireAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := bindJSON(c, &in); err != nil {
			return err
		}
		res, err := svc.Login(c.UserContext(), in, requireAdmin)
		if err != nil {
			return err
		}
		return ok(c, res)
	}
}

// Profile returns the caller's own account.
// @Summary Current user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Router /users/profile [get]
func Profile(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		u, err := svc.Me(c.UserContext(), caller)
		if err != nil {
			return err
		}
		return ok(c, u)
	}
}

// UpdateProfile godoc
// @Summary Update name, email or password of the current user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.UpdateProfileInput true "fields to change"
// @Success 200 {object} model.User
// @Router /users/profile [put]
func UpdateProfile(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		var in service.UpdateProfileInput
		if err := bindJSON(c, &in); err != nil {
			return err
		}
		u, err := svc.UpdateProfile(c.UserContext(), caller, in)
		if err != nil {
			return err
		}
		return ok(c, u)
	}
}

// ListUsers godoc
// @Summary List accounts (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {array} model.User
// @Router /users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pageFrom(c)
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), p)
		if err != nil {
			return err
		}
		return okList(c, res)
	}
}

// GetUser godoc
// @Summary Get an account (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} model.User
// @Router /users/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return ok(c, u)
	}
}
