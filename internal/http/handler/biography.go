package handler

import (
	"github.com/gofiber/fiber/v2"

	"pressroom/internal/service"
)

func biographyInput(c *fiber.Ctx) (service.BiographyInput, func(), error) {
	none := func() {}
	f, err := readFields(c)
	if err != nil {
		return service.BiographyInput{}, none, err
	}
	in := service.BiographyInput{
		Title:   f.str("title"),
		Content: f.str("content"),
	}
	if in.Sections, err = f.sections("sections"); err != nil {
		return in, none, err
	}
	img, closeImg, err := fileFrom(c, "image")
	if err != nil {
		return in, none, err
	}
	in.Image = img
	return in, closeImg, nil
}

// ListBiographies godoc
// @Summary List biography entries
// @Tags biography
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {array} model.Biography
// @Router /biography [get]
func ListBiographies(svc service.BiographyService) fiber.Handler {
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

// GetBiography godoc
// @Summary Get a biography entry
// @Tags biography
// @Produce json
// @Param id path string true "biography id"
// @Success 200 {object} model.Biography
// @Router /biography/{id} [get]
func GetBiography(svc service.BiographyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		b, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return ok(c, b)
	}
}

// CreateBiography godoc
// @Summary Create a biography entry (admin)
// @Description Accepts JSON or multipart; in multipart, sections is a JSON string.
// @Tags biography
// @Security BearerAuth
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} model.Biography
// @Router /biography [post]
func CreateBiography(svc service.BiographyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		in, done, err := biographyInput(c)
		if err != nil {
			return err
		}
		defer done()

		b, err := svc.Create(c.UserContext(), caller, in)
		if err != nil {
			return err
		}
		return ok(c, b)
	}
}

// UpdateBiography godoc
// @Summary Update a biography entry (admin)
// @Tags biography
// @Security BearerAuth
// @Accept json,mpfd
// @Produce json
// @Param id path string true "biography id"
// @Success 200 {object} model.Biography
// @Router /biography/{id} [put]
func UpdateBiography(svc service.BiographyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		in, done, err := biographyInput(c)
		if err != nil {
			return err
		}
		defer done()

		b, err := svc.Update(c.UserContext(), caller, id, in)
		if err != nil {
			return err
		}
		return ok(c, b)
	}
}

// DeleteBiography godoc
// @Summary Delete a biography entry (admin)
// @Tags biography
// @Security BearerAuth
// @Param id path string true "biography id"
// @Success 200
// @Router /biography/{id} [delete]
func DeleteBiography(svc service.BiographyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return deleted(c, id)
	}
}
