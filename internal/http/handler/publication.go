package handler

import (
	"github.com/gofiber/fiber/v2"

	"pressroom/internal/service"
)

func publicationInput(c *fiber.Ctx) (service.PublicationInput, func(), error) {
	none := func() {}
	f, err := readFields(c)
	if err != nil {
		return service.PublicationInput{}, none, err
	}
	in := service.PublicationInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Authors:     f.list("authors"),
	}
	if in.PublishedAt, err = f.date("publishedAt"); err != nil {
		return in, none, err
	}
	pdf, closePDF, err := fileFrom(c, "pdf")
	if err != nil {
		return in, none, err
	}
	in.PDF = pdf
	return in, closePDF, nil
}

// ListPublications godoc
// @Summary List publications, newest first
// @Tags publications
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {array} model.Publication
// @Router /publications [get]
func ListPublications(svc service.PublicationService) fiber.Handler {
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

// GetPublication godoc
// @Summary Get a publication
// @Tags publications
// @Produce json
// @Param id path string true "publication id"
// @Success 200 {object} model.Publication
// @Router /publications/{id} [get]
func GetPublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return ok(c, p)
	}
}

// CreatePublication godoc
// @Summary Create a publication (admin)
// @Tags publications
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param title formData string true "title"
// @Param description formData string false "description"
// @Param authors formData string false "comma separated authors"
// @Param publishedAt formData string false "YYYY-MM-DD"
// @Param pdf formData file true "PDF file"
// @Success 200 {object} model.Publication
// @Failure 400 {object} errorPayload
// @Router /publications [post]
func CreatePublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		in, done, err := publicationInput(c)
		if err != nil {
			return err
		}
		defer done()

		p, err := svc.Create(c.UserContext(), caller, in)
		if err != nil {
			return err
		}
		return ok(c, p)
	}
}

// UpdatePublication godoc
// @Summary Update a publication (admin)
// @Tags publications
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "publication id"
// @Success 200 {object} model.Publication
// @Router /publications/{id} [put]
func UpdatePublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		in, done, err := publicationInput(c)
		if err != nil {
			return err
		}
		defer done()

		p, err := svc.Update(c.UserContext(), caller, id, in)
		if err != nil {
			return err
		}
		return ok(c, p)
	}
}

// DeletePublication godoc
// @Summary Delete a publication (admin)
// @Tags publications
// @Security BearerAuth
// @Param id path string true "publication id"
// @Success 200
// @Router /publications/{id} [delete]
func DeletePublication(svc service.PublicationService) fiber.Handler {
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
