package handler

import (
	"github.com/gofiber/fiber/v2"

	"pressroom/internal/repository"
	"pressroom/internal/service"
)

func bannerInput(c *fiber.Ctx) (service.BannerInput, func(), error) {
	none := func() {}
	f, err := readFields(c)
	if err != nil {
		return service.BannerInput{}, none, err
	}
	in := service.BannerInput{
		Title:    f.str("title"),
		Subtitle: f.str("subtitle"),
		Link:     f.str("link"),
	}
	if in.Position, err = f.integer("position"); err != nil {
		return in, none, err
	}
	if in.Active, err = f.boolean("active"); err != nil {
		return in, none, err
	}
	img, closeImg, err := fileFrom(c, "image")
	if err != nil {
		return in, none, err
	}
	in.Image = img
	return in, closeImg, nil
}

// ListBanners godoc
// @Summary List gallery banners ordered by position
// @Tags banners
// @Produce json
// @Param active query bool false "only active or inactive banners"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {array} model.Banner
// @Router /banners [get]
func ListBanners(svc service.BannerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pageFrom(c)
		if err != nil {
			return err
		}
		var filter repository.BannerFilter
		if raw := c.Query("active"); raw != "" {
			active := c.QueryBool("active")
			filter.Active = &active
		}
		res, err := svc.List(c.UserContext(), filter, p)
		if err != nil {
			return err
		}
		return okList(c, res)
	}
}

// GetBanner godoc
// @Summary Get a banner
// @Tags banners
// @Produce json
// @Param id path string true "banner id"
// @Success 200 {object} model.Banner
// @Router /banners/{id} [get]
func GetBanner(svc service.BannerService) fiber.Handler {
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

// CreateBanner godoc
// @Summary Create a banner (admin)
// @Tags banners
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param title formData string false "title"
// @Param subtitle formData string false "subtitle"
// @Param link formData string false "link"
// @Param position formData int false "position"
// @Param active formData bool false "active"
// @Param image formData file true "banner image"
// @Success 200 {object} model.Banner
// @Router /banners [post]
func CreateBanner(svc service.BannerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		in, done, err := bannerInput(c)
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

// UpdateBanner godoc
// @Summary Update a banner (admin)
// @Tags banners
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "banner id"
// @Success 200 {object} model.Banner
// @Router /banners/{id} [put]
func UpdateBanner(svc service.BannerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		in, done, err := bannerInput(c)
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

// DeleteBanner godoc
// @Summary Delete a banner (admin)
// @Tags banners
// @Security BearerAuth
// @Param id path string true "banner id"
// @Success 200
// @Router /banners/{id} [delete]
func DeleteBanner(svc service.BannerService) fiber.Handler {
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
