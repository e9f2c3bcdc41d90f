package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"pressroom/internal/model"
	"pressroom/internal/service"
)

// ListMedia godoc
// @Summary List uploaded media (admin)
// @Tags upload
// @Security BearerAuth
// @Produce json
// @Param resourceType query string false "image, pdf or video"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {array} model.Media
// @Router /upload [get]
func ListMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pageFrom(c)
		if err != nil {
			return err
		}
		rt := model.ResourceType(c.Query("resourceType"))
		switch rt {
		case "", model.ResourceImage, model.ResourcePDF, model.ResourceVideo:
		default:
			return service.NewValidationError("resourceType", "must be one of image, pdf, video")
		}
		res, err := svc.List(c.UserContext(), rt, p)
		if err != nil {
			return err
		}
		return okList(c, res)
	}
}

// GetMedia godoc
// @Summary Get a media record (admin)
// @Tags upload
// @Security BearerAuth
// @Produce json
// @Param id path string true "media id"
// @Success 200 {object} model.Media
// @Router /upload/{id} [get]
func GetMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return ok(c, m)
	}
}

// UploadImage godoc
// @Summary Upload one JPEG or PNG (admin)
// @Tags upload
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param image formData file true "image"
// @Success 200 {object} model.Media
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /upload/image [post]
func UploadImage(svc service.MediaService) fiber.Handler {
	return uploadOne("image", func(ctx context.Context, f *service.FileInput, uploader string) (*model.Media, error) {
		return svc.UploadImage(ctx, f, uploader)
	})
}

// UploadPDF godoc
// @Summary Upload one PDF (admin)
// @Tags upload
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param pdf formData file true "PDF"
// @Success 200 {object} model.Media
// @Router /upload/pdf [post]
func UploadPDF(svc service.MediaService) fiber.Handler {
	return uploadOne("pdf", func(ctx context.Context, f *service.FileInput, uploader string) (*model.Media, error) {
		return svc.UploadPDF(ctx, f, uploader)
	})
}

func uploadOne(field string, upload func(context.Context, *service.FileInput, string) (*model.Media, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		f, done, err := fileFrom(c, field)
		if err != nil {
			return err
		}
		defer done()

		m, err := upload(c.UserContext(), f, caller.ID)
		if err != nil {
			return err
		}
		return ok(c, m)
	}
}

// UploadImages godoc
// @Summary Upload several images at once (admin); all or nothing
// @Tags upload
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param images formData file true "images"
// @Success 200 {array} model.Media
// @Router /upload/images [post]
func UploadImages(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}

		var files []*service.FileInput
		if form, err := c.MultipartForm(); err == nil {
			for _, fh := range form.File["images"] {
				f, done, err := openPart(fh)
				if err != nil {
					return err
				}
				defer done()
				files = append(files, f)
			}
		}

		items, err := svc.UploadImages(c.UserContext(), files, caller.ID)
		if err != nil {
			return err
		}
		return ok(c, items)
	}
}

// DeleteMedia godoc
// @Summary Delete a media record and its remote object (admin)
// @Tags upload
// @Security BearerAuth
// @Param id path string true "media id"
// @Success 200
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /upload/{id} [delete]
func DeleteMedia(svc service.MediaService) fiber.Handler {
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
