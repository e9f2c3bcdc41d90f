package handler

import (
	"github.com/gofiber/fiber/v2"

	"pressroom/internal/service"
)

// ListComments godoc
// @Summary List comments of an article, oldest first
// @Tags comments
// @Produce json
// @Param articleId path string true "article id"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {array} model.Comment
// @Router /comments/{articleId} [get]
func ListComments(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		articleID, err := idParam(c, "articleId")
		if err != nil {
			return err
		}
		p, err := pageFrom(c)
		if err != nil {
			return err
		}
		res, err := svc.ListByArticle(c.UserContext(), articleID, p)
		if err != nil {
			return err
		}
		return okList(c, res)
	}
}

// GetComment godoc
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param id path string true "comment id"
// @Success 200 {object} model.Comment
// @Router /comments/comment/{id} [get]
func GetComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		cm, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return ok(c, cm)
	}
}

// CreateComment godoc
// @Summary Comment on an article
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param articleId path string true "article id"
// @Param body body service.CommentInput true "comment"
// @Success 200 {object} model.Comment
// @Router /comments/{articleId} [post]
func CreateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		articleID, err := idParam(c, "articleId")
		if err != nil {
			return err
		}
		var in service.CommentInput
		if err := bindJSON(c, &in); err != nil {
			return err
		}
		cm, err := svc.Create(c.UserContext(), caller, articleID, in)
		if err != nil {
			return err
		}
		return ok(c, cm)
	}
}

// UpdateComment godoc
// @Summary Edit a comment (owner or admin)
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "comment id"
// @Param body body service.CommentInput true "comment"
// @Success 200 {object} model.Comment
// @Router /comments/comment/{id} [put]
func UpdateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		var in service.CommentInput
		if err := bindJSON(c, &in); err != nil {
			return err
		}
		cm, err := svc.Update(c.UserContext(), caller, id, in)
		if err != nil {
			return err
		}
		return ok(c, cm)
	}
}

// DeleteComment godoc
// @Summary Delete a comment (owner or admin)
// @Tags comments
// @Security BearerAuth
// @Param id path string true "comment id"
// @Success 200
// @Router /comments/comment/{id} [delete]
func DeleteComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), caller, id); err != nil {
			return err
		}
		return deleted(c, id)
	}
}
