package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"pressroom/internal/auth"
	"pressroom/internal/http/middleware"
	"pressroom/internal/model"
	"pressroom/internal/repository"
	"pressroom/internal/service"
)

// articleView adds the caller's like state to an article.
type articleView struct {
	*model.Article
	LikedByMe bool `json:"likedByMe"`
}

func viewArticle(c *fiber.Ctx, a *model.Article) articleView {
	v := articleView{Article: a}
	if id, ok := middleware.IdentityFrom(c); ok {
		v.LikedByMe = a.HasLike(id.ID)
	}
	return v
}

func articleInput(c *fiber.Ctx) (service.ArticleInput, func(), error) {
	f, err := readFields(c)
	if err != nil {
		return service.ArticleInput{}, func() {}, err
	}
	in := service.ArticleInput{
		Title:    f.str("title"),
		Content:  f.str("content"),
		Summary:  f.str("summary"),
		Category: f.str("category"),
		Tags:     f.list("tags"),
	}
	img, closeImg, err := fileFrom(c, "image")
	if err != nil {
		return in, func() {}, err
	}
	in.Image = img
	return in, closeImg, nil
}

// ListArticles godoc
// @Summary List articles
// @Tags articles
// @Produce json
// @Param category query string false "category"
// @Param tag query string false "tag"
// @Param search query string false "title search"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {array} model.Article
// @Router /articles [get]
func ListArticles(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := pageFrom(c)
		if err != nil {
			return err
		}
		filter := repository.ArticleFilter{
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
			Search:   c.Query("search"),
		}
		res, err := svc.List(c.UserContext(), filter, p)
		if err != nil {
			return err
		}
		views := make([]articleView, len(res.Items))
		for i := range res.Items {
			views[i] = viewArticle(c, &res.Items[i])
		}
		return okList(c, &service.ListResult[articleView]{
			Items: views, Total: res.Total, Page: res.Page, Limit: res.Limit, Pages: res.Pages,
		})
	}
}

// GetArticle godoc
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} model.Article
// @Failure 404 {object} errorPayload
// @Router /articles/{id} [get]
func GetArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return ok(c, viewArticle(c, a))
	}
}

// CreateArticle godoc
// @Summary Create an article
// @Tags articles
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param title formData string true "title"
// @Param content formData string true "content"
// @Param summary formData string false "summary"
// @Param category formData string false "category"
// @Param tags formData string false "comma separated tags"
// @Param image formData file false "cover image"
// @Success 200 {object} model.Article
// @Router /articles [post]
func CreateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		in, done, err := articleInput(c)
		if err != nil {
			return err
		}
		defer done()

		a, err := svc.Create(c.UserContext(), caller, in)
		if err != nil {
			return err
		}
		return ok(c, viewArticle(c, a))
	}
}

// UpdateArticle godoc
// @Summary Update an article (author or admin)
// @Tags articles
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} model.Article
// @Router /articles/{id} [put]
func UpdateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		in, done, err := articleInput(c)
		if err != nil {
			return err
		}
		defer done()

		a, err := svc.Update(c.UserContext(), caller, id, in)
		if err != nil {
			return err
		}
		return ok(c, viewArticle(c, a))
	}
}

// DeleteArticle godoc
// @Summary Delete an article (author or admin)
// @Tags articles
// @Security BearerAuth
// @Param id path string true "article id"
// @Success 200
// @Router /articles/{id} [delete]
func DeleteArticle(svc service.ArticleService) fiber.Handler {
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

// LikeArticle godoc
// @Summary Like an article; repeating is a no-op
// @Tags articles
// @Security BearerAuth
// @Param id path string true "article id"
// @Success 200 {object} model.Article
// @Router /articles/{id}/like [post]
func LikeArticle(svc service.ArticleService) fiber.Handler {
	return likeHandler(func(ctx context.Context, caller auth.Identity, id string) (*model.Article, error) {
		return svc.Like(ctx, caller, id)
	})
}

// UnlikeArticle godoc
// @Summary Remove the caller's like
// @Tags articles
// @Security BearerAuth
// @Param id path string true "article id"
// @Success 200 {object} model.Article
// @Router /articles/{id}/like [delete]
func UnlikeArticle(svc service.ArticleService) fiber.Handler {
	return likeHandler(func(ctx context.Context, caller auth.Identity, id string) (*model.Article, error) {
		return svc.Unlike(ctx, caller, id)
	})
}

func likeHandler(fn func(ctx context.Context, caller auth.Identity, id string) (*model.Article, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerOf(c)
		if err != nil {
			return err
		}
		id, err := idParam(c, "id")
		if err != nil {
			return err
		}
		a, err := fn(c.UserContext(), caller, id)
		if err != nil {
			return err
		}
		return ok(c, viewArticle(c, a))
	}
}
