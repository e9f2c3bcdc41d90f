package handler

import (
	"github.com/gofiber/fiber/v2"

	"pressroom/internal/http/middleware"
	"pressroom/internal/model"
	"pressroom/internal/service"
)

// Services bundles what the routes delegate to.
type Services struct {
	Users        service.UserService
	Articles     service.ArticleService
	Banners      service.BannerService
	Biographies  service.BiographyService
	Publications service.PublicationService
	Comments     service.CommentService
	Media        service.MediaService
}

// RegisterRoutes attaches every API route to app. Auth gates run before any
// body parsing or upload.
func RegisterRoutes(app *fiber.App, db Pinger, tokens middleware.TokenVerifier, svc Services) {
	authn := middleware.Authenticate(tokens)
	admin := []fiber.Handler{authn, middleware.RequireAdmin()}
	optional := middleware.OptionalAuth(tokens)

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	users := app.Group("/users")
	users.Post("/register", Register(svc.Users, model.RoleUser))
	users.Post("/login", Login(svc.Users, false))
	users.Post("/admin/register", Register(svc.Users, model.RoleAdmin))
	users.Post("/admin/login", Login(svc.Users, true))
	users.Get("/profile", authn, Profile(svc.Users))
	users.Put("/profile", authn, UpdateProfile(svc.Users))
	users.Get("/", append(admin, ListUsers(svc.Users))...)
	users.Get("/:id", append(admin, GetUser(svc.Users))...)

	articles := app.Group("/articles")
	articles.Get("/", optional, ListArticles(svc.Articles))
	articles.Get("/:id", optional, GetArticle(svc.Articles))
	articles.Post("/", authn, CreateArticle(svc.Articles))
	articles.Put("/:id", authn, UpdateArticle(svc.Articles))
	articles.Delete("/:id", authn, DeleteArticle(svc.Articles))
	articles.Post("/:id/like", authn, LikeArticle(svc.Articles))
	articles.Delete("/:id/like", authn, UnlikeArticle(svc.Articles))

	comments := app.Group("/comments")
	comments.Get("/comment/:id", GetComment(svc.Comments))
	comments.Put("/comment/:id", authn, UpdateComment(svc.Comments))
	comments.Delete("/comment/:id", authn, DeleteComment(svc.Comments))
	comments.Get("/:articleId", ListComments(svc.Comments))
	comments.Post("/:articleId", authn, CreateComment(svc.Comments))

	banners := app.Group("/banners")
	banners.Get("/", ListBanners(svc.Banners))
	banners.Get("/:id", GetBanner(svc.Banners))
	banners.Post("/", append(admin, CreateBanner(svc.Banners))...)
	banners.Put("/:id", append(admin, UpdateBanner(svc.Banners))...)
	banners.Delete("/:id", append(admin, DeleteBanner(svc.Banners))...)

	bio := app.Group("/biography")
	bio.Get("/", ListBiographies(svc.Biographies))
	bio.Get("/:id", GetBiography(svc.Biographies))
	bio.Post("/", append(admin, CreateBiography(svc.Biographies))...)
	bio.Put("/:id", append(admin, UpdateBiography(svc.Biographies))...)
	bio.Delete("/:id", append(admin, DeleteBiography(svc.Biographies))...)

	pubs := app.Group("/publications")
	pubs.Get("/", ListPublications(svc.Publications))
	pubs.Get("/:id", GetPublication(svc.Publications))
	pubs.Post("/", append(admin, CreatePublication(svc.Publications))...)
	pubs.Put("/:id", append(admin, UpdatePublication(svc.Publications))...)
	pubs.Delete("/:id", append(admin, DeletePublication(svc.Publications))...)

	upload := app.Group("/upload", admin...)
	upload.Get("/", ListMedia(svc.Media))
	upload.Post("/image", UploadImage(svc.Media))
	upload.Post("/images", UploadImages(svc.Media))
	upload.Post("/pdf", UploadPDF(svc.Media))
	upload.Get("/:id", GetMedia(svc.Media))
	upload.Delete("/:id", DeleteMedia(svc.Media))
}
