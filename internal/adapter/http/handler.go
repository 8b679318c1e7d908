package http

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	repo "devb-web/internal/adapter/repository"
	"devb-web/internal/banner"
	"devb-web/internal/common"
	"devb-web/internal/compare"
	"devb-web/internal/domain"
	"devb-web/internal/resume"
	"devb-web/internal/validator"
)

const (
	VisitorCookie = "devb_visitor"
	visitorLocal  = "visitor"
)

// Source is everything the pages read from the Profile API and GitHub.
type Source interface {
	repo.ProfileSource
	compare.Source
	validator.Lookuper
}

type ResumeGenerator interface {
	Generate(ctx context.Context, username string) ([]byte, error)
}

// BannerStorage opens the local storage of one visitor.
type BannerStorage func(visitorID string) banner.Storage

type Handler struct {
	source     Source
	resumes    ResumeGenerator
	validators *validator.Registry
	banners    BannerStorage
	pages      *pages
	logger     *slog.Logger
}

func NewHandler(src Source, resumes ResumeGenerator, validators *validator.Registry, banners BannerStorage, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if banners == nil {
		mem := banner.NewMemoryStorage()
		banners = func(string) banner.Storage { return mem }
	}
	return &Handler{
		source:     src,
		resumes:    resumes,
		validators: validators,
		banners:    banners,
		pages:      newPages(logger),
		logger:     logger,
	}
}

// NewApp builds the fiber app with every route registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          90 * time.Second,
		ErrorHandler:          h.errorHandler,
	})
	h.Register(app)
	return app
}

func (h *Handler) Register(app *fiber.App) {
	app.Use(h.visitor)

	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	api.Get("/resume", h.Resume)
	api.Get("/validate/state", h.ValidateState)
	api.Get("/validate/:username", h.ValidateUsername)
	api.Post("/validate/input", h.ValidateInput)
	api.Post("/validate/confirm", h.ValidateConfirm)
	api.Get("/banner", h.Banner)
	api.Post("/banner/dismiss", h.DismissBanner)

	app.Get("/", h.Landing)
	app.Get("/meme", h.Meme)
	app.Get("/:username", h.Portfolio)
}

// visitor assigns a stable id cookie on first request.
func (h *Handler) visitor(c *fiber.Ctx) error {
	id := c.Cookies(VisitorCookie)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
		c.Cookie(&fiber.Cookie{
			Name:     VisitorCookie,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	c.Locals(visitorLocal, id)
	return c.Next()
}

func visitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(visitorLocal).(string)
	return id
}

func (h *Handler) bannerStore(c *fiber.Ctx) *banner.Store {
	return banner.NewStore(h.banners(visitorID(c)), h.logger)
}

func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		h.logger.Error("http: request failed", "path", c.Path(), "error", err)
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(code).SendString(err.Error())
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) Resume(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username is required"})
	}
	if !validator.ValidFormat(username) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validator.FormatInvalid.Message()})
	}

	pdf, err := h.resumes.Generate(c.UserContext(), username)
	if err != nil {
		h.logger.Error("http: resume generation failed", "username", username, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate resume"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+resume.FileName(username)+`"`)
	return c.Send(pdf)
}

func (h *Handler) ValidateUsername(c *fiber.Ctx) error {
	return c.JSON(validator.Check(c.UserContext(), h.source, c.Params("username")))
}

type inputReq struct {
	Value string `json:"value" form:"value"`
}

func (h *Handler) ValidateInput(c *fiber.Ctx) error {
	var req inputReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	return c.JSON(h.validators.Session(visitorID(c)).Input(req.Value))
}

func (h *Handler) ValidateConfirm(c *fiber.Ctx) error {
	return c.JSON(h.validators.Session(visitorID(c)).Confirm())
}

func (h *Handler) ValidateState(c *fiber.Ctx) error {
	return c.JSON(h.validators.Session(visitorID(c)).Result())
}

// Banner returns the banner the visitor should see on username's page.
func (h *Handler) Banner(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username is required"})
	}
	store := h.bannerStore(c)
	if p := h.source.Profile(c.UserContext(), username); p != nil {
		if update, ok := banner.ProfileNudge(*p); ok {
			return c.JSON(store.SetBanner(c.UserContext(), update))
		}
	}
	return c.JSON(store.Data())
}

type dismissReq struct {
	BannerKey string `json:"bannerKey" form:"bannerKey"`
}

func (h *Handler) DismissBanner(c *fiber.Ctx) error {
	var req dismissReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	store := h.bannerStore(c)
	key := strings.TrimSpace(req.BannerKey)
	store.SetBanner(c.UserContext(), domain.BannerUpdate{BannerKey: &key})
	data := store.HideBanner(c.UserContext())

	// plain form posts come from the banner's dismiss button
	if !c.Is("json") {
		back := "/"
		if u, err := url.Parse(c.Get(fiber.HeaderReferer)); err == nil && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//") {
			back = u.Path
		}
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	return c.JSON(data)
}

// Landing shows the search form. With ?username= it checks the name and
// redirects to the portfolio when it exists.
func (h *Handler) Landing(c *fiber.Ctx) error {
	view := landingView{}
	if q := strings.TrimSpace(c.Query("username")); q != "" {
		res := validator.Check(c.UserContext(), h.source, q)
		if res.State == validator.Valid {
			return c.Redirect("/"+q, fiber.StatusSeeOther)
		}
		view.Query, view.Message = q, res.Message
	}
	return h.render(c, fiber.StatusOK, "landing", view)
}

func (h *Handler) Meme(c *fiber.Ctx) error {
	view := memeView{Me: c.Query("me"), Them: c.Query("them")}
	if strings.TrimSpace(view.Me) == "" || strings.TrimSpace(view.Them) == "" {
		return h.render(c, fiber.StatusOK, "meme", view)
	}

	res, err := compare.Compare(c.UserContext(), h.source, view.Me, view.Them)
	var appErr *common.AppError
	switch {
	case errors.As(err, &appErr):
		view.Message = appErr.Message
	case err != nil:
		return err
	default:
		view.Result = &res
	}
	return h.render(c, fiber.StatusOK, "meme", view)
}

func (h *Handler) Portfolio(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if !validator.ValidFormat(username) {
		return h.render(c, fiber.StatusNotFound, "notfound", notFoundView{Username: username})
	}

	agg := repo.AggregateForUser(c.UserContext(), h.source, username, repo.AggregateOptions{LinkedIn: true, Medium: true})
	if agg.Profile == nil {
		return h.render(c, fiber.StatusNotFound, "notfound", notFoundView{Username: username})
	}

	view := h.pages.portfolio(agg)
	if update, ok := banner.ProfileNudge(*agg.Profile); ok {
		view.Banner = h.bannerStore(c).SetBanner(c.UserContext(), update)
	}
	return h.render(c, fiber.StatusOK, "portfolio", view)
}

func (h *Handler) render(c *fiber.Ctx, status int, name string, data interface{}) error {
	body, err := h.pages.render(name, data)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(body)
}
