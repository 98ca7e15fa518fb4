package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/handlers"
)

// Handlers — все обработчики, которые монтирует Register.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Dashboard  *handlers.DashboardHandler
	Jobs       *handlers.JobHandler
	Candidates *handlers.CandidateHandler
	Relations  *handlers.RelationHandler
	Analytics  *handlers.AnalyticsHandler
}

// Register регистрирует маршруты на Fiber-приложении. authMW защищает всё, кроме проб,
// аутентификации и публичной доски вакансий.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Живость и готовность для проб и мониторинга
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	// Публичная доска
	jobs := v1.Group("/jobs")
	jobs.Get("/", h.Jobs.Board)
	jobs.Get("/filters", h.Jobs.Filters)
	jobs.Get("/industries", h.Jobs.Industries)
	jobs.Get("/:id", h.Jobs.Get)
	jobs.Post("/", authMW, h.Jobs.Create)
	jobs.Put("/:id", authMW, h.Jobs.Update)
	jobs.Patch("/:id/status", authMW, h.Jobs.SetStatus)
	jobs.Delete("/:id", authMW, h.Jobs.Delete)

	d := v1.Group("/dashboard", authMW)
	d.Get("/recommended/:candidateId", h.Dashboard.Recommended)
	d.Get("/saved-job/:candidateId", h.Dashboard.Saved)
	d.Get("/applied-job/:candidateId", h.Dashboard.Applied)
	d.Get("/search/:candidateId", h.Dashboard.Search)
	d.Get("/profile-tasks/:candidateId", h.Dashboard.ProfileTasks)
	d.Get("/candidate-stats/:candidateId", h.Dashboard.CandidateStats)

	cg := v1.Group("/candidates", authMW)
	cg.Post("/", h.Candidates.Create)
	cg.Get("/:id", h.Candidates.Get)
	cg.Put("/:id", h.Candidates.Update)
	cg.Post("/:id/resume", h.Candidates.UploadResume)
	cg.Get("/:id/resume/skills", h.Candidates.SuggestSkills)

	s := v1.Group("/saved-jobs", authMW)
	s.Post("/", h.Relations.Save)
	s.Get("/status/:candidateId/:jobId", h.Relations.SavedStatus)
	s.Delete("/:candidateId/:jobId", h.Relations.Unsave)

	ap := v1.Group("/applications", authMW)
	ap.Post("/", h.Relations.Apply)
	ap.Get("/", h.Relations.List)
	ap.Get("/status/:candidateId/:jobId", h.Relations.AppliedStatus)
	ap.Patch("/:id/status", h.Relations.SetStatus)

	// Панель работодателя
	e := v1.Group("/employers", authMW)
	e.Get("/:id/stats", h.Analytics.EmployerStats)
	e.Get("/:id/application-trends", h.Analytics.ApplicationTrends)
	e.Get("/:id/recent-applicants", h.Analytics.RecentApplicants)
	e.Get("/:id/jobs", h.Analytics.PosterJobs)
	e.Get("/:id/job-filters", h.Analytics.PosterFacets)

	adm := v1.Group("/admin", authMW)
	adm.Get("/jobs", h.Analytics.ActiveJobs)
	adm.Get("/jobs/inactive", h.Analytics.InactiveJobs)
	adm.Get("/stats", h.Analytics.AdminStats)
}
