package router

import (
	authsvc "secondmarket-backend/internal/application/auth"
	cartsvc "secondmarket-backend/internal/application/cart"
	"secondmarket-backend/internal/application/catalog"
	"secondmarket-backend/internal/application/checkout"
	dashsvc "secondmarket-backend/internal/application/dashboard"
	"secondmarket-backend/internal/application/messaging"
	reviewsvc "secondmarket-backend/internal/application/reviews"
	usersvc "secondmarket-backend/internal/application/users"
	"secondmarket-backend/internal/config"
	healthsvc "secondmarket-backend/internal/health"
	authhandler "secondmarket-backend/internal/interfaces/handlers/auth"
	carthandler "secondmarket-backend/internal/interfaces/handlers/cart"
	dashhandler "secondmarket-backend/internal/interfaces/handlers/dashboard"
	healthhandler "secondmarket-backend/internal/interfaces/handlers/health"
	listhandler "secondmarket-backend/internal/interfaces/handlers/listings"
	msghandler "secondmarket-backend/internal/interfaces/handlers/messages"
	orderhandler "secondmarket-backend/internal/interfaces/handlers/orders"
	reviewhandler "secondmarket-backend/internal/interfaces/handlers/reviews"
	userhandler "secondmarket-backend/internal/interfaces/handlers/users"
	"secondmarket-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp wires every route against the given stores. rdb may be nil;
// the health marker and the Redis dependency report then stay off.
func CreateApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(cfg.FrontendURL))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var pinger healthsvc.DBPinger
	if db != nil {
		pinger = &gormDBPinger{db: db}
	}
	hh := &healthhandler.Handlers{Rdb: rdb, DB: pinger}
	app.Get("/", healthhandler.Welcome)
	app.Get("/health/json", hh.JSON)

	as := &authsvc.Service{DB: db, Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL}
	ah := &authhandler.Handlers{Service: as}
	app.Post("/api/register", ah.Register)
	app.Post("/api/login", ah.Login)

	requireAuth := middleware.RequireAuth(as)

	us := &usersvc.Service{DB: db}
	uh := &userhandler.Handlers{Service: us}
	app.Get("/api/profile", requireAuth, uh.Profile)
	app.Put("/api/profile", requireAuth, uh.UpdateProfile)
	app.Delete("/api/profile", requireAuth, uh.DeleteProfile)
	app.Get("/api/users/count", uh.Count)
	app.Get("/api/users", requireAuth, uh.List)

	cs := &catalog.Service{DB: db}
	lh := &listhandler.Handlers{Service: cs}
	app.Get("/api/listings", lh.List)
	app.Post("/api/listings", requireAuth, lh.Create)
	app.Get("/api/listings/my", requireAuth, lh.Mine)
	app.Get("/api/listings/:id", lh.Get)
	app.Put("/api/listings/:id", requireAuth, lh.Update)
	app.Delete("/api/listings/:id", requireAuth, lh.Delete)

	crt := &cartsvc.Service{DB: db}
	ch := &carthandler.Handlers{Service: crt}
	cg := app.Group("/api/cart", requireAuth)
	cg.Get("/", ch.Get)
	cg.Get("/count", ch.Count)
	cg.Post("/add", ch.Add)
	cg.Put("/update", ch.Update)
	cg.Delete("/remove", ch.Remove)
	cg.Delete("/clear", ch.Clear)

	cks := &checkout.Service{DB: db}
	oh := &orderhandler.Handlers{Service: cks}
	app.Post("/api/checkout", requireAuth, oh.Checkout)
	app.Get("/api/orders", requireAuth, oh.List)
	app.Get("/api/orders/:id", requireAuth, oh.Get)
	app.Put("/api/orders/:id/status", requireAuth, oh.UpdateStatus)

	ms := &messaging.Service{DB: db}
	mh := &msghandler.Handlers{Service: ms}
	mg := app.Group("/api/messages", requireAuth)
	mg.Post("/", mh.Send)
	mg.Get("/inbox", mh.Inbox)
	mg.Get("/sent", mh.Sent)
	mg.Put("/:id/read", mh.MarkRead)

	rs := &reviewsvc.Service{DB: db}
	rh := &reviewhandler.Handlers{Service: rs}
	rg := app.Group("/api/reviews", requireAuth)
	rg.Post("/", rh.Create)
	rg.Get("/received", rh.Received)
	rg.Get("/given", rh.Given)

	ds := &dashsvc.Service{DB: db}
	dh := &dashhandler.Handlers{Service: ds}
	app.Get("/api/dashboard/stats", requireAuth, dh.Stats)

	return app
}
