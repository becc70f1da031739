package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/slabvault/slabvault/internal/client/api"
	"github.com/slabvault/slabvault/internal/client/cache"
	"github.com/slabvault/slabvault/internal/client/config"
	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/client/services"
	"github.com/slabvault/slabvault/internal/client/session"
	"github.com/slabvault/slabvault/internal/logging"

	_ "modernc.org/sqlite"
)

// The App depends on narrow interfaces so command handlers can be tested
// against lightweight fakes; the concrete session and service types satisfy
// them.

type authSession interface {
	Restore(ctx context.Context)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, email, newPassword string) error
	User() *models.User
	IsAdmin() bool
}

type cardWorkflow interface {
	Load(ctx context.Context) error
	Cards() []models.Card
	Tier() models.ServiceTier
	AddCard(ctx context.Context, in models.CardInput, price float64) error
	UpdateCard(ctx context.Context, id string, in models.CardInput, price float64) error
	DeleteCard(ctx context.Context, id string) error
	Continue(ctx context.Context) (string, error)
	SaveAndExit(ctx context.Context)
}

type paymentFlow interface {
	Load(ctx context.Context) (*models.Submission, error)
	Pay(ctx context.Context, sub *models.Submission, mode services.PaymentMode, paymentMethodID string) (string, error)
	Confirmation(ctx context.Context, id string) (*models.Submission, error)
	Quotes(ctx context.Context) map[models.ServiceTier]models.PricingQuote
}

type dashboardView interface {
	Overview(ctx context.Context) (*services.Overview, error)
}

type adminBench interface {
	LoadPage(ctx context.Context, page int, status models.SubmissionStatus) error
	LoadAnalytics(ctx context.Context) error
	Submissions() []models.Submission
	Pagination() models.Pagination
	Analytics() *models.Analytics
	Refine(f services.Filter) []models.Submission
	ChangeStatus(ctx context.Context, id string, status models.SubmissionStatus) error
}

type App struct {
	config    *config.Config
	log       logging.Logger
	session   authSession
	workflow  cardWorkflow
	payment   paymentFlow
	dashboard dashboardView
	admin     adminBench
	reader    *bufio.Reader
	db        *sql.DB
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, parseLevel(c.LogLevel))

	// A broken cache db degrades to an in-memory cache: the client still
	// works, sessions just do not survive the process.
	var (
		kv cache.KV
		db *sql.DB
	)
	db, err := cache.InitDatabase(ctx, c.CacheDBPath)
	if err != nil {
		log.Warn(ctx, "cache db unavailable, using in-memory cache", "path", c.CacheDBPath, "err", err)
		kv = cache.NewMemoryKV()
		db = nil
	} else {
		kv = cache.NewSQLiteKV(db)
	}
	sessionCache := cache.New(kv, log)

	apiClient := api.NewClient(c.APIBaseURL, c.RequestTimeout, sessionCache, log)

	return &App{
		config:    c,
		log:       log,
		session:   session.New(apiClient, sessionCache, log),
		workflow:  services.NewWorkflow(apiClient, sessionCache, log),
		payment:   services.NewPayment(apiClient, sessionCache, log),
		dashboard: services.NewDashboard(apiClient, log),
		admin:     services.NewWorkbench(apiClient, log),
		reader:    bufio.NewReader(os.Stdin),
		db:        db,
	}, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}
