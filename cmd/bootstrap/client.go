package bootstrap

import (
	"fmt"

	"dermassist/config"
	"dermassist/internal/apiclient"
	"dermassist/internal/notification"
	"dermassist/internal/report"
	"dermassist/internal/session"
	"dermassist/internal/usecase"
	"dermassist/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Client holds everything the CLI needs to talk to the backend.
type Client struct {
	Config  *config.Config
	Log     *logrus.Logger
	Session *session.Manager
	API     *apiclient.Client

	Auth           usecase.AuthUsecase
	Predictions    usecase.PredictionUsecase
	ReviewRequests usecase.ReviewRequestUsecase
	Dermatologists usecase.DermatologistUsecase
	Treatments     usecase.TreatmentUsecase
	Notifications  usecase.NotificationUsecase

	Reports     *report.Service
	UnreadCount *notification.Store
	Poller      *notification.Poller

	redisClient *redis.Client
}

// ClientOption adjusts the loaded configuration before the client is built.
type ClientOption func(*config.Config)

// WithAPIBaseURL points the client at a different backend.
func WithAPIBaseURL(baseURL string) ClientOption {
	return func(cfg *config.Config) {
		if baseURL != "" {
			cfg.API.BaseURL = baseURL
		}
	}
}

// NewClient loads configuration and builds a Client with the configured
// session store.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, opt := range opts {
		opt(cfg)
	}
	log := setupLogger(cfg.App.LogLevel, false)

	var redisClient *redis.Client
	var store session.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err = session.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		store = session.NewRedisStore(redisClient, cfg.Redis.KeyPrefix)
		log.Debug("Using Redis session store")
	default:
		store = session.NewFileStore(cfg.Session.FilePath)
	}

	c := NewClientWithStore(cfg, log, store)
	c.redisClient = redisClient
	return c, nil
}

// NewClientWithStore wires the client stack on top of an existing session
// store.
func NewClientWithStore(cfg *config.Config, log *logrus.Logger, store session.Store) *Client {
	customValidator := validator.NewValidator()
	manager := session.NewManager(store, log)
	api := apiclient.New(cfg.API, manager, log)

	notifications := usecase.NewNotificationUsecase(log, api)
	unread := notification.NewStore()

	return &Client{
		Config:  cfg,
		Log:     log,
		Session: manager,
		API:     api,

		Auth:           usecase.NewAuthUsecase(log, api, manager, customValidator),
		Predictions:    usecase.NewPredictionUsecase(log, api),
		ReviewRequests: usecase.NewReviewRequestUsecase(log, api, manager, customValidator),
		Dermatologists: usecase.NewDermatologistUsecase(log, api),
		Treatments:     usecase.NewTreatmentUsecase(log, api),
		Notifications:  notifications,

		Reports: report.NewService(
			report.NewWkhtmltopdfConverter(cfg.Report.WkhtmltopdfPath),
			report.NewPlacer(cfg.Report),
			report.OpenSharer{},
			cfg.Report.TempDir,
			log,
		),
		UnreadCount: unread,
		Poller:      notification.NewPoller(notifications, manager, unread, cfg.Notification.PollInterval, notification.NewRealTicker, log),
	}
}

// Close releases the Redis connection when one was opened.
func (c *Client) Close() {
	if c.redisClient != nil {
		c.redisClient.Close()
	}
}
