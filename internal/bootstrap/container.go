package bootstrap

import (
	"context"
	"log"

	"growth-engine-be/internal/config"
	"growth-engine-be/internal/constant"
	"growth-engine-be/internal/controller"
	"growth-engine-be/internal/handler"
	"growth-engine-be/internal/pkg/logger"
	"growth-engine-be/internal/pkg/mailer"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/repository/implementation"
	"growth-engine-be/internal/repository/memory"
	"growth-engine-be/internal/repository/unitofwork"
	"growth-engine-be/internal/service"
	"growth-engine-be/internal/websocket"
	"growth-engine-be/pkg/analysis/prompt"
	"growth-engine-be/pkg/analysis/store"
	"growth-engine-be/pkg/llm/factory"

	pktNats "growth-engine-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	UserController     controller.IUserController
	SchoolController   controller.ISchoolController
	StudentController  controller.IStudentController
	AnalysisController controller.IAnalysisController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	llmLogger := logger.NewIsolatedLogger("logs/llm.log")
	llmProvider, err := factory.NewLLMProvider(cfg.OpenAI, llmLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider.IsConfigured() {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.OpenAI.Provider, cfg.OpenAI.Model)
	} else {
		log.Printf("[WARN] LLM provider not configured, responses fall back to question templates")
	}

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Analysis domain state
	conversationRepo := memory.NewConversationRepository(cfg.Analysis.ConversationMaxAge)
	analysisStore := store.NewAnalysisStore()
	promptLoader := prompt.NewLoader(cfg.Analysis.SystemPromptPath)
	chatRateLimiter := serverutils.NewRateLimiter(cfg.Analysis.RateLimitRequests, cfg.Analysis.RateLimitWindow)

	publisherService := service.NewPublisherService(pubSub, constant.TopicArchiveAnalysis)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.TopicArchiveAnalysis,
		uowFactory,
	)

	// 5. Services
	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.Auth)
	oauthService := service.NewOAuthService(uowFactory, cfg.Auth)
	userService := service.NewUserService(uowFactory)
	schoolService := service.NewSchoolService(uowFactory)
	studentService := service.NewStudentService(uowFactory)

	analysisService := service.NewAnalysisService(
		conversationRepo,
		analysisStore,
		llmProvider,
		promptLoader,
		chatRateLimiter,
		uowFactory,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Analysis,
	)

	// 6. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		UserController:      controller.NewUserController(userService),
		SchoolController:    controller.NewSchoolController(schoolService),
		StudentController:   controller.NewStudentController(studentService),
		AnalysisController:  controller.NewAnalysisController(analysisService),

		ConsumerService: consumerService,
	}
}
