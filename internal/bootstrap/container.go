package bootstrap

import (
	"context"
	"log"

	"gammanotes-be/internal/config"
	"gammanotes-be/internal/controller"
	"gammanotes-be/internal/handler"
	"gammanotes-be/internal/pkg/logger"
	"gammanotes-be/internal/pkg/mailer"
	"gammanotes-be/internal/repository/memory"
	"gammanotes-be/internal/repository/unitofwork"
	"gammanotes-be/internal/service"
	"gammanotes-be/internal/websocket"
	"gammanotes-be/pkg/completion/openai"
	"gammanotes-be/pkg/embedding"
	"gammanotes-be/pkg/extraction/pdfco"
	pktNats "gammanotes-be/pkg/nats"
	"gammanotes-be/pkg/storage"
	"gammanotes-be/pkg/storage/s3"

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
	NotebookController controller.INotebookController
	PageController     controller.IPageController
	ChatController     controller.IChatController
	ConvertController  controller.IConvertController
	QuizController     controller.IQuizController
	StudyController    controller.IStudyController
	PaymentController  controller.IPaymentController

	// Background services exposed for main.go to run.
	ConsumerService service.IConsumerService

	// Realtime sync
	SyncHandler  *handler.SyncHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process event bus for the embedding pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// AI providers
	completions := openai.NewProvider(cfg.Keys.OpenAI, cfg.Ai.CompletionModel)
	embeddingProvider := embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
	extractor := pdfco.NewClient(cfg.Keys.PdfCo, cfg.Keys.PdfCoBaseURL)

	// Object storage for staged uploads and note artifacts
	var store storage.ObjectStore
	store, err := s3.NewClient(context.Background(), s3.Config{
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
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
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/sync.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Chunked upload reassembly state
	chunkRepo := memory.NewChunkRepository()

	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, uowFactory, embeddingProvider)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory, &cfg.OAuth)
	userService := service.NewUserService(uowFactory)
	notebookService := service.NewNotebookService(uowFactory, natsPub)
	pageService := service.NewPageService(uowFactory, publisherService, embeddingProvider, natsPub)
	chatService := service.NewChatService(uowFactory, completions, extractor, store, sysLogger, cfg.Ai.ChatTokenBudget)
	convertService := service.NewConvertService(chunkRepo, extractor, store, sysLogger, cfg.App.MaxUploadSize)
	quizService := service.NewQuizService(uowFactory, completions, natsPub, sysLogger, cfg.Ai.ParagraphMaxLen, cfg.Ai.QuizQuestions)
	studyService := service.NewStudyService(uowFactory, completions, sysLogger, cfg.Ai.ParagraphMaxLen)
	paymentService := service.NewPaymentService(uowFactory, natsPub, sysLogger, &cfg.Midtrans)

	// Realtime sync worker
	syncHandler := handler.NewSyncHandler(wsHub, natsSub, wsLogger)
	if err := syncHandler.Start(); err != nil {
		log.Printf("[WARN] Failed to start realtime sync worker: %v", err)
	}

	return &Container{
		AuthController:     controller.NewAuthController(authService),
		OAuthController:    controller.NewOAuthController(oauthService),
		UserController:     controller.NewUserController(userService),
		NotebookController: controller.NewNotebookController(notebookService),
		PageController:     controller.NewPageController(pageService),
		ChatController:     controller.NewChatController(chatService),
		ConvertController:  controller.NewConvertController(convertService),
		QuizController:     controller.NewQuizController(quizService),
		StudyController:    controller.NewStudyController(studyService),
		PaymentController:  controller.NewPaymentController(paymentService),

		ConsumerService: consumerService,

		SyncHandler:  syncHandler,
		WebSocketHub: wsHub,
	}
}
