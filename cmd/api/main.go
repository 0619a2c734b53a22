package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	v1 "github.com/adityaspaudel/MeroSanjal/cmd/api/router/v1"
	cacheadapter "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/adapter"
	cacheport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/port"
	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/database"
	queueadapter "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/queue/adapter"
	qport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/queue/port"
	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	msgusecase "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/application/usecase"
	msgadapter "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/persistence/repository/adapter"
	msgport "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/persistence/repository/port"
	messaginghttp "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/presentation/http"
	notiftask "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/task"
	notifusecase "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
	notifadapter "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/adapter"
	notifport "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
	notificationhttp "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/presentation/http"
	userdiradapter "github.com/adityaspaudel/MeroSanjal/internal/repository/adapter"
	userdirport "github.com/adityaspaudel/MeroSanjal/internal/repository/port"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found; relying on process environment")
	}
	configureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	presence := realtime.NewPresence()
	defer presence.Close()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		convRepo  msgport.ConversationRepository
		notifRepo notifport.NotificationRepository
		users     userdirport.UserDirectory
	)

	switch strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER"))) {
	case "mongo":
		client, db, err := database.NewMongoFromEnv(connectCtx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		convRepo = msgadapter.NewMongoConversationRepository(db)
		notifRepo = notifadapter.NewMongoNotificationRepository(db)
		users = userdiradapter.NewMongoUserDirectory(db)
		log.Info().Msg("store driver: mongo")
	default:
		pool, err := database.NewPoolFromEnv(connectCtx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		convRepo = msgadapter.NewPgConversationRepository(pool)
		notifRepo = notifadapter.NewPgNotificationRepository(pool)
		users = userdiradapter.NewPgUserDirectory(pool)
		log.Info().Msg("store driver: postgres")
	}

	var cache cacheport.Cache
	if os.Getenv("REDIS_URL") != "" {
		rc, err := cacheadapter.NewRedisAdapter()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable; unread snapshots disabled")
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	createNotifUC := notifusecase.NewCreateNotificationUseCase(notifRepo, cache, presence)

	var queueClient qport.Client
	if os.Getenv("REDIS_URL") != "" {
		qc, err := queueadapter.NewAsynqClientFromEnv()
		if err != nil {
			log.Warn().Err(err).Msg("queue client unavailable; feed notification intake disabled")
		} else {
			queueClient = qc
			defer qc.Close()
		}

		qsrv, err := queueadapter.NewAsynqServer()
		if err != nil {
			log.Warn().Err(err).Msg("queue server unavailable; feed notification worker disabled")
		} else {
			notiftask.RegisterCreateNotificationTask(qsrv, createNotifUC)
			go func() {
				if err := qsrv.Run(ctx); err != nil {
					log.Error().Err(err).Msg("queue server stopped")
				}
			}()
		}
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r,
		messaginghttp.Deps{
			SendMessage: msgusecase.NewSendMessageUseCase(convRepo, createNotifUC, users, presence),
			GetMessages: msgusecase.NewGetMessagesUseCase(convRepo),
			Presence:    presence,
		},
		notificationhttp.Deps{
			List:         notifusecase.NewListNotificationsUseCase(notifRepo),
			MarkRead:     notifusecase.NewMarkNotificationReadUseCase(notifRepo, cache, presence),
			UnreadCount:  notifusecase.NewGetUnreadCountUseCase(notifRepo, cache),
			MarkConvRead: notifusecase.NewMarkConversationReadUseCase(notifRepo, cache, presence),
			Queue:        queueClient,
		},
	)

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", srv.Addr).Msg("api listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

func configureLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if lvl, err := zerolog.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL"))); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
}
