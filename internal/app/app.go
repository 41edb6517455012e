package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"aprovafacil/internal/config"
	"aprovafacil/internal/handlers"
	"aprovafacil/internal/migration"
	"aprovafacil/internal/pdf"
	"aprovafacil/internal/repositories"
	"aprovafacil/internal/routes"
	"aprovafacil/internal/services"
	"aprovafacil/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Erro ao conectar no banco: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Erro ao fechar o banco: %v", err)
		}
	}()
	migration.RunMigrations(db)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Timezone %q inválida, usando local: %v", cfg.Timezone, err)
		loc = time.Local
	}

	// === Repos ===
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	columnRepo := repositories.NewColumnRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	insightRepo := repositories.NewInsightRepository(db)

	// === Backends de notificação (cada um é opcional) ===
	timeout := time.Duration(cfg.Notifications.TimeoutSeconds) * time.Second

	var tg services.TelegramSender
	if cfg.Notifications.Telegram.BotToken != "" {
		t, err := services.NewTelegramService(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
		if err != nil {
			log.Printf("Telegram indisponível: %v", err)
		} else {
			tg = t
		}
	}
	var wa services.WhatsAppSender
	if cfg.Notifications.WhatsApp.AccessToken != "" {
		wa = services.NewWhatsAppService(
			cfg.Notifications.WhatsApp.PhoneNumberID,
			cfg.Notifications.WhatsApp.AccessToken,
			timeout,
		)
	}
	var gw services.GatewaySender
	if cfg.Notifications.Gateway.APIURL != "" {
		gw = utils.NewGatewayClient(
			cfg.Notifications.Gateway.APIURL,
			cfg.Notifications.Gateway.APIKey,
			cfg.Notifications.Gateway.DryRun,
			timeout,
		)
	}
	notifier := services.NewNotificationService(cfg.Notifications, tg, wa, gw)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// === Services ===
	tokenService := services.NewTokenService(tokenRepo, groupRepo,
		cfg.Links.BaseURL, time.Duration(cfg.Links.TTLHours)*time.Hour)
	approvalService := services.NewApprovalService(tokenService, taskRepo, columnRepo, workspaceRepo, insightRepo, notifier)
	deadlineService := services.NewDeadlineService(taskRepo, notifier, loc)
	boardService := services.NewBoardService(groupRepo, columnRepo, taskRepo, workspaceRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo, insightRepo)

	reportGen := pdf.NewReportGenerator()

	// === Handlers ===
	publicHandler := handlers.NewPublicHandler(approvalService)
	linkHandler := handlers.NewLinkHandler(tokenService, workspaceService, notifier, emailService)
	boardHandler := handlers.NewBoardHandler(boardService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, boardService, reportGen)
	notificationHandler := handlers.NewNotificationHandler(notifier)
	cronHandler := handlers.NewCronHandler(deadlineService)

	// === Scheduler interno (opcional; o cron externo também funciona) ===
	if cfg.Scheduler.IntervalMinutes > 0 {
		deadlineService.Start(context.Background(),
			time.Duration(cfg.Scheduler.IntervalMinutes)*time.Minute)
		log.Printf("Scheduler interno ativo a cada %d min", cfg.Scheduler.IntervalMinutes)
	}

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		cfg.Auth.CronSecret,
		publicHandler,
		linkHandler,
		boardHandler,
		workspaceHandler,
		notificationHandler,
		cronHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Servidor rodando em %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Erro ao subir o servidor: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Cron-Secret")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
