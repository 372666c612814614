package main

import (
	"context"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/scrimhub/scrimhub/internal/api"
	"github.com/scrimhub/scrimhub/internal/auth"
	"github.com/scrimhub/scrimhub/internal/bot"
	"github.com/scrimhub/scrimhub/internal/config"
	"github.com/scrimhub/scrimhub/internal/mailer"
	"github.com/scrimhub/scrimhub/internal/rowstore"
	"github.com/scrimhub/scrimhub/internal/service"
	"github.com/scrimhub/scrimhub/internal/store"
	"github.com/scrimhub/scrimhub/internal/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := rowstore.NewSheetsStore(context.Background(), cfg.SheetID, cfg.GoogleCredentials)
	if err != nil {
		log.Fatal("Failed to connect to spreadsheet:", err)
	}

	userStore := store.NewUserStore(db)
	clanStore := store.NewClanStore(db)
	tournamentStore := store.NewTournamentStore(db)
	partnerStore := store.NewPartnerStore(db)
	messageStore := store.NewMessageStore(db)

	userService := service.NewUserService(userStore)
	clanService := service.NewClanService(clanStore, userStore)
	tournamentService := service.NewTournamentService(tournamentStore, clanStore, userStore)

	tokens := token.NewService(cfg.JWTSecret)
	gate := auth.NewGate(tokens)
	auth.InitOAuth(cfg)

	var notifier api.Notifier
	if cfg.BotWebhookURL != "" {
		notifier = bot.NewWebhookClient(cfg.BotWebhookURL, cfg.WebhookSecret)
	}

	var contactMailer api.Mailer
	if cfg.MailHost != "" {
		m, err := mailer.New(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailTo)
		if err != nil {
			log.Fatal("Failed to create mailer:", err)
		}
		contactMailer = m
	}

	apiServer := api.NewServer(gate, userService, clanService, tournamentService,
		partnerStore, messageStore, notifier, contactMailer)

	var session *discordgo.Session
	if cfg.DiscordBotToken != "" {
		session, err = discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Fatal("Failed to create discord session:", err)
		}
		if cfg.DiscordGuildID != "" {
			if err := bot.RegisterCommands(session, cfg.DiscordGuildID); err != nil {
				log.Println("Failed to register slash commands:", err)
			}
		}
	}

	botState := bot.NewState()

	var webhookHandler *bot.WebhookHandler
	if cfg.WebhookSecret != "" {
		var announcer bot.Announcer
		if session != nil && cfg.DiscordAnnounceChannel != "" {
			announcer = bot.NewDiscordAnnouncer(session, cfg.DiscordAnnounceChannel)
		}
		webhookHandler = bot.NewWebhookHandler(cfg.WebhookSecret, botState, announcer)
	}

	var interactionHandler *bot.InteractionHandler
	if cfg.DiscordPublicKey != "" {
		key, err := bot.ParsePublicKey(cfg.DiscordPublicKey)
		if err != nil {
			log.Fatal("Invalid DISCORD_PUBLIC_KEY:", err)
		}
		interactionHandler = bot.NewInteractionHandler(key, session, botState, clanStore)
	}

	router := newRouter(&app{
		cfg:          cfg,
		tokens:       tokens,
		users:        userService,
		api:          apiServer,
		webhook:      webhookHandler,
		interactions: interactionHandler,
	})

	log.Println("Server starting on " + cfg.BaseURL)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
