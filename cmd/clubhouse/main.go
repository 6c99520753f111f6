package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/clubhouse/internal/db"
	"gitlab.com/ranfdev/clubhouse/internal/models"
	"gitlab.com/ranfdev/clubhouse/internal/routes"
	"gitlab.com/ranfdev/clubhouse/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const usage = `Usage:
	- start
	- migrate [up/down/drop]
`

func main() {
	if len(os.Args) == 1 {
		fmt.Print(usage)
		return
	}
	envConfig := models.ReadEnvConfig()
	switch os.Args[1] {
	case "start":
		server := ClubhouseServer{EnvConfig: envConfig}
		server.Setup()
		server.Run()
	case "migrate":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			return
		}
		var err error
		switch os.Args[2] {
		case "up":
			err = db.MigrateUp(envConfig.DatabaseURL)
		case "down":
			err = db.MigrateDown(envConfig.DatabaseURL)
		case "drop":
			err = db.Drop(envConfig.DatabaseURL)
		default:
			fmt.Print(usage)
			return
		}
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("Done")
	default:
		fmt.Print(usage)
	}
}

type ClubhouseServer struct {
	models.EnvConfig
	addr       string
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	database   *db.SharedDB
}

func (server *ClubhouseServer) setupLogger() {
	var writer io.Writer = os.Stdout
	if server.Debug {
		writer = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	server.logger = zerolog.New(writer).With().Timestamp().Logger()
}

func (server *ClubhouseServer) setupDB() {
	if err := db.MigrateUp(server.DatabaseURL); err != nil {
		server.logger.Fatal().Err(err).Send()
	}
	sdb, err := db.Connect(&server.EnvConfig)
	if err != nil {
		server.logger.Fatal().AnErr("Connecting to db", err).Send()
	}
	server.database = sdb
}

func (server *ClubhouseServer) setupRouter() {
	bcryptCost := bcrypt.DefaultCost
	if server.Debug {
		bcryptCost = bcrypt.MinCost
	}
	registration := service.NewRegistrationService(server.database, bcryptCost, server.logger)
	invites := service.NewInviteService(server.database, server.logger)
	server.router = routes.New(&server.EnvConfig, server.database, registration, invites, server.logger).Router()
}

func (server *ClubhouseServer) setupHttpServer() {
	server.addr = fmt.Sprintf(":%s", server.EnvConfig.Port)
	server.httpServer = &http.Server{
		Addr:         server.addr,
		Handler:      server.router,
		ReadTimeout:  1 * time.Minute,
		WriteTimeout: 1 * time.Minute,
	}
}

func (server *ClubhouseServer) Setup() {
	server.setupLogger()
	server.setupDB()
	server.setupRouter()
	server.setupHttpServer()
}

func (server *ClubhouseServer) Shutdown() {
	if err := server.httpServer.Shutdown(context.Background()); err != nil {
		server.logger.Error().
			Err(err).
			Msg("Error shutting down")
	}
	server.database.Close()
}

func (server *ClubhouseServer) Run() {
	server.logger.Info().Str("server_address", server.addr).Msg("Server is starting")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go server.httpServer.ListenAndServe()
	server.logger.Info().Msg("Ready")

	<-ctx.Done()
	stop() // Stop listening for signals
	server.logger.Info().Msg("Shutting down gracefully")
	server.Shutdown()
}
