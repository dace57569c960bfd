package main

import (
	"log/slog"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/lib/validator"
	"moviehub/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	Services  *services.Services
	validator *govalidator.Validate
	decoder   *schema.Decoder
	// shutdownHooks run in order once the server stopped accepting requests.
	shutdownHooks []func()
}

func NewApplication(cfg *config.Config, log *slog.Logger, svc *services.Services) *Application {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:       cfg,
		log:       log,
		Services:  svc,
		validator: validator.New(),
		decoder:   decoder,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}

func (app *Application) onShutdown(hook func()) {
	app.shutdownHooks = append(app.shutdownHooks, hook)
}
