// Package main is the entry point for the engraving-service application.
//
// @title           Engraving Service API
// @version         1.0.0
// @description     API for designing custom-engraved products and pricing them live.
//
//	This service manages design sessions with per-zone undo/redo history, tiered
//	text pricing, image insertion and checkout bundling into cart line items.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/engraving-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Admin JWT for price tier configuration endpoints.
//
// @tag.name        Sessions
// @tag.description Design session lifecycle and state
//
// @tag.name        Editing
// @tag.description Canvas editing operations within a session
//
// @tag.name        Catalog
// @tag.description Customizable product catalog
//
// @tag.name        Price Tiers
// @tag.description Text pricing tier configuration
//
// @tag.name        Generative
// @tag.description AI-assisted design suggestions
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/engraving-service/docs" // swagger docs

	"github.com/rs/zerolog/log"

	"github.com/guttosm/engraving-service/config"
	"github.com/guttosm/engraving-service/internal/app"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
