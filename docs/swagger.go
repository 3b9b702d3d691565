// Package docs PortfolioPulse API
//
// @title  PortfolioPulse API
// @version 0.1.0
// @description Portfolio content CRUD and admin authentication.
// @host      localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package docs

import (
	_ "portfolio-pulse/cmd/server/handlers/httperr"
	_ "portfolio-pulse/internal/services/auth"
	_ "portfolio-pulse/internal/services/content"
)
