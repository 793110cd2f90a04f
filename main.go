package main

import (
	"github.com/edumesh/Backend_ELearning/server"
)

// @title          E-Learning API
// @version        1.0
// @description    API Server for courses, mock tests and payments

// @host     localhost:8080
// @BasePath /api/l

// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
// @description                BearerJWTToken in Authorization Header

// @accept  json
// @produce json
func main() {
	server.Init()
}
