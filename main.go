package main

import (
	"fmt"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pollify/backend/internal/client"
	"github.com/pollify/backend/internal/controller"
	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/repository"
	"github.com/pollify/backend/internal/service"
)

func main() {
	cfg := dto.LoadConfig()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logrus.Panic(err)
	}

	repositories := repository.NewRepositories(db)
	clients := client.NewClients(cfg)
	services := service.NewServices(repositories, cfg, clients)
	services.Auth().EnsureAdmin()

	controllers := controller.NewControllers(services)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.SessionSecret))))

	controllers.Route(e)

	logrus.Infof("Listening on :%d", cfg.Port)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logrus.Panic(err)
	}
}
