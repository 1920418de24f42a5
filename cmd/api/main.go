package main

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"ivchonotes/cmd/internal/auth"
	"ivchonotes/cmd/internal/cache"
	"ivchonotes/cmd/internal/domain/sqlite"
	"ivchonotes/cmd/internal/domain/sqlite/repository"
	cognitoclient "ivchonotes/cmd/internal/integration/aws/cognito"
	"ivchonotes/cmd/internal/routes"
	"ivchonotes/cmd/internal/service"
	"ivchonotes/cmd/internal/session"
	"ivchonotes/cmd/internal/utils/validators"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	err := godotenv.Load()
	if err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	// Init SQLite
	db, err := sqlite.Init(os.Getenv("SQLITE_PATH"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Credential provider: Cognito when configured, local shared secret otherwise
	provider, err := buildProvider()
	if err != nil {
		log.Fatal("failed to initialize credential provider", err)
	}

	authClient := auth.NewClient(provider, auth.NewTokenFile(os.Getenv("SESSION_FILE")))

	sessions := session.NewStore(authClient)
	sessions.Bootstrap()
	defer sessions.Close()

	// Getting repositories
	noteRepo := repository.NewNoteRepository(db)
	patientRepo := repository.NewPatientRepository(db)

	// Getting services
	window := loadWindow()
	authService := service.NewAuthService(authClient, sessions, validate, func() string {
		return os.Getenv("SHARED_LOGIN_EMAIL")
	})
	noteService := service.NewNoteService(noteRepo, validate, window)
	patientService := service.NewPatientService(patientRepo, validate, window)

	// Prime the day-range caches; a failure here leaves them empty and
	// every lookup falls back to direct fetches.
	if apierr := noteService.LoadRange(); apierr != nil {
		log.Errorf("initial notes range load failed: %v", apierr)
	}
	if apierr := patientService.LoadMarkers(); apierr != nil {
		log.Errorf("initial patient markers load failed: %v", apierr)
	}

	// Getting routes
	authRoutes := routes.NewAuthDefault(authService)
	noteRoutes := routes.NewNoteDefault(noteService)
	patientRoutes := routes.NewPatientDefault(patientService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Auth
	e.POST("/api/auth/login", authRoutes.Login)
	e.POST("/api/auth/logout", authRoutes.Logout)
	e.GET("/api/auth/session", authRoutes.GetSession)

	api := e.Group("/api", routes.RequireSession(sessions))

	// Notes
	api.GET("/notes", noteRoutes.GetRange)
	api.GET("/notes/:day", noteRoutes.GetDay)
	api.PUT("/notes/:day", noteRoutes.SaveNote)

	// Patients
	api.GET("/patients", patientRoutes.GetPatients)
	api.GET("/patients/markers", patientRoutes.GetMarkers)
	api.POST("/patients", patientRoutes.CreatePatient)
	api.PUT("/patients/:id", patientRoutes.UpdatePatient)
	api.DELETE("/patients/:id", patientRoutes.DeletePatient)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":6060"
	}

	err = e.Start(addr)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("isodate", validators.IsIsoDate)
	_ = validate.RegisterValidation("timeofday", validators.IsTimeOfDay)
}

func buildProvider() (auth.Provider, error) {
	if os.Getenv("COGNITO_CLIENT_ID") != "" {
		cogClient, err := cognitoclient.InitCognitoClient()
		if err != nil {
			return nil, err
		}
		return auth.NewCognitoProvider(cogClient), nil
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			log.Warnf("ignoring invalid SESSION_TTL %q", raw)
		} else {
			ttl = parsed
		}
	}

	return auth.NewLocalProvider(
		os.Getenv("SESSION_SECRET"),
		os.Getenv("SHARED_LOGIN_PASSWORD_HASH"),
		ttl,
	), nil
}

func loadWindow() cache.Window {
	window := cache.DefaultWindow()
	if raw := os.Getenv("PAST_DAYS_TO_KEEP"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			window.PastDays = n
		}
	}
	if raw := os.Getenv("FUTURE_DAYS_TO_KEEP"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			window.FutureDays = n
		}
	}
	return window
}
