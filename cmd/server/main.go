package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/socialgit/socialgit-api/configs"
	"github.com/socialgit/socialgit-api/internal/api/handlers"
	"github.com/socialgit/socialgit-api/internal/api/middleware"
	"github.com/socialgit/socialgit-api/internal/repository"
	"github.com/socialgit/socialgit-api/internal/service"
	"github.com/socialgit/socialgit-api/internal/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	postRepo := repository.NewPostRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	engine := workflow.NewEngine(userRepo, clientRepo, postRepo, approvalRepo)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	clientService := service.NewClientService(clientRepo, userRepo, workflowRepo)
	mediaService := service.NewMediaService(*cfg)
	postService := service.NewPostService(postRepo, clientRepo, revisionRepo, approvalRepo, workflowRepo, mediaService, engine)
	approvalService := service.NewApprovalService(approvalRepo, postRepo, clientRepo, workflowRepo, engine)
	workflowService := service.NewWorkflowService(workflowRepo, clientRepo)
	queueService := service.NewQueueService(postRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/register", auth.Register)
	app.Post("/login", auth.Login)
	app.Get("/login/google", auth.GoogleLogin)
	app.Get("/login/google/callback", auth.GoogleCallback)
	app.Get("/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Get("/users", user.ListUsers)

	client := handlers.NewClientHandler(clientService)
	api.Post("/clients/create", client.CreateClient)
	api.Get("/clients", client.ListClients)
	api.Get("/clients/approvers", client.ListApprovers)
	api.Post("/clients/active_workflow", client.SetActiveWorkflow)

	post := handlers.NewPostHandler(postService)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/:id", post.PostInfo)
	api.Post("/posts/:id/edit", post.EditPost)
	api.Get("/posts/:id/revisions", post.ListRevisions)
	api.Post("/posts/:id/remove", post.RemovePost)

	approval := handlers.NewApprovalHandler(approvalService)
	api.Post("/posts/:id/decision", approval.RecordDecision)
	api.Get("/posts/:id/approvals", approval.ListApprovals)

	wf := handlers.NewWorkflowHandler(workflowService)
	api.Post("/workflows/save", wf.SaveWorkflow)
	api.Get("/workflows/load", wf.LoadWorkflow)
	api.Get("/workflows", wf.ListWorkflows)

	queue := handlers.NewQueueHandler(queueService)
	api.Get("/queue", queue.ListQueue)
	api.Post("/queue/:id", queue.QueuePost)
	api.Post("/queue/:id/post_now", queue.PostNow)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveApiKey)

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
