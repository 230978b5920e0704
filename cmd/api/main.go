package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/walkline/queue-service/internal/adapters/cache"
	"github.com/walkline/queue-service/internal/adapters/handler"
	"github.com/walkline/queue-service/internal/adapters/middleware"
	"github.com/walkline/queue-service/internal/adapters/repository"
	"github.com/walkline/queue-service/internal/config"
	"github.com/walkline/queue-service/internal/core/services"
	"github.com/walkline/queue-service/internal/monitoring"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	repo := repository.NewSQLRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	access := services.NewAccessControl(repo)
	registryService := services.NewRegistryService(repo, access)
	queueService := services.NewQueueService(repo, repo, access)
	profileService := services.NewProfileService(repo, access)

	waitCache := cache.NewWaitEstimateCache(redisClient, cfg.WaitCacheTTL)
	queryService := services.NewQueryService(repo, repo, waitCache)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey)

	registryHandler := handler.NewRegistryHandler(registryService)
	queueHandler := handler.NewQueueHandler(queueService)
	queryHandler := handler.NewQueryHandler(queryService)
	profileHandler := handler.NewProfileHandler(profileService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Service registry
	mux.HandleFunc("POST /services", authMiddleware.Authenticate(registryHandler.CreateService))
	mux.HandleFunc("GET /services", registryHandler.ListServices)
	mux.HandleFunc("GET /services/{serviceID}", registryHandler.GetService)
	mux.HandleFunc("DELETE /services/{serviceID}", authMiddleware.Authenticate(registryHandler.DeleteService))
	mux.HandleFunc("GET /services/{serviceID}/owner", registryHandler.GetServiceOwner)
	mux.HandleFunc("GET /services/{serviceID}/hours", registryHandler.GetServiceHours)
	mux.HandleFunc("PUT /services/{serviceID}/hours/weekday", authMiddleware.Authenticate(registryHandler.SetWeekdayHours))
	mux.HandleFunc("PUT /services/{serviceID}/hours/weekend", authMiddleware.Authenticate(registryHandler.SetWeekendHours))
	mux.HandleFunc("GET /services/{serviceID}/service-time", registryHandler.GetEstimatedServiceTime)
	mux.HandleFunc("PUT /services/{serviceID}/service-time", authMiddleware.Authenticate(registryHandler.SetEstimatedServiceTime))
	mux.HandleFunc("GET /owners/me/services", authMiddleware.Authenticate(registryHandler.ListOwnServices))

	// Queue lifecycle and membership
	mux.HandleFunc("POST /services/{serviceID}/queue", authMiddleware.Authenticate(queueHandler.StartQueue))
	mux.HandleFunc("POST /queues/{queueID}/pause", authMiddleware.Authenticate(queueHandler.PauseQueue))
	mux.HandleFunc("POST /queues/{queueID}/resume", authMiddleware.Authenticate(queueHandler.ResumeQueue))
	mux.HandleFunc("POST /queues/{queueID}/stop", authMiddleware.Authenticate(queueHandler.StopQueue))
	mux.HandleFunc("POST /queues/{queueID}/join", authMiddleware.Authenticate(queueHandler.JoinQueue))
	mux.HandleFunc("POST /queues/{queueID}/leave", authMiddleware.Authenticate(queueHandler.LeaveQueue))
	mux.HandleFunc("PUT /queues/{queueID}/serving", authMiddleware.Authenticate(queueHandler.UpdateServingNumber))
	mux.HandleFunc("DELETE /customers/{customerID}/queues", authMiddleware.Authenticate(queueHandler.ClearCustomerQueues))

	// Read facade
	mux.HandleFunc("GET /queues", queryHandler.GetAllActiveQueues)
	mux.HandleFunc("GET /queues/{queueID}", queryHandler.GetCompleteQueueInfo)
	mux.HandleFunc("GET /queues/{queueID}/entries", queryHandler.GetQueueEntries)
	mux.HandleFunc("GET /queues/{queueID}/status", queryHandler.GetQueueStatus)
	mux.HandleFunc("GET /queues/{queueID}/serving", queryHandler.GetCurrentServingNumber)
	mux.HandleFunc("GET /queues/{queueID}/service", queryHandler.GetQueueService)
	mux.HandleFunc("GET /queues/{queueID}/customers/{customerID}/position", queryHandler.GetCustomerPosition)
	mux.HandleFunc("GET /services/{serviceID}/queue-status", queryHandler.GetServiceQueueStatus)
	mux.HandleFunc("GET /services/{serviceID}/wait-estimate", queryHandler.GetEstimatedWaitTime)
	mux.HandleFunc("GET /customers/{customerID}/queues", queryHandler.GetCustomerServiceQueues)

	// Profiles and admin roles
	mux.HandleFunc("PUT /profiles/me", authMiddleware.Authenticate(profileHandler.SaveProfile))
	mux.HandleFunc("GET /profiles/me", authMiddleware.Authenticate(profileHandler.GetProfile))
	mux.HandleFunc("PUT /profiles/me/role", authMiddleware.Authenticate(profileHandler.UpdateRole))
	mux.HandleFunc("GET /profiles/me/admin-role", authMiddleware.Authenticate(profileHandler.GetAdminRole))
	mux.HandleFunc("PUT /admin/users/{principal}/admin-role", authMiddleware.RequireAdminRole(profileHandler.AssignAdminRole))

	var root http.Handler = mux
	root = monitoring.Middleware(root)
	root = middleware.CORSMiddleware(cfg.AllowedOrigins)(root)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}

