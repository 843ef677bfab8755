package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/raymundoht/Task-Manager/handlers"
	"github.com/raymundoht/Task-Manager/logging"
	"github.com/raymundoht/Task-Manager/repositories"
	"github.com/raymundoht/Task-Manager/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Manager backend...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "proyectoclas"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	taskRepo := repositories.NewMongoTaskRepository(db.Collection("tasks"))
	projectRepo := repositories.NewMongoProjectRepository(db.Collection("projects"))
	userRepo := repositories.NewMongoUserRepository(db.Collection("users"))
	commentRepo := repositories.NewMongoCommentRepository(db.Collection("comments"))
	historyRepo := repositories.NewMongoHistoryRepository(db.Collection("history"))

	cassandraHost := os.Getenv("CASS_DB")
	if cassandraHost == "" {
		cassandraHost = "127.0.0.1"
	}
	notificationRepo, err := repositories.NewCassandraNotificationRepository(cassandraHost, logging.Logger)
	if err != nil {
		logging.Logger.Fatalf("Event ID: CASS_INIT_FAILED, Description: Failed to initialize notification repository: %v", err)
	}
	defer notificationRepo.CloseSession()
	notificationRepo.CreateTable()

	historyService := services.NewHistoryService(historyRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	taskService := services.NewTaskService(taskRepo, historyService, notificationService)
	projectService := services.NewProjectService(projectRepo)
	userService := services.NewUserService(userRepo)
	commentService := services.NewCommentService(commentRepo, taskService)

	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	userHandler := handlers.NewUserHandler(userService)
	commentHandler := handlers.NewCommentHandler(commentService)
	historyHandler := handlers.NewHistoryHandler(historyService, taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(taskService, projectService, userService)

	r := mux.NewRouter()

	r.HandleFunc("/api/tareas/estadisticas", taskHandler.GetStatistics).Methods(http.MethodGet)
	r.HandleFunc("/api/tareas", taskHandler.GetAllTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tareas", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tareas/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tareas/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	r.HandleFunc("/api/proyectos", projectHandler.GetAllProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/proyectos", projectHandler.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/api/proyectos/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	r.HandleFunc("/api/proyectos/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)

	r.HandleFunc("/api/comentarios", commentHandler.CreateComment).Methods(http.MethodPost)
	r.HandleFunc("/api/comentarios/tarea/{taskID}", commentHandler.GetCommentsByTask).Methods(http.MethodGet)

	r.HandleFunc("/api/historial", historyHandler.GetHistory).Methods(http.MethodGet)

	r.HandleFunc("/api/notificaciones", notificationHandler.GetNotifications).Methods(http.MethodGet)
	r.HandleFunc("/api/notificaciones", notificationHandler.CreateNotification).Methods(http.MethodPost)

	r.HandleFunc("/api/busqueda", taskHandler.SearchTasks).Methods(http.MethodGet)

	r.HandleFunc("/api/reportes/tareas", reportHandler.TasksReport).Methods(http.MethodGet)
	r.HandleFunc("/api/reportes/proyectos", reportHandler.ProjectsReport).Methods(http.MethodGet)
	r.HandleFunc("/api/reportes/usuarios", reportHandler.UsersReport).Methods(http.MethodGet)
	r.HandleFunc("/api/export/tareas/csv", reportHandler.ExportTasksCSV).Methods(http.MethodGet)
	r.HandleFunc("/api/export/proyectos/csv", reportHandler.ExportProjectsCSV).Methods(http.MethodGet)
	r.HandleFunc("/api/export/usuarios/csv", reportHandler.ExportUsersCSV).Methods(http.MethodGet)

	r.HandleFunc("/api/opciones/proyectos", projectHandler.GetProjectOptions).Methods(http.MethodGet)
	r.HandleFunc("/api/opciones/usuarios", userHandler.GetUserOptions).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Task Manager backend is running"))
	}).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "3000"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
