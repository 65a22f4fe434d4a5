package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/smartattend/attendance-backend-go/internal/config"
	appHTTP "github.com/smartattend/attendance-backend-go/internal/handler/http"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
	"github.com/smartattend/attendance-backend-go/internal/pkg/email"
	"github.com/smartattend/attendance-backend-go/internal/pkg/jwt"
	"github.com/smartattend/attendance-backend-go/internal/pkg/storage"
	"github.com/smartattend/attendance-backend-go/internal/repository/postgresql"
	authService "github.com/smartattend/attendance-backend-go/internal/service/auth"
	checkinService "github.com/smartattend/attendance-backend-go/internal/service/checkin"
	departmentService "github.com/smartattend/attendance-backend-go/internal/service/department"
	"github.com/smartattend/attendance-backend-go/internal/service/file"
	latealertService "github.com/smartattend/attendance-backend-go/internal/service/latealert"
	leaveService "github.com/smartattend/attendance-backend-go/internal/service/leave"
	manualcheckService "github.com/smartattend/attendance-backend-go/internal/service/manualcheck"
	"github.com/smartattend/attendance-backend-go/internal/service/scope"
	"github.com/smartattend/attendance-backend-go/internal/service/timerule"
	userService "github.com/smartattend/attendance-backend-go/internal/service/user"
	"github.com/smartattend/attendance-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(migrations.Files, dsn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	checkinRepo := postgresql.NewCheckinRepository(db)
	manualCheckRepo := postgresql.NewManualCheckRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	lateAlertRepo := postgresql.NewLateAlertRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}
	fileService := file.NewFileService(fileStorage)

	mailSender := email.NewSMTPSender(cfg.SMTP)

	ruleResolver := timerule.NewResolver(userRepo, departmentRepo)
	authorizer := scope.NewAuthorizer(userRepo, departmentRepo)
	dispatcher := latealertService.NewDispatcher(lateAlertRepo, userRepo, departmentRepo, mailSender, latealertService.Config{})

	authSvc := authService.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	checkinSvc := checkinService.NewCheckinService(txManager, checkinRepo, ruleResolver, dispatcher, authorizer)
	manualCheckSvc := manualcheckService.NewManualCheckService(txManager, manualCheckRepo, checkinRepo, ruleResolver, dispatcher, authorizer)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveRepo, fileService, authorizer)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	checkinHandler := appHTTP.NewCheckinHandler(checkinSvc)
	manualCheckHandler := appHTTP.NewManualCheckHandler(manualCheckSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	departmentHandler := appHTTP.NewDepartmentHandler(departmentSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			AppEnv:         cfg.App.Env,
		},
		db,
		JWTService,
		authHandler,
		checkinHandler,
		manualCheckHandler,
		leaveHandler,
		departmentHandler,
		userHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
