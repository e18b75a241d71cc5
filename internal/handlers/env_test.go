package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskheroes/task-heroes-api/internal/database"
	"github.com/taskheroes/task-heroes-api/internal/models"
	"github.com/taskheroes/task-heroes-api/internal/repository"
	"github.com/taskheroes/task-heroes-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	router        *gin.Engine
	userService   *services.UserService
	taskService   *services.TaskService
	rewardService *services.RewardService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Reward{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rewardRepo := repository.NewRewardRepository(db)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	rewardService := services.NewRewardService(rewardRepo, userRepo)

	router := gin.New()
	RegisterRoutes(router,
		NewUserHandler(userService),
		NewTaskHandler(taskService, nil),
		NewRewardHandler(rewardService),
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:            db,
		router:        router,
		userService:   userService,
		taskService:   taskService,
		rewardService: rewardService,
	}
}

// seedAdmin creates the first account, which becomes the admin.
func (env testEnv) seedAdmin(t *testing.T, username, password string) *models.User {
	t.Helper()
	admin, err := env.userService.CreateUser(services.CreateUserInput{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	require.True(t, admin.Admin)
	return admin
}

// seedUser creates a passwordless non-admin member.
func (env testEnv) seedUser(t *testing.T, username string, points int) *models.User {
	t.Helper()
	user, err := env.userService.CreateUser(services.CreateUserInput{
		Username: username,
	})
	require.NoError(t, err)

	if points != 0 {
		user.Points = points
		require.NoError(t, env.db.Save(user).Error)
	}
	return user
}

func (env testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
