//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"biashara/directory-service/internal/app/directory/entity"
	"biashara/directory-service/internal/app/directory/handler"
	"biashara/directory-service/internal/app/directory/repository"
	"biashara/directory-service/internal/app/directory/service"
	"biashara/directory-service/internal/app/directory/util"
	"biashara/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// DirectoryIntegrationTestSuite интеграционные тесты directory-service
// Требует запущенный PostgreSQL (тестовая БД), Redis эмулируется miniredis
type DirectoryIntegrationTestSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	gormDB    *gorm.DB
	miniRedis *miniredis.Miniredis
	cache     *util.RedisClient
	router    *gin.Engine
}

func TestDirectoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(DirectoryIntegrationTestSuite))
}

func testDSN() string {
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	return "host=localhost port=5433 user=postgres password=postgres dbname=directory_service_test sslmode=disable"
}

func (s *DirectoryIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", "error", io.Discard)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN())
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL")
	require.NoError(s.T(), pool.Ping(ctx))
	s.pool = pool

	s.gormDB, err = gorm.Open(postgres.Open(testDSN()), &gorm.Config{})
	require.NoError(s.T(), err)

	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)
	s.cache, err = util.NewRedisClient(s.miniRedis.Addr(), "", 0)
	require.NoError(s.T(), err)

	s.setupSchema(ctx)

	categoryRepo := repository.NewCategoryRepository(s.pool)
	entityRepo := repository.NewEntityRepository(s.gormDB)
	directoryService := service.NewDirectoryService(categoryRepo, entityRepo, s.cache)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	s.router = handler.SetupRoutes(directoryHandler, handler.NewAuthMiddleware(testSecret))
}

func (s *DirectoryIntegrationTestSuite) setupSchema(ctx context.Context) {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	require.NoError(s.T(), err)

	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS entities (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category_id UUID NOT NULL REFERENCES categories(id),
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			biashara_score NUMERIC NOT NULL DEFAULT 0,
			total_reviews INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	require.NoError(s.T(), err)
}

func (s *DirectoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.pool.Exec(ctx, `TRUNCATE entities, categories CASCADE`)
	require.NoError(s.T(), err)
	s.miniRedis.FlushAll()
}

func (s *DirectoryIntegrationTestSuite) TearDownSuite() {
	if s.cache != nil {
		s.cache.Close()
	}
	if s.miniRedis != nil {
		s.miniRedis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *DirectoryIntegrationTestSuite) makeToken(role string) string {
	claims := handler.IdentityClaims{
		UserID: "user_123",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(s.T(), err)
	return signed
}

func (s *DirectoryIntegrationTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *DirectoryIntegrationTestSuite) createCategory(name string) entity.Category {
	w := s.do(http.MethodPost, "/categories", s.makeToken("admin"), entity.CreateCategoryRequest{Name: name})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var category entity.Category
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &category))
	return category
}

func (s *DirectoryIntegrationTestSuite) createEntity(categoryID uuid.UUID, name string) entity.Entity {
	w := s.do(http.MethodPost, "/entities", s.makeToken("manager"), entity.CreateEntityRequest{
		Name:       name,
		CategoryID: categoryID,
		Address:    "12 Moi Avenue",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var e entity.Entity
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

// ==================== Tests ====================

func (s *DirectoryIntegrationTestSuite) TestCategoryLifecycle() {
	category := s.createCategory("Restaurants")

	w := s.do(http.MethodGet, "/categories", "", nil)
	s.Equal(http.StatusOK, w.Code)

	var list entity.CategoryListResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Equal(1, list.Total)
	s.Equal("Restaurants", list.Categories[0].Name)

	w = s.do(http.MethodPut, "/categories/"+category.ID.String(), s.makeToken("admin"),
		entity.UpdateCategoryRequest{Name: "Cafes"})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/categories/"+category.ID.String(), s.makeToken("admin"), nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/categories/"+category.ID.String(), "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *DirectoryIntegrationTestSuite) TestCategoryListServedFromCache() {
	category := s.createCategory("Restaurants")

	// Первый запрос заполняет кеш
	w := s.do(http.MethodGet, "/categories", "", nil)
	s.Equal(http.StatusOK, w.Code)

	// Удаляем строку напрямую, минуя сервис: кеш об этом не знает
	_, err := s.pool.Exec(context.Background(), `DELETE FROM entities`)
	s.NoError(err)
	_, err = s.pool.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, category.ID)
	s.NoError(err)

	w = s.do(http.MethodGet, "/categories", "", nil)
	s.Equal(http.StatusOK, w.Code)

	var list entity.CategoryListResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &list))
	// Ответ пришел из кеша и все еще содержит удаленную категорию
	s.Equal(1, list.Total)
}

func (s *DirectoryIntegrationTestSuite) TestEntityCreateAndGet() {
	category := s.createCategory("Restaurants")
	e := s.createEntity(category.ID, "Mama Njeri Kitchen")

	w := s.do(http.MethodGet, "/entities/"+e.ID.String(), "", nil)
	s.Equal(http.StatusOK, w.Code)

	var got entity.EntityWithCategory
	s.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("Mama Njeri Kitchen", got.Name)
	s.Equal("Restaurants", got.Category.Name)
	s.Equal(0.0, got.BiasharaScore)
	s.Equal(0, got.TotalReviews)
}

func (s *DirectoryIntegrationTestSuite) TestRatingOverwriteFlow() {
	category := s.createCategory("Restaurants")
	e := s.createEntity(category.ID, "Mama Njeri Kitchen")

	// Агрегатор пишет рейтинг без токена (внутренний вызов)
	w := s.do(http.MethodPut, "/entities/"+e.ID.String()+"/rating", "", entity.UpdateRatingRequest{
		BiasharaScore: 4.3,
		TotalReviews:  12,
	})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/entities/"+e.ID.String(), "", nil)
	s.Equal(http.StatusOK, w.Code)

	var got entity.EntityWithCategory
	s.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(4.3, got.BiasharaScore)
	s.Equal(12, got.TotalReviews)

	// Перезапись в ноль: все отзывы скрыты модерацией
	w = s.do(http.MethodPut, "/entities/"+e.ID.String()+"/rating", "", entity.UpdateRatingRequest{
		BiasharaScore: 0,
		TotalReviews:  0,
	})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/entities/"+e.ID.String(), "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(0.0, got.BiasharaScore)
	s.Equal(0, got.TotalReviews)
}

func (s *DirectoryIntegrationTestSuite) TestRatingInvalidatesEntityListCache() {
	category := s.createCategory("Restaurants")
	e := s.createEntity(category.ID, "Mama Njeri Kitchen")

	// Заполняем кеш списка
	w := s.do(http.MethodGet, "/entities", "", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPut, "/entities/"+e.ID.String()+"/rating", "", entity.UpdateRatingRequest{
		BiasharaScore: 5.0,
		TotalReviews:  1,
	})
	s.Equal(http.StatusOK, w.Code)

	// Список отражает новый рейтинг: кеш инвалидирован записью
	w = s.do(http.MethodGet, "/entities", "", nil)
	s.Equal(http.StatusOK, w.Code)

	var list entity.EntityListResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Equal(1, list.Total)
	s.Equal(5.0, list.Entities[0].BiasharaScore)
}

func (s *DirectoryIntegrationTestSuite) TestRatingUnknownEntity() {
	w := s.do(http.MethodPut, "/entities/"+uuid.New().String()+"/rating", "", entity.UpdateRatingRequest{
		BiasharaScore: 4.0,
		TotalReviews:  1,
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *DirectoryIntegrationTestSuite) TestDeleteCategoryWithEntities() {
	category := s.createCategory("Restaurants")
	s.createEntity(category.ID, "Mama Njeri Kitchen")

	w := s.do(http.MethodDelete, "/categories/"+category.ID.String(), s.makeToken("admin"), nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *DirectoryIntegrationTestSuite) TestWriteRequiresRole() {
	category := s.createCategory("Restaurants")

	w := s.do(http.MethodPost, "/entities", s.makeToken("user"), entity.CreateEntityRequest{
		Name:       "Mama Njeri Kitchen",
		CategoryID: category.ID,
	})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/entities", "", entity.CreateEntityRequest{
		Name:       "Mama Njeri Kitchen",
		CategoryID: category.ID,
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *DirectoryIntegrationTestSuite) TestHealthEndpoint() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("directory-service", resp["service"])
}
