package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type EntityRepositoryTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	repo EntityRepository
}

func (s *EntityRepositoryTestSuite) SetupTest() {
	sqlDB, mock, err := sqlmock.New()
	s.Require().NoError(err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)

	s.mock = mock
	s.repo = NewEntityRepository(db)
}

func (s *EntityRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *EntityRepositoryTestSuite) TestUpdateRating_Success() {
	entityID := uuid.New()

	s.mock.ExpectBegin()
	// Updates(map) сортирует колонки по алфавиту: biashara_score, total_reviews, updated_at
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entities" SET`)).
		WithArgs(4.3, 12, sqlmock.AnyArg(), entityID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.UpdateRating(context.Background(), entityID, 4.3, 12)

	s.NoError(err)
}

func (s *EntityRepositoryTestSuite) TestUpdateRating_ZeroValues() {
	entityID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entities" SET`)).
		WithArgs(0.0, 0, sqlmock.AnyArg(), entityID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.UpdateRating(context.Background(), entityID, 0, 0)

	s.NoError(err)
}

func (s *EntityRepositoryTestSuite) TestUpdateRating_NotFound() {
	entityID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entities" SET`)).
		WithArgs(4.3, 12, sqlmock.AnyArg(), entityID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.UpdateRating(context.Background(), entityID, 4.3, 12)

	s.ErrorIs(err, ErrEntityNotFound)
}

func (s *EntityRepositoryTestSuite) TestUpdateRating_DBError() {
	entityID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entities" SET`)).
		WithArgs(4.3, 12, sqlmock.AnyArg(), entityID).
		WillReturnError(errors.New("connection reset"))
	s.mock.ExpectRollback()

	err := s.repo.UpdateRating(context.Background(), entityID, 4.3, 12)

	s.Error(err)
	s.Contains(err.Error(), "failed to update entity rating")
}

func (s *EntityRepositoryTestSuite) TestGetAllIDs_Success() {
	id1 := uuid.New()
	id2 := uuid.New()

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow(id1).
		AddRow(id2)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "entities"`)).
		WillReturnRows(rows)

	ids, err := s.repo.GetAllIDs(context.Background())

	s.NoError(err)
	s.Len(ids, 2)
	s.Contains(ids, id1)
	s.Contains(ids, id2)
}

func (s *EntityRepositoryTestSuite) TestGetAllIDs_Empty() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "entities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := s.repo.GetAllIDs(context.Background())

	s.NoError(err)
	s.Empty(ids)
}

func (s *EntityRepositoryTestSuite) TestGetAllIDs_DBError() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "entities"`)).
		WillReturnError(errors.New("connection refused"))

	ids, err := s.repo.GetAllIDs(context.Background())

	s.Error(err)
	s.Nil(ids)
}

func TestEntityRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EntityRepositoryTestSuite))
}
