package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker implements the aggregate tracker for repository tests.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type CourierRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&courierrepo.CourierDTO{})
	suite.Require().NoError(err)

	suite.repo = courierrepo.NewGormCourierRepository(db, noopTracker{})
}

func (suite *CourierRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *CourierRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE couriers CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *CourierRepositoryTestSuite) TestAddAndGet_WithoutPosition() {
	rider, err := courier.NewCourier(kernel.NewUUID(), "Bob")
	suite.Require().NoError(err)

	err = suite.repo.Add(context.Background(), rider)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(context.Background(), rider.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(rider.ID()))
	suite.Equal("Bob", loaded.Name())
	suite.True(loaded.Available())
	suite.Nil(loaded.Location())
}

func (suite *CourierRepositoryTestSuite) TestAddAndGet_WithPosition() {
	rider, err := courier.NewCourier(kernel.NewUUID(), "Alice")
	suite.Require().NoError(err)

	position, err := kernel.NewGeoPoint(40.73, -73.93)
	suite.Require().NoError(err)
	suite.Require().NoError(rider.MoveTo(position, time.Now()))

	err = suite.repo.Add(context.Background(), rider)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(context.Background(), rider.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Location())
	suite.InDelta(40.73, loaded.Location().Lat(), 1e-9)
	suite.InDelta(-73.93, loaded.Location().Lng(), 1e-9)
}

func (suite *CourierRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryTestSuite) TestUpdate_MovesPosition() {
	rider, err := courier.NewCourier(kernel.NewUUID(), "Bob")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), rider))

	position, err := kernel.NewGeoPoint(41.0, -73.5)
	suite.Require().NoError(err)
	suite.Require().NoError(rider.MoveTo(position, time.Now()))

	err = suite.repo.Update(context.Background(), rider)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(context.Background(), rider.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Location())
	suite.InDelta(41.0, loaded.Location().Lat(), 1e-9)
}

func (suite *CourierRepositoryTestSuite) TestGetAllAvailable_FiltersUnavailable() {
	available, err := courier.NewCourier(kernel.NewUUID(), "Alice")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), available))

	busy, err := courier.NewCourier(kernel.NewUUID(), "Bob")
	suite.Require().NoError(err)
	busy.SetAvailable(false, time.Now())
	suite.Require().NoError(suite.repo.Add(context.Background(), busy))

	couriers, err := suite.repo.GetAllAvailable(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(couriers, 1)
	suite.True(couriers[0].ID().IsEqual(available.ID()))
}

func TestCourierRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryTestSuite))
}
