package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tc_postgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	container *tc_postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tc_postgres.Run(ctx,
		"postgres:15-alpine",
		tc_postgres.WithDatabase("testdb"),
		tc_postgres.WithUsername("testuser"),
		tc_postgres.WithPassword("testpass"),
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

	err = db.AutoMigrate(&courierrepo.CourierDTO{}, &orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers CASCADE").Error)
}

func (suite *UnitOfWorkTestSuite) seedOrder() *order.Order {
	pickup, err := kernel.NewGeoPoint(40.0, -73.0)
	suite.Require().NoError(err)

	pricing, err := order.NewPricingSnapshot(54.90, 6.50, "123 Main Street", pickup)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), "A-1", pricing, time.Now().UTC())
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *UnitOfWorkTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	rider, err := courier.NewCourier(kernel.NewUUID(), "Bob")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CourierRepository().Add(ctx, rider))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := courierrepo.NewGormCourierRepository(suite.db, noopTracker{}).Get(ctx, rider.ID())
	suite.Require().NoError(err)
	suite.Equal("Bob", loaded.Name())
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	rider, err := courier.NewCourier(kernel.NewUUID(), "Bob")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CourierRepository().Add(ctx, rider))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = courierrepo.NewGormCourierRepository(suite.db, noopTracker{}).Get(ctx, rider.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	err := uow.Commit(context.Background())
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

// Two transactions race to assign the same order; the row lock taken by
// GetForUpdate guarantees exactly one commits and the loser observes the
// conflict after the winner's commit becomes visible.
func (suite *UnitOfWorkTestSuite) TestConcurrentAssignment_ExactlyOneWins() {
	ctx := context.Background()
	seeded := suite.seedOrder()
	courierA := kernel.NewUUID()
	courierB := kernel.NewUUID()

	assign := func(courierID kernel.UUID) error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		aggregate, err := uow.OrderRepository().GetForUpdate(ctx, seeded.ID())
		if err != nil {
			return err
		}
		if err = aggregate.Assign(courierID, time.Now().UTC()); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, courierID := range []kernel.UUID{courierA, courierB} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = assign(courierID)
		}()
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			suite.Require().ErrorIs(err, errs.ErrConflict)
		}
	}
	suite.Equal(1, winners)

	loaded, err := orderrepo.NewGormOrderRepository(suite.db, noopTracker{}).Get(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, loaded.Status())
	suite.Require().NotNil(loaded.Courier())
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
