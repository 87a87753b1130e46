package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters to the application layer. All handlers
// share one registry, one hub, and one event bus instance.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	registry   *ws.Registry
	hub        *ws.Hub
	log        *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CompositionRoot {
	registry := ws.NewRegistry()
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		registry:   registry,
		hub:        ws.NewHub(registry, log),
		log:        log,
	}
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uoWFactory(), c.publisher, c.hub, c.log)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uoWFactory(), c.publisher, c.hub, c.log)
}

func (c *CompositionRoot) CreateAutoAssignOrderCommandHandler() commands.AutoAssignOrderCommandHandler {
	return commands.NewAutoAssignOrderCommandHandler(c.uoWFactory(), c.publisher, c.hub, c.log)
}

func (c *CompositionRoot) CreateBroadcastOrderCommandHandler() commands.BroadcastOrderCommandHandler {
	return commands.NewBroadcastOrderCommandHandler(c.uoWFactory(), c.hub, c.log)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactory(), c.publisher, c.hub, c.log)
}

func (c *CompositionRoot) CreateGetNearbyCouriersQueryHandler() queries.GetNearbyCouriersQueryHandler {
	return queries.NewGetNearbyCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardCountersQueryHandler() queries.GetDashboardCountersQueryHandler {
	return queries.NewGetDashboardCountersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateBroadcastOrderCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateUpdateCourierLocationCommandHandler(),
		c.CreateGetNearbyCouriersQueryHandler(),
		c.CreateGetDashboardCountersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateWSServer() *ws.Server {
	return ws.NewServer(c.registry, c.hub, c.log)
}

func (c *CompositionRoot) CreateJobManager(assignmentSpec string) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAutoAssignOrderCommandHandler(), assignmentSpec, c.log)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
