package cmd

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/eventbus"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *eventbus.Bus
	kafka      *kafka.Publisher
	publisher  ports.EventPublisher
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	bus := eventbus.New(logger)

	var publisher ports.EventPublisher = bus
	var kafkaPublisher *kafka.Publisher

	// The Kafka mirror is optional: without a broker the engine still
	// serves in-process subscribers through the bus.
	if configs.KafkaHost != "" {
		kafkaPublisher = kafka.NewPublisher(
			[]string{configs.KafkaHost},
			map[string]string{
				ports.ChannelOrders:        configs.KafkaOrdersTopic,
				ports.ChannelPartners:      configs.KafkaPartnersTopic,
				ports.ChannelNotifications: configs.KafkaNotificationsTopic,
			},
			logger,
		)
		publisher = fanOutPublisher{bus, kafkaPublisher}
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        bus,
		kafka:      kafkaPublisher,
		publisher:  publisher,
		clock:      realClock{},
		logger:     logger,
	}
}

// Close releases resources held by outbound adapters.
func (c *CompositionRoot) Close() {
	c.bus.Close()
	if c.kafka != nil {
		if err := c.kafka.Close(); err != nil {
			c.logger.Error("Failed to close Kafka publisher", "error", err)
		}
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPartnerCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetAvailabilityCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLocationCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPartnerCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailablePartnersQueryHandler() queries.ListAvailablePartnersQueryHandler {
	return queries.NewListAvailablePartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCurrentDeliveryQueryHandler() queries.GetCurrentDeliveryQueryHandler {
	return queries.NewGetCurrentDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFacade() *dispatch.Facade {
	return dispatch.NewFacade(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignPartnerCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateSetAvailabilityCommandHandler(),
		c.CreateUpdateLocationCommandHandler(),
		c.CreateRegisterPartnerCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateListAvailablePartnersQueryHandler(),
		c.CreateGetCurrentDeliveryQueryHandler(),
	)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(c.CreateFacade(), c.bus)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gormDB, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// fanOutPublisher delivers every event to each wrapped publisher.
type fanOutPublisher []ports.EventPublisher

func (f fanOutPublisher) Publish(ctx context.Context, channel string, event ports.Event) {
	for _, p := range f {
		p.Publish(ctx, channel, event)
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
