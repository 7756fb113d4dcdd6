package main

import (
	"github.com/julienschmidt/httprouter"

	appthandler "blinktech/internal/appointments/handler"
	apptrepository "blinktech/internal/appointments/repository"
	apptservice "blinktech/internal/appointments/service"
	apptvalidator "blinktech/internal/appointments/validator"
	"blinktech/internal/auth"
	orderhandler "blinktech/internal/orders/handler"
	orderrepository "blinktech/internal/orders/repository"
	orderservice "blinktech/internal/orders/service"
	ordervalidator "blinktech/internal/orders/validator"
	paymenthandler "blinktech/internal/payments/handler"
	paymentservice "blinktech/internal/payments/service"
	producthandler "blinktech/internal/products/handler"
	productrepository "blinktech/internal/products/repository"
	productservice "blinktech/internal/products/service"
	productvalidator "blinktech/internal/products/validator"
	userhandler "blinktech/internal/users/handler"
	userrepository "blinktech/internal/users/repository"
	userservice "blinktech/internal/users/service"
	uservalidator "blinktech/internal/users/validator"
	"blinktech/pkg/app"
	"blinktech/pkg/config"
	"blinktech/pkg/kafka"
)

const ServiceName = "blinktech-server"

func main() {
	cfg := config.Load(ServiceName)

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Blink Tech server")

	ordersProducer := newProducer(cfg, cfg.KafkaOrdersTopic)
	bookingsProducer := newProducer(cfg, cfg.KafkaBookingsTopic)
	defer closeProducer(cfg, ordersProducer)
	defer closeProducer(cfg, bookingsProducer)

	userRepo := userrepository.NewMongoUserRepository(cfg)
	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.TokenTTL)
	guard := auth.NewGuard(tokens, userRepo, cfg.Log)

	productSvc := productservice.NewProductService(
		productrepository.NewMongoProductRepository(cfg),
		productvalidator.NewProductValidator(cfg.Log),
		cfg,
	)
	orderSvc := orderservice.NewOrderService(
		orderrepository.NewMongoOrderRepository(cfg),
		ordervalidator.NewOrderValidator(cfg.Log),
		asOrderPublisher(ordersProducer),
		cfg,
	)
	appointmentSvc := apptservice.NewAppointmentService(
		apptrepository.NewMongoOptionRepository(cfg),
		apptrepository.NewMongoBookingRepository(cfg),
		apptvalidator.NewBookingValidator(cfg.Log),
		asBookingPublisher(bookingsProducer),
		cfg,
	)
	userSvc := userservice.NewUserService(
		userRepo,
		uservalidator.NewUserValidator(cfg.Log),
		cfg,
	)
	paymentSvc := paymentservice.NewPaymentService(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, func(router *httprouter.Router) {
		auth.NewTokenHandler(tokens, cfg.Log).RegisterRoutes(router)
		producthandler.NewProductHandler(productSvc, cfg.Log).RegisterRoutes(router)
		orderhandler.NewOrderHandler(orderSvc, cfg.Log).RegisterRoutes(router, guard)
		appthandler.NewAppointmentHandler(appointmentSvc, cfg.Log).RegisterRoutes(router, guard)
		userhandler.NewUserHandler(userSvc, cfg.Log).RegisterRoutes(router, guard)
		paymenthandler.NewPaymentHandler(paymentSvc, cfg.Log).RegisterRoutes(router)
	})
	serverApp.Run()
}

// newProducer returns nil when no brokers are configured; events are then
// disabled rather than failing startup.
func newProducer(cfg *config.Config, topic string) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, events disabled", "topic", topic)
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, topic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "topic", topic, "error", err)
	}
	cfg.Log.Info("Kafka producer ready", "topic", topic)
	return producer
}

func closeProducer(cfg *config.Config, producer *kafka.Producer) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka producer", "error", err)
	}
}

// A nil *kafka.Producer must become a nil interface, otherwise the services'
// publisher nil checks never fire.
func asOrderPublisher(p *kafka.Producer) orderservice.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

func asBookingPublisher(p *kafka.Producer) apptservice.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
