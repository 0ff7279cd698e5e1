package main

import (
	"context"
	"time"

	"hotelbooking/internal/bookings/events"
	"hotelbooking/internal/bookings/handler"
	"hotelbooking/internal/bookings/reference"
	"hotelbooking/internal/bookings/service"
	"hotelbooking/internal/bookings/validator"
	datahandler "hotelbooking/internal/data/handler"
	dataservice "hotelbooking/internal/data/service"
	hotelhandler "hotelbooking/internal/hotels/handler"
	hotelservice "hotelbooking/internal/hotels/service"
	"hotelbooking/internal/store"
	"hotelbooking/internal/store/factory"
	"hotelbooking/pkg/app"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/contracts"
	kafka_config "hotelbooking/pkg/kafka/config"
)

const (
	ServiceName    = "bookings"
	startupTimeout = 60 * time.Second
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")
	st, err := factory.New(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to open store", "error", err)
	}
	prepareStore(cfg, st)

	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, st, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(st, handlers)
	serverApp.OnShutdown(func(ctx context.Context) {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
		if err := st.Close(ctx); err != nil {
			cfg.Log.Error("Failed to close store", "error", err)
		}
		cfg.GracefulShutdown()
	})
	serverApp.Run()
}

func prepareStore(cfg *config.Config, st store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := factory.Migrate(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to migrate store", "error", err)
	}
	if cfg.SeedOnStartup {
		if err := dataservice.SeedIfEmpty(ctx, dataservice.NewDataService(st, cfg)); err != nil {
			cfg.Log.Fatal("Failed to seed reference data", "error", err)
		}
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled {
		cfg.Log.Info("Kafka disabled; booking events will not be published")
		return events.NewNoopPublisher()
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)
	publisher, err := events.NewKafkaPublisher(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka publisher", "error", err)
	}
	return events.NewAsyncPublisher(publisher, kafkaCfg.PublishTimeout, cfg.Log)
}

func initHandlers(cfg *config.Config, st store.Store, publisher events.Publisher) contracts.Handlers {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingService := service.NewBookingService(st, st, reference.NewGenerator(), publisher, cfg)
	hotelService := hotelservice.NewHotelService(st, cfg)
	dataService := dataservice.NewDataService(st, cfg)

	cfg.Log.Info("Booking services initialized", "store", cfg.StoreDriver)
	return contracts.Handlers{
		handler.NewBookingHandler(bookingService, bookingValidator, cfg.Log),
		handler.NewRoomHandler(bookingService, bookingValidator, cfg.Log),
		hotelhandler.NewHotelHandler(hotelService, cfg.Log),
		datahandler.NewDataHandler(dataService, cfg.Log),
	}
}
