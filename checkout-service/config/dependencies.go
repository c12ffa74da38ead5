package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/draftea/checkout-system/checkout-service/application"
	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/checkout-service/handlers"
	"github.com/draftea/checkout-system/checkout-service/infrastructure"
	sharedinfra "github.com/draftea/checkout-system/shared/infrastructure"
	"github.com/draftea/checkout-system/shared/logging"
	"github.com/draftea/checkout-system/shared/telemetry"
)

type Dependencies struct {
	// Storage
	DB    *sqlx.DB
	Redis *redis.Client

	CheckpointStore domain.CheckpointStore
	Gateway         *infrastructure.HTTPGatewayClient
	Notifier        *infrastructure.EventNotifier

	// Use Cases
	Orchestrator   *application.Orchestrator
	StartCheckout  *application.StartCheckout
	ResumeCheckout *application.ResumeCheckout
	GoBack         *application.GoBack
	GetCheckout    *application.GetCheckout
	CreditRequests *application.CreditRequests
	Balances       *application.BalanceRefresher

	// HTTP Handlers
	CheckoutHandlers *handlers.CheckoutHandlers

	// Event Handlers
	CheckoutEventHandlers *handlers.CheckoutEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}
	built := false
	defer func() {
		if !built {
			deps.Close()
		}
	}()

	if err := logging.Init(config.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.CheckoutServiceConfig.
			WithServiceName(config.ServiceName).
			WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
			ctx = telemetry.WithTelemetry(ctx, tel)
		}
	}

	store, err := deps.buildCheckpointStore(config)
	if err != nil {
		return nil, err
	}
	deps.CheckpointStore = store

	gateway, err := infrastructure.NewHTTPGatewayClient(infrastructure.GatewayOptions{
		BaseURL:             config.Gateway.BaseURL,
		APIKey:              config.Gateway.APIKey,
		Timeout:             config.Gateway.Timeout,
		BreakerFailures:     config.Gateway.BreakerFailures,
		BreakerOpenDuration: config.Gateway.BreakerOpenDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}
	deps.Gateway = gateway

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(ctx, config.AWS.SNSTopicArn, sharedinfra.AWSOptions{
		Region:   config.AWS.Region,
		Endpoint: config.AWS.EndpointSNS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, sharedinfra.AWSOptions{
		Region:   config.AWS.Region,
		Endpoint: config.AWS.EndpointSQS,
	}, sharedinfra.WithName(config.ServiceName), sharedinfra.WithWorkers(config.AWS.SQSWorkers))
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	deps.Notifier = infrastructure.NewEventNotifier(eventPublisher, config.Checkout.NotifyTimeout)
	clock := infrastructure.SystemClock{}

	// Initialize use cases
	deps.Balances = application.NewBalanceRefresher(gateway, deps.Notifier)
	deps.Orchestrator = application.NewOrchestrator(ctx, store, deps.Notifier, deps.Balances,
		application.NewPollScheduler(clock, config.Checkout.PollInterval),
		clock,
		config.Checkout.AbandonAfter,
		application.NewWalletTransfer(gateway),
		application.NewCreditTransfer(gateway),
		application.NewPaymentLink(gateway),
	)
	deps.StartCheckout = application.NewStartCheckout(application.NewChannelSelector(gateway), deps.Orchestrator)
	deps.ResumeCheckout = application.NewResumeCheckout(deps.Orchestrator)
	deps.GoBack = application.NewGoBack(deps.Orchestrator)
	deps.GetCheckout = application.NewGetCheckout(store)
	deps.CreditRequests = application.NewCreditRequests(ctx, gateway, gateway, deps.Balances, deps.Notifier, clock,
		config.Checkout.CreditObserveInterval)

	// Initialize handlers
	deps.CheckoutHandlers = handlers.NewCheckoutHandlers(
		deps.StartCheckout,
		deps.ResumeCheckout,
		deps.GoBack,
		deps.GetCheckout,
		deps.CreditRequests,
		deps.Balances,
	)
	deps.CheckoutEventHandlers = handlers.NewCheckoutEventHandlers(deps.ResumeCheckout, deps.CreditRequests)

	built = true
	return deps, nil
}

func (d *Dependencies) buildCheckpointStore(config *Config) (domain.CheckpointStore, error) {
	if config.Checkpoint.Backend == CheckpointBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		d.Redis = client
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return infrastructure.NewRedisCheckpointStore(client, config.Checkpoint.TTL), nil
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	d.DB = db

	if err := infrastructure.RunMigrations(db.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return infrastructure.NewPostgresCheckpointStore(db), nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.CreditRequests != nil {
		d.CreditRequests.Stop()
	}
	if d.Orchestrator != nil {
		d.Orchestrator.Close()
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	logging.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
