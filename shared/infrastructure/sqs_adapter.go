package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/draftea/checkout-system/shared/events"
	"github.com/pkg/errors"
)

// SQSSubscriberAdapter adapts SQSEventSubscriber to work with events.Subscriber interface
type SQSSubscriberAdapter struct {
	sqsSubscriber *SQSEventSubscriber
	isRunning     bool
	queueURL      string
	awsOptions    AWSOptions
	options       []SQSSubscriberOption
}

// NewSQSSubscriberAdapter creates a new SQS subscriber adapter
func NewSQSSubscriberAdapter(queueURL string, awsOptions AWSOptions, opts ...SQSSubscriberOption) (*SQSSubscriberAdapter, error) {
	if queueURL == "" {
		return nil, errors.New("sqs queue url is required")
	}

	return &SQSSubscriberAdapter{
		queueURL:   queueURL,
		awsOptions: awsOptions,
		options:    opts,
	}, nil
}

// Subscribe implements events.Subscriber interface. The eventType is used as
// the handler id; routing by type is left to the handler.
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	if s.isRunning {
		return errors.New("subscriber is already running")
	}

	cfg, err := loadAWSConfig(ctx, s.awsOptions)
	if err != nil {
		return errors.Wrap(err, "failed to load AWS config")
	}

	sqsClient := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if s.awsOptions.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.awsOptions.Endpoint)
		}
	})

	handlerID := eventType
	if identified, ok := handler.(interface{ HandlerID() string }); ok {
		handlerID = identified.HandlerID()
	}

	s.sqsSubscriber = NewSQSEventSubscriber(
		sqsClient,
		s.queueURL,
		NewEventHandlerFunc(handlerID, handler.Handle),
		s.options...,
	)

	if err := s.sqsSubscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	s.isRunning = true
	return nil
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	if !s.isRunning || s.sqsSubscriber == nil {
		return nil
	}

	if err := s.sqsSubscriber.Stop(context.Background()); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}

	s.isRunning = false
	return nil
}
