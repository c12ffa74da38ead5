package infrastructure

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftea/checkout-system/shared/events"
)

type fakeSQS struct {
	mu       sync.Mutex
	pending  []types.Message
	deleted  chan string
	extended chan *sqs.ChangeMessageVisibilityInput
}

func newFakeSQS(messages ...types.Message) *fakeSQS {
	return &fakeSQS{
		pending:  messages,
		deleted:  make(chan string, 10),
		extended: make(chan *sqs.ChangeMessageVisibilityInput, 10),
	}
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int(params.MaxNumberOfMessages)
	if n > len(f.pending) {
		n = len(f.pending)
	}
	out := &sqs.ReceiveMessageOutput{Messages: f.pending[:n]}
	f.pending = f.pending[n:]
	return out, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted <- aws.ToString(params.ReceiptHandle)
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error) {
	f.extended <- params
	return &sqs.ChangeMessageVisibilityOutput{}, nil
}

func sqsBody(t *testing.T, evt *events.Event) *string {
	body, err := evt.ToJSON()
	require.NoError(t, err)
	return aws.String(string(body))
}

func startSubscriber(t *testing.T, client *fakeSQS, handle func(ctx context.Context, event *events.Event) error) {
	subscriber := NewSQSEventSubscriber(client, "http://localhost:4566/000000000000/checkout-commands",
		NewEventHandlerFunc("test", handle),
		WithWorkers(1),
		WithName("test"),
		WithIdleSleep(5*time.Millisecond, 5*time.Millisecond),
	)
	require.NoError(t, subscriber.Start(context.Background()))
	t.Cleanup(func() { subscriber.Stop(context.Background()) })
}

func TestSQSEventSubscriber_HandledMessageIsDeleted(t *testing.T) {
	evt := events.NewEvent("cart-token-1", events.CheckoutResumeRequestedEvent, map[string]string{"session_key": "cart-token-1"})
	client := newFakeSQS(types.Message{
		MessageId:     aws.String("msg-1"),
		ReceiptHandle: aws.String("rh-1"),
		Body:          sqsBody(t, evt),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"retailer_id": {DataType: aws.String("String"), StringValue: aws.String("ret-42")},
		},
	})

	received := make(chan *events.Event, 1)
	startSubscriber(t, client, func(ctx context.Context, event *events.Event) error {
		received <- event
		return nil
	})

	select {
	case event := <-received:
		assert.Equal(t, evt.ID, event.ID)
		assert.Equal(t, events.CheckoutResumeRequestedEvent, event.EventType)
		msgID, _ := event.Metadata.Get(SQSMessageIDKey)
		assert.Equal(t, "msg-1", msgID)
		retailer, _ := event.Metadata.Get("retailer_id")
		assert.Equal(t, "ret-42", retailer)

		var data struct {
			SessionKey string `json:"session_key"`
		}
		require.NoError(t, event.UnmarshalPayload(&data))
		assert.Equal(t, "cart-token-1", data.SessionKey)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not handled")
	}

	select {
	case handle := <-client.deleted:
		assert.Equal(t, "rh-1", handle)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not deleted")
	}
}

func TestSQSEventSubscriber_FailedMessageIsRetriedLater(t *testing.T) {
	client := newFakeSQS(types.Message{
		MessageId:     aws.String("msg-1"),
		ReceiptHandle: aws.String("rh-1"),
		Body:          sqsBody(t, events.NewEvent("cart-token-1", events.CheckoutResumeRequestedEvent, nil)),
		Attributes:    map[string]string{"ApproximateReceiveCount": "3"},
	})

	startSubscriber(t, client, func(ctx context.Context, event *events.Event) error {
		return assert.AnError
	})

	select {
	case params := <-client.extended:
		assert.Equal(t, "rh-1", aws.ToString(params.ReceiptHandle))
		// 30s base plus one 30s offset per three receives
		assert.Equal(t, int32(60), params.VisibilityTimeout)
	case <-time.After(2 * time.Second):
		t.Fatal("visibility was not extended")
	}
	assert.Empty(t, client.deleted)
}

func TestSQSEventSubscriber_MalformedMessageIsSkipped(t *testing.T) {
	client := newFakeSQS(
		types.Message{MessageId: aws.String("bad"), ReceiptHandle: aws.String("rh-bad"), Body: aws.String("not json")},
		types.Message{MessageId: aws.String("good"), ReceiptHandle: aws.String("rh-good"),
			Body: sqsBody(t, events.NewEvent("cart-token-1", events.CheckoutResumeRequestedEvent, nil))},
	)

	var mu sync.Mutex
	var handled []string
	startSubscriber(t, client, func(ctx context.Context, event *events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		id, _ := event.Metadata.Get(SQSMessageIDKey)
		handled = append(handled, id)
		return nil
	})

	select {
	case handle := <-client.deleted:
		assert.Equal(t, "rh-good", handle)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not deleted")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"good"}, handled)
}

func TestSQSSubscriberAdapter_RequiresQueue(t *testing.T) {
	_, err := NewSQSSubscriberAdapter("", AWSOptions{})
	assert.Error(t, err)

	adapter, err := NewSQSSubscriberAdapter("http://localhost:4566/000000000000/q", AWSOptions{Region: "us-east-1"})
	require.NoError(t, err)
	// closing a subscriber that never started is a no-op
	assert.NoError(t, adapter.Close())
}
