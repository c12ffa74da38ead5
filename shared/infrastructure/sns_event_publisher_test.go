package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftea/checkout-system/shared/events"
)

type fakeSNS struct {
	mu      sync.Mutex
	batches []*sns.PublishBatchInput
	failIDs map[string]bool
	err     error
}

func (f *fakeSNS) PublishBatch(ctx context.Context, params *sns.PublishBatchInput, optFns ...func(*sns.Options)) (*sns.PublishBatchOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, params)

	out := &sns.PublishBatchOutput{}
	for _, entry := range params.PublishBatchRequestEntries {
		if f.failIDs[aws.ToString(entry.Id)] {
			out.Failed = append(out.Failed, types.BatchResultErrorEntry{Id: entry.Id, Code: aws.String("InternalError")})
			continue
		}
		out.Successful = append(out.Successful, types.PublishBatchResultEntry{Id: entry.Id})
	}
	return out, nil
}

type succeededData struct {
	SessionKey string `json:"session_key"`
	OrderID    string `json:"order_id"`
}

func TestSNSEventPublisher_Publish(t *testing.T) {
	client := &fakeSNS{}
	publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:checkout-events")

	evt := events.NewEvent("cart-token-1", events.CheckoutSucceededEvent, succeededData{SessionKey: "cart-token-1", OrderID: "ORD-1"}).
		WithMetadata("retailer_id", "ret-42").
		WithMetadata(SQSReceiptHandleKey, "stale")

	require.NoError(t, publisher.Publish(context.Background(), evt))
	require.Len(t, client.batches, 1)

	batch := client.batches[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:checkout-events", aws.ToString(batch.TopicArn))
	require.Len(t, batch.PublishBatchRequestEntries, 1)

	entry := batch.PublishBatchRequestEntries[0]
	assert.Equal(t, evt.ID.String(), aws.ToString(entry.Id))
	assert.Equal(t, "ret-42", aws.ToString(entry.MessageAttributes["retailer_id"].StringValue))
	assert.Equal(t, events.CheckoutSucceededEvent, aws.ToString(entry.MessageAttributes["topic"].StringValue))
	assert.NotContains(t, entry.MessageAttributes, SQSReceiptHandleKey)

	// the body decodes back into an event the subscriber can handle
	var decoded events.Event
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Message)), &decoded))
	assert.Equal(t, "cart-token-1", decoded.AggregateID)
	assert.Equal(t, events.CheckoutSucceededEvent, decoded.EventType)

	var data succeededData
	require.NoError(t, decoded.UnmarshalPayload(&data))
	assert.Equal(t, "ORD-1", data.OrderID)
}

func TestSNSEventPublisher_Batches(t *testing.T) {
	client := &fakeSNS{}
	publisher := NewSNSEventPublisher(client, "arn")

	evts := make([]*events.Event, 25)
	for i := range evts {
		evts[i] = events.NewEvent("cart-token-1", events.CheckoutRetryRequiredEvent, nil)
	}

	require.NoError(t, publisher.Publish(context.Background(), evts...))

	require.Len(t, client.batches, 3)
	total := 0
	for _, b := range client.batches {
		assert.LessOrEqual(t, len(b.PublishBatchRequestEntries), maxBatchSize)
		total += len(b.PublishBatchRequestEntries)
	}
	assert.Equal(t, 25, total)
}

func TestSNSEventPublisher_Failures(t *testing.T) {
	t.Run("failed entries", func(t *testing.T) {
		failing := events.NewEvent("cart-token-1", events.CheckoutFailedEvent, nil)
		client := &fakeSNS{failIDs: map[string]bool{failing.ID.String(): true}}
		publisher := NewSNSEventPublisher(client, "arn")

		err := publisher.Publish(context.Background(),
			events.NewEvent("cart-token-1", events.CheckoutSucceededEvent, nil), failing)
		assert.EqualError(t, err, "failed to publish 1 of 2 events")
	})

	t.Run("client error", func(t *testing.T) {
		publisher := NewSNSEventPublisher(&fakeSNS{err: assert.AnError}, "arn")

		err := publisher.Publish(context.Background(), events.NewEvent("cart-token-1", events.CheckoutSucceededEvent, nil))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("nothing to publish", func(t *testing.T) {
		client := &fakeSNS{}
		require.NoError(t, NewSNSEventPublisher(client, "arn").Publish(context.Background()))
		assert.Empty(t, client.batches)
	})
}

func TestSplitToChunks(t *testing.T) {
	chunks := splitToChunks([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks)
	assert.Nil(t, splitToChunks([]int{}, 2))
}
