package producer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Shopify/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/heetch/felice/v3/codec"
	"github.com/heetch/felice/v3/message"
	"github.com/heetch/felice/v3/producer"
)

func newTestProducer(t *testing.T) (*producer.Producer, *mocks.SyncProducer, *[]producer.DeliveryReport) {
	cfg := newOrdersConfig()
	var reports []producer.DeliveryReport
	cfg.SetDeliveryReportCallback(func(r producer.DeliveryReport) {
		reports = append(reports, r)
	})

	msp := mocks.NewSyncProducer(t, nil)
	p, err := producer.NewFrom(msp, cfg)
	require.NoError(t, err)
	return p, msp, &reports
}

func TestSendMessage(t *testing.T) {
	p, msp, reports := newTestProducer(t)

	msg := &producer.Message{
		Key:     int64(1),
		Payload: order{ID: 1, Amount: 2},
		Headers: message.New(message.With("codec", "lz4")),
	}

	msp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		data, err := codec.Decompress(codec.LZ4, val)
		if err != nil {
			return err
		}
		exp := `{"id":1,"amount":2}`
		if string(data) != exp {
			return fmt.Errorf("expected: %s but got: %s", exp, data)
		}
		return nil
	})
	err := p.SendMessage(context.Background(), msg)
	require.NoError(t, err)
	require.Equal(t, "orders", msg.Topic)
	require.NotEmpty(t, msg.ID)
	require.False(t, msg.ProducedAt.IsZero())

	require.Len(t, *reports, 1)
	require.Equal(t, msg.ID, (*reports)[0].MessageID)
	require.Equal(t, "orders", (*reports)[0].Topic)
	require.Equal(t, msg.Offset, (*reports)[0].Offset)
	require.NoError(t, (*reports)[0].Err)

	msp.ExpectSendMessageAndFail(fmt.Errorf("cannot produce message"))
	err = p.SendMessage(context.Background(), msg)
	require.EqualError(t, err, "failed to send message: cannot produce message")

	require.Len(t, *reports, 2)
	require.EqualError(t, (*reports)[1].Err, "cannot produce message")

	require.NoError(t, msp.Close())
}

func TestSendMessageConversionError(t *testing.T) {
	p, msp, reports := newTestProducer(t)

	err := p.SendMessage(context.Background(), &producer.Message{Key: "1", Payload: order{}})
	require.EqualError(t, err, `failed to convert message: failed to serialize key: topic "orders": key serializer: type mismatch: registered with int64, got string`)
	require.True(t, errors.Is(err, producer.ErrTypeMismatch))

	err = p.SendMessage(context.Background(), &producer.Message{
		Key:     int64(1),
		Payload: order{},
		Headers: message.New(message.With("Codec", "gzip")),
	})
	require.True(t, errors.Is(err, producer.ErrUnknownHeader))

	// nothing reached the broker, so nothing is reported.
	require.Empty(t, *reports)
	require.NoError(t, msp.Close())
}

func TestSendMessageCanceled(t *testing.T) {
	p, msp, _ := newTestProducer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.SendMessage(ctx, &producer.Message{Key: int64(1), Payload: order{}})
	require.Equal(t, context.Canceled, err)

	_, err = producer.Send(ctx, p, int64(1), order{}, nil)
	require.Equal(t, context.Canceled, err)
	require.NoError(t, msp.Close())
}

func TestSend(t *testing.T) {
	p, msp, reports := newTestProducer(t)

	msp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		exp := `{"id":2,"amount":3.5}`
		if string(val) != exp {
			return fmt.Errorf("expected: %s but got: %s", exp, val)
		}
		return nil
	})
	msg, err := producer.Send(context.Background(), p, int64(2), order{ID: 2, Amount: 3.5}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), msg.Key)
	require.Equal(t, order{ID: 2, Amount: 3.5}, msg.Payload)
	require.Len(t, *reports, 1)

	msp.ExpectSendMessageAndFail(fmt.Errorf("cannot produce message"))
	_, err = producer.Send(context.Background(), p, int64(2), order{}, message.New(message.With("codec", "gzip")))
	require.EqualError(t, err, "failed to send message: cannot produce message")
	require.Len(t, *reports, 2)

	require.NoError(t, msp.Close())
}

// Send retrieves the serializers with the types of its arguments.
func TestSendTypeMismatch(t *testing.T) {
	p, msp, _ := newTestProducer(t)

	_, err := producer.Send(context.Background(), p, 2, order{}, nil)
	require.EqualError(t, err, `failed to convert message: topic "orders": key serializer: type mismatch: registered with int64, got int`)

	_, err = producer.Send(context.Background(), p, int64(2), &order{}, nil)
	require.True(t, errors.Is(err, producer.ErrTypeMismatch))
	require.NoError(t, msp.Close())
}

func TestNewFromInvalidConfig(t *testing.T) {
	msp := mocks.NewSyncProducer(t, nil)
	cfg := producer.NewConfig("orders", producer.Options{producer.BrokerListOption: "localhost:9092"}, nil)
	producer.SetKeyCallback(cfg, codec.Int64)

	_, err := producer.NewFrom(msp, cfg)
	require.EqualError(t, err, `invalid producer configuration: topic "orders": payload serializer: not registered`)
	require.NoError(t, msp.Close())
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := producer.NewConfig("orders", nil, nil)
	_, err := producer.New(cfg)
	require.EqualError(t, err, `invalid producer configuration: topic "orders": missing "metadata.broker.list" option`)
}
