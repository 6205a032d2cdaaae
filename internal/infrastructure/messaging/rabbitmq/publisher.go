package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "user.accounts"

	// Wait window for the broker confirm
	confirmWait = time.Second

	returnBuffer = 64
)

var ErrNoRoute = errors.New("NO_ROUTE")

// Publisher sends account change notifications to a topic exchange with
// mandatory routing and publisher confirms.
type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	returnCh <-chan amqp.Return
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	p := &Publisher{
		url:      url,
		exchange: exchange,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	// enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch

	// Confirms are tracked per publish by DeferredConfirmation; only returns
	// need a listener.
	p.returnCh = ch.NotifyReturn(make(chan amqp.Return, returnBuffer))

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// PublishEvent JSON-encodes payload and publishes it under routingKey.
func (p *Publisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	if routingKey == "" {
		return errors.New("missing routingKey")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return errors.New("publisher channel not ready")
	}

	msgID := uuid.NewString()
	dc, err := p.ch.PublishWithDeferredConfirmWithContext(
		ctx,
		p.exchange,
		routingKey,
		true,  // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    msgID,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, confirmWait)
	defer cancel()

	ack, err := dc.WaitContext(wctx)
	if err != nil {
		takeReturn(p.returnCh, msgID)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.New("publish confirm timeout")
	}

	// The broker sends basic.return before the ack of the same message, so
	// any return for msgID is already buffered once the confirm completes.
	if takeReturn(p.returnCh, msgID) {
		return fmt.Errorf("%w: %s", ErrNoRoute, routingKey)
	}
	if !ack {
		return errors.New("publish nack")
	}
	return nil
}

// takeReturn drains buffered returns and reports whether one belongs to msgID.
// Returns left over from earlier publishes that gave up waiting are dropped.
func takeReturn(returns <-chan amqp.Return, msgID string) bool {
	found := false
	for {
		select {
		case ret, ok := <-returns:
			if !ok {
				return found
			}
			if ret.MessageId == msgID {
				found = true
			}
		default:
			return found
		}
	}
}
