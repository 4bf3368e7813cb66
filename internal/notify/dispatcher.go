// Package notify delivers new-order alerts to the configured Telegram group
// without blocking the web request that produced the order.
package notify

import (
	"fmt"

	"altindan/internal/domain"
	applog "altindan/internal/log"
)

// Sender is the delivery side, implemented by the Telegram bot client.
type Sender interface {
	Send(chatID int64, text string) error
}

// Dispatcher queues orders onto a single worker goroutine. Notify may be
// called from any goroutine. An unconfigured or failed delivery is logged
// and swallowed; the order is already durably stored by the time it gets
// here, so there is nothing to escalate.
type Dispatcher struct {
	sender Sender
	chatID int64
	queue  chan domain.Order
	done   chan struct{}
}

func NewDispatcher(sender Sender, chatID int64) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		chatID: chatID,
		queue:  make(chan domain.Order, 64),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Notify enqueues the order and returns immediately. A full queue (hung
// delivery) drops the alert rather than backing up into the request path.
func (d *Dispatcher) Notify(o domain.Order) {
	select {
	case d.queue <- o:
	default:
		applog.Bot("notify.queue.full", d.chatID, nil, map[string]any{"order_id": o.ID})
	}
}

// Close stops intake and waits for already-queued deliveries to finish.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for o := range d.queue {
		d.deliver(o)
	}
}

func (d *Dispatcher) deliver(o domain.Order) {
	if d.sender == nil || d.chatID == 0 {
		applog.Bot("notify.skip.unconfigured", 0, nil, map[string]any{"order_id": o.ID})
		return
	}
	if err := d.sender.Send(d.chatID, BuildText(o)); err != nil {
		applog.Bot("notify.send.fail", d.chatID, err, map[string]any{"order_id": o.ID})
		return
	}
	applog.Bot("notify.sent", d.chatID, nil, map[string]any{"order_id": o.ID})
}

// BuildText renders the fixed-layout group message for a new order.
func BuildText(o domain.Order) string {
	return fmt.Sprintf(
		"🆕 Yangi buyurtma\nMahsulot: %s\nMiqdor: %s\nIsm: %s\nTel: %s\nIzoh: %s\nVaqt: %s",
		o.ProductName, o.Qty, o.Customer, o.Phone, o.Note, o.CreatedAt,
	)
}
