package notifications

import (
	"context"
	"sync"
	"time"
)

const defaultSendTimeout = 10 * time.Second

// Dispatcher рассылает уведомления по всем каналам в фоне.
// NotifyCancellation никогда не блокирует вызывающего и не возвращает ошибок доставки:
// они только логируются.
type Dispatcher struct {
	senders []Sender
	timeout time.Duration
	log     Logger
	wg      sync.WaitGroup
}

// NewDispatcher создает диспетчер; nil-каналы пропускаются
func NewDispatcher(log Logger, timeout time.Duration, senders ...Sender) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	active := make([]Sender, 0, len(senders))
	for _, s := range senders {
		if s != nil {
			active = append(active, s)
		}
	}

	return &Dispatcher{
		senders: active,
		timeout: timeout,
		log:     log,
	}
}

// NotifyCancellation ставит уведомление в отправку и сразу возвращает управление
func (d *Dispatcher) NotifyCancellation(ctx context.Context, notice *CancellationNotice) error {
	if len(d.senders) == 0 {
		return nil
	}

	// Запрос может завершиться раньше отправки, отмену родителя не наследуем
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		for _, s := range d.senders {
			if err := s.Send(sendCtx, notice); err != nil {
				d.log.Error("NotifyCancellation: %s delivery failed for booking id=%d: %v", s.Name(), notice.BookingID, err)
				continue
			}
			d.log.Info("NotifyCancellation: %s delivered for booking id=%d", s.Name(), notice.BookingID)
		}
	}()

	return nil
}

// Wait дожидается завершения отправок (используется при остановке сервиса)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
