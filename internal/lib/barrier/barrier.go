// Package barrier — одноразовый барьер готовности для лениво
// инициализируемых внешних клиентов. Все зависимые операции ждут
// одного Resolve вместо опроса в цикле.
package barrier

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrTimeout = errors.New("initialization deadline exceeded")

type Barrier struct {
	once sync.Once
	done chan struct{}
	err  error
}

func New() *Barrier {
	return &Barrier{done: make(chan struct{})}
}

// Resolve фиксирует результат инициализации. Учитывается только первый вызов.
func (b *Barrier) Resolve(err error) {
	b.once.Do(func() {
		b.err = err
		close(b.done)
	})
}

// Wait блокируется до Resolve, отмены контекста или истечения timeout.
func (b *Barrier) Wait(ctx context.Context, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-b.done:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTimeout
	}
}
