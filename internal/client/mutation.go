package client

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrMutationPending возвращается при попытке запустить мутацию,
// пока предыдущий вызов ещё не завершился.
var ErrMutationPending = errors.New("мутация уже выполняется")

// Mutator оборачивает одну мутацию сервера и отслеживает флаг выполнения.
// Пока вызов не завершился, повторные вызовы отклоняются: компоненты
// читают Pending, чтобы блокировать кнопку отправки.
type Mutator[In, Out any] struct {
	fn      func(ctx context.Context, in In) (Out, error)
	pending atomic.Bool
}

// NewMutator создаёт обёртку над функцией мутации.
func NewMutator[In, Out any](fn func(ctx context.Context, in In) (Out, error)) *Mutator[In, Out] {
	return &Mutator[In, Out]{fn: fn}
}

// Call выполняет мутацию. Конкурентный вызов при невыставленном флаге
// невозможен: флаг переключается атомарным CompareAndSwap.
func (m *Mutator[In, Out]) Call(ctx context.Context, in In) (Out, error) {
	var zero Out

	if !m.pending.CompareAndSwap(false, true) {
		return zero, ErrMutationPending
	}
	defer m.pending.Store(false)

	return m.fn(ctx, in)
}

// Pending сообщает, выполняется ли мутация прямо сейчас.
func (m *Mutator[In, Out]) Pending() bool {
	return m.pending.Load()
}
