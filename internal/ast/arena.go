package ast

import (
	"fmt"

	"fortio.org/safecast"
)

type Arena[T any] struct {
	data []T
}

// NewArena creates and returns an *Arena[T] whose internal slice is allocated with a capacity of capHint.
// capHint is a hint for the initial capacity of the arena's underlying storage; zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based).
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// READONLY
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

// Truncate отбрасывает все элементы после первых n.
// Используется для отката спекулятивного разбора; выданные после n ID становятся недействительными.
func (a *Arena[T]) Truncate(n uint32) {
	if int(n) >= len(a.data) {
		return
	}
	var zero T
	for i := int(n); i < len(a.data); i++ {
		a.data[i] = zero // отпускаем слайсы внутри payload
	}
	a.data = a.data[:n]
}

// truncatable: общий вид арены для Builder.Mark/Rewind.
type truncatable interface {
	Len() uint32
	Truncate(n uint32)
}
