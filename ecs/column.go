package ecs

const chunkSize = 64

// column stores one component type for every slot of an archetype. Slots
// are allocated by the archetype, so all columns of an archetype stay
// aligned.
type column interface {
	set(slot int, item any) bool
	clear(slot int)
	get(slot int) any
}

// chunk is a fixed block of component values. Chunks are heap allocated
// individually so that pointers handed out by get stay valid while the
// column grows.
type chunk[T any] struct {
	items [chunkSize]T
	live  uint64
}

type typedColumn[T any] struct {
	chunks []*chunk[T]
}

func (c *typedColumn[T]) set(slot int, item any) bool {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return false
	}

	ci, bit := slot/chunkSize, slot%chunkSize
	for ci >= len(c.chunks) {
		c.chunks = append(c.chunks, &chunk[T]{})
	}

	ch := c.chunks[ci]
	ch.items[bit] = value
	ch.live |= 1 << bit
	return true
}

func (c *typedColumn[T]) clear(slot int) {
	ci, bit := slot/chunkSize, slot%chunkSize
	if slot < 0 || ci >= len(c.chunks) {
		return
	}

	ch := c.chunks[ci]
	var zero T
	ch.items[bit] = zero
	ch.live &^= 1 << bit
}

func (c *typedColumn[T]) get(slot int) any {
	ci, bit := slot/chunkSize, slot%chunkSize
	if slot < 0 || ci >= len(c.chunks) {
		return nil
	}

	ch := c.chunks[ci]
	if ch.live&(1<<bit) == 0 {
		return nil
	}
	return &ch.items[bit]
}
