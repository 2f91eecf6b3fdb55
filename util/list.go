package util

type Node[T any] struct {
	Next  *Node[T]
	Value T
}

// List keeps values in the order they were appended.
type List[T any] struct {
	Head  *Node[T]
	tail  *Node[T]
	count int
}

func (list *List[T]) Append(value T) {
	node := &Node[T]{
		Value: value,
	}

	if list.tail == nil {
		list.Head = node
	} else {
		list.tail.Next = node
	}

	list.tail = node
	list.count++
}

func (list *List[T]) Len() int {
	return list.count
}

func (list *List[T]) ForEach(fn func(T) error) error {
	for node := list.Head; node != nil; node = node.Next {
		if err := fn(node.Value); err != nil {
			return err
		}
	}
	return nil
}
