package whittle

import "fmt"

// Item is the value held by each node: a player's original position.
type Item = int

type node struct {
	next *node
	item Item
}

// Sequence is an ordered, singly linked chain of items addressed by
// 1-based index. The zero value is an empty sequence with an unbounded
// allocator. A Sequence must not be shared between goroutines.
type Sequence struct {
	head      *node
	size      int
	allocator Allocator
}

func New() *Sequence {
	return NewWithAllocator(Unbounded())
}

func NewWithAllocator(allocator Allocator) *Sequence {
	return &Sequence{allocator: allocator}
}

func (seq *Sequence) IsEmpty() bool {
	return seq.size == 0
}

func (seq *Sequence) Length() int {
	return seq.size
}

func (seq *Sequence) Retrieve(index int) (Item, error) {
	if index < 1 || index > seq.size {
		return 0, &IndexError{Op: "retrieve", Index: index, Length: seq.size}
	}
	return seq.nodeAt(index).item, nil
}

// Insert places item so that it becomes the node at index, shifting the
// former occupant and everything after it up by one.
func (seq *Sequence) Insert(index int, item Item) error {
	if index < 1 || index > seq.size+1 {
		return &IndexError{Op: "insert", Index: index, Length: seq.size}
	}
	created, err := seq.newNode(item)
	if err != nil {
		return err
	}
	if index == 1 {
		created.next = seq.head
		seq.head = created
	} else {
		prev := seq.nodeAt(index - 1)
		created.next = prev.next
		prev.next = created
	}
	seq.size++
	return nil
}

func (seq *Sequence) Remove(index int) error {
	if index < 1 || index > seq.size {
		return &IndexError{Op: "remove", Index: index, Length: seq.size}
	}
	var cur *node
	if index == 1 {
		cur = seq.head
		seq.head = cur.next
	} else {
		prev := seq.nodeAt(index - 1)
		cur = prev.next
		prev.next = cur.next
	}
	seq.size--
	seq.release(cur)
	return nil
}

// Clear removes every node, one at a time.
func (seq *Sequence) Clear() {
	for !seq.IsEmpty() {
		_ = seq.Remove(1)
	}
}

// Clone returns an independent deep copy drawing its nodes from the
// same allocator. A failed copy releases whatever it managed to build.
func (seq *Sequence) Clone() (*Sequence, error) {
	clone := NewWithAllocator(seq.allocator)
	var tail *node
	for cur := seq.head; cur != nil; cur = cur.next {
		created, err := clone.newNode(cur.item)
		if err != nil {
			clone.Clear()
			return nil, err
		}
		if tail == nil {
			clone.head = created
		} else {
			tail.next = created
		}
		tail = created
		clone.size++
	}
	return clone, nil
}

// Items returns the items in order.
func (seq *Sequence) Items() []Item {
	items := make([]Item, 0, seq.size)
	for cur := seq.head; cur != nil; cur = cur.next {
		items = append(items, cur.item)
	}
	return items
}

// nodeAt walks index-1 hops from head; callers check the range.
func (seq *Sequence) nodeAt(index int) *node {
	cur := seq.head
	for hop := 1; hop < index; hop++ {
		cur = cur.next
	}
	return cur
}

func (seq *Sequence) storage() Allocator {
	if seq.allocator == nil {
		return Unbounded()
	}
	return seq.allocator
}

func (seq *Sequence) newNode(item Item) (*node, error) {
	if err := seq.storage().Allocate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailure, err)
	}
	return &node{item: item}, nil
}

func (seq *Sequence) release(cur *node) {
	cur.next = nil
	seq.storage().Release()
}
