package whittle

// Populate resets the sequence to exactly count nodes holding 1..count.
// The new chain is built before the old one is released, so an
// allocation failure leaves the sequence as it was.
func (seq *Sequence) Populate(count int) error {
	if count < 0 {
		return ErrNegativeCount
	}

	var head *node
	built := 0
	for item := count; item > 0; item-- {
		created, err := seq.newNode(item)
		if err != nil {
			for head != nil {
				cur := head
				head = cur.next
				seq.release(cur)
			}
			return err
		}
		created.next = head
		head = created
		built++
	}

	seq.Clear()
	seq.head = head
	seq.size = built
	return nil
}

// Whittle treats the sequence as a circle: it skips skip nodes, removes
// the next one and repeats from the removed node's predecessor until a
// single node remains. The survivor's item is returned and its node
// stays in the sequence.
func (seq *Sequence) Whittle(skip int) (Item, error) {
	return seq.whittle(skip, nil)
}

// WhittleOrder is Whittle that also reports the items in the order they
// were eliminated.
func (seq *Sequence) WhittleOrder(skip int) ([]Item, Item, error) {
	eliminated := make([]Item, 0, max(seq.size-1, 0))
	survivor, err := seq.whittle(skip, func(item Item) {
		eliminated = append(eliminated, item)
	})
	if err != nil {
		return nil, 0, err
	}
	return eliminated, survivor, nil
}

func (seq *Sequence) whittle(skip int, onEliminate func(Item)) (Item, error) {
	if skip < 0 {
		return 0, ErrNegativeSkip
	}
	if seq.IsEmpty() {
		return 0, ErrEmptySequence
	}

	// nil means "before the head", which on a circle is the same
	// place as the last node.
	var prev *node
	for seq.size > 1 {
		for i := skip % seq.size; i > 0; i-- {
			prev = seq.advance(prev)
		}

		var cur *node
		if prev == nil || prev.next == nil {
			cur = seq.head
			seq.head = cur.next
		} else {
			cur = prev.next
			prev.next = cur.next
		}
		seq.size--

		if onEliminate != nil {
			onEliminate(cur.item)
		}
		seq.release(cur)
	}

	return seq.head.item, nil
}

func (seq *Sequence) advance(prev *node) *node {
	if prev == nil || prev.next == nil {
		return seq.head
	}
	return prev.next
}
