package todo

// List is the full todo list as persisted in the storage file.
// Insertion order is preserved.
type List []Item

// NextID returns the id for the next new item: one greater than the
// highest id present, starting at 1 for an empty list. Gaps left by
// externally edited files are never reused.
func (l List) NextID() int {
	max := 0
	for _, item := range l {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}

// New appends a fresh item with the given text and returns it.
func (l *List) New(text string) Item {
	item := Item{
		ID:          l.NextID(),
		Text:        text,
		CreatedDate: Now(),
	}
	*l = append(*l, item)
	return item
}

// Active returns the items that are not done, in list order.
func (l List) Active() List {
	active := make(List, 0, len(l))
	for _, item := range l {
		if !item.Done {
			active = append(active, item)
		}
	}
	return active
}

// Complete marks the first not-done item with the given id as done and
// stamps its completion time. It returns the completed item and whether
// one was found; an already-done id is treated the same as a missing
// one.
func (l List) Complete(id int) (Item, bool) {
	for idx := range l {
		if l[idx].ID == id && !l[idx].Done {
			now := Now()
			l[idx].Done = true
			l[idx].CompletedDate = &now
			return l[idx], true
		}
	}
	return Item{}, false
}
