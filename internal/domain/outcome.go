package domain

// Failure is one entry the transport rejected.
type Failure struct {
	ID          string
	Code        string
	Message     string
	SenderFault bool
}

// SendResult is what the transport reported for one batched call.
type SendResult struct {
	Succeeded []string
	Failed    []Failure
}

// FailedItem pairs an item with the reason the transport rejected it.
type FailedItem struct {
	Item        Item
	Code        string
	Message     string
	SenderFault bool
}

// FlushOutcome is the partition of one attempt.
type FlushOutcome struct {
	SucceededIDs []string
	Failed       []FailedItem
}

// Partition splits the sent items by the transport's failed list.
// Items the transport did not report as failed count as succeeded.
// Both halves keep the order in which the items were sent.
func Partition(sent []Item, res SendResult) FlushOutcome {
	failed := make(map[string]Failure, len(res.Failed))
	for _, f := range res.Failed {
		failed[f.ID] = f
	}

	var out FlushOutcome
	for _, it := range sent {
		f, ok := failed[it.ID]
		if !ok {
			out.SucceededIDs = append(out.SucceededIDs, it.ID)
			continue
		}
		out.Failed = append(out.Failed, FailedItem{
			Item:        it,
			Code:        f.Code,
			Message:     f.Message,
			SenderFault: f.SenderFault,
		})
	}
	return out
}

// FailedItems returns the items of the failed half, in order.
func (o FlushOutcome) FailedItems() []Item {
	items := make([]Item, len(o.Failed))
	for i, f := range o.Failed {
		items[i] = f.Item
	}
	return items
}

// FlushReport summarizes one whole flush across all attempts.
type FlushReport struct {
	Attempts  int
	Delivered []string
	Dropped   []FailedItem
}
