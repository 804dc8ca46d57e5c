package plan

import "fmt"

// Item is one day of a content plan outline. Ephemeral; only the scripts
// generated from it are persisted.
type Item struct {
	Day   int    `json:"day"`
	Title string `json:"title"`
	Brief string `json:"brief"`
}

// Outline is the JSON shape the model is instructed to return.
type Outline struct {
	Plan []Item `json:"plan"`
}

// Reconcile enforces the post-condition that a plan has exactly n items with
// day numbers 1..n, whatever the model produced. Short plans are padded with
// synthetic items referencing the topic; long plans are truncated.
func Reconcile(items []Item, n int, topic string) []Item {
	if n < 1 {
		n = 1
	}

	if len(items) > n {
		items = items[:n]
	}

	for len(items) < n {
		day := len(items) + 1
		items = append(items, Item{
			Day:   day,
			Title: fmt.Sprintf("%s - Day %d", topic, day),
			Brief: fmt.Sprintf("Continue exploring %s with fresh insights and perspectives", topic),
		})
	}

	for i := range items {
		items[i].Day = i + 1
	}
	return items
}
