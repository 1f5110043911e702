package store

// Blessing is one entry of the blessing journal. Times are epoch milliseconds.
type Blessing struct {
	ID        string
	BlessedAt int64
	EndsAt    int64
}
