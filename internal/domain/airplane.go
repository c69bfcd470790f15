package domain

type Airplane struct {
	ID      int64
	Seats   int
	Company string
	Model   string
	Flights []int64
}
