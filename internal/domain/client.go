package domain

type Client struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	Miles    float64
	Bookings []BookingRef
}
