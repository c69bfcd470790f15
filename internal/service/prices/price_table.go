package prices

var destinations = []string{
	"Lisbon",
	"Porto",
	"Paris",
	"Milan",
	"Rome",
	"Amsterdam",
	"Madrid",
	"Barcelona",
	"Berlin",
	"London",
}

// upper triangle of the price matrix, row by row
var fares = [][]float64{
	{27.5, 145.0, 167.8, 186.8, 185.9, 50.0, 99.4, 230.6, 158.5},
	{121.1, 151.3, 176.5, 160.9, 42.1, 89.5, 208.0, 132.1},
	{63.8, 115.1, 42.8, 104.9, 83.9, 87.4, 34.2},
	{48.6, 82.7, 118.5, 73.4, 84.0, 95.6},
	{130.3, 137.3, 87.6, 118.5, 144.1},
	{147.6, 124.6, 57.3, 35.4},
	{49.7, 186.3, 120.6},
	{150.7, 114.6},
	{92.6},
}

type PriceTable struct {
	index map[string]int
	table [][]float64
}

func NewPriceTable() *PriceTable {
	n := len(destinations)
	t := &PriceTable{
		index: make(map[string]int, n),
		table: make([][]float64, n),
	}
	for i, name := range destinations {
		t.index[name] = i
		t.table[i] = make([]float64, n)
	}
	for i, row := range fares {
		for k, fare := range row {
			j := i + 1 + k
			t.table[i][j] = fare
			t.table[j][i] = fare
		}
	}
	return t
}

// Price returns the fare between two destinations, 0 when they are equal or
// either one is unknown.
func (t *PriceTable) Price(from, to string) float64 {
	i, ok := t.index[from]
	if !ok {
		return 0
	}
	j, ok := t.index[to]
	if !ok || i == j {
		return 0
	}
	return t.table[i][j]
}

func (t *PriceTable) Destinations() []string {
	return append([]string(nil), destinations...)
}

func (t *PriceTable) Known(name string) bool {
	_, ok := t.index[name]
	return ok
}
