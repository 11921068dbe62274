package entity

type TicketType struct {
	Base
	Name  string  `db:"name"`
	Price float64 `db:"price"`
}
