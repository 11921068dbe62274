package entity

type Venue struct {
	Base
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
	Address  string `db:"address"`
}
