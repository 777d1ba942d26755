package domain

import "time"

type Supplier struct {
	ID        uint64
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Customer struct {
	ID        uint64
	Name      string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
