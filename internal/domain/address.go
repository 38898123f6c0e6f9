package domain

import "fmt"

// Address is a value: two addresses with the same fields are the same address.
type Address struct {
	Street string `json:"street"`
	Number int    `json:"number"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

func NewAddress(street string, number int, zip, city string) Address {
	return Address{
		Street: street,
		Number: number,
		Zip:    zip,
		City:   city,
	}
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %d, %s %s", a.Street, a.Number, a.Zip, a.City)
}
