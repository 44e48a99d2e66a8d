package rentcheck

// AUD is a helper for test to create australian dollars from const
func AUD[T float64 | int](v T) Money { return M(v, "AUD") }

// listing is a helper for test to create a property with the required fields.
func listing(address string, price, weeklyRent float64) Property {
	return Property{
		Address:    address,
		Price:      Some(AUD(price)),
		WeeklyRent: Some(AUD(weeklyRent)),
	}
}
