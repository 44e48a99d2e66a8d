package rentcheck

// Property is a listing to evaluate, as read from the input table.
//
// Price and WeeklyRent are required. Running costs default to zero. The
// financing fields default to DefaultInterestRate and to the run's
// Assumptions.
type Property struct {
	Address    string
	Price      Optional[Money]
	WeeklyRent Optional[Money]

	CouncilRates   Money
	StrataBodyCorp Money
	Insurance      Money
	LandTax        Money
	OtherCosts     Money

	InterestRate  Optional[float64] // current annual rate, as a fraction
	LVR           Optional[float64]
	LoanTermYears Optional[int]
}

// Column names of the input table.
const (
	ColAddress        = "address"
	ColPrice          = "price"
	ColWeeklyRent     = "weekly_rent"
	ColCouncilRates   = "council_rates"
	ColStrataBodyCorp = "strata_body_corp"
	ColInsurance      = "insurance"
	ColLandTax        = "land_tax"
	ColOtherCosts     = "other_costs"
	ColInterestRate   = "current_interest_rate"
	ColLVR            = "lvr"
	ColLoanTermYears  = "loan_term_years"
)

// InputColumns lists the columns of the input table, in template order.
var InputColumns = []string{
	ColAddress, ColPrice, ColWeeklyRent,
	ColCouncilRates, ColStrataBodyCorp, ColInsurance, ColLandTax, ColOtherCosts,
	ColInterestRate, ColLVR, ColLoanTermYears,
}

type namedAmount struct {
	name   string
	amount Money
}

// costs returns the fixed running costs by column name.
func (p Property) costs() []namedAmount {
	return []namedAmount{
		{ColCouncilRates, p.CouncilRates},
		{ColStrataBodyCorp, p.StrataBodyCorp},
		{ColInsurance, p.Insurance},
		{ColLandTax, p.LandTax},
		{ColOtherCosts, p.OtherCosts},
	}
}

// DemoProperties returns five fictional but realistic listings.
func DemoProperties(currency string) []Property {
	demo := func(address string, price, rent, council, strata, insurance, landTax, other int) Property {
		return Property{
			Address:        address,
			Price:          Some(M(price, currency)),
			WeeklyRent:     Some(M(rent, currency)),
			CouncilRates:   M(council, currency),
			StrataBodyCorp: M(strata, currency),
			Insurance:      M(insurance, currency),
			LandTax:        M(landTax, currency),
			OtherCosts:     M(other, currency),
			InterestRate:   Some(DefaultInterestRate),
		}
	}
	return []Property{
		demo("12 Park St, Box Hill VIC", 900_000, 720, 2200, 0, 1200, 800, 500),
		demo("4/18 Beach Rd, St Kilda VIC", 650_000, 620, 1500, 2400, 900, 0, 600),
		demo("7 River Gums Dr, Werribee VIC", 680_000, 520, 1900, 0, 1100, 300, 500),
		demo("22 King St, Newcastle NSW", 850_000, 780, 2100, 0, 1200, 700, 600),
		demo("3/55 James St, Fortitude Valley QLD", 580_000, 600, 1400, 2800, 800, 0, 700),
	}
}
