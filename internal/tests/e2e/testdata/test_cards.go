package testdata

// TestCard is a card the bank simulator answers deterministically for. The
// outcome is chosen by the last digit of the card number.
type TestCard struct {
	CardNumber  string
	CVV         string
	ExpiryMonth int
	ExpiryYear  int
	Description string
}

var (
	AuthorizedCard = TestCard{
		CardNumber:  "2222405343248877",
		CVV:         "123",
		ExpiryMonth: 4,
		ExpiryYear:  2035,
		Description: "Odd last digit, authorized",
	}

	DeclinedCard = TestCard{
		CardNumber:  "2222405343248112",
		CVV:         "456",
		ExpiryMonth: 1,
		ExpiryYear:  2036,
		Description: "Even last digit, declined",
	}

	UnavailableCard = TestCard{
		CardNumber:  "2222405343248870",
		CVV:         "789",
		ExpiryMonth: 9,
		ExpiryYear:  2035,
		Description: "Trailing zero, bank returns 503",
	}

	ExpiredCard = TestCard{
		CardNumber:  "2222405343248877",
		CVV:         "321",
		ExpiryMonth: 3,
		ExpiryYear:  2020,
		Description: "Expiry in the past",
	}
)
