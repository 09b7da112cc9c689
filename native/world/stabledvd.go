package world

import "github.com/covenant-finance/covenant/native/decimal"

// StableDvd is a tracking counter for how much D has been minted or burned
// through Stability pools. It does not gate anything by itself — it exists
// so operators can compare it against the mint's actual circulating supply
// and flag any divergence.
type StableDvd struct {
	Circulating decimal.Decimal
}

// NewStableDvd starts the counter at zero.
func NewStableDvd() StableDvd { return StableDvd{Circulating: decimal.Zero()} }

// Increase records dvd_amount freshly minted through a Stability pool.
func (s *StableDvd) Increase(amount decimal.Decimal) error {
	sum, err := s.Circulating.Add(amount)
	if err != nil {
		return err
	}
	s.Circulating = sum
	return nil
}

// Decrease records dvd_amount burned back through a Stability pool.
func (s *StableDvd) Decrease(amount decimal.Decimal) error {
	diff, err := s.Circulating.Sub(amount)
	if err != nil {
		return err
	}
	s.Circulating = diff
	return nil
}
