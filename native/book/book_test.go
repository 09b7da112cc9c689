package book_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/schedule"
)

func zeroSchedule(t *testing.T) schedule.Schedule {
	t.Helper()
	s, err := schedule.New(decimal.Zero(), decimal.Zero(), decimal.FromUint64(36500))
	require.NoError(t, err)
	return s
}

func TestSetNameDoesNotAffectAccrual(t *testing.T) {
	cfg := book.Config{InterestRate: decimal.FromUint64(1), RewardSchedule: zeroSchedule(t)}
	b := book.New(1000)
	b.SetName("debt")
	require.NoError(t, b.Add(cfg, 1000, decimal.FromUint64(100)))
	require.NoError(t, b.Accrue(cfg, 2000))
	require.Equal(t, "debt", b.Name)

	unnamed := book.New(1000)
	require.NoError(t, unnamed.Add(cfg, 1000, decimal.FromUint64(100)))
	require.NoError(t, unnamed.Accrue(cfg, 2000))
	require.Equal(t, 0, unnamed.Total.Cmp(b.Total))
	require.Equal(t, 0, unnamed.Multiplier.Cmp(b.Multiplier))
}

func TestBookAccrueIsNoOpWithinSameSecond(t *testing.T) {
	cfg := book.Config{InterestRate: decimal.FromUint64(1), RewardSchedule: zeroSchedule(t)}
	b := book.New(1000)
	require.NoError(t, b.Add(cfg, 1000, decimal.FromUint64(100)))
	before := b
	require.NoError(t, b.Accrue(cfg, 1000))
	require.Equal(t, 0, before.Total.Cmp(b.Total))
	require.Equal(t, 0, before.Multiplier.Cmp(b.Multiplier))
}

// TestMultiplierAndAccumulatorMonotonic checks that a book's multiplier and
// accumulator never decrease across a sequence of accruals.
func TestMultiplierAndAccumulatorMonotonic(t *testing.T) {
	s, err := schedule.New(decimal.FromUint64(10), decimal.FromUint64(30), decimal.FromUint64(365))
	require.NoError(t, err)
	cfg := book.Config{InterestRate: decimal.FromUint64(1), RewardSchedule: s}
	b := book.New(0)
	require.NoError(t, b.Add(cfg, 0, decimal.FromUint64(1000)))

	prevMultiplier := b.Multiplier
	prevAccumulator := b.Accumulator
	now := uint64(0)
	for i := 0; i < 20; i++ {
		now += book.SecsPerDay
		require.NoError(t, b.Accrue(cfg, now))
		require.False(t, b.Multiplier.LessThan(prevMultiplier), "multiplier decreased at step %d", i)
		require.False(t, b.Accumulator.LessThan(prevAccumulator), "accumulator decreased at step %d", i)
		prevMultiplier, prevAccumulator = b.Multiplier, b.Accumulator
	}
}

func TestPageTracksBookGrowth(t *testing.T) {
	s, err := schedule.New(decimal.FromUint64(365), decimal.FromUint64(1), decimal.FromUint64(365))
	require.NoError(t, err)
	cfg := book.Config{InterestRate: decimal.Zero(), RewardSchedule: s}
	b := book.New(0)
	p := book.NewPage()

	require.NoError(t, p.Add(&b, cfg, 0, decimal.FromUint64(100)))
	require.NoError(t, p.Add(&b, cfg, book.SecsPerDay, decimal.FromUint64(0)))

	rewards, err := p.ClaimRewards(&b, cfg, 2*book.SecsPerDay)
	require.NoError(t, err)
	require.True(t, rewards.GreaterThan(decimal.Zero()))
}

func TestPageSubtractTooMuchFaults(t *testing.T) {
	cfg := book.Config{InterestRate: decimal.Zero(), RewardSchedule: zeroSchedule(t)}
	b := book.New(0)
	p := book.NewPage()
	require.NoError(t, p.Add(&b, cfg, 0, decimal.FromUint64(10)))
	err := p.Subtract(&b, cfg, 0, decimal.FromUint64(11))
	require.Error(t, err)
}

// TestPageConservation checks that summing page.total*book.multiplier/page.multiplier
// across every page equals book.total, once every page has been accrued to
// the same instant (so each page's multiplier already equals the book's).
func TestPageConservation(t *testing.T) {
	cfg := book.Config{InterestRate: decimal.FromUint64(1), RewardSchedule: zeroSchedule(t)}
	b := book.New(0)

	pages := make([]book.Page, 3)
	for i := range pages {
		pages[i] = book.NewPage()
		require.NoError(t, pages[i].Add(&b, cfg, 0, decimal.FromUint64(uint64(100*(i+1)))))
	}

	now := uint64(5 * book.SecsPerDay)
	total := decimal.Zero()
	for i := range pages {
		pageTotal, err := pages[i].GetTotal(&b, cfg, now)
		require.NoError(t, err)
		var err2 error
		total, err2 = total.Add(pageTotal)
		require.NoError(t, err2)
	}
	bookTotal, err := b.GetTotal(cfg, now)
	require.NoError(t, err)
	require.Equal(t, 0, total.Cmp(bookTotal))
}
