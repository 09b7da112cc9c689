package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/schedule"
)

func mustSchedule(t *testing.T, maximum, warmup, total uint64) schedule.Schedule {
	t.Helper()
	s, err := schedule.New(decimal.FromUint64(maximum), decimal.FromUint64(warmup), decimal.FromUint64(total))
	require.NoError(t, err)
	return s
}

func TestIntegrateZeroForEmptyInterval(t *testing.T) {
	s := mustSchedule(t, 100, 10, 100)
	out, err := s.Integrate(decimal.FromUint64(5), decimal.FromUint64(5))
	require.NoError(t, err)
	require.True(t, out.IsZero())
}

func TestIntegrateAfterTotalLength(t *testing.T) {
	s := mustSchedule(t, 100, 10, 100)
	out, err := s.Integrate(decimal.FromUint64(200), decimal.FromUint64(300))
	require.NoError(t, err)
	require.True(t, out.IsZero())
}

func TestIntegratePlateau(t *testing.T) {
	s := mustSchedule(t, 100, 10, 100)
	out, err := s.Integrate(decimal.FromUint64(10), decimal.FromUint64(20))
	require.NoError(t, err)
	require.Equal(t, 0, out.Cmp(decimal.FromUint64(1000)))
}

func TestIntegrateWarmupTrapezoid(t *testing.T) {
	s := mustSchedule(t, 100, 10, 100)
	// Ramp from 0 to 100 over 10 days: integral over [0,10] is the full
	// triangle, area = 0.5 * 10 * 100 = 500.
	out, err := s.Integrate(decimal.FromUint64(0), decimal.FromUint64(10))
	require.NoError(t, err)
	require.Equal(t, 0, out.Cmp(decimal.FromUint64(500)))
}

func TestIntegrateClampsAtTotalLength(t *testing.T) {
	s := mustSchedule(t, 100, 10, 100)
	out, err := s.Integrate(decimal.FromUint64(50), decimal.FromUint64(500))
	require.NoError(t, err)
	require.Equal(t, 0, out.Cmp(decimal.FromUint64(5000)))
}

// TestAdditivity checks that for all t1<=t2<=t3, integrate(t1,t3) and
// integrate(t1,t2) + integrate(t2,t3) differ by less than 1e-15. Each
// evaluation truncates at the 18th decimal place, so the two sides are not
// always bit-identical.
func TestAdditivity(t *testing.T) {
	s := mustSchedule(t, 37, 12, 90)
	epsilon, err := decimal.One().DivUint64(1_000_000_000_000_000)
	require.NoError(t, err)
	points := []uint64{0, 1, 5, 11, 12, 13, 40, 89, 90, 91, 150}
	for _, a := range points {
		for _, b := range points {
			for _, c := range points {
				if !(a <= b && b <= c) {
					continue
				}
				ac, err := s.Integrate(decimal.FromUint64(a), decimal.FromUint64(c))
				require.NoError(t, err)

				ab, err := s.Integrate(decimal.FromUint64(a), decimal.FromUint64(b))
				require.NoError(t, err)
				bc, err := s.Integrate(decimal.FromUint64(b), decimal.FromUint64(c))
				require.NoError(t, err)
				sum, err := ab.Add(bc)
				require.NoError(t, err)

				diff := ac.SaturatingSub(sum)
				if sum.GreaterThan(ac) {
					diff = sum.SaturatingSub(ac)
				}
				require.True(t, diff.LessThan(epsilon), "additivity failed for a=%d b=%d c=%d", a, b, c)
			}
		}
	}
}
