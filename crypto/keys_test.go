package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressBinaryRoundTrip(t *testing.T) {
	b := make([]byte, 20)
	b[0] = 0x42
	b[19] = 0x24
	addr, err := NewAddress(CovenantPrefix, b)
	require.NoError(t, err)

	encoded, err := addr.MarshalBinary()
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, decoded.UnmarshalBinary(encoded))
	require.Equal(t, addr, decoded)
	require.Equal(t, addr.String(), decoded.String())
}

func TestDecodeAddressRoundTripsThroughString(t *testing.T) {
	b := make([]byte, 20)
	b[5] = 0x11
	addr, err := NewAddress(ReservePrefix, b)
	require.NoError(t, err)

	decoded, err := DecodeAddress(addr.String())
	require.NoError(t, err)
	require.Equal(t, addr, decoded)
}
