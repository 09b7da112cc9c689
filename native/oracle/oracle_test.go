package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/dvdprice"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/oracle"
)

func TestZeroFeedAlwaysFreshZero(t *testing.T) {
	feed := oracle.QueryZeroFeed(1000)
	require.True(t, feed.PriceUSD.IsZero())
	require.Equal(t, uint64(1000), feed.PublishTime)
}

func TestQueryDVDStaleFaults(t *testing.T) {
	price := dvdprice.New(0)
	feed := oracle.Feed{PriceUSD: decimal.FromUint64(2), PublishTime: 0}
	_, err := oracle.QueryDVD(feed, oracle.StaleAfterSecs+1, &price, interest.Zero())
	require.Error(t, err)
}

func TestQueryDVDFreshDivides(t *testing.T) {
	price := dvdprice.New(0)
	feed := oracle.Feed{PriceUSD: decimal.FromUint64(4), PublishTime: 0}
	out, err := oracle.QueryDVD(feed, oracle.StaleAfterSecs, &price, interest.Zero())
	require.NoError(t, err)
	require.Equal(t, 0, out.Cmp(decimal.FromUint64(4)))
}

func TestPythRejectsLowConfidence(t *testing.T) {
	owner := [32]byte{1}
	_, err := oracle.QueryPyth(oracle.PythPrice{
		Owner:       owner,
		Exponent:    0,
		PublishTime: 10,
		EMAPrice:    100,
		EMAConf:     11, // 11*10 > 100
	}, owner)
	require.Error(t, err)
}

func TestPythAppliesLowerConfidenceBound(t *testing.T) {
	owner := [32]byte{1}
	feed, err := oracle.QueryPyth(oracle.PythPrice{
		Owner:       owner,
		Exponent:    0,
		PublishTime: 10,
		EMAPrice:    100,
		EMAConf:     5,
	}, owner)
	require.NoError(t, err)
	require.Equal(t, 0, feed.PriceUSD.Cmp(decimal.FromUint64(95)))
	require.Equal(t, uint64(10), feed.PublishTime)
}

func TestPythRejectsOwnerMismatch(t *testing.T) {
	owner := [32]byte{1}
	other := [32]byte{2}
	_, err := oracle.QueryPyth(oracle.PythPrice{Owner: other, EMAPrice: 1}, owner)
	require.Error(t, err)
}

func TestSwitchboardRejectsNegativeMantissa(t *testing.T) {
	owner := [32]byte{3}
	_, err := oracle.QuerySwitchboard(oracle.SwitchboardRound{Owner: owner, Mantissa: -1}, owner)
	require.Error(t, err)
}

func TestUserFeedSetPriceRequiresValidSignature(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	feed := oracle.NewUserFeedStore(&key.PublicKey)

	err = feed.SetPrice(decimal.FromUint64(5), []byte("garbage"))
	require.Error(t, err)
}
