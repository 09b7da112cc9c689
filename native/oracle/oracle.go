// Package oracle provides a uniform interface over the protocol's four
// price-feed kinds (ZeroFeed, Pyth, Switchboard, UserFeed) with a shared
// freshness check, grounded in the same priority-ordered feed pattern the
// teacher's swap oracle aggregator uses but simplified to the single-feed,
// single-validity model the core spec describes.
//
// Decoding each feed's host-chain wire format (account ownership, byte
// layout) is explicitly out of scope; callers hand in already-decoded feed
// values and this package applies the validation and freshness rules that
// are in scope.
package oracle

import (
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/dvdprice"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/interest"
)

// StaleAfterSecs is the freshness window: a price older than this is Stale.
const StaleAfterSecs = 120

// Validity classifies a queried price's age.
type Validity int

const (
	Fresh Validity = iota
	Stale
)

// Kind identifies which feed format an Oracle reads.
type Kind int

const (
	KindZeroFeed Kind = iota
	KindPyth
	KindSwitchboard
	KindUserFeed
)

// Feed is a decoded price observation: a USD price and the time it was
// published.
type Feed struct {
	PriceUSD    decimal.Decimal
	PublishTime uint64
}

// Oracle is a per-collateral/per-stable price source. Key identifies the
// account the feed is read from; nothing in this package compares a
// decoded Feed against Key.
type Oracle struct {
	Kind Kind
	Key  [32]byte
}

// Zero returns the always-zero oracle used for unconfigured collateral.
func Zero() Oracle { return Oracle{Kind: KindZeroFeed} }

// QueryZeroFeed implements the ZeroFeed contract: always 0, always fresh.
func QueryZeroFeed(now uint64) Feed { return Feed{PriceUSD: decimal.Zero(), PublishTime: now} }

// PythPrice is a decoded Pyth PriceUpdateV2 EMA message.
type PythPrice struct {
	Owner       [32]byte
	Exponent    int32
	PublishTime int64
	EMAPrice    int64
	EMAConf     uint64
}

// QueryPyth implements the Pyth contract: requires account ownership by the
// configured Pyth program, a non-negative EMA price with confidence within
// 10% of price, and a non-negative publish time. The reported price is the
// lower confidence bound (ema_price - ema_conf) scaled by 10^exponent.
func QueryPyth(price PythPrice, expectedOwner [32]byte) (Feed, error) {
	if price.Owner != expectedOwner {
		return Feed{}, fault.New(fault.Unauthorized, "pyth oracle not owned by pyth")
	}
	if price.EMAPrice < 0 {
		return Feed{}, fault.New(fault.InvalidArgument, "pyth price is negative")
	}
	base := uint64(price.EMAPrice)
	if price.EMAConf*10 > base {
		return Feed{}, fault.New(fault.InvalidArgument, "pyth price has too low confidence")
	}
	if price.PublishTime < 0 {
		return Feed{}, fault.New(fault.InvalidArgument, "pyth publish time is negative")
	}
	lowerBound := decimal.FromUint64(base - price.EMAConf)
	exp := price.Exponent
	if exp < 0 {
		exp = -exp
	}
	scale, err := decimal.FromUint64(10).Pow(uint64(exp))
	if err != nil {
		return Feed{}, err
	}
	var priceUSD decimal.Decimal
	if price.Exponent >= 0 {
		priceUSD, err = lowerBound.Mul(scale)
	} else {
		priceUSD, err = lowerBound.Div(scale)
	}
	if err != nil {
		return Feed{}, err
	}
	return Feed{PriceUSD: priceUSD, PublishTime: uint64(price.PublishTime)}, nil
}

// SwitchboardRound is a decoded Switchboard aggregator result.
type SwitchboardRound struct {
	Owner              [32]byte
	Mantissa           int64
	Scale              uint32
	RoundOpenTimestamp int64
}

// QuerySwitchboard implements the Switchboard contract: requires account
// ownership by the configured Switchboard program and a non-negative
// mantissa; price is mantissa/10^scale, time is the round's open timestamp.
func QuerySwitchboard(round SwitchboardRound, expectedOwner [32]byte) (Feed, error) {
	if round.Owner != expectedOwner {
		return Feed{}, fault.New(fault.Unauthorized, "switchboard oracle not owned by switchboard")
	}
	if round.Mantissa < 0 {
		return Feed{}, fault.New(fault.InvalidArgument, "switchboard oracle price is negative which is not allowed")
	}
	scale, err := decimal.FromUint64(10).Pow(uint64(round.Scale))
	if err != nil {
		return Feed{}, err
	}
	priceUSD, err := decimal.FromUint64(uint64(round.Mantissa)).Div(scale)
	if err != nil {
		return Feed{}, err
	}
	if round.RoundOpenTimestamp < 0 {
		return Feed{}, fault.New(fault.InvalidArgument, "switchboard round open timestamp is negative")
	}
	return Feed{PriceUSD: priceUSD, PublishTime: uint64(round.RoundOpenTimestamp)}, nil
}

// QueryUserFeed implements the UserFeed contract: the stored price, always
// reported as published right now (a UserFeed is never stale by itself;
// QueryDVD still applies the shared freshness window against now).
func QueryUserFeed(storedPrice decimal.Decimal, now uint64) Feed {
	return Feed{PriceUSD: storedPrice, PublishTime: now}
}

func validityOf(now, publishTime uint64) Validity {
	if now-publishTime <= StaleAfterSecs {
		return Fresh
	}
	return Stale
}

// QueryDVD returns the decoded feed's price denominated in D: price_usd /
// dvd_price, faulting if the feed is stale. dvd_price is accrued to now as
// part of this call.
func QueryDVD(feed Feed, now uint64, price *dvdprice.DvdPrice, dvdRate interest.Rate) (decimal.Decimal, error) {
	if validityOf(now, feed.PublishTime) != Fresh {
		return decimal.Zero(), fault.New(fault.Stale, "oracle price is stale")
	}
	current, err := price.Get(dvdRate, now)
	if err != nil {
		return decimal.Zero(), err
	}
	return feed.PriceUSD.Div(current)
}
