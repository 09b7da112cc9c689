package oracle

import (
	"crypto/ecdsa"
	"crypto/sha256"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
)

// UserFeedStore is a settable oracle feed gated by a concrete ECDSA
// signature over the update, rather than a delegated transaction signer.
type UserFeedStore struct {
	Authority *ecdsa.PublicKey
	Price     decimal.Decimal
	Nonce     uint64
}

// NewUserFeedStore creates a feed settable only by authority.
func NewUserFeedStore(authority *ecdsa.PublicKey) UserFeedStore {
	return UserFeedStore{Authority: authority, Price: decimal.Zero()}
}

// signingPayload is the byte message a feed update signs over: the new
// price's canonical string form plus the expected next nonce, preventing
// replay of a stale signed update.
func signingPayload(price decimal.Decimal, nonce uint64) [32]byte {
	msg := price.String() + ":" + decimal.FromUint64(nonce).String()
	return sha256.Sum256([]byte(msg))
}

// SetPrice validates sig against authority before updating the stored price
// and advancing the replay-protection nonce.
func (f *UserFeedStore) SetPrice(price decimal.Decimal, sig []byte) error {
	if f.Authority == nil {
		return fault.New(fault.Uninitialized, "user feed has no configured authority")
	}
	digest := signingPayload(price, f.Nonce)
	pubKeyBytes := ethcrypto.FromECDSAPub(f.Authority)
	if !ethcrypto.VerifySignature(pubKeyBytes, digest[:], sig) {
		return fault.New(fault.Unauthorized, "user feed update signature invalid")
	}
	f.Price = price
	f.Nonce++
	return nil
}

// Query returns the current stored price, published as of now (a UserFeed
// is never independently stale; see oracle.QueryUserFeed).
func (f *UserFeedStore) Query(now uint64) Feed {
	return QueryUserFeed(f.Price, now)
}
