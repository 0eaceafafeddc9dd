package phe

import (
	"crypto/rand"
	"io"
	"math/big"

	perr "interestd/internal/platform/errors"
)

// ErrKeyUnavailable is returned by Decrypt when the private half is not held
var ErrKeyUnavailable = perr.New(perr.ErrorCodeKeyUnavailable, "phe: private key unavailable")

// minGeneratedBits guards against toy keys outside tests
const minGeneratedBits = 1024

// Metadata is the public view of the process key
// it has no private fields by construction; do not add any
type Metadata struct {
	N         string `json:"n"         example:"2519590847565789349402718324004839857142928212620403202777713783604366202070"`
	G         string `json:"g"         example:"2519590847565789349402718324004839857142928212620403202777713783604366202071"`
	Version   int    `json:"version"   example:"1"`
	Generated bool   `json:"generated" example:"false"`
}

// Options tune manager construction
type Options struct {
	// Version is the operator assigned key version, default 1
	Version int
	// Random feeds encryption and key generation, default crypto/rand
	Random io.Reader
	// MinBits is the smallest modulus accepted for Generated sources, default 1024
	MinBits int
}

// Manager owns one key pair and the arithmetic over it
// it is immutable after New and safe for concurrent use
type Manager struct {
	pub     *PublicKey
	priv    *PrivateKey
	kind    string
	version int
	random  io.Reader
}

// New resolves src into a manager
// Unavailable and malformed material fail with an ErrorCodeConfiguration error
func New(src KeySource, opt Options) (*Manager, error) {
	if opt.Version <= 0 {
		opt.Version = 1
	}
	if opt.Random == nil {
		opt.Random = rand.Reader
	}
	if opt.MinBits <= 0 {
		opt.MinBits = minGeneratedBits
	}
	m := &Manager{version: opt.Version, random: opt.Random}

	switch s := src.(type) {
	case Configured:
		n, okN := new(big.Int).SetString(s.N, 10)
		g, okG := new(big.Int).SetString(s.G, 10)
		if !okN || !okG {
			return nil, perr.Configf("phe: PUBLIC_KEY_N and PUBLIC_KEY_G must be decimal integers")
		}
		pub, err := NewPublicKey(n, g)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfiguration, "phe: invalid public key")
		}
		m.pub = pub
		if s.Lambda != "" && s.Mu != "" {
			lambda, okL := new(big.Int).SetString(s.Lambda, 10)
			mu, okM := new(big.Int).SetString(s.Mu, 10)
			if !okL || !okM {
				return nil, perr.Configf("phe: PRIVATE_KEY_LAMBDA and PRIVATE_KEY_MU must be decimal integers")
			}
			priv, err := NewPrivateKey(pub, lambda, mu)
			if err != nil {
				return nil, perr.Wrap(err, perr.ErrorCodeConfiguration, "phe: invalid private key")
			}
			m.priv = priv
		}
	case Generated:
		bits := s.Bits
		if bits <= 0 {
			bits = DefaultKeyBits
		}
		if bits < opt.MinBits {
			return nil, perr.Configf("phe: generated key size %d below minimum %d", bits, opt.MinBits)
		}
		priv, err := GenerateKey(opt.Random, bits)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfiguration, "phe: key generation failed")
		}
		pub := priv.PublicKey
		m.pub, m.priv = &pub, priv
	case Unavailable:
		return nil, perr.Configf("phe: no key material: %s", s.Reason)
	default:
		return nil, perr.Configf("phe: unknown key source %T", src)
	}
	m.kind = src.Kind()
	return m, nil
}

// PublicKey returns the process public key
func (m *Manager) PublicKey() *PublicKey { return m.pub }

// PrivateKey returns the private key when held
func (m *Manager) PrivateKey() (*PrivateKey, bool) { return m.priv, m.priv != nil }

// CanDecrypt reports whether Decrypt can succeed
func (m *Manager) CanDecrypt() bool { return m.priv != nil }

// Source returns the resolved key source kind
func (m *Manager) Source() string { return m.kind }

// Encrypt encrypts a non-negative integer under the public key
// every call draws fresh randomness, so equal inputs give unrelated outputs
func (m *Manager) Encrypt(v int64) (Ciphertext, error) {
	if v < 0 {
		return "", perr.InvalidArgf("phe: cannot encrypt negative value %d", v)
	}
	c, err := m.pub.Encrypt(m.random, big.NewInt(v))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "phe: encrypt failed")
	}
	return EncodeCiphertext(c), nil
}

// Add returns a ciphertext of the sum of the two plaintexts without decrypting
func (m *Manager) Add(a, b Ciphertext) (Ciphertext, error) {
	ca, err := a.Int()
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "phe: bad left operand")
	}
	cb, err := b.Int()
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "phe: bad right operand")
	}
	sum, err := m.pub.Add(ca, cb)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "phe: add failed")
	}
	return EncodeCiphertext(sum), nil
}

// Decrypt recovers the plaintext; ErrKeyUnavailable without a private key
func (m *Manager) Decrypt(c Ciphertext) (int64, error) {
	if m.priv == nil {
		return 0, ErrKeyUnavailable
	}
	ci, err := c.Int()
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "phe: bad ciphertext")
	}
	v, err := m.priv.Decrypt(ci)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "phe: decrypt failed")
	}
	if !v.IsInt64() {
		return 0, perr.InvalidArgf("phe: plaintext exceeds int64")
	}
	return v.Int64(), nil
}

// Metadata returns the public key view served to clients
func (m *Manager) Metadata() Metadata {
	return Metadata{
		N:         m.pub.N.String(),
		G:         m.pub.G.String(),
		Version:   m.version,
		Generated: m.kind == Generated{}.Kind(),
	}
}

// IsConfigurationError reports whether err came from key resolution
func IsConfigurationError(err error) bool {
	return perr.IsCode(err, perr.ErrorCodeConfiguration)
}
