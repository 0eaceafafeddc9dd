// Package phe implements the Paillier additively homomorphic cryptosystem and
// the key manager that owns one key pair for the process lifetime
package phe

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	one = big.NewInt(1)

	errMessageRange    = errors.New("phe: plaintext out of range")
	errCiphertextRange = errors.New("phe: ciphertext out of range")
)

// PublicKey is the encryption half of a Paillier key pair
type PublicKey struct {
	N *big.Int // modulus p*q
	G *big.Int // generator, n+1 for generated keys

	nsq *big.Int
}

// PrivateKey is the decryption half, bound to its public key
type PrivateKey struct {
	PublicKey
	Lambda *big.Int // lcm(p-1, q-1)
	Mu     *big.Int // (L(g^lambda mod n^2))^-1 mod n
}

// NewPublicKey builds a public key from its modulus and generator
// g must be a unit modulo n^2
func NewPublicKey(n, g *big.Int) (*PublicKey, error) {
	if n == nil || g == nil {
		return nil, errors.New("phe: modulus and generator required")
	}
	if n.Cmp(big.NewInt(3)) < 0 || n.Bit(0) == 0 {
		return nil, errors.New("phe: modulus must be an odd integer > 2")
	}
	nsq := new(big.Int).Mul(n, n)
	if g.Sign() <= 0 || g.Cmp(nsq) >= 0 {
		return nil, errors.New("phe: generator must lie in [1, n^2)")
	}
	if new(big.Int).GCD(nil, nil, g, n).Cmp(one) != 0 {
		return nil, errors.New("phe: generator shares a factor with n")
	}
	return &PublicKey{N: new(big.Int).Set(n), G: new(big.Int).Set(g), nsq: nsq}, nil
}

// NewPrivateKey binds lambda and mu to pub and checks they match it
func NewPrivateKey(pub *PublicKey, lambda, mu *big.Int) (*PrivateKey, error) {
	if pub == nil || lambda == nil || mu == nil {
		return nil, errors.New("phe: public key, lambda and mu required")
	}
	if lambda.Sign() <= 0 || mu.Sign() <= 0 || mu.Cmp(pub.N) >= 0 {
		return nil, errors.New("phe: lambda and mu must be positive, mu < n")
	}
	// mu * L(g^lambda mod n^2) == 1 (mod n) holds only for the matching pair
	u := pub.l(new(big.Int).Exp(pub.G, lambda, pub.nsq))
	u.Mul(u, mu).Mod(u, pub.N)
	if u.Cmp(one) != 0 {
		return nil, errors.New("phe: private components do not match public key")
	}
	return &PrivateKey{
		PublicKey: *pub,
		Lambda:    new(big.Int).Set(lambda),
		Mu:        new(big.Int).Set(mu),
	}, nil
}

// GenerateKey creates a fresh key pair with an n of exactly bits bits, using g = n+1
func GenerateKey(random io.Reader, bits int) (*PrivateKey, error) {
	if bits < 64 || bits%2 != 0 {
		return nil, fmt.Errorf("phe: key size %d must be even and >= 64", bits)
	}
	if random == nil {
		random = rand.Reader
	}
	for {
		p, err := rand.Prime(random, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := rand.Prime(random, bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}
		pm1 := new(big.Int).Sub(p, one)
		qm1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pm1, qm1)
		if new(big.Int).GCD(nil, nil, n, phi).Cmp(one) != 0 {
			continue
		}
		gcd := new(big.Int).GCD(nil, nil, pm1, qm1)
		lambda := new(big.Int).Div(phi, gcd)

		pub, err := NewPublicKey(n, new(big.Int).Add(n, one))
		if err != nil {
			return nil, err
		}
		u := pub.l(new(big.Int).Exp(pub.G, lambda, pub.nsq))
		mu := new(big.Int).ModInverse(u, n)
		if mu == nil {
			continue
		}
		return &PrivateKey{PublicKey: *pub, Lambda: lambda, Mu: mu}, nil
	}
}

// Encrypt returns g^m * r^n mod n^2 for a fresh random unit r
func (pk *PublicKey) Encrypt(random io.Reader, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, errMessageRange
	}
	if random == nil {
		random = rand.Reader
	}
	r, err := pk.randomUnit(random)
	if err != nil {
		return nil, err
	}
	c := pk.gm(m)
	c.Mul(c, new(big.Int).Exp(r, pk.N, pk.nsq))
	return c.Mod(c, pk.nsq), nil
}

// Add returns a ciphertext of m1+m2 given ciphertexts of m1 and m2
func (pk *PublicKey) Add(c1, c2 *big.Int) (*big.Int, error) {
	if !pk.validCiphertext(c1) || !pk.validCiphertext(c2) {
		return nil, errCiphertextRange
	}
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pk.nsq), nil
}

// Decrypt recovers m = L(c^lambda mod n^2) * mu mod n
func (sk *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if !sk.validCiphertext(c) {
		return nil, errCiphertextRange
	}
	m := sk.l(new(big.Int).Exp(c, sk.Lambda, sk.nsq))
	m.Mul(m, sk.Mu)
	return m.Mod(m, sk.N), nil
}

// NSquared returns n^2
func (pk *PublicKey) NSquared() *big.Int { return new(big.Int).Set(pk.nsq) }

// gm computes g^m mod n^2, using 1 + m*n when g = n+1
func (pk *PublicKey) gm(m *big.Int) *big.Int {
	if new(big.Int).Sub(pk.G, pk.N).Cmp(one) == 0 {
		c := new(big.Int).Mul(m, pk.N)
		c.Add(c, one)
		return c.Mod(c, pk.nsq)
	}
	return new(big.Int).Exp(pk.G, m, pk.nsq)
}

// l is the Paillier L function (x-1)/n
func (pk *PublicKey) l(x *big.Int) *big.Int {
	out := new(big.Int).Sub(x, one)
	return out.Div(out, pk.N)
}

func (pk *PublicKey) randomUnit(random io.Reader) (*big.Int, error) {
	for {
		r, err := rand.Int(random, pk.N)
		if err != nil {
			return nil, err
		}
		if r.Sign() == 0 {
			continue
		}
		if new(big.Int).GCD(nil, nil, r, pk.N).Cmp(one) == 0 {
			return r, nil
		}
	}
}

func (pk *PublicKey) validCiphertext(c *big.Int) bool {
	return c != nil && c.Sign() > 0 && c.Cmp(pk.nsq) < 0
}
