package phe

import (
	"strings"

	"interestd/internal/platform/config"
)

// DefaultKeyBits is the modulus size for generated development keys
const DefaultKeyBits = 2048

// KeySource says where the process key comes from; resolved once at startup
// exactly one of Configured, Generated, Unavailable
type KeySource interface {
	// Kind names the source for logs and readiness output
	Kind() string
	isKeySource()
}

// Configured carries decimal key material from the environment
// Lambda and Mu are optional; without both the manager is encrypt-only
type Configured struct {
	N, G       string
	Lambda, Mu string
}

// Generated asks for a fresh ephemeral key pair of Bits bits
type Generated struct {
	Bits int
}

// Unavailable means no key material and no permission to generate
type Unavailable struct {
	Reason string
}

func (Configured) Kind() string  { return "configured" }
func (Generated) Kind() string   { return "generated" }
func (Unavailable) Kind() string { return "unavailable" }

func (Configured) isKeySource()  {}
func (Generated) isKeySource()   {}
func (Unavailable) isKeySource() {}

// Partial reports whether exactly one private component is set
func (c Configured) Partial() bool { return (c.Lambda == "") != (c.Mu == "") }

// SourceFromConfig picks the key source from PHE_* style settings
// configured material wins; generation needs DEV_AUTO_GEN and a non production ENV
func SourceFromConfig(cfg config.Conf) KeySource {
	n := cfg.MayString("PUBLIC_KEY_N", "")
	g := cfg.MayString("PUBLIC_KEY_G", "")
	if n != "" && g != "" {
		return Configured{
			N:      n,
			G:      g,
			Lambda: cfg.MayString("PRIVATE_KEY_LAMBDA", ""),
			Mu:     cfg.MayString("PRIVATE_KEY_MU", ""),
		}
	}
	if n != "" || g != "" {
		return Unavailable{Reason: "PUBLIC_KEY_N and PUBLIC_KEY_G must be set together"}
	}

	if strings.EqualFold(cfg.MayString("ENV", ""), "production") {
		return Unavailable{Reason: "no key configured and generation is disabled in production"}
	}
	if !cfg.MayBool("DEV_AUTO_GEN", true) {
		return Unavailable{Reason: "no key configured and DEV_AUTO_GEN is off"}
	}
	return Generated{Bits: cfg.MayInt("KEY_BITS", DefaultKeyBits)}
}
