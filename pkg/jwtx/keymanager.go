package jwtx

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aussiebroadwan/hireproof/pkg/cryptox"
)

// KeyManager owns the signing keys of one verifyd instance and the
// KeySet used to verify tokens it issued.
type KeyManager struct {
	Verifier *EdDSAVerifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string
	Leeway   time.Duration

	// NumKeys is the number of ephemeral keys to generate. Defaults to 1,
	// capped at 10. Ignored for file-backed managers.
	NumKeys int

	// Now overrides the verifier clock.
	Now func() time.Time
}

func newKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}
	keys := NewKeySet()
	return &KeyManager{
		KeySet: keys,
		Verifier: &EdDSAVerifier{
			Keys:     keys,
			Issuer:   opts.Issuer,
			Audience: opts.Audience,
			Leeway:   opts.Leeway,
			Now:      opts.Now,
		},
	}, nil
}

// NewEphemeralKeyManager generates in-memory keys. Tokens do not survive a
// restart.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	km, err := newKeyManager(opts)
	if err != nil {
		return nil, err
	}

	n := min(max(opts.NumKeys, 1), 10)
	for i := range n {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		kid, err := newKeyID()
		if err != nil {
			return nil, err
		}
		signer, err := NewEdDSASigner(kid, pemKey)
		if err != nil {
			return nil, err
		}
		if err := km.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: add signer %d: %w", i+1, err)
		}
	}
	return km, nil
}

// storedKey is the on-disk form of a file-backed key.
type storedKey struct {
	KID        string `json:"kid"`
	PrivatePEM string `json:"private_pem"`
}

// NewFileKeyManager loads the signing key at path, creating it on first
// start so sessions survive restarts.
func NewFileKeyManager(path string, opts KeyManagerOptions) (*KeyManager, error) {
	if path == "" {
		return nil, errors.New("jwtx: key file path is required")
	}
	km, err := newKeyManager(opts)
	if err != nil {
		return nil, err
	}

	sk, err := loadOrCreateKey(path)
	if err != nil {
		return nil, err
	}
	signer, err := NewEdDSASigner(sk.KID, []byte(sk.PrivatePEM))
	if err != nil {
		return nil, fmt.Errorf("jwtx: load %s: %w", path, err)
	}
	if err := km.AddSigner(signer); err != nil {
		return nil, err
	}
	return km, nil
}

func loadOrCreateKey(path string) (storedKey, error) {
	var sk storedKey

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &sk); err != nil {
			return sk, fmt.Errorf("jwtx: decode %s: %w", path, err)
		}
		if sk.KID == "" || sk.PrivatePEM == "" {
			return sk, fmt.Errorf("jwtx: %s is incomplete", path)
		}
		return sk, nil
	case !errors.Is(err, os.ErrNotExist):
		return sk, fmt.Errorf("jwtx: read %s: %w", path, err)
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return sk, err
	}
	kid, err := newKeyID()
	if err != nil {
		return sk, err
	}
	sk = storedKey{KID: kid, PrivatePEM: string(pemKey)}

	out, err := json.Marshal(sk)
	if err != nil {
		return sk, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return sk, fmt.Errorf("jwtx: create key dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return sk, fmt.Errorf("jwtx: write %s: %w", path, err)
	}
	return sk, nil
}

// AddSigner registers signer for signing and its public key for verification.
func (km *KeyManager) AddSigner(signer Signer) error {
	if signer == nil {
		return errors.New("jwtx: signer cannot be nil")
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	if err := km.KeySet.Add(signer.PublicJWK()); err != nil {
		return err
	}
	km.signers = append(km.signers, signer)
	return nil
}

// Signer returns one of the active signers at random.
func (km *KeyManager) Signer() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// Sign signs claims with a randomly selected key.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	s := km.Signer()
	if s == nil {
		return "", errors.New("jwtx: no signing keys")
	}
	return s.Sign(claims)
}

// Verify validates a token issued by this manager.
func (km *KeyManager) Verify(token string) (Claims, error) {
	return km.Verifier.Verify(token)
}

// IsReady reports whether keys are loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady() && km.NumSigners() > 0
}
