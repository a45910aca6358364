package solana

import (
	"crypto/sha256"
	"errors"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
)

const (
	// MaxSeeds includes the bump seed appended by DeriveProgramAddress.
	MaxSeeds      = 16
	MaxSeedLength = 32
)

var (
	ErrMaxSeedLength       = errors.New("max seed length exceeded")
	ErrTooManySeeds        = errors.New("too many seeds")
	ErrOnCurve             = errors.New("derived address lies on the ed25519 curve")
	ErrDerivationExhausted = errors.New("unable to find a viable program address bump seed")

	pdaMarker = []byte("ProgramDerivedAddress")
)

// ProgramAddress is a program derived address together with the bump seed that produced it.
type ProgramAddress struct {
	Address solana.PublicKey
	Bump    uint8
}

// IsOnCurve reports whether b decodes to a valid ed25519 point, i.e. could be a signing key.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

func checkSeeds(seeds [][]byte, limit int) error {
	if len(seeds) > limit {
		return ErrTooManySeeds
	}
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return ErrMaxSeedLength
		}
	}
	return nil
}

// CreateProgramAddress hashes seeds and programID into a single candidate address.
// It returns ErrOnCurve when the candidate is a valid curve point.
func CreateProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	if err := checkSeeds(seeds, MaxSeeds); err != nil {
		return solana.PublicKey{}, err
	}

	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write(programID[:])
	h.Write(pdaMarker)

	var address solana.PublicKey
	copy(address[:], h.Sum(nil))
	if IsOnCurve(address[:]) {
		return solana.PublicKey{}, ErrOnCurve
	}
	return address, nil
}

// DeriveProgramAddress returns the canonical program address for seeds under programID:
// bumps are tried from 255 down to 0 and the first off-curve candidate wins.
func DeriveProgramAddress(seeds [][]byte, programID solana.PublicKey) (ProgramAddress, error) {
	if err := checkSeeds(seeds, MaxSeeds-1); err != nil {
		return ProgramAddress{}, err
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := []byte{0}
	withBump[len(seeds)] = bump

	for b := 255; b >= 0; b-- {
		bump[0] = byte(b)
		address, err := CreateProgramAddress(withBump, programID)
		switch {
		case err == nil:
			return ProgramAddress{Address: address, Bump: uint8(b)}, nil
		case errors.Is(err, ErrOnCurve):
			continue
		default:
			return ProgramAddress{}, err
		}
	}
	return ProgramAddress{}, ErrDerivationExhausted
}

// MustDeriveProgramAddress panics on failure. Use it only for fixed seeds.
func MustDeriveProgramAddress(seeds [][]byte, programID solana.PublicKey) ProgramAddress {
	pda, err := DeriveProgramAddress(seeds, programID)
	if err != nil {
		panic(err)
	}
	return pda
}
