package manifest

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dargueta/hashpix"
	"github.com/zeebo/blake3"
)

// Digest is a 32-byte keyed BLAKE3 hash of an artifact file.
type Digest [32]byte

// artifactKey separates artifact digests from any other BLAKE3 hash of the
// same bytes. It's the ASCII name of the domain, zero-padded to 32 bytes.
var artifactKey = [32]byte{
	'h', 'a', 's', 'h', 'p', 'i', 'x', '.', 'a', 'r', 't', 'i', 'f', 'a', 'c', 't',
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(artifactKey[:])
	if err != nil {
		// Only possible with a key that isn't 32 bytes long.
		panic("manifest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// HashReader returns the digest of everything remaining in r and the number of
// bytes read.
func HashReader(r io.Reader) (Digest, int64, error) {
	hasher := newHasher()
	size, err := io.Copy(hasher, r)
	if err != nil {
		return Digest{}, size, err
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, size, nil
}

// HashFile returns the digest and size of the file at path.
func HashFile(path string) (Digest, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, 0, hashpix.ErrIOFailed.WithMessage(
			fmt.Sprintf("opening %q", path)).Wrap(err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Error("could not close file", "name", path, "error", closeErr)
		}
	}()

	digest, size, err := HashReader(file)
	if err != nil {
		return Digest{}, 0, hashpix.ErrIOFailed.WithMessage(
			fmt.Sprintf("reading %q", path)).Wrap(err)
	}
	return digest, size, nil
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest is the inverse of Digest.String.
func ParseDigest(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, hashpix.ErrInvalidFormat.WithMessage("parsing digest").Wrap(err)
	}
	if len(decoded) != len(digest) {
		return digest, hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("digest is %d bytes, want %d", len(decoded), len(digest)))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// MarshalText implements encoding.TextMarshaler so digests are written as hex.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
