package manifest

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/compression"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the manifest layout written by this package.
const CurrentVersion = 1

// Roles of the files in an artifact set.
const (
	RoleMask    = "mask"
	RoleColors  = "colors"
	RoleOffsets = "offsets"
)

// Manifest describes one compression run.
type Manifest struct {
	Version   int        `yaml:"version"`
	Source    string     `yaml:"source"`
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
	Search    Search     `yaml:"search"`
	Artifacts []Artifact `yaml:"artifacts"`
}

// Search holds the statistics of a compression.Result.
type Search struct {
	Status     string `yaml:"status"`
	Occupied   int    `yaml:"occupied"`
	HashSize   int    `yaml:"hash_size"`
	OffsetSize int    `yaml:"offset_size"`
	Rounds     int    `yaml:"rounds"`
	Trials     int    `yaml:"trials"`
	Diagnostic string `yaml:"diagnostic,omitempty"`
}

// Artifact is one file written by the compression.
type Artifact struct {
	Role   string `yaml:"role"`
	Path   string `yaml:"path"`
	Size   int64  `yaml:"size"`
	Digest Digest `yaml:"blake3"`
}

// New creates a manifest for the compression of source into result. It has no
// artifacts yet; see AddArtifact.
func New(source string, result *compression.Result) *Manifest {
	return &Manifest{
		Version: CurrentVersion,
		Source:  source,
		Width:   result.Mask.Width(),
		Height:  result.Mask.Height(),
		Search: Search{
			Status:     result.Status.String(),
			Occupied:   result.Occupied,
			HashSize:   result.HashSize,
			OffsetSize: result.OffsetSize,
			Rounds:     result.Rounds,
			Trials:     result.Trials,
			Diagnostic: result.Diagnostic,
		},
	}
}

// AddArtifact hashes the file at path and records it under role, replacing any
// earlier artifact with the same role.
func (m *Manifest) AddArtifact(role, path string) error {
	digest, size, err := HashFile(path)
	if err != nil {
		return err
	}

	entry := Artifact{Role: role, Path: path, Size: size, Digest: digest}
	for i := range m.Artifacts {
		if m.Artifacts[i].Role == role {
			m.Artifacts[i] = entry
			return nil
		}
	}
	m.Artifacts = append(m.Artifacts, entry)
	return nil
}

// Lookup returns the artifact recorded under role.
func (m *Manifest) Lookup(role string) (Artifact, bool) {
	for _, artifact := range m.Artifacts {
		if artifact.Role == role {
			return artifact, true
		}
	}
	return Artifact{}, false
}

// Verify checks that the file at path is the artifact the manifest recorded
// under role. The path itself may differ from the recorded one; only the
// contents matter. A missing role or a different digest gives an error
// wrapping hashpix.ErrChecksumMismatch.
func (m *Manifest) Verify(role, path string) error {
	expected, ok := m.Lookup(role)
	if !ok {
		return hashpix.ErrChecksumMismatch.WithMessage(
			fmt.Sprintf("manifest has no %s artifact", role))
	}

	digest, size, err := HashFile(path)
	if err != nil {
		return err
	}
	if size != expected.Size || digest != expected.Digest {
		return hashpix.ErrChecksumMismatch.WithMessage(
			fmt.Sprintf(
				"%s file %q has digest %s (%d bytes), manifest expects %s (%d bytes)",
				role, path, digest, size, expected.Digest, expected.Size))
	}
	return nil
}

// Encode returns the YAML form of the manifest.
func (m *Manifest) Encode() ([]byte, error) {
	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return out.Bytes(), nil
}

// Decode parses a manifest from YAML.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, hashpix.ErrInvalidFormat.WithMessage("parsing manifest").Wrap(err)
	}
	if m.Version != CurrentVersion {
		return nil, hashpix.ErrNotSupported.WithMessage(
			fmt.Sprintf("manifest version %d", m.Version))
	}
	return &m, nil
}

// Write saves the manifest to path.
func Write(path string, m *Manifest) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return hashpix.ErrIOFailed.WithMessage(fmt.Sprintf("writing %q", path)).Wrap(err)
	}
	return nil
}

// Read loads a manifest from path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, hashpix.ErrIOFailed.WithMessage(fmt.Sprintf("reading %q", path)).Wrap(err)
	}

	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("could not load manifest %q: %w", path, err)
	}
	return m, nil
}
