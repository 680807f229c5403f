package skills

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/skillfield/skillfield/pkg/errors"
)

// ReadTOML decodes a catalog and validates it.
func ReadTOML(r io.Reader) (Catalog, error) {
	var c Catalog
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Catalog{}, errors.New(errors.ErrCodeInvalidCatalog, "unknown catalog key %q", undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// UnmarshalTOML is ReadTOML over a byte slice.
func UnmarshalTOML(data []byte) (Catalog, error) {
	return ReadTOML(bytes.NewReader(data))
}

// LoadFile reads a catalog from path. An empty path returns [Default].
func LoadFile(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Catalog{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s not found", path)
	}
	if err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open catalog %s", path)
	}
	defer f.Close()

	c, err := ReadTOML(f)
	if err != nil {
		return Catalog{}, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// WriteTOML encodes c.
func WriteTOML(w io.Writer, c Catalog) error {
	return toml.NewEncoder(w).Encode(c)
}

// MarshalTOML encodes c into a byte slice.
func MarshalTOML(c Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTOML(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
