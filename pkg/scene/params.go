package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
)

// Parameter file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ParamsFormat infers a parameter file format from its extension.
func ParamsFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported parameter file %q (use .json, .yaml or .toml)", path)
}

// ReadParamsFile reads raw design parameters from a JSON, YAML or TOML file.
func ReadParamsFile(path string) (plant.RawParams, error) {
	format, err := ParamsFormat(path)
	if err != nil {
		return plant.RawParams{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return plant.RawParams{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeParams(data, format)
}

// DecodeParams decodes raw design parameters in the given format.
func DecodeParams(data []byte, format string) (plant.RawParams, error) {
	var raw plant.RawParams
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		_, err = toml.Decode(string(data), &raw)
	default:
		return raw, errors.New(errors.ErrCodeInvalidFormat, "unsupported parameter format %q", format)
	}
	if err != nil {
		return plant.RawParams{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s parameters", format)
	}
	return raw, nil
}

// EncodeParams encodes raw design parameters in the given format.
func EncodeParams(raw plant.RawParams, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(raw, "", "  ")
	case FormatYAML:
		return yaml.Marshal(raw)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported parameter format %q", format)
}
