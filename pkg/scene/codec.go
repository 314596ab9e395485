package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
)

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteScene(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteScene writes a Scene as indented JSON to w.
func WriteScene(s Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// UnmarshalScene deserializes JSON bytes into a Scene and validates it.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal scene")
	}
	return s, Validate(s)
}

// MarshalMsgpack serializes a Scene to MessagePack.
func MarshalMsgpack(s Scene) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode msgpack: %w", err)
	}
	return data, nil
}

// UnmarshalMsgpack deserializes MessagePack bytes into a Scene and validates it.
func UnmarshalMsgpack(data []byte) (Scene, error) {
	var s Scene
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal msgpack scene")
	}
	return s, Validate(s)
}

// WriteSceneFile writes a Scene to a JSON file.
func WriteSceneFile(s Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}

// Validate checks the structural invariants of a decoded scene: a tank
// count within bounds, one pipe fewer than tanks, and pipes chaining
// consecutive tank indices.
func Validate(s Scene) error {
	n := len(s.Tanks)
	if n < plant.MinTanks || n > plant.MaxTanks {
		return errors.New(errors.ErrCodeInvalidFormat, "scene must contain %d to %d tanks, got %d", plant.MinTanks, plant.MaxTanks, n)
	}
	if len(s.Pipes) != n-1 {
		return errors.New(errors.ErrCodeInvalidFormat, "scene with %d tanks must contain %d pipes, got %d", n, n-1, len(s.Pipes))
	}
	for i, p := range s.Pipes {
		if p.From != i || p.To != i+1 {
			return errors.New(errors.ErrCodeInvalidFormat, "pipe %d joins tanks %d→%d, want %d→%d", i, p.From, p.To, i, i+1)
		}
	}
	return nil
}
