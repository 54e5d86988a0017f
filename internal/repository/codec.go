package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec turns record slices into the text stored by a Gateway.
type Codec interface {
	Name() string
	Marshal(v any) (string, error)
	Unmarshal(data string, v any) error
}

const (
	CodecJSON = "json"
	CodecYAML = "yaml"
)

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecJSON }

func (jsonCodec) Marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (jsonCodec) Unmarshal(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return CodecYAML }

func (yamlCodec) Marshal(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (yamlCodec) Unmarshal(data string, v any) error {
	return yaml.Unmarshal([]byte(data), v)
}

// JSONCodec is the default encoding.
func JSONCodec() Codec { return jsonCodec{} }

// YAMLCodec stores records as a YAML sequence.
func YAMLCodec() Codec { return yamlCodec{} }

// CodecByName resolves the storage.codec config value. Empty means JSON.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CodecJSON:
		return JSONCodec(), nil
	case CodecYAML, "yml":
		return YAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unknown storage codec %q (want json or yaml)", name)
	}
}
