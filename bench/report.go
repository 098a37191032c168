package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jrhy/densemap/persist"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatProto = "proto"
)

// ErrUnknownFormat is returned for a report format other than FormatJSON,
// FormatYAML or FormatProto.
var ErrUnknownFormat = errors.New("bench: unknown report format")

// Formats lists the supported report encodings.
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatProto}
}

// Result is one implementation's measurement on one scenario.
type Result struct {
	Scenario       string        `json:"scenario" yaml:"scenario"`
	Implementation string        `json:"implementation" yaml:"implementation"`
	Repeats        int           `json:"repeats" yaml:"repeats"`
	Duration       time.Duration `json:"duration_ns" yaml:"duration"`
	NsPerOp        float64       `json:"ns_per_op" yaml:"ns_per_op"`
	Checksum       int64         `json:"checksum" yaml:"checksum"`
	Digest         string        `json:"digest" yaml:"digest"`
}

type Report struct {
	Results []Result `json:"results" yaml:"results"`
}

// Encode serializes the report. The proto format is the wire encoding of
// a google.protobuf.Struct holding the JSON form of the report.
func (r *Report) Encode(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	case FormatYAML:
		return yaml.Marshal(r)
	case FormatProto:
		s, err := r.toStruct()
		if err != nil {
			return nil, err
		}
		return proto.Marshal(s)
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

func (r *Report) toStruct() (*structpb.Struct, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("struct: %w", err)
	}
	return s, nil
}

// DecodeReport parses a report produced by Encode in the same format.
func DecodeReport(format string, b []byte) (*Report, error) {
	var r Report
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	case FormatProto:
		var s structpb.Struct
		if err := proto.Unmarshal(b, &s); err != nil {
			return nil, fmt.Errorf("proto: %w", err)
		}
		j, err := json.Marshal(s.AsMap())
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(j, &r); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return &r, nil
}

// Save encodes the report and stores it under its content hash, returning
// the name it was stored as.
func (r *Report) Save(ctx context.Context, p persist.Persist, format string) (string, error) {
	b, err := r.Encode(format)
	if err != nil {
		return "", err
	}
	return persist.StoreContent(ctx, p, "."+format, b)
}
