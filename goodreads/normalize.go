package goodreads

import (
	"fmt"
	"strings"
)

// Format selects how a response body is interpreted
type Format int

const (
	// FormatXML parses the body as an XML document and unwraps the envelope
	FormatXML Format = iota
	// FormatJSON parses the body as a JSON document
	FormatJSON
	// FormatRaw returns the first line of the body as a string leaf
	FormatRaw
)

// String returns the string representation of a Format
func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	case FormatRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Envelope is the root element wrapping most XML responses
const Envelope = "GoodreadsResponse"

// Normalize turns a response body into a Value.
//
// Raw bodies yield their first line verbatim. XML bodies are parsed and, when
// the root is the envelope, unwrapped; a body without the envelope passes
// through as {root: ...}. If container is not empty the result is indexed by it,
// and an *InvalidResponseError is returned when the key is missing.
func Normalize(body []byte, format Format, container string) (*Value, error) {
	var (
		result *Value
		err    error
	)

	switch format {
	case FormatRaw:
		line, _, _ := strings.Cut(string(body), "\n")
		result = String(line)
	case FormatJSON:
		result, err = parseJSON(body)
	case FormatXML:
		result, err = parseXML(body)
		if err == nil {
			if inner, ok := result.Get(Envelope); ok {
				result = inner
			}
		}
	default:
		return nil, fmt.Errorf("unknown response format %d", format)
	}
	if err != nil {
		return nil, err
	}

	if container == "" {
		return result, nil
	}

	inner, ok := result.Get(container)
	if !ok {
		return nil, &InvalidResponseError{Container: container, Response: result}
	}
	return inner, nil
}
