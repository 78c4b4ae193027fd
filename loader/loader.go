// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/mattermost/flight-analysis/ticket"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatForPath picks the document format from the file extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// documentKeys are the object keys that may hold the record list.
var documentKeys = []string{"tickets", "flights"}

// LoadFile reads and normalizes every record in the document at path.
func LoadFile(path string) ([]ticket.Ticket, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open ticket file")
	}
	defer file.Close()

	tickets, err := Load(file, FormatForPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}

	logrus.WithFields(logrus.Fields{
		"file":    path,
		"tickets": len(tickets),
	}).Debug("loaded tickets")

	return tickets, nil
}

// Load reads a document holding ticket records and normalizes them.
// Both the combined date-time schema and the separate date and time schema
// are accepted, even mixed within one document.
func Load(input io.Reader, format Format) ([]ticket.Ticket, error) {
	document, err := decodeDocument(input, format)
	if err != nil {
		return nil, err
	}

	records, err := recordsOf(document)
	if err != nil {
		return nil, err
	}

	tickets := make([]ticket.Ticket, 0, len(records))
	for i, record := range records {
		fields, ok := record.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("record %d: expected an object, got %T", i, record)
		}

		t, err := decodeRecord(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		tickets = append(tickets, t)
	}

	return tickets, nil
}

func decodeDocument(input io.Reader, format Format) (interface{}, error) {
	var document interface{}

	switch format {
	case FormatYAML:
		data, err := ioutil.ReadAll(input)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read document")
		}
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, errors.Wrap(err, "failed to decode yaml")
		}
		document = stringKeys(document)
	default:
		if err := json.NewDecoder(input).Decode(&document); err != nil {
			return nil, errors.Wrap(err, "failed to decode json")
		}
	}

	return document, nil
}

func recordsOf(document interface{}) ([]interface{}, error) {
	switch doc := document.(type) {
	case []interface{}:
		return doc, nil
	case map[string]interface{}:
		for _, key := range documentKeys {
			value, ok := doc[key]
			if !ok {
				continue
			}
			if value == nil {
				return []interface{}{}, nil
			}
			records, ok := value.([]interface{})
			if !ok {
				return nil, errors.Errorf("%q must be a list, got %T", key, value)
			}
			return records, nil
		}
		return nil, errors.New("document has no tickets or flights list")
	default:
		return nil, errors.Errorf("unexpected document of type %T", document)
	}
}

// stringKeys converts the map[interface{}]interface{} values produced by
// yaml.v2 into map[string]interface{}.
func stringKeys(value interface{}) interface{} {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, item := range v {
			converted[fmt.Sprint(key)] = stringKeys(item)
		}
		return converted
	case []interface{}:
		for i, item := range v {
			v[i] = stringKeys(item)
		}
		return v
	default:
		return value
	}
}
