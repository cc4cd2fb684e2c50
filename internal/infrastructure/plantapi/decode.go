package plantapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plantshop/backend/internal/domain"
)

// DecodeCatalog extracts the plant list from a catalog API response body.
//
// The list is read from "data" first and "plants" second. Keys that are
// missing, null or otherwise falsy are skipped; a body with neither key is
// an empty catalog. When "data" is itself an envelope it is unwrapped once.
// A bare JSON array is accepted as the list.
func DecodeCatalog(body []byte) ([]domain.PlantRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response body")
	}

	switch trimmed[0] {
	case '[':
		return decodeList(trimmed)
	case '{':
	default:
		return nil, errors.New("response is not a JSON object")
	}

	var resp domain.CatalogResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, err
	}
	return listFromEnvelope(resp, false)
}

func listFromEnvelope(resp domain.CatalogResponse, nested bool) ([]domain.PlantRecord, error) {
	for _, raw := range []json.RawMessage{resp.Data, resp.Plants} {
		raw = bytes.TrimSpace(raw)
		if isFalsy(raw) {
			continue
		}

		switch raw[0] {
		case '[':
			return decodeList(raw)
		case '{':
			if nested {
				return nil, errors.New("plant list nested more than one level deep")
			}
			var inner domain.CatalogResponse
			if err := json.Unmarshal(raw, &inner); err != nil {
				return nil, err
			}
			return listFromEnvelope(inner, true)
		default:
			return nil, fmt.Errorf("plant list has unexpected value %s", truncate(string(raw), 32))
		}
	}

	return []domain.PlantRecord{}, nil
}

func decodeList(raw []byte) ([]domain.PlantRecord, error) {
	plants := []domain.PlantRecord{}
	if err := json.Unmarshal(raw, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// isFalsy reports whether a raw JSON value should be treated as "no list here"
func isFalsy(raw []byte) bool {
	switch string(raw) {
	case "", "null", "false", `""`, "0":
		return true
	}
	return false
}
