// Package collection implements the three bounded, ordered collections
// (briefings, reports, uploaded files) on top of a BlobStore port. Each
// collection is one serialized blob under a fixed key, most-recent-first.
package collection

import "encoding/json"

// decodeList deserializes a collection blob. A corrupt blob yields an empty
// list, never an error: persisted-state parse failures are recovered locally.
func decodeList[T any](raw []byte) []T {
	if len(raw) == 0 {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
