// Package payload builds the JSON body sent for each CSV row.
//
// Two builders exist for the two target schemas: BuildGeneric produces the
// generic-resource shape (fixed fields plus a customProperties bucket) and
// BuildTyped produces the typed-resource shape (every column coerced into
// its JSON type). Both guarantee that no key ever carries a null value and
// that a resolvable resourceId is present.
package payload

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/resourceload/internal/csvsource"
	"github.com/JonMunkholm/resourceload/internal/schema"
)

// ErrMissingResourceID indicates neither the --resource-id override nor a
// resourceId column yielded an identifier for the row.
var ErrMissingResourceID = errors.New(
	"resourceId is missing: provide --resource-id or a 'resourceId' column in the CSV")

// Fixed generic-schema fields. Everything else lands in customProperties.
const (
	colResourceID  = "resourceId"
	colDisplayName = "displayName"
	colUniqueID    = "uniqueId"
	colExternalURL = "externalUrl"
)

// BuildFunc builds the payload for one record. Both builders satisfy it.
type BuildFunc func(rec csvsource.Record, columns []string, overrideID string) (*Fields, error)

// BuildGeneric builds the generic-resource payload:
//
//	{
//	  "resourceId": "...",
//	  "resources": [
//	    {
//	      "displayName": "...",        // omitted when empty
//	      "uniqueId": "...",           // omitted when empty
//	      "externalUrl": "...",        // omitted when empty
//	      "customProperties": {...}    // every other non-empty column
//	    }
//	  ]
//	}
//
// The resourceId comes from overrideID when non-empty, else the record's
// resourceId column. A record whose CSV has no resourceId column at all
// fails with ErrMissingResourceID; an empty cell in an existing column is
// accepted as-is.
func BuildGeneric(rec csvsource.Record, columns []string, overrideID string) (*Fields, error) {
	id := overrideID
	if id == "" {
		v, ok := rec[colResourceID]
		if !ok {
			return nil, ErrMissingResourceID
		}
		id = v
	}

	resource := NewFields()
	for _, col := range []string{colDisplayName, colUniqueID, colExternalURL} {
		if v := rec[col]; v != "" {
			resource.Set(col, v)
		}
	}

	props := NewFields()
	for _, col := range columns {
		switch col {
		case colResourceID, colDisplayName, colUniqueID, colExternalURL:
			continue
		}
		if v := rec[col]; v != "" {
			props.Set(col, v)
		}
	}
	resource.Set("customProperties", props)

	out := NewFields()
	out.Set(colResourceID, id)
	out.Set("resources", []*Fields{resource})
	return out, nil
}

// BuildTyped builds the typed-resource payload:
//
//	{
//	  "resources": [ { ...every non-empty column, coerced... } ],
//	  "resourceId": "..."
//	}
//
// mfaMethods is always an array, mfaEnabled always a boolean (an invalid
// boolean fails the build), and every other column gets best-effort typing
// via schema.Sniff. Field order inside resources[0] mirrors the CSV column
// order. Unlike BuildGeneric, an empty-string resourceId is rejected.
func BuildTyped(rec csvsource.Record, columns []string, overrideID string) (*Fields, error) {
	id := overrideID
	if id == "" {
		id = rec[colResourceID]
	}
	if id == "" {
		return nil, ErrMissingResourceID
	}

	resource := NewFields()
	for _, col := range columns {
		if col == colResourceID {
			continue
		}
		raw := rec[col]
		if raw == "" {
			continue
		}

		switch col {
		case "mfaMethods":
			if list := schema.ParseStringList(raw); list != nil {
				resource.Set(col, list)
			}
		case "mfaEnabled":
			b, err := schema.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", col, err)
			}
			resource.Set(col, b)
		default:
			resource.Set(col, schema.Sniff(raw))
		}
	}

	out := NewFields()
	out.Set("resources", []*Fields{resource})
	out.Set(colResourceID, id)
	return out, nil
}
