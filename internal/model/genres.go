package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Genres is an ordered list of genre names. It is persisted as a JSON
// array in a text column so the same schema works on MySQL and SQLite.
type Genres []string

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("genres: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*g = Genres{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*g = Genres(out)
	return nil
}
