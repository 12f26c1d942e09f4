// internal/plant/plant.go
package plant

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an opaque catalog identifier. The remote API is inconsistent about
// whether ids travel as JSON numbers or strings, so every id is normalized
// to its decimal string form at the wire boundary and compared in that form.
type ID string

// IsZero reports whether the id is absent.
func (id ID) IsZero() bool { return id == "" }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// NormalizeID maps any in-process id representation onto the same canonical
// form the wire decoder produces, so numeric and string forms of one id
// always compare equal.
func NormalizeID(v interface{}) ID {
	switch x := v.(type) {
	case ID:
		return x
	case string:
		return ID(x)
	case json.Number:
		return ID(x.String())
	case int:
		return ID(strconv.Itoa(x))
	case int64:
		return ID(strconv.FormatInt(x, 10))
	case float64:
		return ID(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return ""
	}
}

// Price is a non-negative amount. Decoding never fails: numbers and numeric
// strings are accepted, anything else coerces to 0 so one bad field cannot
// sink a whole listing.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*p = 0
			return nil
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

// Category is one entry of the category list.
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	// Some endpoints label the display name `category_name` instead of `name`.
	var raw struct {
		ID           ID     `json:"id"`
		Name         string `json:"name"`
		CategoryName string `json:"category_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	c.Name = raw.Name
	if c.Name == "" {
		c.Name = raw.CategoryName
	}
	return nil
}

// Plant is one catalog entry, either from a listing or a detail fetch.
type Plant struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       Price  `json:"price"`
}
