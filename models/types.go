// File: /models/types.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is a custom type for handling JSON arrays of strings in database
type StringSlice []string

// Value implements driver.Valuer interface for database storage
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(ss)
}

// Scan implements sql.Scanner interface for database retrieval
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// GormDataType returns the data type for GORM
func (StringSlice) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (ss StringSlice) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// UnmarshalJSON implements json.Unmarshaler interface
func (ss *StringSlice) UnmarshalJSON(data []byte) error {
	var slice []string
	if err := json.Unmarshal(data, &slice); err != nil {
		return err
	}
	*ss = StringSlice(slice)
	return nil
}

// Contains reports whether the slice holds the given value
func (ss StringSlice) Contains(value string) bool {
	for _, s := range ss {
		if s == value {
			return true
		}
	}
	return false
}

// RatingList is a custom type for the embedded list of activity ratings
type RatingList []Rating

// Value implements driver.Valuer interface for database storage
func (rl RatingList) Value() (driver.Value, error) {
	if rl == nil {
		return json.Marshal([]Rating{})
	}
	return json.Marshal(rl)
}

// Scan implements sql.Scanner interface for database retrieval
func (rl *RatingList) Scan(value interface{}) error {
	if value == nil {
		*rl = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, rl)
	case string:
		return json.Unmarshal([]byte(v), rl)
	default:
		return fmt.Errorf("cannot scan %T into RatingList", value)
	}
}

// GormDataType returns the data type for GORM
func (RatingList) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (rl RatingList) MarshalJSON() ([]byte, error) {
	if rl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Rating(rl))
}
