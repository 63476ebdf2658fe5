package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LocalizedText speichert einen Text je Locale (z.B. "en_US" -> Titel) als jsonb.
type LocalizedText map[string]string

// Get liefert den Wert für eine Locale oder "".
func (l LocalizedText) Get(locale string) string {
	if l == nil {
		return ""
	}
	return l[locale]
}

// Set setzt den Wert für eine Locale und legt die Map bei Bedarf an.
func (l *LocalizedText) Set(locale, value string) {
	if *l == nil {
		*l = LocalizedText{}
	}
	(*l)[locale] = value
}

// Value serialisiert die Map für die Datenbank.
func (l LocalizedText) Value() (driver.Value, error) {
	if l == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(l)
}

// Scan liest die Map aus der Datenbank.
func (l *LocalizedText) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("localized text: unsupported scan type %T", src)
	}
}

// GormDataType gibt den Datenbanktyp für GORM an.
func (LocalizedText) GormDataType() string {
	return "jsonb"
}

// StringList speichert eine geordnete Liste von Strings (z.B. unterstützte Locales) als jsonb.
type StringList []string

// Value serialisiert die Liste für die Datenbank.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan liest die Liste aus der Datenbank.
func (s *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("string list: unsupported scan type %T", src)
	}
}

// GormDataType gibt den Datenbanktyp für GORM an.
func (StringList) GormDataType() string {
	return "jsonb"
}
