package models

import "fmt"

// Document is an untyped backend record (merchant, menu, order, table) as
// listed by the CRUD endpoints. The console only displays it.
type Document map[string]any

func (d Document) field(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (d Document) ID() string {
	return d.field("_id")
}

// Label picks the most readable field of the record.
func (d Document) Label() string {
	for _, key := range []string{"name", "email", "number", "status"} {
		if v := d.field(key); v != "" {
			return v
		}
	}
	return d.ID()
}
