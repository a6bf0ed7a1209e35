// Package native wraps a host application's actor document.
//
// Records are opaque JSON: adapters read through gjson paths and write
// through sjson, so fields the adapters never touch survive a round trip
// byte-for-byte. Writes replace the record's bytes, which every holder of
// the *Record observes.
package native

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNotObject is returned when a document is not a JSON object.
var ErrNotObject = errors.New("native record must be a JSON object")

// Record is one actor document owned by the host application.
type Record struct {
	raw []byte
}

// Parse validates data as a JSON object and wraps a private copy of it.
func Parse(data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse native record: invalid json")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, ErrNotObject
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return &Record{raw: raw}, nil
}

// FromValue encodes v (usually a map or struct decoded elsewhere) as a record.
func FromValue(v any) (*Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode native record: %w", err)
	}
	return Parse(data)
}

// MustParse is Parse for literals known to be valid.
func MustParse(data string) *Record {
	r, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return r
}

// Bytes returns the current document. Callers must not modify it.
func (r *Record) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.raw
}

// String returns the current document as text.
func (r *Record) String() string {
	return string(r.Bytes())
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	raw := make([]byte, len(r.raw))
	copy(raw, r.raw)
	return &Record{raw: raw}
}

// Get returns the value at a gjson path.
func (r *Record) Get(path string) gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.raw, path)
}

// Has reports whether path holds a non-null value.
func (r *Record) Has(path string) bool {
	return Defined(r.Get(path))
}

// First evaluates candidate paths top-down and returns the first defined value.
func (r *Record) First(paths ...string) (gjson.Result, bool) {
	if r == nil {
		return gjson.Result{}, false
	}
	return First(gjson.ParseBytes(r.raw), paths...)
}

// Set writes value at path, creating intermediate objects as needed.
func (r *Record) Set(path string, value any) error {
	if r == nil {
		return fmt.Errorf("set %s: nil record", path)
	}
	updated, err := sjson.SetBytes(r.raw, path, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	r.raw = updated
	return nil
}

// ID returns the host-assigned identifier.
func (r *Record) ID() string {
	v, _ := r.First("_id", "id")
	return v.String()
}

// Name returns the actor's display name.
func (r *Record) Name() string {
	return r.Get("name").String()
}

// Type returns the host actor type, e.g. "character" or "npc".
func (r *Record) Type() string {
	return r.Get("type").String()
}

// Host actor types. Other document types (items, journal entries) share the
// same envelope.
const (
	ActorCharacter = "character"
	ActorNPC       = "npc"
	ActorCreature  = "creature"
)

// IsActor reports whether the record is an actor document.
func (r *Record) IsActor() bool {
	switch r.Type() {
	case ActorCharacter, ActorNPC, ActorCreature:
		return true
	default:
		return false
	}
}

// Items returns the embedded item documents in record order.
func (r *Record) Items() []Item {
	items := r.Get("items")
	if !items.IsArray() {
		return nil
	}
	var out []Item
	for index, data := range items.Array() {
		out = append(out, Item{Index: index, Data: data})
	}
	return out
}

// FindItem returns the embedded item with the given id.
func (r *Record) FindItem(id string) (Item, bool) {
	if strings.TrimSpace(id) == "" {
		return Item{}, false
	}
	for _, item := range r.Items() {
		if item.ID() == id {
			return item, true
		}
	}
	return Item{}, false
}

// MarshalJSON emits the document unchanged.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil || len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// UnmarshalJSON accepts any JSON object.
func (r *Record) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	r.raw = parsed.raw
	return nil
}

// Item is one embedded item document (skill, weapon, spell, ...).
type Item struct {
	Index int
	Data  gjson.Result
}

// ID returns the item's host identifier.
func (i Item) ID() string { return i.Data.Get("_id").String() }

// Name returns the item's display name.
func (i Item) Name() string { return i.Data.Get("name").String() }

// Type returns the item's type tag.
func (i Item) Type() string { return i.Data.Get("type").String() }

// Get returns the value at a path relative to the item.
func (i Item) Get(path string) gjson.Result { return i.Data.Get(path) }

// First evaluates candidate paths relative to the item.
func (i Item) First(paths ...string) (gjson.Result, bool) { return First(i.Data, paths...) }

// Path returns the record-level path of a field inside this item.
func (i Item) Path(field string) string {
	return fmt.Sprintf("items.%d.%s", i.Index, field)
}

// Defined reports whether a result holds a non-null value.
func Defined(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// First returns the first defined value among paths under data.
func First(data gjson.Result, paths ...string) (gjson.Result, bool) {
	for _, path := range paths {
		if v := data.Get(path); Defined(v) {
			return v, true
		}
	}
	return gjson.Result{}, false
}
