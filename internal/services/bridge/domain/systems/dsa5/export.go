package dsa5

import (
	"fmt"
	"sort"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

// Export applies a canonical update to a DSA5 actor in place.
//
// Field groups (attributes, health, each resource, each skill) are applied
// in that order and independently: an unknown key is recorded as an error
// and processing continues. There is no rollback.
func Export(r *native.Record, u character.Update) character.ExportResult {
	return apply(&writer{record: r}, u)
}

// BuildPatch renders an update as dotted host paths without touching r.
// The export result describes what applying the patch would change.
func BuildPatch(r *native.Record, u character.Update) (character.Patch, character.ExportResult) {
	patch := character.Patch{
		Actor: map[string]any{},
		Items: map[string]map[string]any{},
	}
	result := apply(&writer{record: r.Clone(), patch: &patch}, u)
	return patch, result
}

// writer mutates a record and optionally mirrors every write into a patch.
type writer struct {
	record *native.Record
	patch  *character.Patch
}

func (w *writer) setActor(path string, value int) error {
	if err := w.record.Set(path, value); err != nil {
		return err
	}
	if w.patch != nil {
		w.patch.Actor[path] = value
	}
	return nil
}

func (w *writer) setItem(item native.Item, field string, value int) error {
	if err := w.record.Set(item.Path(field), value); err != nil {
		return err
	}
	if w.patch != nil {
		fields, ok := w.patch.Items[item.ID()]
		if !ok {
			fields = map[string]any{}
			w.patch.Items[item.ID()] = fields
		}
		fields[field] = value
	}
	return nil
}

// changes accumulates the manifest of one export call.
type changes struct {
	updated []string
	errors  []string
}

func (c *changes) field(format string, args ...any) {
	c.updated = append(c.updated, fmt.Sprintf(format, args...))
}

func (c *changes) fail(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *changes) writeFailed(err error) {
	c.fail("Failed to apply update: %v", err)
}

func apply(w *writer, u character.Update) character.ExportResult {
	if missing := missingStructure(w.record); missing != "" {
		return character.ExportFailure(structuralError(missing))
	}

	c := &changes{}
	applyAttributes(w, u.Attributes, c)
	if u.Health != nil {
		applyHealth(w, *u.Health, c)
	}
	for _, ru := range u.Resources {
		applyResource(w, ru, c)
	}
	for _, su := range u.Skills {
		applySkill(w, su, c)
	}

	result := character.ExportResult{
		Success:       len(c.updated) > 0 || len(c.errors) == 0,
		UpdatedFields: c.updated,
		Errors:        c.errors,
	}
	if result.UpdatedFields == nil {
		result.UpdatedFields = []string{}
	}
	return result
}

func applyAttributes(w *writer, attributes map[string]int, c *changes) {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		attr, ok := LookupAttribute(key)
		if !ok {
			c.fail("Unknown attribute: %s", key)
			continue
		}
		if err := w.setActor(PathCharacteristics+"."+attr.Key+".value", attributes[key]); err != nil {
			c.writeFailed(err)
			continue
		}
		c.field("attributes.%s", attr.Code)
	}
}

// applyHealth writes a new maximum first so that current and delta clamp
// against it. A max-only update leaves the wound counter as it was. A
// negative maximum is stored as 0.
func applyHealth(w *writer, hu character.HealthUpdate, c *changes) {
	woundsMax := intAt(w.record.Get(PathWoundsMax))
	counter := intAt(w.record.Get(PathWoundsValue))

	if hu.Max != nil {
		woundsMax = max(0, *hu.Max)
		if err := w.setActor(PathWoundsMax, woundsMax); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("health.max")
	}

	switch {
	case hu.Delta != nil:
		_, after := ApplyHealthDelta(counter, woundsMax, *hu.Delta)
		if err := w.setActor(PathWoundsValue, after); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("health (delta: %s)", signed(*hu.Delta))
	case hu.Current != nil:
		if err := w.setActor(PathWoundsValue, WoundsFromHealth(*hu.Current, woundsMax)); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("health.current")
	}
}

func applyResource(w *writer, ru character.ResourceUpdate, c *changes) {
	pool, ok := LookupPool(ru.Name)
	if !ok || !w.record.Has(PathStatus+"."+pool.Key) {
		c.fail("Unknown resource: %s", ru.Name)
		return
	}

	poolMax := intAt(w.record.Get(pool.Path("max")))
	current := intAt(w.record.Get(pool.Path("value")))

	if ru.Max != nil {
		poolMax = max(0, *ru.Max)
		if err := w.setActor(pool.Path("max"), poolMax); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("%s.max", pool.Key)
	}

	switch {
	case ru.Delta != nil:
		next := character.Clamp(current+*ru.Delta, 0, poolMax)
		if err := w.setActor(pool.Path("value"), next); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("%s (delta: %s)", pool.Key, signed(*ru.Delta))
	case ru.Current != nil:
		if err := w.setActor(pool.Path("value"), character.Clamp(*ru.Current, 0, poolMax)); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("%s.value", pool.Key)
	}
}

// applySkill updates a skill value. Skills have a floor of 0 and no cap.
// The value is written back where import read it from.
func applySkill(w *writer, su character.SkillUpdate, c *changes) {
	item, ok := w.record.FindItem(su.ID)
	if !ok || !IsSkillItem(item.Type()) {
		c.fail("Skill not found: %s", su.ID)
		return
	}

	path := skillValuePath(item)
	current := intAt(item.Get(path))
	switch {
	case su.Delta != nil:
		if err := w.setItem(item, path, max(0, current+*su.Delta)); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("skill.%s (delta: %s)", item.Name(), signed(*su.Delta))
	case su.Value != nil:
		if err := w.setItem(item, path, max(0, *su.Value)); err != nil {
			c.writeFailed(err)
			return
		}
		c.field("skill.%s", item.Name())
	}
}

// skillValuePath returns the first defined value path of a skill item,
// or the talent value path when the item has none yet.
func skillValuePath(item native.Item) string {
	for _, path := range skillValuePaths {
		if native.Defined(item.Get(path)) {
			return path
		}
	}
	return PathTalentValue
}

// signed renders positive deltas with an explicit plus sign.
func signed(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
