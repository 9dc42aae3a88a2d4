package scene

// This file contains the decoding of scene documents.  A scene document is
// YAML, or JSON which YAML accepts as is, describing a color source and
// optionally a brightness.  Decoding either produces a fully built source or a
// ValidationError naming every field that was missing or of the wrong type,
// fields inside nested objects are named using dotted paths
//

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"gopkg.in/yaml.v2"

	"github.com/Oelderoth/LightWeaver-Module/animation"
	"github.com/Oelderoth/LightWeaver-Module/model"
	"github.com/Oelderoth/LightWeaver-Module/source"
)

// Document is a decoded scene, either field may be absent but not both
type Document struct {
	Brightness *uint8
	Source     source.ColorSource
}

// ValidationError lists the fields of a scene document that were required but
// absent, and those that were present but unusable
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	parts := []string{}
	if len(e.Missing) != 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) != 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

type decoder struct {
	missing []string
	invalid []string
}

func (d *decoder) valid() bool {
	return len(d.missing) == 0 && len(d.invalid) == 0
}

func join(prefix string, field string) string {
	if len(prefix) == 0 {
		return field
	}
	return prefix + "." + field
}

// required records field as missing when v is absent
func (d *decoder) required(v interface{}, field string) bool {
	if v == nil {
		d.missing = append(d.missing, field)
		return false
	}
	return true
}

func (d *decoder) bad(field string) {
	d.invalid = append(d.invalid, field)
}

// Decode parses a scene document
func Decode(data []byte) (doc *Document, err error) {
	raw := map[interface{}]interface{}{}
	if errGo := yaml.Unmarshal(data, &raw); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}

	d := &decoder{}
	doc = &Document{}

	if v := raw["brightness"]; v != nil {
		if b, ok := d.asUint(v, "brightness", math.MaxUint8); ok {
			brightness := uint8(b)
			doc.Brightness = &brightness
		}
	}

	src := raw["source"]
	if src != nil || doc.Brightness == nil {
		doc.Source = d.colorSource(src, "source")
	}

	if !d.valid() {
		return nil, &ValidationError{Missing: d.missing, Invalid: d.invalid}
	}
	return doc, nil
}

// object returns v as a map keyed by strings, YAML produces maps keyed by
// arbitrary values and JSON style input keyed by strings
func object(v interface{}) (obj map[string]interface{}, ok bool) {
	switch m := v.(type) {
	case map[interface{}]interface{}:
		obj = make(map[string]interface{}, len(m))
		for k, val := range m {
			obj[fmt.Sprint(k)] = val
		}
		return obj, true
	case map[string]interface{}:
		return m, true
	}
	return nil, false
}

func (d *decoder) asUint(v interface{}, field string, max uint64) (value uint64, ok bool) {
	switch n := v.(type) {
	case int:
		if n >= 0 && uint64(n) <= max {
			return uint64(n), true
		}
	case int64:
		if n >= 0 && uint64(n) <= max {
			return uint64(n), true
		}
	case uint64:
		if n <= max {
			return n, true
		}
	case float64:
		if n >= 0 && n == math.Trunc(n) && n <= float64(max) {
			return uint64(n), true
		}
	}
	d.bad(field)
	return 0, false
}

func (d *decoder) asFloat(v interface{}, field string) (value float64, ok bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	d.bad(field)
	return 0, false
}

func (d *decoder) asInt(v interface{}, field string) (value int64, ok bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), true
		}
	}
	d.bad(field)
	return 0, false
}

func (d *decoder) asBool(v interface{}, field string) (value bool, ok bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	d.bad(field)
	return false, false
}

func (d *decoder) asString(v interface{}, field string) (value string, ok bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	d.bad(field)
	return "", false
}

func (d *decoder) requiredUint(obj map[string]interface{}, prefix string, name string, max uint64) (value uint64) {
	field := join(prefix, name)
	if !d.required(obj[name], field) {
		return 0
	}
	value, _ = d.asUint(obj[name], field, max)
	return value
}

func (d *decoder) optionalBool(obj map[string]interface{}, prefix string, name string) (value bool) {
	if obj[name] == nil {
		return false
	}
	value, _ = d.asBool(obj[name], join(prefix, name))
	return value
}

func (d *decoder) requiredFloat(obj map[string]interface{}, prefix string, name string) (value float64) {
	field := join(prefix, name)
	if !d.required(obj[name], field) {
		return 0
	}
	value, _ = d.asFloat(obj[name], field)
	return value
}

func (d *decoder) optionalFloat(obj map[string]interface{}, prefix string, name string) (value float64) {
	if obj[name] == nil {
		return 0
	}
	value, _ = d.asFloat(obj[name], join(prefix, name))
	return value
}

// color accepts either "#rrggbb" or an object with red, green, blue and an
// optional alpha which defaults to opaque
func (d *decoder) color(v interface{}, field string) (c model.RgbaColor) {
	if !d.required(v, field) {
		return model.Transparent
	}
	if hex, ok := v.(string); ok {
		if c, ok = model.ParseHex(hex); !ok {
			d.bad(field)
		}
		return c
	}
	obj, ok := object(v)
	if !ok {
		d.bad(field)
		return model.Transparent
	}

	c.R = uint8(d.requiredUint(obj, field, "red", math.MaxUint8))
	c.G = uint8(d.requiredUint(obj, field, "green", math.MaxUint8))
	c.B = uint8(d.requiredUint(obj, field, "blue", math.MaxUint8))
	c.A = 255
	if obj["alpha"] != nil {
		if a, ok := d.asUint(obj["alpha"], join(field, "alpha"), math.MaxUint8); ok {
			c.A = uint8(a)
		}
	}
	return c
}

// easing accepts the name of a curve, or an object naming a curve or one of the
// Mirror and Reverse combinators applied to a child easing.  Absent easings are
// Linear
func (d *decoder) easing(v interface{}, field string) (f animation.EasingFunc) {
	if v == nil {
		return animation.Linear
	}
	if name, ok := v.(string); ok {
		if f, ok = animation.EasingByName(name); !ok {
			d.bad(field)
			return animation.Linear
		}
		return f
	}
	obj, ok := object(v)
	if !ok {
		d.bad(field)
		return animation.Linear
	}

	nameField := join(field, "name")
	if !d.required(obj["name"], nameField) {
		return animation.Linear
	}
	name, ok := d.asString(obj["name"], nameField)
	if !ok {
		return animation.Linear
	}

	switch name {
	case "Mirror", "Reverse":
		childField := join(field, "child")
		if !d.required(obj["child"], childField) {
			return animation.Linear
		}
		child := d.easing(obj["child"], childField)
		if name == "Mirror" {
			return animation.Mirror(child)
		}
		return animation.Reverse(child)
	}
	return d.easing(name, nameField)
}

// offsets accepts {type: Scale, scale: f}, {type: List, values: [...]} or
// {type: Random, seed: n}.  Absent offsets leave every pixel in phase
func (d *decoder) offsets(v interface{}, field string) (cfg model.PixelOffsetConfig) {
	if v == nil {
		return model.OffsetNone()
	}
	obj, ok := object(v)
	if !ok {
		d.bad(field)
		return model.OffsetNone()
	}
	typeField := join(field, "type")
	if !d.required(obj["type"], typeField) {
		return model.OffsetNone()
	}
	kind, ok := d.asString(obj["type"], typeField)
	if !ok {
		return model.OffsetNone()
	}

	switch kind {
	case "Scale":
		return model.OffsetScale(d.requiredFloat(obj, field, "scale"))
	case "List":
		valuesField := join(field, "values")
		if !d.required(obj["values"], valuesField) {
			return model.OffsetNone()
		}
		list, ok := obj["values"].([]interface{})
		if !ok {
			d.bad(valuesField)
			return model.OffsetNone()
		}
		values := make([]float64, 0, len(list))
		for i, item := range list {
			f, _ := d.asFloat(item, fmt.Sprintf("%s.%d", valuesField, i))
			values = append(values, f)
		}
		return model.OffsetList(values...)
	case "Random":
		seedField := join(field, "seed")
		if !d.required(obj["seed"], seedField) {
			return model.OffsetNone()
		}
		seed, _ := d.asInt(obj["seed"], seedField)
		return model.OffsetRandom(seed)
	}
	d.bad(typeField)
	return model.OffsetNone()
}

func (d *decoder) colorSource(v interface{}, field string) (src source.ColorSource) {
	if !d.required(v, field) {
		return nil
	}
	obj, ok := object(v)
	if !ok {
		d.bad(field)
		return nil
	}
	typeField := join(field, "type")
	if !d.required(obj["type"], typeField) {
		return nil
	}
	kind, ok := d.asString(obj["type"], typeField)
	if !ok {
		return nil
	}

	build, isPresent := builders[kind]
	if !isPresent {
		d.bad(typeField)
		return nil
	}
	return build(d, obj, field)
}

type builder func(d *decoder, obj map[string]interface{}, field string) source.ColorSource

var builders map[string]builder

func init() {
	builders = map[string]builder{
		"Solid":      (*decoder).solid,
		"Fade":       (*decoder).fade,
		"Gradient":   (*decoder).gradient,
		"Overlay":    (*decoder).overlay,
		"HsvMeander": (*decoder).hsvMeander,
		"HueMeander": (*decoder).hueMeander,
		"HueDrift":   (*decoder).hueDrift,
	}
}

func (d *decoder) uid(obj map[string]interface{}, field string) uint32 {
	return uint32(d.requiredUint(obj, field, "uid", math.MaxUint32))
}

func (d *decoder) duration(obj map[string]interface{}, field string) uint32 {
	return uint32(d.requiredUint(obj, field, "duration", math.MaxUint32))
}

func (d *decoder) solid(obj map[string]interface{}, field string) source.ColorSource {
	uid := d.uid(obj, field)
	color := d.color(obj["color"], join(field, "color"))
	if !d.valid() {
		return nil
	}
	return source.NewSolid(uid, color)
}

func (d *decoder) fade(obj map[string]interface{}, field string) source.ColorSource {
	uid := d.uid(obj, field)
	duration := d.duration(obj, field)
	loop := d.optionalBool(obj, field, "loop")
	start := d.color(obj["start"], join(field, "start"))
	end := d.color(obj["end"], join(field, "end"))
	easing := d.easing(obj["easing"], join(field, "easing"))
	if !d.valid() {
		return nil
	}
	return source.NewFade(uid, start, end, duration, loop, easing)
}

func (d *decoder) gradient(obj map[string]interface{}, field string) source.ColorSource {
	uid := d.uid(obj, field)
	duration := d.duration(obj, field)
	loop := d.optionalBool(obj, field, "loop")
	easing := d.easing(obj["easing"], join(field, "easing"))
	stopEasing := d.easing(obj["gradientEasing"], join(field, "gradientEasing"))
	offsets := d.offsets(obj["offsets"], join(field, "offsets"))

	colorsField := join(field, "colors")
	colors := []model.RgbaColor{}
	if d.required(obj["colors"], colorsField) {
		if list, ok := obj["colors"].([]interface{}); ok {
			for i, item := range list {
				colors = append(colors, d.color(item, fmt.Sprintf("%s.%d", colorsField, i)))
			}
		} else {
			d.bad(colorsField)
		}
	}

	// Positions are optional, when absent the stops are spread evenly
	var positions []uint8
	positionsField := join(field, "positions")
	if obj["positions"] != nil {
		list, ok := obj["positions"].([]interface{})
		if !ok || len(list) != len(colors) {
			d.bad(positionsField)
		} else {
			last := uint64(0)
			for i, item := range list {
				p, ok := d.asUint(item, fmt.Sprintf("%s.%d", positionsField, i), math.MaxUint8)
				if ok && p < last {
					// Stops must be in ascending order
					d.bad(fmt.Sprintf("%s.%d", positionsField, i))
				}
				last = p
				positions = append(positions, uint8(p))
			}
		}
	}

	if !d.valid() {
		return nil
	}
	g := model.NewGradient(model.NewColorSet(colors...), positions, stopEasing)
	return source.NewGradient(uid, g, duration, loop, easing, offsets)
}

func (d *decoder) overlay(obj map[string]interface{}, field string) source.ColorSource {
	uid := d.uid(obj, field)
	background := d.colorSource(obj["background"], join(field, "background"))
	overlay := d.colorSource(obj["overlay"], join(field, "overlay"))
	if !d.valid() || background == nil || overlay == nil {
		return nil
	}
	return source.NewOverlay(uid, background, overlay)
}

func (d *decoder) hsvMeander(obj map[string]interface{}, field string) source.ColorSource {
	uid := d.uid(obj, field)
	color := d.color(obj["color"], join(field, "color"))
	duration := d.duration(obj, field)
	hue := d.requiredFloat(obj, field, "hueDistance")
	saturation := d.optionalFloat(obj, field, "saturationDistance")
	value := d.optionalFloat(obj, field, "valueDistance")
	offsets := d.offsets(obj["offsets"], join(field, "offsets"))
	if !d.valid() {
		return nil
	}
	return source.NewHsvMeander(uid, color.Hsva(), duration, hue, saturation, value, offsets)
}

func (d *decoder) hueMeander(obj map[string]interface{}, field string) source.ColorSource {
	uid := d.uid(obj, field)
	color := d.color(obj["color"], join(field, "color"))
	duration := d.duration(obj, field)
	hue := d.requiredFloat(obj, field, "hueDistance")
	offsets := d.offsets(obj["offsets"], join(field, "offsets"))
	if !d.valid() {
		return nil
	}
	return source.NewHueMeander(uid, color.Hsva(), duration, hue, offsets)
}

func (d *decoder) hueDrift(obj map[string]interface{}, field string) source.ColorSource {
	uid := d.uid(obj, field)
	color := d.color(obj["color"], join(field, "color"))
	maxDistance := d.requiredFloat(obj, field, "maxDistance")
	maxDuration := uint32(d.requiredUint(obj, field, "maxDuration", math.MaxUint32))
	easing := d.easing(obj["easing"], join(field, "easing"))

	// The walk is seeded from the uid unless told otherwise
	seed := int64(uid)
	if obj["seed"] != nil {
		seed, _ = d.asInt(obj["seed"], join(field, "seed"))
	}
	if !d.valid() {
		return nil
	}
	return source.NewHueDrift(uid, color.Hsva(), maxDistance, maxDuration, easing, seed)
}
