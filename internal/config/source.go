package config

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Source looks up raw setting values by key.
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads KEY as Prefix + upper-cased key from the environment.
type EnvSource struct {
	Prefix string
}

// Lookup implements Source.
func (e EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(e.Prefix + strings.ToUpper(key))
}

// MapSource is a Source backed by a map.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Load starts from Default and applies sources in order, later sources
// winning, then validates the result.
func Load(sources ...Source) (Config, error) {
	c := Default()
	for _, src := range sources {
		if err := c.Apply(src); err != nil {
			return c, err
		}
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Apply overrides every field whose key is present in src.
func (c *Config) Apply(src Source) error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("key")
		raw, ok := src.Lookup(key)
		if !ok {
			continue
		}
		if err := setField(v.Field(i), raw); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}

// Keys returns every settings key in sorted order.
func Keys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		keys = append(keys, t.Field(i).Tag.Get("key"))
	}
	sort.Strings(keys)
	return keys
}

// Value returns the string form of the field stored under key.
func (c Config) Value(key string) (string, bool) {
	v := reflect.ValueOf(c)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("key") == key {
			return fmt.Sprint(v.Field(i).Interface()), true
		}
	}
	return "", false
}

// Check reports whether value is acceptable for key, both syntactically and
// against the field's constraints.
func Check(key, value string) error {
	if _, ok := Default().Value(key); !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	c := Default()
	if err := c.Apply(MapSource{key: value}); err != nil {
		return err
	}
	return c.Validate()
}

var durationType = reflect.TypeOf(time.Duration(0))

func setField(f reflect.Value, raw string) error {
	raw = strings.TrimSpace(raw)

	if f.Type() == durationType {
		d, err := parseDuration(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(n))
	case reflect.Float64:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		f.SetFloat(x)
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind())
	}
	return nil
}

// parseDuration accepts Go duration syntax or a bare number of seconds.
func parseDuration(raw string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(raw)
}
