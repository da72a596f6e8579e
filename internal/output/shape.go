package output

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// ApplyListOptions applies --result-sort-by/--result-desc and
// --result-limit to list data before it is encoded. Anything that is
// not a slice passes through untouched.
func ApplyListOptions(ctx context.Context, data interface{}) interface{} {
	if data == nil {
		return data
	}
	limit := LimitFromContext(ctx)
	sortBy, desc := SortFromContext(ctx)
	if limit == 0 && sortBy == "" {
		return data
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return data
		}
		v = v.Elem()
	}
	if (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) || v.Len() == 0 {
		return data
	}

	// Work on a copy so the caller's slice keeps its order.
	sliceType := v.Type()
	if v.Kind() == reflect.Array {
		sliceType = reflect.SliceOf(v.Type().Elem())
	}
	shaped := reflect.MakeSlice(sliceType, v.Len(), v.Len())
	reflect.Copy(shaped, v)

	if sortBy != "" {
		sortByField(shaped, strings.Split(sortBy, "."), desc)
	}
	if limit > 0 && limit < shaped.Len() {
		shaped = shaped.Slice(0, limit)
	}
	return shaped.Interface()
}

// sortByField stably sorts slice elements by the field named by path.
// Elements where the path does not resolve sort after those where it
// does.
func sortByField(v reflect.Value, path []string, desc bool) {
	sort.SliceStable(v.Interface(), func(i, j int) bool {
		a, aok := fieldByPath(v.Index(i), path)
		b, bok := fieldByPath(v.Index(j), path)
		if !aok {
			return false
		}
		if !bok {
			return true
		}
		cmp := compareField(a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// fieldByPath resolves a dotted field path against one slice element.
// Struct fields match by json tag name first, then Go field name,
// case-insensitively and ignoring underscores and hyphens. A scalar
// element resolves to itself.
func fieldByPath(v reflect.Value, path []string) (reflect.Value, bool) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if len(path) == 0 {
		return reflect.Value{}, false
	}
	if v.Kind() != reflect.Struct {
		if len(path) == 1 {
			return v, true
		}
		return reflect.Value{}, false
	}

	want := foldName(path[0])
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		if foldName(name) != want {
			continue
		}
		if len(path) == 1 {
			return v.Field(i), true
		}
		return fieldByPath(v.Field(i), path[1:])
	}
	return reflect.Value{}, false
}

func foldName(s string) string {
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToLower(s)
}

// compareField orders two resolved field values. Mismatched kinds and
// anything without a natural order fall back to string comparison.
func compareField(a, b reflect.Value) int {
	if a.Kind() != b.Kind() {
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
	switch a.Kind() {
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return compareOrdered(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return compareOrdered(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return compareOrdered(a.Float(), b.Float())
	case reflect.Bool:
		if a.Bool() == b.Bool() {
			return 0
		}
		if b.Bool() {
			return -1
		}
		return 1
	case reflect.Struct:
		if at, ok := a.Interface().(time.Time); ok {
			if bt, ok := b.Interface().(time.Time); ok {
				switch {
				case at.Before(bt):
					return -1
				case at.After(bt):
					return 1
				}
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func compareOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
