package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
)

type fieldInfo struct {
	name  string
	index int
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// exportedFields lists the exported fields of struct type t.
func exportedFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, fieldInfo{name: f.Name, index: i})
			}
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}

// editStruct draws an input for every exported field of the struct ptr
// points to and writes edits straight back. It reports whether anything
// changed.
func editStruct(id string, ptr any) bool {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%s: %v", id, ptr))
		return false
	}
	v = v.Elem()

	changed := false
	for _, f := range exportedFields(v.Type()) {
		if editValue(id+"."+f.name, f.name, v.Field(f.index)) {
			changed = true
		}
	}
	return changed
}

func editValue(id, name string, val reflect.Value) bool {
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return false
		}
		val = val.Elem()
	}

	label := "##" + id
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if stringer, ok := val.Interface().(fmt.Stringer); ok {
			imgui.Text(fmt.Sprintf("%s: %s", name, stringer))
			return false
		}
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
			return true
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		imgui.Text(fmt.Sprintf("%s: %d", name, val.Uint()))

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
			return true
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+label, &v) && val.CanSet() {
			val.SetBool(v)
			return true
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
			return true
		}

	case reflect.Struct:
		changed := false
		if imgui.TreeNodeStr(name + label) {
			for _, f := range exportedFields(val.Type()) {
				if editValue(id+"."+f.name, f.name, val.Field(f.index)) {
					changed = true
				}
			}
			imgui.TreePop()
		}
		return changed

	case reflect.Array:
		changed := false
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]%s", name, val.Len(), label)) {
			for i := 0; i < val.Len(); i++ {
				if editValue(fmt.Sprintf("%s[%d]", id, i), fmt.Sprintf("[%d]", i), val.Index(i)) {
					changed = true
				}
			}
			imgui.TreePop()
		}
		return changed

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
	return false
}
