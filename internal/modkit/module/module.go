// Package module is the contract API modules satisfy and the port registry
// main uses to wire them together
package module

import (
	"reflect"
	"sync"

	phttp "spoilerguard/internal/platform/net/http"
)

// Module mounts routes and exposes ports for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf finds a T in m.Ports(): the value itself, or the first exported
// struct field (through one pointer) that holds a T
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for composition roots, a miss is a wiring bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module " + m.Name() + ": no port of type " + reflect.TypeFor[T]().String())
	}
	return v
}

var (
	regMu    sync.RWMutex
	registry = map[string]any{}
)

// Register records the ports of a module under name, replacing earlier ones
func Register(name string, ports any) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = ports
}

// PortsAs returns the ports registered under name if they are a T
func PortsAs[T any](name string) (T, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	v, ok := registry[name].(T)
	return v, ok
}

// Reset empties the registry, tests call it in Cleanup
func Reset() {
	regMu.Lock()
	defer regMu.Unlock()
	clear(registry)
}
