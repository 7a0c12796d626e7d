/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chart struct{ Name string }

func (c *chart) String() string { return c.Name }

type Base struct{ ID string }

type Derived struct {
	Base
	Extra int
}

type Deeper struct {
	*Derived
}

type hidden struct{ Base }

type withUnexported struct {
	hidden
}

func TestTypeRegistryDirectMatch(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[*chart](r, "chart"))

	m, ok := r.Resolve(reflect.TypeOf(&chart{}))
	require.True(t, ok)
	assert.Equal(t, "chart", m.Value)
	assert.True(t, m.Direct())
}

func TestTypeRegistryEmbeddedAncestor(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[Base](r, "base"))

	obj := &Deeper{Derived: &Derived{Base: Base{ID: "b1"}}}
	m, ok := r.Resolve(reflect.TypeOf(obj))
	require.True(t, ok)
	assert.Equal(t, "base", m.Value)
	assert.Equal(t, []int{0, 0}, m.Path)

	v, err := m.Extract(reflect.ValueOf(obj))
	require.NoError(t, err)
	assert.Equal(t, Base{ID: "b1"}, v.Interface())
}

func TestTypeRegistryPointerAncestor(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[*Base](r, "base pointer"))

	obj := &Derived{Base: Base{ID: "b2"}}
	m, ok := r.Resolve(reflect.TypeOf(obj))
	require.True(t, ok)
	assert.True(t, m.Addr)

	v, err := m.Extract(reflect.ValueOf(obj))
	require.NoError(t, err)
	base := v.Interface().(*Base)
	assert.Same(t, &obj.Base, base)
}

func TestTypeRegistryMostSpecificWins(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[Base](r, "base"))
	require.NoError(t, RegisterFor[*Derived](r, "derived"))

	m, ok := r.Resolve(reflect.TypeOf(&Derived{}))
	require.True(t, ok)
	assert.Equal(t, "derived", m.Value)
}

func TestTypeRegistryInterfaceOrder(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[fmt.Stringer](r, "stringer"))
	require.NoError(t, RegisterFor[any](r, "anything"))

	m, ok := r.Resolve(reflect.TypeOf(&chart{}))
	require.True(t, ok)
	assert.Equal(t, "stringer", m.Value)

	m, ok = r.Resolve(reflect.TypeOf(42))
	require.True(t, ok)
	assert.Equal(t, "anything", m.Value)
}

func TestTypeRegistryConcreteBeforeInterface(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[fmt.Stringer](r, "stringer"))
	require.NoError(t, RegisterFor[*chart](r, "chart"))

	m, ok := r.Resolve(reflect.TypeOf(&chart{}))
	require.True(t, ok)
	assert.Equal(t, "chart", m.Value)
}

func TestTypeRegistryOverride(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[*chart](r, "first"))
	require.NoError(t, RegisterFor[*chart](r, "second"))

	m, ok := r.Resolve(reflect.TypeOf(&chart{}))
	require.True(t, ok)
	assert.Equal(t, "second", m.Value)
	assert.Equal(t, 1, r.Count())
}

func TestTypeRegistryNoMatch(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[Base](r, "base"))

	_, ok := r.Resolve(reflect.TypeOf("plain string"))
	assert.False(t, ok)

	// unexported embedded fields are not part of the ancestor chain
	_, ok = r.Resolve(reflect.TypeOf(withUnexported{}))
	assert.False(t, ok)

	_, ok = r.Resolve(nil)
	assert.False(t, ok)
}

func TestTypeRegistryExtractNilEmbedded(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[Base](r, "base"))

	obj := &Deeper{}
	m, ok := r.Resolve(reflect.TypeOf(obj))
	require.True(t, ok)

	_, err := m.Extract(reflect.ValueOf(obj))
	assert.Error(t, err)
}

func TestTypeRegistryUnregister(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[fmt.Stringer](r, "stringer"))
	require.NoError(t, RegisterFor[*chart](r, "chart"))

	assert.True(t, r.Unregister(reflect.TypeFor[*chart]()))
	assert.True(t, r.Unregister(reflect.TypeFor[fmt.Stringer]()))
	assert.False(t, r.Unregister(reflect.TypeFor[*chart]()))
	assert.Equal(t, 0, r.Count())
	assert.Error(t, r.Register(nil, "nil"))
}

func TestTypeRegistryTypes(t *testing.T) {
	r := NewTypeRegistry[string]()
	require.NoError(t, RegisterFor[fmt.Stringer](r, "stringer"))
	require.NoError(t, RegisterFor[*chart](r, "chart"))
	require.NoError(t, RegisterFor[Base](r, "base"))

	types := r.Types()
	require.Len(t, types, 3)
	assert.Equal(t, reflect.TypeFor[*chart](), types[0])
	assert.Equal(t, reflect.TypeFor[Base](), types[1])
	assert.Equal(t, reflect.TypeFor[fmt.Stringer](), types[2])
}
