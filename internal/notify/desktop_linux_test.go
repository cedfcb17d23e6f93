//go:build linux

package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBusObject struct {
	dbus.BusObject
	nextID   uint32
	replaces []uint32
	err      error
}

func (object *fakeBusObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	if object.err != nil {
		return &dbus.Call{Err: object.err}
	}
	object.replaces = append(object.replaces, args[1].(uint32))
	object.nextID++
	return &dbus.Call{Body: []interface{}{object.nextID}}
}

func (object *fakeBusObject) CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	if object.err != nil {
		return &dbus.Call{Err: object.err}
	}
	return &dbus.Call{Body: []interface{}{[]string{"body"}}}
}

func TestDBusNotifierReplacesByTag(t *testing.T) {
	object := &fakeBusObject{}
	notifier := NewDBusNotifier("Focus Board")
	notifier.object = object

	require.NoError(t, notifier.Notify(Event{Title: "a", Tag: "water"}))
	require.NoError(t, notifier.Notify(Event{Title: "b", Tag: "stretch"}))
	require.NoError(t, notifier.Notify(Event{Title: "c", Tag: "water"}))

	assert.Equal(t, []uint32{0, 0, 1}, object.replaces)
}

func TestDBusNotifierErrors(t *testing.T) {
	notifier := NewDBusNotifier("Focus Board")
	notifier.object = &fakeBusObject{err: errors.New("no owner")}

	assert.Error(t, notifier.Notify(Event{Tag: "water"}))

	granted, err := notifier.RequestPermission(context.Background())
	assert.False(t, granted)
	assert.Error(t, err)
}

func TestDBusNotifierPermission(t *testing.T) {
	notifier := NewDBusNotifier("Focus Board")
	notifier.object = &fakeBusObject{}

	granted, err := notifier.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)
}
