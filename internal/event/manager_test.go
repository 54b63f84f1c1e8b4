package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var got []string

	m.Subscribe(TypeNotice, func(e Event) bool {
		got = append(got, "first:"+e.Data.(NoticeData).Message)
		return false
	})
	m.Subscribe(TypeNotice, func(e Event) bool {
		got = append(got, "second")
		return true
	})
	m.Subscribe(TypeNotice, func(e Event) bool {
		got = append(got, "third")
		return false
	})

	assert.True(t, m.Dispatch(TypeNotice, NoticeData{Message: "hi"}))
	assert.Equal(t, []string{"first:hi", "second"}, got)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	assert.False(t, NewManager().Dispatch(TypeHoverLink, HoverLinkData{}))
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	calls := 0
	id := m.Subscribe(TypeSessionBegan, func(Event) bool {
		calls++
		return false
	})
	other := 0
	m.Subscribe(TypeSessionBegan, func(Event) bool {
		other++
		return false
	})

	m.Dispatch(TypeSessionBegan, SessionBeganData{})
	m.Unsubscribe(id)
	m.Dispatch(TypeSessionBegan, SessionBeganData{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestHandlerMaySubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	late := 0
	m.Subscribe(TypeSurfaceCreated, func(Event) bool {
		m.Subscribe(TypeSurfaceCreated, func(Event) bool {
			late++
			return false
		})
		return false
	})

	m.Dispatch(TypeSurfaceCreated, SurfaceCreatedData{Kind: SurfaceHoverPopover})
	assert.Equal(t, 0, late)
	m.Dispatch(TypeSurfaceCreated, SurfaceCreatedData{Kind: SurfaceHoverPopover})
	assert.Equal(t, 1, late)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "surface-created", TypeSurfaceCreated.String())
	assert.Equal(t, "Type(42)", Type(42).String())
}
