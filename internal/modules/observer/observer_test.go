package observer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotifyInAttachOrder(t *testing.T) {
	var got []string
	s := &Observers{}
	s.Attach(Func(func(event string, data interface{}) { got = append(got, "a:"+event) }))
	s.Attach(Func(func(event string, data interface{}) { got = append(got, "b:"+event) }))
	s.Notify("request", &RequestRecord{Method: "GET"})
	require.Equal(t, []string{"a:request", "b:request"}, got)
}

func TestNotifyWithoutObservers(t *testing.T) {
	s := &Observers{}
	require.NotPanics(t, func() { s.Notify("response", nil) })
}
