package semprops

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

func TestBufferAdd(t *testing.T) {
	b := NewBuffer(newTestResolver(), WithCaller("addValue"))

	require.NoError(t, b.Add("Modification date", "2020-01-01"))
	require.NoError(t, b.Add("Has author", "A"))
	require.NoError(t, b.Add("Has author", ""))
	assert.Equal(t, 2, b.Len())

	err := b.Add("_NOPE", "x")
	require.Error(t, err)
	assert.Equal(t, types.SeverityFatal, types.SeverityOf(err))
	assert.True(t, errors.Is(err, types.ErrPropertyNotFound))
	assert.Equal(t, `addValue: property "_NOPE" is not known`, err.Error())

	err = b.Add("", "x")
	assert.True(t, errors.Is(err, types.ErrEmptyProperty))
	assert.Equal(t, 2, b.Len())
}

func TestBufferAddValue(t *testing.T) {
	b := NewBuffer(newTestResolver())

	require.NoError(t, b.AddValue("Has pair", []any{"a;b", 2}))
	err := b.AddValue("Has pair", map[string]int{})
	assert.True(t, errors.Is(err, types.ErrUnsupportedType))
	assert.Equal(t, types.SeverityFatal, types.SeverityOf(err))

	assert.Equal(t, []PendingValue{{PropertyID: "Has_pair", Value: `a\;b;2`}}, b.DrainAll())
}

func TestBufferDrainAll(t *testing.T) {
	b := NewBuffer(newTestResolver())
	require.NoError(t, b.Add("A", "1"))
	require.NoError(t, b.Add("B", "2"))

	assert.Equal(t, []PendingValue{
		{PropertyID: "A", Value: "1"},
		{PropertyID: "B", Value: "2"},
	}, b.DrainAll())
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.DrainAll())
}

func TestBufferMoveTo(t *testing.T) {
	subject := types.Subject{Page: types.Page{Title: "Page A"}}

	tests := []struct {
		name      string
		failAfter int
		stored    int
		left      int
		wantErr   bool
	}{
		{"all values move", 0, 3, 0, false},
		{"failure requeues the rest", 1, 1, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(newTestResolver())
			for i := 0; i < 3; i++ {
				require.NoError(t, b.Add("Has index", fmt.Sprint(i)))
			}
			c := &fakeContainer{failAfter: tt.failAfter}

			err := b.MoveTo(subject, c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errContainerFull))
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, c.stored, tt.stored)
			assert.Equal(t, tt.left, b.Len())
			for _, sv := range c.stored {
				assert.Equal(t, subject, sv.subject)
				assert.Equal(t, "Has_index", sv.propertyID)
			}
		})
	}
}

func TestBufferRequeueKeepsOrder(t *testing.T) {
	b := NewBuffer(newTestResolver())
	require.NoError(t, b.Add("A", "1"))
	require.NoError(t, b.Add("A", "2"))

	require.Error(t, b.MoveTo(types.Subject{}, &fakeContainer{failAfter: 1}))
	require.NoError(t, b.Add("A", "3"))

	var values []string
	for _, pv := range b.DrainAll() {
		values = append(values, pv.Value)
	}
	assert.Equal(t, []string{"2", "3"}, values)
}

func TestBufferConcurrentAdd(t *testing.T) {
	b := NewBuffer(newTestResolver())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, b.Add("Has index", fmt.Sprint(i)))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, b.Len())
}
