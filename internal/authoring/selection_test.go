package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pickerRefs = []Ref{
	{ID: "1", Name: "Toán học", Code: "MATH"},
	{ID: "2", Name: "Vật lý", Code: "PHYS"},
	{ID: "3", Name: "Hóa học", Code: "CHEM"},
}

func TestPickerEmptyQueryReturnsAll(t *testing.T) {
	p := NewPicker(pickerRefs)
	assert.Len(t, p.Visible(), 3)
	assert.Equal(t, PickerHasItems, p.State())
}

func TestPickerFiltersByNameCaseInsensitive(t *testing.T) {
	p := NewPicker(pickerRefs)
	p.SetQuery("HỌC")

	visible := p.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "Toán học", visible[0].Name)
	assert.Equal(t, "Hóa học", visible[1].Name)
}

func TestPickerFiltersByCode(t *testing.T) {
	p := NewPicker(pickerRefs)
	p.SetQuery("phys")

	visible := p.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Vật lý", visible[0].Name)
}

func TestPickerNoResultsVsNoData(t *testing.T) {
	empty := NewPicker(nil)
	assert.Equal(t, PickerNoData, empty.State())

	p := NewPicker(pickerRefs)
	p.SetQuery("zzz")
	assert.Equal(t, PickerNoResults, p.State())

	// Even with a query, an unloaded picker reports no data.
	empty.SetQuery("zzz")
	assert.Equal(t, PickerNoData, empty.State())
}

func TestPickerFind(t *testing.T) {
	p := NewPicker(pickerRefs)

	ref, ok := p.Find("2")
	require.True(t, ok)
	assert.Equal(t, "Vật lý", ref.Name)

	_, ok = p.Find("missing")
	assert.False(t, ok)
}
