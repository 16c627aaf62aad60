package segment

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/itohio/dvm/pkg/platform"
	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	assert.Equal(t, SegB|SegC, Segments(1))
	assert.Equal(t, SegA|SegB|SegC|SegD|SegE|SegF|SegG, Segments(8))
	assert.Equal(t, uint8(0), Segments(10), "codes above 9 stay dark")
	assert.Equal(t, Segments(3), Segments(0x13), "only the low nibble is decoded")

	// 8 lights every segment, so every other digit is a subset of it.
	for d := uint8(0); d < 10; d++ {
		assert.Equal(t, Segments(d), Segments(d)&Segments(8), "digit %d", d)
		assert.NotZero(t, Segments(d), "digit %d", d)
	}
}

func TestDisplay_Latch(t *testing.T) {
	test.NewTempApp(t)
	d := New()

	_, lit := d.Digits()
	assert.Equal(t, [3]bool{}, lit)

	d.Latch(platform.Snapshot{BCD: 3, Selected: 0})
	d.Latch(platform.Snapshot{BCD: 9, Selected: platform.NoDigit}) // blanked, ignored
	d.Latch(platform.Snapshot{BCD: 2, Selected: 1})
	d.Latch(platform.Snapshot{BCD: 1, Selected: 2})

	digits, lit := d.Digits()
	assert.Equal(t, [3]uint8{3, 2, 1}, digits)
	assert.Equal(t, [3]bool{true, true, true}, lit)

	d.Clear()
	_, lit = d.Digits()
	assert.Equal(t, [3]bool{}, lit)
}

func TestDisplay_Renderer(t *testing.T) {
	test.NewTempApp(t)
	d := New()
	d.Latch(platform.Snapshot{BCD: 1, Selected: 0})

	r := test.WidgetRenderer(d)
	r.Layout(fyne.NewSize(300, 120))
	r.Refresh()

	// background, 3 x 7 segments, decimal point
	assert.Len(t, r.Objects(), 1+3*7+1)
	assert.Equal(t, fyne.NewSize(180, 90), r.MinSize())

	dr := r.(*displayRenderer)
	assert.Equal(t, segmentOff, dr.segments[0][0].FillColor) // a is dark for 1
	assert.Equal(t, segmentOn, dr.segments[0][1].FillColor)  // b
	assert.Equal(t, segmentOn, dr.segments[0][2].FillColor)  // c
	assert.Equal(t, segmentOff, dr.segments[1][1].FillColor) // never lit
}
