package segment

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/itohio/dvm/pkg/platform"
)

var (
	background = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	segmentOn  = color.RGBA{R: 255, G: 40, B: 30, A: 255}
	segmentOff = color.RGBA{R: 50, G: 20, B: 20, A: 255}
)

// CreateRenderer creates the widget renderer.
func (d *Display) CreateRenderer() fyne.WidgetRenderer {
	r := &displayRenderer{
		display: d,
		bg:      canvas.NewRectangle(background),
		dot:     canvas.NewCircle(segmentOn),
	}
	r.objects = append(r.objects, r.bg)
	for i := range r.segments {
		for s := range r.segments[i] {
			rect := canvas.NewRectangle(segmentOff)
			r.segments[i][s] = rect
			r.objects = append(r.objects, rect)
		}
	}
	r.objects = append(r.objects, r.dot)
	return r
}

// displayRenderer renders the display widget.
type displayRenderer struct {
	display *Display

	bg       *canvas.Rectangle
	dot      *canvas.Circle
	segments [platform.Positions][7]*canvas.Rectangle

	objects []fyne.CanvasObject
}

// MinSize returns the minimum size of the widget.
func (r *displayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(180, 90)
}

// Layout positions the segments of every digit, tens on the left.
func (r *displayRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	margin := size.Height * 0.1
	cellW := (size.Width - 2*margin) / platform.Positions
	digitH := size.Height - 2*margin
	digitW := cellW * 0.7
	if digitW > digitH*0.6 {
		digitW = digitH * 0.6
	}
	th := digitW * 0.15

	for i := range r.segments {
		// Position 0 (tenths) is drawn rightmost.
		x := margin + float32(platform.Positions-1-i)*cellW + (cellW-digitW)/2
		layoutDigit(r.segments[i], x, margin, digitW, digitH, th)
	}

	// Decimal point between ones and tenths
	x := margin + float32(platform.Positions-1)*cellW
	r.dot.Resize(fyne.NewSize(th*1.4, th*1.4))
	r.dot.Move(fyne.NewPos(x-th*0.7, margin+digitH-th*1.4))
}

// layoutDigit places the segments a..g of one digit in a w x h box.
func layoutDigit(seg [7]*canvas.Rectangle, x, y, w, h, th float32) {
	half := h / 2
	place := func(r *canvas.Rectangle, px, py, sw, sh float32) {
		r.Move(fyne.NewPos(px, py))
		r.Resize(fyne.NewSize(sw, sh))
	}
	place(seg[0], x+th, y, w-2*th, th)                  // a
	place(seg[1], x+w-th, y+th, th, half-1.5*th)        // b
	place(seg[2], x+w-th, y+half+th/2, th, half-1.5*th) // c
	place(seg[3], x+th, y+h-th, w-2*th, th)             // d
	place(seg[4], x, y+half+th/2, th, half-1.5*th)      // e
	place(seg[5], x, y+th, th, half-1.5*th)             // f
	place(seg[6], x+th, y+half-th/2, w-2*th, th)        // g
}

// Refresh recolours the segments from the latched digits.
func (r *displayRenderer) Refresh() {
	digits, lit := r.display.Digits()

	for i := range r.segments {
		var on uint8
		if lit[i] {
			on = Segments(digits[i])
		}
		for s, rect := range r.segments[i] {
			c := segmentOff
			if on&(1<<s) != 0 {
				c = segmentOn
			}
			rect.FillColor = c
			rect.Refresh()
		}
	}
	r.bg.Refresh()
	r.dot.Refresh()
}

// Objects returns the objects to draw.
func (r *displayRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy releases renderer resources.
func (r *displayRenderer) Destroy() {}
