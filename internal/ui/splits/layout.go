package splits

import "fyne.io/fyne/v2"

const (
	iconSide    = float32(22)
	columnGap   = float32(8)
	rowPadding  = float32(4)
	minTimeCell = float32(64)
)

// rowLayout places a highlight background behind icon, name and three
// right-aligned time columns. The name column takes the remaining width.
type rowLayout struct {
	timeWidth float32
}

func (layout *rowLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 6 {
		return
	}
	background := objects[0]
	icon := objects[1]
	name := objects[2]
	times := objects[3:6]

	background.Move(fyne.NewPos(0, 0))
	background.Resize(size)

	timeWidth := layout.columnWidth(times)
	x := size.Width - rowPadding
	for index := len(times) - 1; index >= 0; index-- {
		x -= timeWidth
		cellHeight := times[index].MinSize().Height
		times[index].Move(fyne.NewPos(x, (size.Height-cellHeight)/2))
		times[index].Resize(fyne.NewSize(timeWidth, cellHeight))
		x -= columnGap
	}

	icon.Move(fyne.NewPos(rowPadding, (size.Height-iconSide)/2))
	icon.Resize(fyne.NewSize(iconSide, iconSide))

	nameX := rowPadding + iconSide + columnGap
	nameWidth := x - nameX
	if nameWidth < 0 {
		nameWidth = 0
	}
	nameHeight := name.MinSize().Height
	name.Move(fyne.NewPos(nameX, (size.Height-nameHeight)/2))
	name.Resize(fyne.NewSize(nameWidth, nameHeight))
}

func (layout *rowLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 6 {
		return fyne.NewSize(0, 0)
	}
	timeWidth := layout.columnWidth(objects[3:6])
	height := iconSide
	for _, object := range objects[2:6] {
		if object.MinSize().Height > height {
			height = object.MinSize().Height
		}
	}
	width := rowPadding*2 + iconSide + columnGap + objects[2].MinSize().Width + 3*(timeWidth+columnGap)
	return fyne.NewSize(width, height+rowPadding*2)
}

func (layout *rowLayout) columnWidth(times []fyne.CanvasObject) float32 {
	width := layout.timeWidth
	if width < minTimeCell {
		width = minTimeCell
	}
	for _, cell := range times {
		if cell.MinSize().Width > width {
			width = cell.MinSize().Width
		}
	}
	return width
}
