package table

// Paging tracks which window of rows is visible and which row is selected
// (spec.md §4.5: "paging (top/bottom/selected, 0-based, bounded by
// adapter.len())").
type Paging struct {
	Top      int
	Selected int
	Height   int
}

// Bottom is the last visible row index for the current Top/Height.
func (p *Paging) Bottom() int {
	return p.Top + p.Height - 1
}

// Recompute re-clamps Top and Selected against the current total row count
// and page height, scrolling Top just enough to keep Selected on screen.
func (p *Paging) Recompute(total, height int) {
	p.Height = height
	if total <= 0 {
		p.Top, p.Selected = 0, 0
		return
	}
	if p.Selected >= total {
		p.Selected = total - 1
	}
	if p.Selected < 0 {
		p.Selected = 0
	}
	if p.Selected < p.Top {
		p.Top = p.Selected
	}
	if height > 0 && p.Selected > p.Top+height-1 {
		p.Top = p.Selected - height + 1
	}
	if p.Top < 0 {
		p.Top = 0
	}
	if maxTop := total - height; height > 0 && p.Top > maxTop && maxTop >= 0 {
		p.Top = maxTop
	}
}

// MoveDown/MoveUp/PageDown/PageUp implement the §6 key bindings that only
// move the selection; Recompute should be called afterwards with the
// adapter's current length.
func (p *Paging) MoveDown(total int) {
	if p.Selected < total-1 {
		p.Selected++
	}
}

func (p *Paging) MoveUp() {
	if p.Selected > 0 {
		p.Selected--
	}
}

func (p *Paging) PageDown(total int) {
	p.Selected += p.Height
	if p.Selected > total-1 {
		p.Selected = total - 1
	}
}

func (p *Paging) PageUp() {
	p.Selected -= p.Height
	if p.Selected < 0 {
		p.Selected = 0
	}
}
