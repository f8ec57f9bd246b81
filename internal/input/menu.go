package input

// Category separates legitimate menu actions from covert ones, so the
// renderer can style them apart.
type Category int

const (
	CategoryNormal Category = iota
	CategoryCheat
)

// Slot is one direction of the radial menu. An empty label is an empty
// slot; confirming it does nothing.
type Slot struct {
	Label    string
	Category Category
	Commit   func()
}

// Menu is the radial action menu anchored on one of the player's hand
// cards. Created on confirm over the hand, destroyed on commit or cancel.
type Menu struct {
	Open         bool
	SubjectIndex int
	Selected     Direction
	Slots        map[Direction]Slot
}

// openMenu anchors the menu on a hand index. Up is the legitimate play;
// left and down are the covert moves. Right stays empty.
func (c *Controller) openMenu(handIndex int) {
	i := handIndex
	c.menu = Menu{
		Open:         true,
		SubjectIndex: i,
		Selected:     Up,
		Slots: map[Direction]Slot{
			Up:   {Label: "Play", Category: CategoryNormal, Commit: func() { c.actions.PlayCard(i) }},
			Left: {Label: "Sneak to grave", Category: CategoryCheat, Commit: func() { c.actions.SneakToGrave(i) }},
			Down: {Label: "Discard", Category: CategoryCheat, Commit: func() { c.actions.SneakDiscard(i) }},
		},
	}
	c.mode = ModeMenu
}

// commitMenu runs the selected slot's action, if any, then closes.
func (c *Controller) commitMenu() {
	slot, ok := c.menu.Slots[c.menu.Selected]
	c.closeMenu()
	if ok && slot.Commit != nil {
		slot.Commit()
	}
}

func (c *Controller) closeMenu() {
	c.menu = Menu{}
	c.mode = ModeIdle
}
