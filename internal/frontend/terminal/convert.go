package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyseq/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
	tcell.KeyPause:      key.KeyPause,
	tcell.KeyPrint:      key.KeyPrintScreen,
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	mods := key.ModNone
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// ConvertKey converts a tcell key event to a keypress. Terminals report
// control letters either as their ASCII control code or as a rune with
// the control modifier; both become the letter plus ModCtrl. ok is false
// for keys with no equivalent.
func ConvertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if sk, found := specialKeys[k]; found {
		if k == tcell.KeyBacktab {
			mods = mods.With(key.ModShift)
		}
		return key.NewSpecialEvent(sk, mods), true
	}

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if mods.Has(key.ModCtrl) {
			r = unicode.ToLower(r)
		}
		return key.NewRuneEvent(r, mods), true
	case k == tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	default:
		return key.Event{}, false
	}
}
