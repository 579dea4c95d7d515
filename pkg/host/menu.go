package host

// MenuAction identifies the kind of a right-click menu entry.
// Values mirror the client's numeric action ids.
type MenuAction int

const (
	MenuActionNPCFirstOption  MenuAction = 9
	MenuActionNPCSecondOption MenuAction = 10
	MenuActionNPCThirdOption  MenuAction = 11
	MenuActionNPCFourthOption MenuAction = 12
	MenuActionNPCFifthOption  MenuAction = 13
	MenuActionExamineNPC      MenuAction = 1003
	MenuActionCustom          MenuAction = 1500
)

// IsNPCAction reports whether the action targets an NPC, examine included
func (a MenuAction) IsNPCAction() bool {
	switch a {
	case MenuActionNPCFirstOption,
		MenuActionNPCSecondOption,
		MenuActionNPCThirdOption,
		MenuActionNPCFourthOption,
		MenuActionNPCFifthOption,
		MenuActionExamineNPC:
		return true
	default:
		return false
	}
}

// MenuEntry is a single row of the right-click menu.
// Target is the raw, possibly tagged, display string, e.g.
// "<col=ffff00>Bloodveld<col=ff00>  (level-76)".
type MenuEntry struct {
	Option     string     `json:"option"`
	Target     string     `json:"target"`
	Action     MenuAction `json:"action"`
	Identifier int        `json:"identifier"`
	Param0     int        `json:"param0"`
	Param1     int        `json:"param1"`
}
