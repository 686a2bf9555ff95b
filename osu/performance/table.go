package performance

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/wieku/danser-pp/osu/difficulty"
)

// Table renders a one-row breakdown of a pp calculation as an ASCII
// table, the way the teacher's ruleset prints per-player score rows
// for a replay/session summary.
func (a Attributes) Table() string {
	b := &strings.Builder{}

	table := tablewriter.NewWriter(b)
	table.SetHeader([]string{"Stars", "Aim", "Jump", "Flow", "Precision", "Speed", "Stamina", "Accuracy", "PP"})

	table.Append([]string{
		fmt.Sprintf("%.2f", a.Difficulty.Stars),
		fmt.Sprintf("%.2f", a.PPAim),
		fmt.Sprintf("%.2f", a.PPJumpAim),
		fmt.Sprintf("%.2f", a.PPFlowAim),
		fmt.Sprintf("%.2f", a.PPPrecision),
		fmt.Sprintf("%.2f", a.PPSpeed),
		fmt.Sprintf("%.2f", a.PPStamina),
		fmt.Sprintf("%.2f", a.PPAccuracy),
		fmt.Sprintf("%.2f", a.PP),
	})

	table.Render()

	return b.String()
}

// DifficultyTable renders a beatmap's attribute/object counts, for the
// same debug-dump use case as Attributes.Table. It lives in this
// package rather than osu/difficulty so the difficulty package stays
// free of a table-rendering dependency.
func DifficultyTable(a difficulty.Attributes) string {
	b := &strings.Builder{}

	table := tablewriter.NewWriter(b)
	table.SetHeader([]string{"AR", "OD", "HP", "Circles", "Sliders", "Spinners", "Max Combo", "Stars"})

	table.Append([]string{
		fmt.Sprintf("%.2f", a.AR),
		fmt.Sprintf("%.2f", a.OD),
		fmt.Sprintf("%.2f", a.HP),
		humanize.Comma(int64(a.NCircles)),
		humanize.Comma(int64(a.NSliders)),
		humanize.Comma(int64(a.NSpinners)),
		humanize.Comma(int64(a.MaxCombo)),
		fmt.Sprintf("%.2f", a.Stars),
	})

	table.Render()

	return b.String()
}
