//
// tabulate.go
//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
)

// StatsTable renders the circuit gate statistics as a table.
func (c *Circuit) StatsTable(out io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Gate").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	total := c.Stats.Count()
	for op := X; op <= ANDXInv; op++ {
		count := c.Stats[op]
		if count == 0 {
			continue
		}
		row := tab.Row()
		row.Column(op.String())
		row.Column(fmt.Sprintf("%d", count))
		row.Column(fmt.Sprintf("%.2f%%", float64(count)/float64(total)*100))
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", total)).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)

	row = tab.Row()
	row.Column("╰╴T-cost").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d", c.Cost())).SetFormat(tabulate.FmtItalic)
	row.Column("").SetFormat(tabulate.FmtItalic)

	tab.Print(out)
}
