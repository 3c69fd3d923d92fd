package twig

import (
	"fmt"

	"github.com/Piqzaa/HTML-to-Twig/internal/regions"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

func (d *dialect) RegionFound(name, selector string, rep *report.Report) {
	rep.AddRegion(name, fmt.Sprintf("Detected %s element(s)", selector))
}

func (d *dialect) RepetitionFound(r regions.Repetition, rep *report.Report) {
	rep.AddSuggestion(fmt.Sprintf("Consider using a for loop for repeated elements in '%s' (%d similar children found)", r.Name, r.Count()))
}
