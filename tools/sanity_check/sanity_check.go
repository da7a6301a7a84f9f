package sanity_check

import (
	"fmt"
	"io"

	version_control "geo_buddy_go/config" // Version control file
	"geo_buddy_go/tools/geo_matrix"
)

// Run performs a simple sanity check to ensure GEO Buddy is running properly,
// printing a helpful message, the version number and the size of the
// built-in tissue rule table.
func Run(w io.Writer, args []string) {
	fmt.Fprintf(w, "Successfully running GEO Buddy! (%s)\n", version_control.Main_version)
	fmt.Fprintf(w, "Built-in tissue rules: %d\n", len(geo_matrix.DefaultTissueRules))
}
