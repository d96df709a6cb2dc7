// slicelog watches a folder for new 3MF print files and logs their slicer
// estimates into an Excel workbook.
package main

import (
	"os"

	"github.com/hupe1980/slicelog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
