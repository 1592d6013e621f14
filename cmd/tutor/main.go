// Command tutor serves the PSLE Science tutor HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/projectmoneymatter/psle-science-tutor/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "tutor: %v\n", err)
		os.Exit(1)
	}
}
