package cli

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/urfave/cli/v2"

	"go.viam.com/sparseplan/trajectory"
)

// trajectorySchema describes the trajectory file format accepted by plan.
var trajectorySchema = jsonschema.Reflect(&trajectory.Config{})

// SchemaAction prints the JSON schema of a trajectory file.
func SchemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(trajectorySchema, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
