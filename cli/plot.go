package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"go.viam.com/sparseplan/trajectory"
)

// plotPath saves one line per joint against the dense path index. The image format follows the
// file extension.
func plotPath(path []trajectory.JointPoint, file string) error {
	if len(path) == 0 {
		return errors.New("nothing to plot")
	}
	p := plot.New()
	p.Title.Text = "joint path"
	p.X.Label.Text = "point"
	p.Y.Label.Text = "joint value"

	dof := len(path[0].Inputs)
	for j := 0; j < dof; j++ {
		xys := make(plotter.XYs, len(path))
		for i, jp := range path {
			xys[i].X = float64(i)
			xys[i].Y = jp.Inputs[j].Value
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(j)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("joint %d", j), line)
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, file)
}
