package main

import (
	"fmt"
	"math"
	"os"
	"regexp"

	"github.com/ctessum/cdf"
	"github.com/scigolib/sdf"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <file.sdf> <file.nc>",
		Short: "Convert an SDF file to a NetCDF file",
		Long: `Convert writes the dataset view of an SDF file as NetCDF: every
coordinate becomes a dimension plus a coordinate variable, every data
variable keeps its coordinate dimensions, and the dataset attributes
become global attributes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := sdf.OpenDataset(args[0], cfg.options()...)
			if err != nil {
				return err
			}
			return writeNetCDF(args[1], ds)
		},
	}
}

// ncNameRe matches runs of characters NetCDF classic names cannot
// carry, such as the "/" and spaces in SDF block names.
var ncNameRe = regexp.MustCompile(`[^A-Za-z0-9_]+`)

func ncName(name string) string {
	return ncNameRe.ReplaceAllString(name, "_")
}

func writeNetCDF(path string, ds *sdf.Dataset) error {
	// Declare one dimension per coordinate. Zero-length axes cannot be
	// fixed dimensions in the classic format, so they and anything
	// defined on them stay out of the file.
	var dimNames []string
	var dimLengths []int
	declared := map[string]int{}
	owner := map[string]string{}
	for _, name := range ds.CoordNames() {
		c, _ := ds.Coord(name)
		nc := ncName(name)
		if len(c.Values) == 0 {
			logrus.WithField("coordinate", name).Warn("skipping empty coordinate")
			continue
		}
		if _, ok := declared[nc]; ok {
			logrus.WithField("coordinate", name).Warn("skipping coordinate whose NetCDF name clashes")
			continue
		}
		declared[nc] = len(c.Values)
		owner[nc] = name
		dimNames = append(dimNames, nc)
		dimLengths = append(dimLengths, len(c.Values))
	}

	h := cdf.NewHeader(dimNames, dimLengths)
	for _, key := range ds.AttrNames() {
		value, _ := ds.Attr(key)
		if v := ncAttrValue(value); v != nil {
			h.AddAttribute("", ncName(key), v)
		}
	}

	used := map[string]bool{}
	for nc := range declared {
		used[nc] = true
	}

	type writeJob struct {
		name string
		data []float64
	}
	var jobs []writeJob

	// Coordinates become variables over their own dimension.
	for _, name := range ds.CoordNames() {
		c, _ := ds.Coord(name)
		nc := ncName(name)
		if owner[nc] != name {
			continue
		}
		h.AddVariable(nc, []string{nc}, []float64{0})
		h.AddAttribute(nc, "units", c.Units)
		h.AddAttribute(nc, "long_name", c.Label)
		jobs = append(jobs, writeJob{nc, c.Values})
	}

	for _, name := range ds.VarNames() {
		v, _ := ds.Var(name)
		nc := ncName(name)
		if used[nc] {
			logrus.WithField("variable", name).Warn("skipping variable whose NetCDF name clashes")
			continue
		}
		dims := make([]string, len(v.Coords))
		resolved := true
		for i, cn := range v.Coords {
			dim := ncName(cn)
			if _, ok := declared[dim]; !ok {
				logrus.WithFields(logrus.Fields{
					"variable": name, "coordinate": cn,
				}).Warn("skipping variable on an undeclared dimension")
				resolved = false
				break
			}
			dims[i] = dim
		}
		if !resolved {
			continue
		}
		used[nc] = true
		h.AddVariable(nc, dims, []float64{0})
		h.AddAttribute(nc, "units", v.Units)
		h.AddAttribute(nc, "long_name", name)
		jobs = append(jobs, writeJob{nc, v.Data.Elements})
	}
	h.Define()

	//nolint:gosec // G304: writing a caller-provided path is the point of this tool.
	ff, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	for _, job := range jobs {
		if err := writeNCVar(f, job.name, job.data); err != nil {
			return err
		}
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		return err
	}
	return ff.Close()
}

func writeNCVar(f *cdf.File, name string, data []float64) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// ncAttrValue maps a dataset attribute to a value the NetCDF header
// accepts: strings pass through, scalars become one-element slices, and
// unsupported types return nil.
func ncAttrValue(v interface{}) interface{} {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return []int32{1}
		}
		return []int32{0}
	case float64:
		return []float64{x}
	case float32:
		return []float64{float64(x)}
	case int32:
		return []int32{x}
	case int64:
		if x >= math.MinInt32 && x <= math.MaxInt32 {
			return []int32{int32(x)}
		}
		return []float64{float64(x)}
	case int:
		if x >= math.MinInt32 && x <= math.MaxInt32 {
			return []int32{int32(x)}
		}
		return []float64{float64(x)}
	default:
		return nil
	}
}
