package sdf

// OpenDataset opens the file at path and assembles its dataset in one
// call.
func OpenDataset(path string, opts ...Option) (*Dataset, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f.Dataset(opts...)
}

// Dataset assembles the labeled view of the file. Blocks are classified
// into attributes, meshes, and variables; every mesh axis becomes a
// coordinate; and each variable axis is matched to the coordinate with
// the same label and size. A variable whose axes cannot be matched is
// logged and skipped so the rest of the dataset still loads.
func (f *File) Dataset(opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)

	part, err := classify(f.blocks, f.byName, o.drop)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		attrs:    part.attrs.Fields,
		attrKeys: part.attrs.Keys,
		coords:   materializeCoordinates(part.meshes),
		vars:     map[string]*Variable{},
	}
	for _, v := range part.variables {
		coords, err := resolveCoordinates(v)
		if err != nil {
			o.logger.WithError(err).WithField("variable", v.Name).
				Warn("skipping variable with no matching grid")
			continue
		}
		ds.vars[v.Name] = &Variable{
			Name:   v.Name,
			Units:  v.Units,
			Coords: coords,
			Data:   v.Data,
		}
	}
	return ds, nil
}
