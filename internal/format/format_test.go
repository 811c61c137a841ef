package format_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/scigolib/sdf/internal/format"
	"github.com/scigolib/sdf/internal/sdftest"
	"github.com/stretchr/testify/require"
)

func TestReadFileHeader(t *testing.T) {
	orders := []struct {
		name  string
		order binary.ByteOrder
	}{
		{"little endian", binary.LittleEndian},
		{"big endian", binary.BigEndian},
	}

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			img := sdftest.NewFileBuilder().
				SetOrder(tc.order).
				SetCodeName("Epoch2d").
				SetStep(42).
				SetTime(1.25e-13).
				SetJobID(7, 8).
				SetRestart(true).
				Bytes()

			h, err := format.ReadFileHeader(bytes.NewReader(img))
			require.NoError(t, err)
			require.Equal(t, tc.order, h.Order)
			require.Equal(t, "Epoch2d", h.CodeName)
			require.Equal(t, int32(42), h.Step)
			require.Equal(t, 1.25e-13, h.Time)
			require.Equal(t, int32(7), h.JobID1)
			require.Equal(t, int32(8), h.JobID2)
			require.Equal(t, int32(64), h.StringLength)
			require.True(t, h.Restart)
			require.False(t, h.OtherDomains)
			require.Equal(t, int32(0), h.NBlocks)
		})
	}
}

func TestReadFileHeaderRejectsNonSDF(t *testing.T) {
	valid := sdftest.NewFileBuilder().Bytes()

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "HDF5")

	badSentinel := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badSentinel[4:], 0xdeadbeef)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", valid[:40]},
		{"bad magic", badMagic},
		{"bad endianness sentinel", badSentinel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := format.ReadFileHeader(bytes.NewReader(tc.data))
			require.ErrorIs(t, err, format.ErrNotSDF)
		})
	}
}

func TestCheckMagic(t *testing.T) {
	require.True(t, format.CheckMagic([]byte("SDF1 trailing bytes")))
	require.False(t, format.CheckMagic([]byte("SDF")))
	require.False(t, format.CheckMagic([]byte("HDF51")))
	require.False(t, format.CheckMagic(nil))
}

func TestReadBlocksMeshAndMidpoints(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddPlainMesh("grid", "Grid/Grid",
			[]string{"X", "Y"}, []string{"m", "m"},
			[]float64{0, 1, 2, 3}, []float64{0, 10, 20}).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	mesh, ok := blocks[0].(*format.Mesh)
	require.True(t, ok)
	require.Equal(t, "Grid/Grid", mesh.Name)
	require.Equal(t, "grid", mesh.ID)
	require.Equal(t, []string{"X", "Y"}, mesh.Labels)
	require.Equal(t, []string{"m", "m"}, mesh.Units)
	require.Equal(t, []int{4, 3}, mesh.Dims)
	require.Equal(t, format.GeometryCartesian, mesh.Geometry)
	require.Equal(t, []float64{0, 0, 3, 20}, mesh.Extents)
	require.Equal(t, []float64{0, 1, 2, 3}, mesh.Axes[0].Elements)
	require.Equal(t, []float64{0, 10, 20}, mesh.Axes[1].Elements)

	mid, ok := blocks[1].(*format.Mesh)
	require.True(t, ok)
	require.Equal(t, "Grid/Grid_mid", mid.Name)
	require.Equal(t, "grid_mid", mid.ID)
	require.Equal(t, []string{"X", "Y"}, mid.Labels)
	require.Equal(t, []int{3, 2}, mid.Dims)
	require.Equal(t, []float64{0.5, 1.5, 2.5}, mid.Axes[0].Elements)
	require.Equal(t, []float64{5, 15}, mid.Axes[1].Elements)
}

func TestReadBlocksSinglePointMesh(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddPlainMesh("grid", "Grid/Grid", []string{"X"}, []string{"m"}, []float64{5}).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)

	mid := blocks[1].(*format.Mesh)
	require.Equal(t, []int{0}, mid.Dims)
	require.Empty(t, mid.Axes[0].Elements)
}

func TestReadBlocksVariableWiring(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddPlainMesh("grid", "Grid/Grid",
			[]string{"X", "Y"}, []string{"m", "m"},
			[]float64{0, 1, 2}, []float64{0, 1, 2, 3}).
		AddPlainVariable("ex", "Electric Field/Ex", "grid", "V/m",
			[]int{2, 3}, format.StaggerCellCentre,
			[]float64{1, 2, 3, 4, 5, 6}).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	v, ok := blocks[2].(*format.Variable)
	require.True(t, ok)
	require.Equal(t, "Electric Field/Ex", v.Name)
	require.Equal(t, "grid", v.MeshID)
	require.Equal(t, "V/m", v.Units)
	require.Equal(t, []int{2, 3}, v.Dims)
	require.NotNil(t, v.Mesh)
	require.Equal(t, "grid", v.Mesh.ID)
	require.NotNil(t, v.MeshMid)
	require.Equal(t, "grid_mid", v.MeshMid.ID)
	require.Equal(t, []string{"X", "Y"}, v.Labels)

	// Values were written with the first dimension varying fastest.
	require.Equal(t, 1.0, v.Data.Get(0, 0))
	require.Equal(t, 2.0, v.Data.Get(1, 0))
	require.Equal(t, 3.0, v.Data.Get(0, 1))
	require.Equal(t, 4.0, v.Data.Get(1, 1))
	require.Equal(t, 5.0, v.Data.Get(0, 2))
	require.Equal(t, 6.0, v.Data.Get(1, 2))
}

func TestReadBlocksVariableWithoutMesh(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddPlainVariable("lost", "Derived/Lost", "no_such_mesh", "1",
			[]int{2}, format.StaggerCellCentre, []float64{1, 2}).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)

	v := blocks[0].(*format.Variable)
	require.Nil(t, v.Mesh)
	require.Nil(t, v.MeshMid)
	require.Nil(t, v.Labels)
	require.Equal(t, []float64{1, 2}, v.Data.Elements)
}

func TestReadBlocksThreeDimensionalVariable(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddPlainVariable("rho", "Derived/Charge Density", "grid", "C/m^3",
			[]int{2, 2, 2}, format.StaggerCellCentre,
			[]float64{1, 2, 3, 4, 5, 6, 7, 8}).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)

	v := blocks[0].(*format.Variable)
	require.Equal(t, 1.0, v.Data.Get(0, 0, 0))
	require.Equal(t, 2.0, v.Data.Get(1, 0, 0))
	require.Equal(t, 3.0, v.Data.Get(0, 1, 0))
	require.Equal(t, 4.0, v.Data.Get(1, 1, 0))
	require.Equal(t, 5.0, v.Data.Get(0, 0, 1))
	require.Equal(t, 8.0, v.Data.Get(1, 1, 1))
}

func TestReadBlocksConstants(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddConstantReal8("time_inc", "time_increment", 1.5e-15).
		AddConstantInteger4("rank", "mpi_rank_count", 128).
		AddConstantLogical("moving", "moving_window", true).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	require.Equal(t, 1.5e-15, blocks[0].(*format.Constant).Value)
	require.Equal(t, int32(128), blocks[1].(*format.Constant).Value)
	require.Equal(t, true, blocks[2].(*format.Constant).Value)
}

func TestReadBlocksRunInfo(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddRunInfo("run_info", "Run_info", sdftest.RunInfo{
			Version:        4,
			Revision:       17,
			CommitID:       "v4.17.0-24-g1234567",
			SHA1Sum:        "",
			CompileMachine: "cluster-login-01",
			CompileFlags:   "-O3",
			Defines:        0,
			CompileDate:    1600000000,
			RunDate:        1600000100,
			IODate:         1600000200,
		}).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)

	md, ok := blocks[0].(*format.Metadata)
	require.True(t, ok)
	require.Equal(t, "Run_info", md.Name)
	require.Equal(t, []string{
		"version", "revision", "commit_id", "sha1sum", "compile_machine",
		"compile_flags", "defines", "compile_date", "run_date", "io_date",
	}, md.Keys)
	require.Equal(t, int32(4), md.Fields["version"])
	require.Equal(t, int32(17), md.Fields["revision"])
	require.Equal(t, "v4.17.0-24-g1234567", md.Fields["commit_id"])
	require.Equal(t, "cluster-login-01", md.Fields["compile_machine"])
	require.Equal(t, int32(1600000100), md.Fields["run_date"])
}

func TestReadBlocksOpaque(t *testing.T) {
	img := sdftest.NewFileBuilder().
		AddRawBlock("src", "Source Code", format.BlockTypeSource,
			format.DatatypeCharacter, 1, nil, []byte("program main")).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)

	op, ok := blocks[0].(*format.Opaque)
	require.True(t, ok)
	require.Equal(t, "Source Code", op.Name)
	require.Equal(t, format.BlockTypeSource, op.Type)
	require.Equal(t, int64(len("program main")), op.DataLength)
}

func TestReadBlocksRejectsLengthMismatch(t *testing.T) {
	// A variable that declares four elements but stores only two.
	meta := make([]byte, 8+32+32+4+4)
	binary.LittleEndian.PutUint64(meta[0:], 0x3ff0000000000000) // mult = 1.0
	binary.LittleEndian.PutUint32(meta[72:], 4)                 // dims[0]
	img := sdftest.NewFileBuilder().
		AddRawBlock("bad", "Broken/Variable", format.BlockTypePlainVariable,
			format.DatatypeReal8, 1, meta, make([]byte, 16)).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	_, err = format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not match")
}

func TestReadBlocksBigEndianData(t *testing.T) {
	img := sdftest.NewFileBuilder().
		SetOrder(binary.BigEndian).
		AddPlainMesh("grid", "Grid/Grid", []string{"X"}, []string{"m"},
			[]float64{0, 0.5, 1}).
		AddPlainVariable("ex", "Electric Field/Ex", "grid", "V/m",
			[]int{2}, format.StaggerCellCentre, []float64{-3, 12.5}).
		Bytes()

	h, err := format.ReadFileHeader(bytes.NewReader(img))
	require.NoError(t, err)
	blocks, err := format.ReadBlocks(bytes.NewReader(img), h, int64(len(img)))
	require.NoError(t, err)

	mesh := blocks[0].(*format.Mesh)
	require.Equal(t, []float64{0, 0.5, 1}, mesh.Axes[0].Elements)
	v := blocks[2].(*format.Variable)
	require.Equal(t, []float64{-3, 12.5}, v.Data.Elements)
}
