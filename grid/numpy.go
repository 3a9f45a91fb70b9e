package grid

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const numpyMagic = "\x93NUMPY"

var numpyItemSizes = map[string]int{
	"|u1": 1, "|b1": 1, "|i1": 1,
	"<u2": 2, "<i2": 2,
	"<u4": 4, "<i4": 4, "<f4": 4,
	"<u8": 8, "<i8": 8, "<f8": 8,
}

var (
	numpyDescrExpr   = regexp.MustCompile(`'descr':\s*'([^']*)'`)
	numpyFortranExpr = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	numpyShapeExpr   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// EncodeNumpy encodes a grid as a version 1.0 .npy file.
//
// The shape is written with the slowest axis first and C
// ordering, so the payload is exactly the grid's flat
// sample slice.
func EncodeNumpy[T Scalar](g *Grid[T]) ([]byte, error) {
	descr, err := numpyDescr(g.data)
	if err != nil {
		return nil, err
	}
	shape := make([]string, g.Dim())
	for i, s := range g.Extent() {
		shape[len(shape)-1-i] = strconv.Itoa(s)
	}
	shapeStr := strings.Join(shape, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }",
		descr, shapeStr)
	// Magic, version, header length, header and newline are
	// padded to a multiple of 64 bytes.
	for (len(numpyMagic)+4+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString(numpyMagic)
	buf.Write([]byte{1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	if err := binary.Write(&buf, binary.LittleEndian, g.data); err != nil {
		return nil, errors.Wrap(err, "encode numpy")
	}
	return buf.Bytes(), nil
}

// DecodeNumpy decodes a .npy file into a grid of float64
// samples.
//
// Both C and Fortran ordering are supported. With C
// ordering, the last entry of the shape becomes axis 0.
func DecodeNumpy(data []byte) (*Grid[float64], error) {
	if !bytes.HasPrefix(data, []byte(numpyMagic)) || len(data) < len(numpyMagic)+4 {
		return nil, errors.New("decode numpy: missing magic")
	}
	rest := data[len(numpyMagic):]
	major := rest[0]
	rest = rest[2:]
	var headerLen int
	switch major {
	case 1:
		headerLen = int(binary.LittleEndian.Uint16(rest))
		rest = rest[2:]
	case 2, 3:
		if len(rest) < 4 {
			return nil, errors.New("decode numpy: truncated header")
		}
		headerLen = int(binary.LittleEndian.Uint32(rest))
		rest = rest[4:]
	default:
		return nil, errors.Errorf("decode numpy: unsupported version %d", major)
	}
	if len(rest) < headerLen {
		return nil, errors.New("decode numpy: truncated header")
	}
	header := string(rest[:headerLen])
	payload := rest[headerLen:]

	descrMatch := numpyDescrExpr.FindStringSubmatch(header)
	fortranMatch := numpyFortranExpr.FindStringSubmatch(header)
	shapeMatch := numpyShapeExpr.FindStringSubmatch(header)
	if descrMatch == nil || fortranMatch == nil || shapeMatch == nil {
		return nil, errors.Errorf("decode numpy: malformed header %q", header)
	}

	var shape []int
	for _, field := range strings.Split(shapeMatch[1], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		s, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrap(err, "decode numpy: shape")
		}
		if s < 0 {
			return nil, errors.Errorf("decode numpy: negative size %d in shape", s)
		}
		shape = append(shape, s)
	}
	// A zero-dimensional extent holds no samples.
	count := min(len(shape), 1)
	for _, s := range shape {
		if s != 0 && count > math.MaxInt/s {
			return nil, errors.Errorf("decode numpy: shape %v is too large", shape)
		}
		count *= s
	}
	if fortranMatch[1] == "False" {
		for i, j := 0, len(shape)-1; i < j; i, j = i+1, j-1 {
			shape[i], shape[j] = shape[j], shape[i]
		}
	}
	extent := NewExtent(shape...)

	values, err := decodeNumpyValues(descrMatch[1], payload, count)
	if err != nil {
		return nil, err
	}
	return FromData(extent, values)
}

// SaveNumpy writes a grid to a .npz archive holding a
// single array named grid.
func SaveNumpy[T Scalar](path string, g *Grid[T]) error {
	encoded, err := EncodeNumpy(g)
	if err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	zipWriter := zip.NewWriter(w)
	fileWriter, err := zipWriter.Create("grid.npy")
	if err != nil {
		return err
	}
	if _, err := fileWriter.Write(encoded); err != nil {
		return err
	}
	if err := zipWriter.Close(); err != nil {
		return err
	}
	return nil
}

// LoadNumpy reads a grid from a .npy file or from the
// first array of a .npz archive.
func LoadNumpy(path string) (*Grid[float64], error) {
	if filepath.Ext(path) != ".npz" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return DecodeNumpy(data)
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "load numpy")
	}
	defer r.Close()
	for _, f := range r.File {
		if filepath.Ext(f.Name) != ".npy" {
			continue
		}
		fr, err := f.Open()
		if err != nil {
			return nil, errors.Wrap(err, "load numpy")
		}
		data, err := io.ReadAll(fr)
		fr.Close()
		if err != nil {
			return nil, errors.Wrap(err, "load numpy")
		}
		return DecodeNumpy(data)
	}
	return nil, errors.Errorf("load numpy: no array in %s", path)
}

func numpyDescr(data any) (string, error) {
	switch data.(type) {
	case []uint8:
		return "|u1", nil
	case []int8:
		return "|i1", nil
	case []uint16:
		return "<u2", nil
	case []int16:
		return "<i2", nil
	case []uint32:
		return "<u4", nil
	case []int32:
		return "<i4", nil
	case []uint64:
		return "<u8", nil
	case []int64:
		return "<i8", nil
	case []float32:
		return "<f4", nil
	case []float64:
		return "<f8", nil
	}
	return "", errors.Errorf("encode numpy: unsupported sample type %T", data)
}

func decodeNumpyValues(descr string, payload []byte, count int) ([]float64, error) {
	itemSize, ok := numpyItemSizes[descr]
	if !ok {
		return nil, errors.Errorf("decode numpy: unsupported dtype %q", descr)
	}
	if count > len(payload)/itemSize {
		return nil, errors.Errorf("decode numpy: %d samples need %d bytes but got %d",
			count, count*itemSize, len(payload))
	}

	var raw any
	switch descr {
	case "|u1", "|b1":
		raw = make([]uint8, count)
	case "|i1":
		raw = make([]int8, count)
	case "<u2":
		raw = make([]uint16, count)
	case "<i2":
		raw = make([]int16, count)
	case "<u4":
		raw = make([]uint32, count)
	case "<i4":
		raw = make([]int32, count)
	case "<u8":
		raw = make([]uint64, count)
	case "<i8":
		raw = make([]int64, count)
	case "<f4":
		raw = make([]float32, count)
	case "<f8":
		raw = make([]float64, count)
	default:
		return nil, errors.Errorf("decode numpy: unsupported dtype %q", descr)
	}
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, raw); err != nil {
		return nil, errors.Wrap(err, "decode numpy: payload")
	}
	switch raw := raw.(type) {
	case []uint8:
		return toFloats(raw), nil
	case []int8:
		return toFloats(raw), nil
	case []uint16:
		return toFloats(raw), nil
	case []int16:
		return toFloats(raw), nil
	case []uint32:
		return toFloats(raw), nil
	case []int32:
		return toFloats(raw), nil
	case []uint64:
		return toFloats(raw), nil
	case []int64:
		return toFloats(raw), nil
	case []float32:
		return toFloats(raw), nil
	default:
		return raw.([]float64), nil
	}
}

func toFloats[T Scalar](values []T) []float64 {
	res := make([]float64, len(values))
	for i, x := range values {
		res[i] = float64(x)
	}
	return res
}
