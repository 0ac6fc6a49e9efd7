package export

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/five82/tabula/internal/table"
)

// columnKind picks the narrowest arrow type that holds every non-empty
// value of key: float64 when all are numbers, bool when all are booleans,
// otherwise string.
func columnKind(rows []table.Row, key string) table.Kind {
	kind := table.KindNull
	for _, r := range rows {
		v := r.Get(key)
		if v.IsEmpty() {
			continue
		}
		switch {
		case kind == table.KindNull:
			kind = v.Kind()
		case kind != v.Kind():
			return table.KindString
		}
	}
	if kind == table.KindNull {
		return table.KindString
	}
	return kind
}

func arrowType(k table.Kind) arrow.DataType {
	switch k {
	case table.KindNumber:
		return arrow.PrimitiveTypes.Float64
	case table.KindBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// buildTable converts rows into an arrow table with one nullable field per
// column, named by label.
func buildTable(rows []table.Row, cols []table.Column) arrow.Table {
	pool := memory.NewGoAllocator()

	fields := make([]arrow.Field, len(cols))
	kinds := make([]table.Kind, len(cols))
	for i, c := range cols {
		kinds[i] = columnKind(rows, c.Key)
		fields[i] = arrow.Field{Name: c.Label, Type: arrowType(kinds[i]), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	columns := make([]arrow.Column, len(cols))
	for i, c := range cols {
		builder := array.NewBuilder(pool, fields[i].Type)
		for _, r := range rows {
			appendValue(builder, kinds[i], r.Get(c.Key))
		}
		arr := builder.NewArray()
		builder.Release()

		chunked := arrow.NewChunked(fields[i].Type, []arrow.Array{arr})
		arr.Release()
		columns[i] = *arrow.NewColumn(fields[i], chunked)
		chunked.Release()
	}
	return array.NewTable(schema, columns, int64(len(rows)))
}

func appendValue(builder array.Builder, kind table.Kind, v table.Value) {
	if v.IsNull() {
		builder.AppendNull()
		return
	}
	switch kind {
	case table.KindNumber:
		n, ok := v.Number()
		if !ok {
			builder.AppendNull()
			return
		}
		builder.(*array.Float64Builder).Append(n)
	case table.KindBool:
		b, ok := v.Boolean()
		if !ok {
			builder.AppendNull()
			return
		}
		builder.(*array.BooleanBuilder).Append(b)
	default:
		builder.(*array.StringBuilder).Append(v.String())
	}
}

func writeParquet(w io.Writer, rows []table.Row, cols []table.Column) error {
	tbl := buildTable(rows, cols)
	defer tbl.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(tbl.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	chunk := tbl.NumRows()
	if chunk == 0 {
		chunk = 1
	}
	if err := writer.WriteTable(tbl, chunk); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet loads a parquet file into rows and the field names of its
// schema. Typed columns become typed values.
func ReadParquet(ctx context.Context, r parquet.ReaderAtSeeker) ([]table.Row, []string, error) {
	pf, err := file.NewParquetReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}
	tbl, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	headers := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		headers[i] = f.Name
	}

	rows := make([]table.Row, 0, tbl.NumRows())
	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		for pos := 0; pos < int(rec.NumRows()); pos++ {
			var fields table.Fields
			for c := 0; c < int(rec.NumCols()); c++ {
				fields.Set(headers[c], valueAt(rec.Column(c), pos))
			}
			rows = append(rows, table.NewRow("", fields))
		}
	}
	return rows, headers, nil
}

func valueAt(col arrow.Array, pos int) table.Value {
	if col.IsNull(pos) {
		return table.Null()
	}
	switch a := col.(type) {
	case *array.Float64:
		return table.Num(a.Value(pos))
	case *array.Float32:
		return table.Num(float64(a.Value(pos)))
	case *array.Int64:
		return table.Num(float64(a.Value(pos)))
	case *array.Int32:
		return table.Num(float64(a.Value(pos)))
	case *array.Boolean:
		return table.Bool(a.Value(pos))
	case *array.String:
		return table.Str(a.Value(pos))
	default:
		return table.Str(col.ValueStr(pos))
	}
}
