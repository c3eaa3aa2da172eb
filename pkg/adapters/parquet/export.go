// Package parquet exports recorded matches as Parquet files, one row per turn,
// for analysis with columnar tools.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/aretw0/anthill/pkg/domain"
)

// SchemaVersion is written to the file metadata under the "schema" key.
const SchemaVersion = "anthill_turn_v1"

// TurnRow is one recorded turn. Coordinates are split into parallel row/col lists.
type TurnRow struct {
	MatchID string `parquet:"match_id,dict"`
	Agent   string `parquet:"agent,dict,optional"`
	Turn    int32  `parquet:"turn"`
	Rows    int32  `parquet:"rows"`
	Cols    int32  `parquet:"cols"`

	FoodRow  []int32 `parquet:"food_row"`
	FoodCol  []int32 `parquet:"food_col"`
	WaterRow []int32 `parquet:"water_row"`
	WaterCol []int32 `parquet:"water_col"`

	Ants   []AntRow   `parquet:"ants"`
	Hills  []HillRow  `parquet:"hills"`
	Orders []OrderRow `parquet:"orders"`

	ElapsedMicros int64 `parquet:"elapsed_us"`
}

// AntRow is a live or dead ant.
type AntRow struct {
	Owner int32 `parquet:"owner"`
	Row   int32 `parquet:"row"`
	Col   int32 `parquet:"col"`
	Alive bool  `parquet:"alive"`
}

// HillRow is a hill and its owner.
type HillRow struct {
	Owner int32 `parquet:"owner"`
	Row   int32 `parquet:"row"`
	Col   int32 `parquet:"col"`
}

// OrderRow is an order sent that turn. Dir is the wire letter.
type OrderRow struct {
	Row int32  `parquet:"row"`
	Col int32  `parquet:"col"`
	Dir string `parquet:"dir,dict"`
}

// Rows flattens the turns of a match.
func Rows(match *domain.Match) []TurnRow {
	rows := make([]TurnRow, 0, len(match.Turns))
	for _, t := range match.Turns {
		row := TurnRow{
			MatchID:       match.ID,
			Agent:         match.Agent,
			Turn:          int32(t.Turn),
			Rows:          int32(match.Params.Rows),
			Cols:          int32(match.Params.Cols),
			Orders:        make([]OrderRow, 0, len(t.Orders)),
			ElapsedMicros: t.Elapsed.Microseconds(),
		}
		if w := t.World; w != nil {
			row.FoodRow, row.FoodCol = split(w.Food)
			row.WaterRow, row.WaterCol = split(w.Water)
			row.Ants = ants(w)
			for owner, hills := range w.Hills {
				for _, p := range hills {
					row.Hills = append(row.Hills, HillRow{Owner: int32(owner), Row: int32(p.Row), Col: int32(p.Col)})
				}
			}
		}
		for _, o := range t.Orders {
			row.Orders = append(row.Orders, OrderRow{Row: int32(o.Pos.Row), Col: int32(o.Pos.Col), Dir: string(o.Dir.Letter())})
		}
		rows = append(rows, row)
	}
	return rows
}

func split(ps []domain.Position) ([]int32, []int32) {
	r := make([]int32, len(ps))
	c := make([]int32, len(ps))
	for i, p := range ps {
		r[i], c[i] = int32(p.Row), int32(p.Col)
	}
	return r, c
}

func ants(w *domain.WorldState) []AntRow {
	var out []AntRow
	for owner, live := range w.LiveAnts {
		for _, p := range live {
			out = append(out, AntRow{Owner: int32(owner), Row: int32(p.Row), Col: int32(p.Col), Alive: true})
		}
	}
	for owner, dead := range w.DeadAnts {
		for _, p := range dead {
			out = append(out, AntRow{Owner: int32(owner), Row: int32(p.Row), Col: int32(p.Col)})
		}
	}
	return out
}

// Export writes the match to outPath atomically. The final score, when known,
// is stored in the file metadata under "score" as comma-separated values.
func Export(outPath string, match *domain.Match) error {
	if len(match.Turns) == 0 {
		return errors.New("match has no recorded turns")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	opts := []parquet.WriterOption{
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
		parquet.KeyValueMetadata("match_id", match.ID),
	}
	if match.Score != nil {
		opts = append(opts, parquet.KeyValueMetadata("score", joinScore(match.Score.PerPlayer)))
	}

	if err := parquet.WriteFile(tmpPath, Rows(match), opts...); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// Read loads every row of an exported file.
func Read(path string) ([]TurnRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[TurnRow](pf)
	defer reader.Close()

	rows := make([]TurnRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows[:n], nil
}

func joinScore(scores []uint64) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.FormatUint(s, 10)
	}
	return strings.Join(parts, ",")
}
