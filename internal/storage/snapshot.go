// Package storage сохраняет состояние поля: снимок кодируется в msgpack
// и хранится в SQLite под именем.
package storage

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion меняется при несовместимых изменениях формата
const snapshotVersion = 1

// PieceRecord: фигура в снимке
type PieceRecord struct {
	DefID    string `msgpack:"def"`
	Col      int    `msgpack:"col"`
	Row      int    `msgpack:"row"`
	Level    int    `msgpack:"level"`
	Invested int    `msgpack:"invested"`
}

// Snapshot: сохраняемая часть состояния: сетка, фигуры, экономика и счётчики волн.
// Захватчики и снаряды в полёте не сохраняются.
type Snapshot struct {
	Version      int           `msgpack:"v"`
	Cols         int           `msgpack:"cols"`
	Rows         int           `msgpack:"rows"`
	CellSize     float64       `msgpack:"cell"`
	Occupancy    []uint8       `msgpack:"occ"`
	Pieces       []PieceRecord `msgpack:"pieces"`
	Money        int           `msgpack:"money"`
	Lives        int           `msgpack:"lives"`
	InvaderLevel int           `msgpack:"level"`
	Generated    int           `msgpack:"generated"`
	MadeIt       int           `msgpack:"made_it"`
	Destroyed    int           `msgpack:"destroyed"`
	SentAll      bool          `msgpack:"sent_all"`
	Seed         int64         `msgpack:"seed"`
}

// Encode упаковывает снимок в непрозрачную запись
func Encode(s Snapshot) ([]byte, error) {
	s.Version = snapshotVersion
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// Decode распаковывает запись и проверяет её согласованность
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("storage: unsupported snapshot version %d", s.Version)
	}
	if s.Cols <= 0 || s.Rows <= 0 || len(s.Occupancy) != s.Cols*s.Rows {
		return Snapshot{}, fmt.Errorf("storage: snapshot grid %dx%d does not match %d cells", s.Cols, s.Rows, len(s.Occupancy))
	}
	return s, nil
}
