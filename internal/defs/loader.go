// internal/defs/loader.go
package defs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed data/pieces.json
var defaultPieces []byte

//go:embed data/invaders.json
var defaultInvaders []byte

// Library holds all piece and invader definitions.
// Order slices keep the file order so that random picks stay reproducible.
type Library struct {
	Pieces       map[string]PieceDefinition
	PieceOrder   []string
	Invaders     map[string]InvaderDefinition
	InvaderOrder []string
}

// DefaultLibrary parses the definitions compiled into the binary.
func DefaultLibrary() (*Library, error) {
	return ParseLibrary(defaultPieces, defaultInvaders)
}

// LoadLibrary reads piece and invader definition files.
// An empty path falls back to the built-in definitions for that kind.
func LoadLibrary(piecesPath, invadersPath string) (*Library, error) {
	pieces, invaders := defaultPieces, defaultInvaders
	if piecesPath != "" {
		file, err := os.ReadFile(piecesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read piece definitions file: %w", err)
		}
		pieces = file
	}
	if invadersPath != "" {
		file, err := os.ReadFile(invadersPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read invader definitions file: %w", err)
		}
		invaders = file
	}
	return ParseLibrary(pieces, invaders)
}

// ParseLibrary decodes JSON arrays of definitions and validates them.
func ParseLibrary(piecesJSON, invadersJSON []byte) (*Library, error) {
	var pieceDefs []PieceDefinition
	if err := json.Unmarshal(piecesJSON, &pieceDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal piece definitions: %w", err)
	}
	var invaderDefs []InvaderDefinition
	if err := json.Unmarshal(invadersJSON, &invaderDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invader definitions: %w", err)
	}

	lib := &Library{
		Pieces:   make(map[string]PieceDefinition, len(pieceDefs)),
		Invaders: make(map[string]InvaderDefinition, len(invaderDefs)),
	}
	var errs []error
	for _, def := range pieceDefs {
		if err := validatePiece(def); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := lib.Pieces[def.ID]; dup {
			errs = append(errs, fmt.Errorf("piece %q: duplicate id", def.ID))
			continue
		}
		lib.Pieces[def.ID] = def
		lib.PieceOrder = append(lib.PieceOrder, def.ID)
	}
	for _, def := range invaderDefs {
		if err := validateInvader(def); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := lib.Invaders[def.ID]; dup {
			errs = append(errs, fmt.Errorf("invader %q: duplicate id", def.ID))
			continue
		}
		lib.Invaders[def.ID] = def
		lib.InvaderOrder = append(lib.InvaderOrder, def.ID)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid definitions: %w", errors.Join(errs...))
	}
	if len(lib.Invaders) == 0 {
		return nil, errors.New("invalid definitions: no invaders defined")
	}
	return lib, nil
}

// Piece looks up a piece definition.
func (l *Library) Piece(id string) (PieceDefinition, bool) {
	def, ok := l.Pieces[id]
	return def, ok
}

// Invader looks up an invader definition.
func (l *Library) Invader(id string) (InvaderDefinition, bool) {
	def, ok := l.Invaders[id]
	return def, ok
}

func validatePiece(def PieceDefinition) error {
	if def.ID == "" {
		return errors.New("piece without id")
	}
	if def.ProgressRate <= 0 {
		return fmt.Errorf("piece %q: progress_rate must be positive", def.ID)
	}
	if def.Fire != nil {
		if !def.Fire.Kind.Valid() {
			return fmt.Errorf("piece %q: unknown fire kind %q", def.ID, def.Fire.Kind)
		}
		if def.Fire.Rate <= 0 {
			return fmt.Errorf("piece %q: fire rate must be positive", def.ID)
		}
	}
	if def.Ground != nil && def.Blocking {
		return fmt.Errorf("piece %q: a blocking piece cannot have a ground effect", def.ID)
	}
	return nil
}

func validateInvader(def InvaderDefinition) error {
	if def.ID == "" {
		return errors.New("invader without id")
	}
	if def.First.Life <= 0 || def.Last.Life <= 0 {
		return fmt.Errorf("invader %q: life must be positive", def.ID)
	}
	if def.First.Speed <= 0 || def.Last.Speed <= 0 {
		return fmt.Errorf("invader %q: speed must be positive", def.ID)
	}
	if def.Weight < 0 {
		return fmt.Errorf("invader %q: weight must not be negative", def.ID)
	}
	if _, ok := Curve(def.Ease); !ok {
		return fmt.Errorf("invader %q: unknown ease %q", def.ID, def.Ease)
	}
	return nil
}
