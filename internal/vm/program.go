package vm

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Program is a compiled chunk plus provenance, the unit stored in a .zbc
// file. BuildID ties a compiled artifact back to the build that produced
// it when the source path alone is ambiguous.
type Program struct {
	Chunk      *Chunk
	SourceFile string
	BuildID    string
	CreatedAt  time.Time
}

// programVersion is bumped whenever the serialized layout changes.
const programVersion byte = 0x01

// programMagic prefixes every serialized program: "ZPBC".
var programMagic = [4]byte{'Z', 'P', 'B', 'C'}

// NewProgram wraps a compiled chunk with provenance for serialization.
func NewProgram(chunk *Chunk, sourceFile string) *Program {
	return &Program{
		Chunk:      chunk,
		SourceFile: sourceFile,
		BuildID:    uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
	}
}

// Serialize converts a Program to its binary format.
// Format:
// - Magic number (4 bytes): "ZPBC"
// - Version (1 byte): 0x01
// - Gob-encoded Program data
func (p *Program) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.Write(programMagic[:])
	buf.WriteByte(programVersion)

	enc := gob.NewEncoder(buf)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("program gob encoding failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Deserialize reads serialized program data back into a Program, checking
// the magic, the version, and the structural integrity of the chunk.
func Deserialize(data []byte) (*Program, error) {
	if len(data) < len(programMagic)+1 {
		return nil, fmt.Errorf("program data too short")
	}

	if !bytes.Equal(data[:len(programMagic)], programMagic[:]) {
		return nil, fmt.Errorf("invalid magic number, expected ZPBC")
	}

	version := data[len(programMagic)]
	if version != programVersion {
		return nil, fmt.Errorf(
			"unsupported program version: %d (this binary supports version %d)",
			version, programVersion)
	}

	payload := data[len(programMagic)+1:]
	dec := gob.NewDecoder(bytes.NewReader(payload))

	var prog Program
	if err := dec.Decode(&prog); err != nil {
		return nil, fmt.Errorf("program gob decoding failed: %w", err)
	}

	if err := prog.Validate(); err != nil {
		return nil, fmt.Errorf("program validation failed: %w", err)
	}
	return &prog, nil
}

// Validate checks the structural integrity of a deserialized program.
func (p *Program) Validate() error {
	if p.Chunk == nil {
		return fmt.Errorf("program has nil chunk")
	}
	if len(p.Chunk.Code) == 0 {
		return fmt.Errorf("program has empty bytecode")
	}
	if len(p.Chunk.Lines) != len(p.Chunk.Code) {
		return fmt.Errorf("line table length %d does not match code length %d",
			len(p.Chunk.Lines), len(p.Chunk.Code))
	}
	if len(p.Chunk.Constants) > maxConstants {
		return fmt.Errorf("constant pool too large: %d", len(p.Chunk.Constants))
	}
	return nil
}

