package sim

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/Blackdeer1524/FrameCache/src/pkg/common"
	"github.com/Blackdeer1524/FrameCache/src/replacer"
)

type OpKind int

const (
	OpAccess OpKind = iota
	OpPin
	OpUnpin
	OpEvict
	OpRemove
)

// Op is one step of a workload trace.
type Op struct {
	Kind  OpKind
	Frame common.FrameID
	Type  replacer.AccessType
}

// ParseTrace reads a workload trace through the given filesystem.
//
// One op per line:
//
//	access <frame> [lookup|scan|index|unknown]
//	pin <frame>
//	unpin <frame>
//	evict
//	remove <frame>
//
// Blank lines and lines starting with '#' are skipped.
func ParseTrace(fs afero.Fs, path string) ([]Op, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer file.Close()

	var ops []Op

	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		op, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
		}

		ops = append(ops, op)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	return ops, nil
}

func parseLine(line string) (Op, error) {
	fields := strings.Fields(line)

	switch fields[0] {
	case "access":
		if len(fields) != 2 && len(fields) != 3 {
			return Op{}, fmt.Errorf(
				"access takes a frame id and an optional type: %q",
				line,
			)
		}

		frame, err := parseFrameID(fields[1])
		if err != nil {
			return Op{}, err
		}

		accessType := replacer.AccessUnknown
		if len(fields) == 3 {
			t, ok := replacer.ParseAccessType(fields[2])
			if !ok {
				return Op{}, fmt.Errorf("unknown access type %q", fields[2])
			}
			accessType = t
		}

		return Op{Kind: OpAccess, Frame: frame, Type: accessType}, nil
	case "pin", "unpin", "remove":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%s takes exactly one frame id: %q", fields[0], line)
		}

		frame, err := parseFrameID(fields[1])
		if err != nil {
			return Op{}, err
		}

		kind := OpPin
		switch fields[0] {
		case "unpin":
			kind = OpUnpin
		case "remove":
			kind = OpRemove
		}

		return Op{Kind: kind, Frame: frame}, nil
	case "evict":
		if len(fields) != 1 {
			return Op{}, fmt.Errorf("evict takes no arguments: %q", line)
		}

		return Op{Kind: OpEvict}, nil
	default:
		return Op{}, fmt.Errorf("unknown trace op %q", fields[0])
	}
}

func parseFrameID(s string) (common.FrameID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad frame id %q: %w", s, err)
	}

	return common.FrameID(id), nil
}
