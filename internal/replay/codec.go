// Package replay records the intents fed to a game and replays them.
//
// The simulation is deterministic, so a replay is just the per-frame intent
// masks. They are stored run-length encoded in protobuf wire format:
//
//	message Replay {
//	  uint32 version = 1;
//	  repeated Span spans = 2;
//	}
//	message Span {
//	  uint32 mask = 1;
//	  uint64 count = 2;
//	}
package replay

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Version is the encoding version written by Encode.
const Version = 1

const (
	fieldVersion protowire.Number = 1
	fieldSpans   protowire.Number = 2
	fieldMask    protowire.Number = 1
	fieldCount   protowire.Number = 2
)

// maxFrames bounds decoded replays so corrupt input cannot exhaust memory.
const maxFrames = 1 << 26

// ErrCorrupt is returned when replay data cannot be decoded.
var ErrCorrupt = errors.New("replay: corrupt data")

// Encode packs per-frame masks into protobuf wire format.
func Encode(masks []uint8) []byte {
	b := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, Version)

	for i := 0; i < len(masks); {
		j := i + 1
		for j < len(masks) && masks[j] == masks[i] {
			j++
		}

		var span []byte
		if masks[i] != 0 {
			span = protowire.AppendTag(span, fieldMask, protowire.VarintType)
			span = protowire.AppendVarint(span, uint64(masks[i]))
		}
		span = protowire.AppendTag(span, fieldCount, protowire.VarintType)
		span = protowire.AppendVarint(span, uint64(j-i))

		b = protowire.AppendTag(b, fieldSpans, protowire.BytesType)
		b = protowire.AppendBytes(b, span)
		i = j
	}
	return b
}

// Decode unpacks data produced by Encode.
func Decode(data []byte) ([]uint8, error) {
	var masks []uint8
	version := uint64(0)

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(m))
			}
			version = v
			data = data[m:]

		case num == fieldSpans && typ == protowire.BytesType:
			span, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(m))
			}
			mask, count, err := decodeSpan(span)
			if err != nil {
				return nil, err
			}
			if count > maxFrames-uint64(len(masks)) {
				return nil, fmt.Errorf("%w: more than %d frames", ErrCorrupt, maxFrames)
			}
			for range count {
				masks = append(masks, mask)
			}
			data = data[m:]

		default:
			// Unknown fields are skipped for forward compatibility.
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(m))
			}
			data = data[m:]
		}
	}

	if version != Version {
		return nil, fmt.Errorf("replay: unsupported version %d", version)
	}
	return masks, nil
}

func decodeSpan(data []byte) (uint8, uint64, error) {
	var mask, count uint64

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, 0, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		data = data[n:]

		if typ != protowire.VarintType || (num != fieldMask && num != fieldCount) {
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return 0, 0, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(m))
			}
			data = data[m:]
			continue
		}

		v, m := protowire.ConsumeVarint(data)
		if m < 0 {
			return 0, 0, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(m))
		}
		data = data[m:]

		if num == fieldMask {
			mask = v
		} else {
			count = v
		}
	}

	if mask > 0xff {
		return 0, 0, fmt.Errorf("%w: mask %d out of range", ErrCorrupt, mask)
	}
	return uint8(mask), count, nil
}
