package media

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// VideoDuration reads the duration (rounded to whole seconds) out of a
// decoded video container. Only ISO-BMFF containers (mp4, m4v, quicktime)
// are understood; anything else is a decode failure and the attach is
// abandoned.
func VideoDuration(contentType string, data []byte) (int, error) {
	switch {
	case strings.Contains(contentType, "mp4"),
		strings.Contains(contentType, "quicktime"),
		strings.Contains(contentType, "m4v"):
		return mp4Duration(data)
	default:
		return 0, fmt.Errorf("unsupported video container %q", contentType)
	}
}

// mp4Duration walks the top-level box structure to moov/mvhd and reads
// timescale and duration. Both mvhd version 0 (32-bit) and version 1
// (64-bit) layouts are handled.
func mp4Duration(data []byte) (int, error) {
	moov, err := findBox(data, "moov")
	if err != nil {
		return 0, err
	}
	mvhd, err := findBox(moov, "mvhd")
	if err != nil {
		return 0, err
	}
	if len(mvhd) < 4 {
		return 0, fmt.Errorf("mvhd box truncated")
	}
	version := mvhd[0]
	switch version {
	case 0:
		// 4 bytes version/flags, 4+4 creation/modification, then
		// timescale and duration as uint32.
		if len(mvhd) < 20 {
			return 0, fmt.Errorf("mvhd v0 truncated")
		}
		timescale := binary.BigEndian.Uint32(mvhd[12:16])
		duration := binary.BigEndian.Uint32(mvhd[16:20])
		if timescale == 0 {
			return 0, fmt.Errorf("mvhd has zero timescale")
		}
		return int((uint64(duration) + uint64(timescale)/2) / uint64(timescale)), nil
	case 1:
		// 4 bytes version/flags, 8+8 creation/modification, uint32
		// timescale, uint64 duration.
		if len(mvhd) < 32 {
			return 0, fmt.Errorf("mvhd v1 truncated")
		}
		timescale := binary.BigEndian.Uint32(mvhd[20:24])
		duration := binary.BigEndian.Uint64(mvhd[24:32])
		if timescale == 0 {
			return 0, fmt.Errorf("mvhd has zero timescale")
		}
		return int((duration + uint64(timescale)/2) / uint64(timescale)), nil
	default:
		return 0, fmt.Errorf("unknown mvhd version %d", version)
	}
}

// findBox scans sibling boxes in data and returns the payload of the
// first box with the given type.
func findBox(data []byte, boxType string) ([]byte, error) {
	off := 0
	for off+8 <= len(data) {
		size := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		header := 8
		if size == 1 {
			// 64-bit largesize follows the type.
			if off+16 > len(data) {
				return nil, fmt.Errorf("box %s largesize truncated", typ)
			}
			size64 := binary.BigEndian.Uint64(data[off+8 : off+16])
			if size64 > uint64(len(data)-off) {
				return nil, fmt.Errorf("box %s exceeds buffer", typ)
			}
			size = int(size64)
			header = 16
		} else if size == 0 {
			// box extends to end of buffer
			size = len(data) - off
		}
		if size < header || off+size > len(data) {
			return nil, fmt.Errorf("malformed box %s at offset %d", typ, off)
		}
		if typ == boxType {
			return data[off+header : off+size], nil
		}
		off += size
	}
	return nil, fmt.Errorf("box %s not found", boxType)
}
