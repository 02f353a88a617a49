package cli

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// EXIF is the subset of JPEG metadata the info command reports and
// LoadImage uses for orientation.
type EXIF struct {
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	Software    string `json:"software,omitempty"`
	DateTime    string `json:"datetime,omitempty"`
	Orientation int    `json:"orientation,omitempty"`
}

const (
	tagMake        = 0x010F
	tagModel       = 0x0110
	tagOrientation = 0x0112
	tagSoftware    = 0x0131
	tagDateTime    = 0x0132
	tagExifIFD     = 0x8769
)

// ReadEXIF extracts the IFD0 tags of a JPEG's APP1 Exif block.
func ReadEXIF(data []byte) (EXIF, error) {
	var out EXIF
	tiffStart, err := tiffStartFromJPEG(data)
	if err != nil {
		return out, err
	}
	tags, err := readIFD0(data, tiffStart)
	if err != nil {
		return out, err
	}
	out.Make = tags[tagMake]
	out.Model = tags[tagModel]
	out.Software = tags[tagSoftware]
	out.DateTime = tags[tagDateTime]
	if v, ok := tags[tagOrientation]; ok {
		out.Orientation, _ = strconv.Atoi(v)
	}
	return out, nil
}

// jpegOrientation returns the EXIF orientation of a JPEG, or 1 when the
// file carries none or an invalid one.
func jpegOrientation(data []byte) int {
	ex, err := ReadEXIF(data)
	if err != nil || ex.Orientation < 1 || ex.Orientation > 8 {
		return 1
	}
	return ex.Orientation
}

// tiffStartFromJPEG walks the JPEG marker segments up to start-of-scan and
// returns the offset of the TIFF header inside the first Exif APP1 segment.
func tiffStartFromJPEG(data []byte) (int, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return -1, fmt.Errorf("exif: not a JPEG stream")
	}
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA {
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, nil
		}
		if segLen < 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, fmt.Errorf("exif: no Exif segment")
}

// readIFD0 decodes the ASCII, SHORT and LONG entries of the 0th IFD.
// Offsets are relative to tiffStart; the Exif sub-IFD pointer is skipped.
func readIFD0(data []byte, tiffStart int) (map[uint16]string, error) {
	res := map[uint16]string{}
	if tiffStart+8 > len(data) {
		return res, fmt.Errorf("exif: TIFF header truncated")
	}
	var order binary.ByteOrder
	switch string(data[tiffStart : tiffStart+2]) {
	case "MM":
		order = binary.BigEndian
	case "II":
		order = binary.LittleEndian
	default:
		return res, fmt.Errorf("exif: unknown byte order")
	}
	if order.Uint16(data[tiffStart+2:tiffStart+4]) != 0x002A {
		return res, fmt.Errorf("exif: bad TIFF magic")
	}
	ifd := tiffStart + int(order.Uint32(data[tiffStart+4:tiffStart+8]))
	if ifd+2 > len(data) || ifd <= tiffStart {
		return res, fmt.Errorf("exif: IFD0 out of range")
	}
	n := int(order.Uint16(data[ifd : ifd+2]))
	for e := 0; e < n; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(data) {
			break
		}
		tag := order.Uint16(data[ent : ent+2])
		typ := order.Uint16(data[ent+2 : ent+4])
		count := int(order.Uint32(data[ent+4 : ent+8]))
		if tag == tagExifIFD {
			continue
		}
		var size int
		switch typ {
		case 2:
			size = 1
		case 3:
			size = 2
		case 4:
			size = 4
		default:
			continue
		}
		total := count * size
		if count <= 0 || total > len(data) {
			continue
		}
		raw := data[ent+8 : ent+12]
		if total > 4 {
			off := tiffStart + int(order.Uint32(raw))
			if off < tiffStart || off+total > len(data) {
				continue
			}
			raw = data[off : off+total]
		} else {
			raw = raw[:total]
		}
		switch typ {
		case 2:
			if k := bytes.IndexByte(raw, 0); k >= 0 {
				raw = raw[:k]
			}
			res[tag] = strings.TrimSpace(string(raw))
		case 3:
			vals := make([]string, 0, count)
			for k := 0; k+2 <= len(raw); k += 2 {
				vals = append(vals, strconv.Itoa(int(order.Uint16(raw[k:]))))
			}
			res[tag] = strings.Join(vals, ",")
		case 4:
			vals := make([]string, 0, count)
			for k := 0; k+4 <= len(raw); k += 4 {
				vals = append(vals, strconv.FormatUint(uint64(order.Uint32(raw[k:])), 10))
			}
			res[tag] = strings.Join(vals, ",")
		}
	}
	return res, nil
}
