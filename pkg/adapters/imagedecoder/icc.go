package imagedecoder

import "bytes"

// iccHeader is the APP2 payload prefix marking an embedded ICC profile chunk.
var iccHeader = []byte("ICC_PROFILE\x00")

// jpegICCProfile extracts the embedded ICC profile from a JPEG bitstream.
// The profile may be split across multiple APP2 segments, each carrying a
// 1-based sequence number and the total chunk count; the chunks are
// reassembled in order. Returns nil when no complete profile is present.
func jpegICCProfile(data []byte) []byte {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil
	}

	chunks := map[int][]byte{}
	total := 0

	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return nil
		}
		marker := data[pos+1]
		switch {
		case marker == 0xD8 || marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			// Standalone markers carry no length.
			pos += 2
			continue
		case marker == 0xD9 || marker == 0xDA:
			// EOI or start of scan: no more metadata segments follow.
			return assembleICC(chunks, total)
		}

		length := int(data[pos+2])<<8 | int(data[pos+3])
		if length < 2 || pos+2+length > len(data) {
			return nil
		}
		payload := data[pos+4 : pos+2+length]

		if marker == 0xE2 && len(payload) > len(iccHeader)+2 && bytes.HasPrefix(payload, iccHeader) {
			seq := int(payload[len(iccHeader)])
			count := int(payload[len(iccHeader)+1])
			if seq >= 1 && count >= 1 {
				chunks[seq] = payload[len(iccHeader)+2:]
				total = count
			}
		}

		pos += 2 + length
	}

	return assembleICC(chunks, total)
}

func assembleICC(chunks map[int][]byte, total int) []byte {
	if total == 0 || len(chunks) != total {
		return nil
	}
	var profile []byte
	for seq := 1; seq <= total; seq++ {
		chunk, ok := chunks[seq]
		if !ok {
			return nil
		}
		profile = append(profile, chunk...)
	}
	return profile
}
