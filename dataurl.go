package canvasgrab

import (
	"encoding/base64"
	"strings"
)

// DecodeDataURL decodes a base64 data URL such as the one returned by
// HTMLCanvasElement.toDataURL and returns its media type and payload.
// A zero-sized canvas yields "data:,", which is reported as EINVALID.
func DecodeDataURL(s string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, Errorf(EINVALID, "not a data URL")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, Errorf(EINVALID, "data URL missing payload separator")
	}
	mediaType, ok = strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, Errorf(EINVALID, "data URL is not base64 encoded")
	}
	if payload == "" {
		return "", nil, Errorf(EINVALID, "data URL is empty")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, Errorf(EINVALID, "decoding data URL: %v", err)
	}
	return mediaType, data, nil
}
