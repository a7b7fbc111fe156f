package utils

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULIDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetStringPointer(text string) *string {
	return &text
}

func GetBooleanPointer(data bool) *bool {
	return &data
}

func GetFloat64Pointer(data float64) *float64 {
	return &data
}

func GetUIntPointer(data uint) *uint {
	return &data
}

// DecodeBase64Media decodes client-submitted media. Data URL prefixes from
// browser capture APIs are tolerated and stripped.
func DecodeBase64Media(payload string) ([]byte, error) {
	if index := strings.Index(payload, ";base64,"); index != -1 {
		payload = payload[index+len(";base64,"):]
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.New("invalid base64 media payload")
	}
	if len(decoded) == 0 {
		return nil, errors.New("empty media payload")
	}
	return decoded, nil
}

func HasItemString(arr *[]string, target string) bool {
	for _, v := range *arr {
		if v == target {
			return true
		}
	}
	return false
}
