package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// ResultKey derives a cache key from a task id and its parameters.
// encoding/json sorts map keys, so equal parameter maps give equal keys.
func ResultKey(taskID int, params map[string]interface{}) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(taskID)))
	h.Write([]byte{0})
	h.Write(data)
	return "solve:" + strconv.Itoa(taskID) + ":" + hex.EncodeToString(h.Sum(nil))[:32], nil
}
