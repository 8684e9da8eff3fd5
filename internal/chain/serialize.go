package chain

import (
	"encoding/json"
	"fmt"
)

// Serialize encodes c losslessly.
func Serialize(c Chain) ([]byte, error) {
	return json.Marshal(c)
}

// Deserialize decodes a chain written by Serialize. Absent fields keep
// their zero value; an absent segment list becomes empty.
func Deserialize(data []byte) (Chain, error) {
	var c Chain
	if err := json.Unmarshal(data, &c); err != nil {
		return Chain{}, fmt.Errorf("decode chain: %w", err)
	}
	if c.Segments == nil {
		c.Segments = []Segment{}
	}
	return c, nil
}
