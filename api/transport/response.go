package transport

import "encoding/json"

// Envelope wraps every JSON response. Data is set on success, Code and
// Error on failure.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// ListMeta accompanies collection responses.
type ListMeta struct {
	Count int `json:"count"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewList wraps a collection of count items. An empty collection still
// serializes as [] rather than being omitted.
func NewList(items interface{}, count int) Envelope {
	if count == 0 {
		items = []struct{}{}
	}
	return NewSuccess(items, ListMeta{Count: count})
}

func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
