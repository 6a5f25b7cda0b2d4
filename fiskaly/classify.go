package fiskaly

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/smaersclient/jsonrpc"
)

// classify turns the outcome of one transport call into nil or an *Error.
//
// A transport error wins. Otherwise an error object, either the JSON-RPC
// "error" member or an "error" member at the top of the result, becomes a
// service error carrying the remote code and message verbatim.
func classify(op string, resp *jsonrpc.Response, err error) error {
	if err != nil {
		kind := KindTransport
		if jsonrpc.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return &Error{Kind: kind, Op: op, Err: err}
	}
	if resp == nil {
		return malformed(op, "no response")
	}

	obj := resp.Error
	if obj == nil {
		obj = embeddedError(resp.Result)
	}
	if obj != nil {
		return &Error{
			Kind:    KindService,
			Op:      op,
			Code:    obj.Code,
			Message: obj.Message,
			Data:    obj.Data,
			Err:     obj,
		}
	}
	return nil
}

func embeddedError(result json.RawMessage) *jsonrpc.ErrorObject {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(result, &probe); err != nil || len(probe.Error) == 0 || string(probe.Error) == "null" {
		return nil
	}
	var obj jsonrpc.ErrorObject
	if err := json.Unmarshal(probe.Error, &obj); err != nil {
		return &jsonrpc.ErrorObject{Message: string(probe.Error)}
	}
	return &obj
}
